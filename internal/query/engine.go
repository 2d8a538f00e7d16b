package query

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Checker-Finance/trade-query/internal/dataset"
	"github.com/Checker-Finance/trade-query/pkg/model"
)

// ErrTradeNotFound is returned by ByID when no trade matches the requested id.
var ErrTradeNotFound = errors.New("trade not found")

const (
	DefaultPage  = 1
	DefaultLimit = 4

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Page addresses one slice of a result set. Page numbers are 1-based. Sort is
// compared case-insensitively; anything that is not "asc" sorts descending.
type Page struct {
	Page  int
	Limit int
	Sort  string
}

// Filter holds the optional predicates for List. Nil fields are skipped; the
// supplied ones apply conjunctively. Bounds are inclusive on both ends.
type Filter struct {
	AssetClass *string
	Start      *time.Time
	End        *time.Time
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	TradeType  *string
}

// Result is one page of trades plus the pre-pagination match count.
type Result struct {
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	Trades     []model.Trade `json:"trades"`
}

// Engine answers read-only queries against a dataset snapshot.
type Engine struct {
	snapshot *dataset.Snapshot
}

// New creates an Engine over the given snapshot.
func New(snapshot *dataset.Snapshot) *Engine {
	return &Engine{snapshot: snapshot}
}

// List applies the filter predicates as a sequential narrowing scan, records
// the filtered count, then paginates and sorts. The sort reorders the
// returned page only; pagination walks the snapshot in insertion order.
func (e *Engine) List(f Filter, p Page) Result {
	filtered := make([]model.Trade, 0, len(e.snapshot.Trades))
	for _, t := range e.snapshot.Trades {
		if f.matches(t) {
			filtered = append(filtered, t)
		}
	}
	return paginate(filtered, p)
}

// ByID scans the snapshot for the first trade with the given id.
func (e *Engine) ByID(tradeID string) (*model.Trade, error) {
	for i := range e.snapshot.Trades {
		if e.snapshot.Trades[i].TradeID == tradeID {
			t := e.snapshot.Trades[i]
			return &t, nil
		}
	}
	return nil, ErrTradeNotFound
}

// Search matches q case-insensitively as a substring of counterparty
// (skipped when absent), instrument id, instrument name, or trader. An empty
// q matches every trade. Pagination and sort behave exactly as in List.
func (e *Engine) Search(q string, p Page) Result {
	needle := strings.ToLower(q)

	matched := make([]model.Trade, 0, len(e.snapshot.Trades))
	for _, t := range e.snapshot.Trades {
		if (t.Counterparty != nil && strings.Contains(strings.ToLower(*t.Counterparty), needle)) ||
			strings.Contains(strings.ToLower(t.InstrumentID), needle) ||
			strings.Contains(strings.ToLower(t.InstrumentName), needle) ||
			strings.Contains(strings.ToLower(t.Trader), needle) {
			matched = append(matched, t)
		}
	}
	return paginate(matched, p)
}

func (f Filter) matches(t model.Trade) bool {
	if f.AssetClass != nil && (t.AssetClass == nil || *t.AssetClass != *f.AssetClass) {
		return false
	}
	if f.Start != nil && t.TradeDateTime.Before(*f.Start) {
		return false
	}
	if f.End != nil && t.TradeDateTime.After(*f.End) {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := decimal.NewFromFloat(t.TradeDetails.Price)
		if f.MinPrice != nil && price.LessThan(*f.MinPrice) {
			return false
		}
		if f.MaxPrice != nil && price.GreaterThan(*f.MaxPrice) {
			return false
		}
	}
	if f.TradeType != nil && t.TradeDetails.BuySellIndicator != *f.TradeType {
		return false
	}
	return true
}

// paginate slices trades by the 1-based page number, then sorts the slice by
// execution time. A page past the end yields an empty slice, never an error.
// Trades is always non-nil so an empty page serializes as [].
func paginate(trades []model.Trade, p Page) Result {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	// page and limit are caller-validated to be >= 1, but their product can
	// still overflow; any offset past the end yields the empty page.
	start := (page - 1) * limit
	if start < 0 || start/limit != page-1 || start > len(trades) {
		start = len(trades)
	}
	end := start + limit
	if end < start || end > len(trades) {
		end = len(trades)
	}

	slice := make([]model.Trade, end-start)
	copy(slice, trades[start:end])

	asc := strings.EqualFold(p.Sort, SortAsc)
	sort.SliceStable(slice, func(i, j int) bool {
		if asc {
			return slice[i].TradeDateTime.Before(slice[j].TradeDateTime)
		}
		return slice[j].TradeDateTime.Before(slice[i].TradeDateTime)
	})

	return Result{
		TotalCount: len(trades),
		Page:       page,
		Trades:     slice,
	}
}
