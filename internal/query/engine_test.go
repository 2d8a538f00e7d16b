package query

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Checker-Finance/trade-query/internal/dataset"
	"github.com/Checker-Finance/trade-query/pkg/model"
)

// --- Fixture ---

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func timePtr(t time.Time) *time.Time { return &t }

func at(m time.Month, day int) time.Time {
	return time.Date(2022, m, day, 14, 30, 0, 0, time.UTC)
}

func fixtureTrade(id string, assetClass, counterparty *string, instID, instName, trader, side string, price float64, dt time.Time) model.Trade {
	return model.Trade{
		AssetClass:     assetClass,
		Counterparty:   counterparty,
		InstrumentID:   instID,
		InstrumentName: instName,
		TradeDateTime:  dt,
		TradeDetails: model.TradeDetails{
			BuySellIndicator: side,
			Price:            price,
			Quantity:         10,
		},
		TradeID: id,
		Trader:  trader,
	}
}

// newFixtureEngine builds an engine over six hand-picked trades in known
// insertion order.
func newFixtureEngine() *Engine {
	trades := []model.Trade{
		fixtureTrade("0", strPtr("Equity"), strPtr("ABC Bank"), "TSLA", "Tesla", "John Doe", "BUY", 100, at(time.January, 10)),
		fixtureTrade("1", strPtr("Bond"), strPtr("XYZ Investment"), "AAPL", "Apple", "Jane Smith", "SELL", 250, at(time.February, 5)),
		fixtureTrade("2", strPtr("FX"), nil, "EURUSD", "Euro/USD", "Bob Johnson", "BUY", 500, at(time.March, 20)),
		fixtureTrade("3", strPtr("Equity"), strPtr("DEF Forex"), "AMZN", "Amazon", "Alice Williams", "SELL", 750, at(time.April, 1)),
		fixtureTrade("4", strPtr("Bond"), strPtr("PQR Investment"), "GOOG", "Google", "Robert Johnson", "BUY", 1000, at(time.May, 15)),
		fixtureTrade("5", strPtr("Equity"), strPtr("XYZ Bank"), "TSLA", "Tesla", "John Doe", "SELL", 50, at(time.June, 30)),
	}
	return New(&dataset.Snapshot{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Trades:      trades,
	})
}

func ids(trades []model.Trade) []string {
	out := make([]string, 0, len(trades))
	for _, t := range trades {
		out = append(out, t.TradeID)
	}
	return out
}

// --- List ---

func TestList_NoFilter_Defaults(t *testing.T) {
	e := newFixtureEngine()

	res := e.List(Filter{}, Page{})

	assert.Equal(t, 6, res.TotalCount)
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Trades, DefaultLimit)
}

func TestList_AssetClassFilter(t *testing.T) {
	e := newFixtureEngine()

	res := e.List(Filter{AssetClass: strPtr("Equity")}, Page{Limit: 10})

	assert.Equal(t, 3, res.TotalCount)
	for _, tr := range res.Trades {
		require.NotNil(t, tr.AssetClass)
		assert.Equal(t, "Equity", *tr.AssetClass)
	}
}

func TestList_DateBoundsInclusive(t *testing.T) {
	e := newFixtureEngine()

	// start/end exactly on trade "1" and trade "3" execution times.
	res := e.List(Filter{
		Start: timePtr(at(time.February, 5)),
		End:   timePtr(at(time.April, 1)),
	}, Page{Limit: 10})

	assert.Equal(t, 3, res.TotalCount)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids(res.Trades))
}

func TestList_PriceBoundsConjunctive(t *testing.T) {
	e := newFixtureEngine()

	res := e.List(Filter{
		MinPrice: decPtr("250"),
		MaxPrice: decPtr("750"),
	}, Page{Limit: 10})

	assert.Equal(t, 3, res.TotalCount)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids(res.Trades))
}

func TestList_TradeTypeFilter(t *testing.T) {
	e := newFixtureEngine()

	res := e.List(Filter{TradeType: strPtr("SELL")}, Page{Limit: 10})

	assert.Equal(t, 3, res.TotalCount)
	for _, tr := range res.Trades {
		assert.Equal(t, "SELL", tr.TradeDetails.BuySellIndicator)
	}
}

func TestList_CombinedFilters(t *testing.T) {
	e := newFixtureEngine()

	res := e.List(Filter{
		AssetClass: strPtr("Equity"),
		TradeType:  strPtr("SELL"),
		MinPrice:   decPtr("100"),
	}, Page{Limit: 10})

	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, []string{"3"}, ids(res.Trades))
}

func TestList_AssetClassFilterSkipsNilValues(t *testing.T) {
	trades := []model.Trade{
		fixtureTrade("0", nil, nil, "TSLA", "Tesla", "John Doe", "BUY", 100, at(time.January, 10)),
	}
	e := New(&dataset.Snapshot{ID: uuid.New(), Trades: trades})

	res := e.List(Filter{AssetClass: strPtr("Equity")}, Page{})
	assert.Equal(t, 0, res.TotalCount)
}

// --- Pagination & sort ---

func TestList_PaginationWalksInsertionOrder(t *testing.T) {
	e := newFixtureEngine()

	// With limit 4, page 2 holds the 5th and 6th trades in insertion order.
	// Only the returned page is reordered by date (descending by default).
	res := e.List(Filter{}, Page{Page: 2, Limit: 4})

	assert.Equal(t, 6, res.TotalCount)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, []string{"5", "4"}, ids(res.Trades))
}

func TestList_PageBeyondResults(t *testing.T) {
	e := newFixtureEngine()

	res := e.List(Filter{}, Page{Page: 1000, Limit: 4})

	assert.Equal(t, 6, res.TotalCount)
	assert.Equal(t, 1000, res.Page)
	require.NotNil(t, res.Trades)
	assert.Empty(t, res.Trades)
}

func TestList_HugePageYieldsEmptySlice(t *testing.T) {
	e := newFixtureEngine()

	// Offsets whose page*limit product overflows must still land on the
	// empty page, not a panic.
	pages := []Page{
		{Page: math.MaxInt, Limit: 2},
		{Page: math.MaxInt, Limit: math.MaxInt},
		{Page: 2, Limit: math.MaxInt},
	}

	for _, p := range pages {
		res := e.List(Filter{}, p)
		assert.Equal(t, 6, res.TotalCount)
		require.NotNil(t, res.Trades)
		assert.Empty(t, res.Trades)

		res = e.Search("", p)
		assert.Equal(t, 6, res.TotalCount)
		require.NotNil(t, res.Trades)
		assert.Empty(t, res.Trades)
	}
}

func TestList_SortDirections(t *testing.T) {
	e := newFixtureEngine()

	tests := []struct {
		name string
		sort string
		asc  bool
	}{
		{name: "explicit desc", sort: "desc", asc: false},
		{name: "explicit asc", sort: "asc", asc: true},
		{name: "uppercase asc", sort: "ASC", asc: true},
		{name: "default empty", sort: "", asc: false},
		{name: "invalid falls back to desc", sort: "oldest", asc: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := e.List(Filter{}, Page{Limit: 10, Sort: tc.sort})
			require.Len(t, res.Trades, 6)
			for i := 0; i < len(res.Trades)-1; i++ {
				a, b := res.Trades[i].TradeDateTime, res.Trades[i+1].TradeDateTime
				if tc.asc {
					assert.False(t, a.After(b), "expected nondecreasing dates")
				} else {
					assert.False(t, a.Before(b), "expected nonincreasing dates")
				}
			}
		})
	}
}

func TestList_ResultLengthNeverExceedsLimit(t *testing.T) {
	e := newFixtureEngine()

	for limit := 1; limit <= 7; limit++ {
		for page := 1; page <= 4; page++ {
			res := e.List(Filter{}, Page{Page: page, Limit: limit})
			assert.LessOrEqual(t, len(res.Trades), limit)
			assert.Equal(t, 6, res.TotalCount)
		}
	}
}

// --- ByID ---

func TestByID_Found(t *testing.T) {
	e := newFixtureEngine()

	tr, err := e.ByID("0")
	require.NoError(t, err)
	assert.Equal(t, "0", tr.TradeID)
	assert.Equal(t, "TSLA", tr.InstrumentID)
}

func TestByID_NotFound(t *testing.T) {
	e := newFixtureEngine()

	tr, err := e.ByID("9999")
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestByID_FirstMatchWinsOnDuplicates(t *testing.T) {
	trades := []model.Trade{
		fixtureTrade("7", strPtr("Equity"), nil, "TSLA", "Tesla", "John Doe", "BUY", 100, at(time.January, 10)),
		fixtureTrade("7", strPtr("Bond"), nil, "AAPL", "Apple", "Jane Smith", "SELL", 200, at(time.February, 5)),
	}
	e := New(&dataset.Snapshot{ID: uuid.New(), Trades: trades})

	tr, err := e.ByID("7")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", tr.InstrumentID)
}

// --- Search ---

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	e := newFixtureEngine()

	res := e.Search("", Page{Limit: 10})

	assert.Equal(t, 6, res.TotalCount)
	assert.Len(t, res.Trades, 6)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	e := newFixtureEngine()

	lower := e.Search("tesla", Page{Limit: 10})
	upper := e.Search("TESLA", Page{Limit: 10})

	assert.Equal(t, lower.TotalCount, upper.TotalCount)
	assert.ElementsMatch(t, ids(lower.Trades), ids(upper.Trades))
	assert.ElementsMatch(t, []string{"0", "5"}, ids(lower.Trades))
}

func TestSearch_MatchesAcrossFields(t *testing.T) {
	e := newFixtureEngine()

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{name: "counterparty", q: "xyz", want: []string{"1", "5"}},
		{name: "instrument id", q: "eurusd", want: []string{"2"}},
		{name: "instrument name", q: "amazon", want: []string{"3"}},
		{name: "trader", q: "john", want: []string{"0", "2", "4", "5"}},
		{name: "no match", q: "bitcoin", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Search(tc.q, Page{Limit: 10})
			assert.ElementsMatch(t, tc.want, ids(res.Trades))
			assert.Equal(t, len(tc.want), res.TotalCount)
		})
	}
}

func TestSearch_SkipsNilCounterparty(t *testing.T) {
	e := newFixtureEngine()

	// Trade "2" has no counterparty; the query must not match (or panic on) it.
	res := e.Search("bank", Page{Limit: 10})
	assert.ElementsMatch(t, []string{"0", "5"}, ids(res.Trades))
}

func TestSearch_PaginationAndSortMatchList(t *testing.T) {
	e := newFixtureEngine()

	res := e.Search("", Page{Page: 2, Limit: 4, Sort: "asc"})

	assert.Equal(t, 6, res.TotalCount)
	// Page 2 in insertion order is trades "4" and "5"; ascending sort keeps
	// May before June.
	assert.Equal(t, []string{"4", "5"}, ids(res.Trades))
}
