package dataset

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Checker-Finance/trade-query/pkg/model"
)

// DefaultSize is the number of trades generated when no override is configured.
const DefaultSize = 100

// Fixed vocabularies the generator draws from. Instrument ids and names are
// paired so a TSLA trade is always named Tesla.
var (
	assetClasses = []string{"Equity", "Bond", "FX"}

	counterparties = []string{
		"ABC Bank",
		"XYZ Investment",
		"DEF Forex",
		"XYZ Bank",
		"PQR Investment",
	}

	instruments = []struct {
		ID   string
		Name string
	}{
		{"TSLA", "Tesla"},
		{"AAPL", "Apple"},
		{"EURUSD", "Euro/USD"},
		{"AMZN", "Amazon"},
		{"GOOG", "Google"},
	}

	buySellIndicators = []string{"BUY", "SELL"}

	traders = []string{
		"John Doe",
		"Jane Smith",
		"Bob Johnson",
		"Alice Williams",
		"Robert Johnson",
	}
)

// Snapshot is the process-wide read-only trade collection. It is built once
// at startup, handed to the query engine by reference, and never mutated
// afterwards, so concurrent reads need no locking.
type Snapshot struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	Trades      []model.Trade
}

// Size returns the number of trades in the snapshot.
func (s *Snapshot) Size() int { return len(s.Trades) }

// Generate builds a snapshot of n synthetic trades. No seed is fixed, so the
// dataset differs across restarts; tests that need determinism should use
// GenerateSeeded.
func Generate(n int) *Snapshot {
	return GenerateSeeded(n, time.Now().UnixNano())
}

// GenerateSeeded builds a snapshot of n trades from the given seed.
//
// Field values are drawn uniformly from the vocabularies above, except
// tradeId (the sequential index as a string) and trader (assigned cyclically
// by index). Execution times fall within 2022, always at 14:30 UTC; days cap
// at 28 so any month is valid.
func GenerateSeeded(n int, seed int64) *Snapshot {
	rng := rand.New(rand.NewSource(seed))

	trades := make([]model.Trade, 0, n)
	for i := 0; i < n; i++ {
		assetClass := assetClasses[rng.Intn(len(assetClasses))]
		counterparty := counterparties[rng.Intn(len(counterparties))]
		inst := instruments[rng.Intn(len(instruments))]

		// Whole-currency price in [1,1000]; going through decimal keeps the
		// float representation exact.
		price := decimal.NewFromInt(int64(rng.Intn(1000) + 1))

		trades = append(trades, model.Trade{
			AssetClass:     &assetClass,
			Counterparty:   &counterparty,
			InstrumentID:   inst.ID,
			InstrumentName: inst.Name,
			TradeDateTime: time.Date(2022,
				time.Month(rng.Intn(12)+1), rng.Intn(28)+1,
				14, 30, 0, 0, time.UTC),
			TradeDetails: model.TradeDetails{
				BuySellIndicator: buySellIndicators[rng.Intn(len(buySellIndicators))],
				Price:            price.InexactFloat64(),
				Quantity:         rng.Intn(50) + 1,
			},
			TradeID: strconv.Itoa(i),
			Trader:  traders[i%len(traders)],
		})
	}

	return &Snapshot{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Trades:      trades,
	}
}
