package model

import "time"

// TradeDetails captures the execution side, price and quantity of a trade.
// It is a value object owned by its Trade and has no identity of its own.
type TradeDetails struct {
	BuySellIndicator string  `json:"buySellIndicator"` // BUY | SELL
	Price            float64 `json:"price"`
	Quantity         int     `json:"quantity"`
}

// Trade is a single recorded transaction. Optional fields are pointers so a
// missing value serializes as null rather than a zero sentinel.
//
// TradeID is intended to be unique per collection but uniqueness is never
// enforced; the dataset generator assigns sequential ids as stringified
// integers.
type Trade struct {
	AssetClass     *string      `json:"assetClass"`   // e.g. Equity, Bond, FX
	Counterparty   *string      `json:"counterparty"` // may not always be available
	InstrumentID   string       `json:"instrumentId"` // e.g. TSLA, AAPL, EURUSD
	InstrumentName string       `json:"instrumentName"`
	TradeDateTime  time.Time    `json:"tradeDateTime"`
	TradeDetails   TradeDetails `json:"tradeDetails"`
	TradeID        string       `json:"tradeId"`
	Trader         string       `json:"trader"`
}
