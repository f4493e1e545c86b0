package alpaca

import (
	"time"

	"github.com/shopspring/decimal"
)

type latestQuoteResponse struct {
	Symbol string       `json:"symbol"`
	Quote  quotePayload `json:"quote"`
}

type quotePayload struct {
	AskPrice  decimal.Decimal `json:"ap"`
	AskSize   int64           `json:"as"`
	BidPrice  decimal.Decimal `json:"bp"`
	BidSize   int64           `json:"bs"`
	Timestamp time.Time       `json:"t"`
}
