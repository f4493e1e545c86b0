package api

// IndexETFs is the fixed catalog of index-tracking tickers the UI offers for
// charting and alerting.
var IndexETFs = []string{
	"SPY",
	"QQQ",
	"DIA",
	"IWM",
	"IVV",
	"VOO",
	"VTI",
	"IVW",
	"XLK",
	"XLF",
	"XLV",
	"XLE",
	"XLY",
	"XLP",
	"XLU",
	"XLI",
	"XLB",
	"XLC",
}
