package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

type PriceFormatter struct {
	ac accounting.Accounting
}

func NewPriceFormatter(symbol string) *PriceFormatter {
	if symbol == "" {
		symbol = "$"
	}
	return &PriceFormatter{
		ac: accounting.Accounting{Symbol: symbol, Precision: 2},
	}
}

func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	return f.ac.FormatMoneyDecimal(amount)
}
