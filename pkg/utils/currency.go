package utils

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter formata valores monetários para exibição no idioma configurado
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter aceita tags BCP 47 (ex: pt-BR) e códigos ISO 4217 (ex: BRL);
// valores inválidos caem em pt-BR / BRL
func NewCurrencyFormatter(locale string, currencyCode string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}

	unit, err := currency.ParseISO(strings.ToUpper(currencyCode))
	if err != nil {
		unit = currency.BRL
	}

	printer := message.NewPrinter(tag)

	return &CurrencyFormatter{
		printer: printer,
		symbol:  printer.Sprint(currency.NarrowSymbol(unit)),
	}
}

func (f *CurrencyFormatter) Format(value float64) string {
	return f.symbol + " " + f.printer.Sprint(number.Decimal(value, number.Scale(2)))
}
