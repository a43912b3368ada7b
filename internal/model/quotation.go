package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// nanoDigits is the number of fractional decimal digits in a Quotation.
const nanoDigits = 9

// Quotation is a fixed-point number: Units plus Nano billionths of a unit.
// The sign of Nano always matches the sign of Units (or Units is zero).
type Quotation struct {
	Units int64 `json:"units"`
	Nano  int32 `json:"nano"`
}

// NewQuotation builds a Quotation from whole units and nano billionths.
func NewQuotation(units int64, nano int32) Quotation {
	return Quotation{Units: units, Nano: nano}
}

// QuotationFromDecimal converts an exact decimal to fixed-point form.
// Digits beyond the ninth fractional place are truncated toward zero.
func QuotationFromDecimal(d decimal.Decimal) Quotation {
	units := d.IntPart()
	nano := d.Sub(decimal.New(units, 0)).Shift(nanoDigits).IntPart()
	return Quotation{Units: units, Nano: int32(nano)}
}

// QuotationFromInt builds a Quotation with no fractional part.
func QuotationFromInt(units int64) Quotation {
	return Quotation{Units: units}
}

// Decimal returns the exact decimal value of q.
func (q Quotation) Decimal() decimal.Decimal {
	return decimal.New(q.Units, 0).Add(decimal.New(int64(q.Nano), -nanoDigits))
}

// Add returns q + other.
func (q Quotation) Add(other Quotation) Quotation {
	return QuotationFromDecimal(q.Decimal().Add(other.Decimal()))
}

// Sub returns q - other.
func (q Quotation) Sub(other Quotation) Quotation {
	return QuotationFromDecimal(q.Decimal().Sub(other.Decimal()))
}

// Neg returns -q.
func (q Quotation) Neg() Quotation {
	return Quotation{Units: -q.Units, Nano: -q.Nano}
}

// MulInt returns q multiplied by a whole number.
func (q Quotation) MulInt(n int64) Quotation {
	return QuotationFromDecimal(q.Decimal().Mul(decimal.New(n, 0)))
}

// Cmp compares q with other: -1 if q < other, 0 if equal, +1 if q > other.
func (q Quotation) Cmp(other Quotation) int {
	return q.Decimal().Cmp(other.Decimal())
}

// IsZero reports whether q represents exactly zero.
func (q Quotation) IsZero() bool {
	return q.Units == 0 && q.Nano == 0
}

// String renders the value in plain decimal notation, e.g. "122.86".
func (q Quotation) String() string {
	return q.Decimal().String()
}

// MoneyValue is a Quotation tagged with an ISO currency code.
type MoneyValue struct {
	Units    int64  `json:"units"`
	Nano     int32  `json:"nano"`
	Currency string `json:"currency"`
}

// Money builds a MoneyValue from a Quotation and currency code.
func Money(q Quotation, currency string) MoneyValue {
	return MoneyValue{Units: q.Units, Nano: q.Nano, Currency: currency}
}

// Quotation strips the currency tag.
func (m MoneyValue) Quotation() Quotation {
	return Quotation{Units: m.Units, Nano: m.Nano}
}

// String renders the amount with its currency, e.g. "-1228.6 rub".
func (m MoneyValue) String() string {
	return fmt.Sprintf("%s %s", m.Quotation(), m.Currency)
}
