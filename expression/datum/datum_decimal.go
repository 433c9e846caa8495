/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package datum

import (
	"github.com/shopspring/decimal"
)

// DDecimal is an exact decimal, SUM and AVG results are carried in it.
type DDecimal struct {
	value decimal.Decimal
}

// NewDDecimal creates the decimal.
func NewDDecimal(value decimal.Decimal) *DDecimal {
	return &DDecimal{value: value}
}

// Type implements Datum.
func (d *DDecimal) Type() Type {
	return TypeDecimal
}

// ValInt rounds half away from zero.
func (d *DDecimal) ValInt() (int64, bool) {
	return d.value.Round(0).IntPart(), false
}

// ValReal implements Datum.
func (d *DDecimal) ValReal() float64 {
	v, _ := d.value.Float64()
	return v
}

// ValDecimal implements Datum.
func (d *DDecimal) ValDecimal() decimal.Decimal {
	return d.value
}

// ValStr implements Datum.
func (d *DDecimal) ValStr() string {
	return d.value.String()
}

// Key implements Datum.
func (d *DDecimal) Key(caseSensitive bool) string {
	return numericKeyPrefix + d.value.String()
}
