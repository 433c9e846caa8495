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

// DNull is the SQL NULL. It has no value and a NULL key.
type DNull struct{}

// NewDNull returns the NULL datum.
func NewDNull() *DNull {
	return &DNull{}
}

// Type implements Datum.
func (d *DNull) Type() Type {
	return TypeNull
}

// ValInt implements Datum.
func (d *DNull) ValInt() (int64, bool) {
	return 0, false
}

// ValReal implements Datum.
func (d *DNull) ValReal() float64 {
	return 0
}

// ValDecimal implements Datum.
func (d *DNull) ValDecimal() decimal.Decimal {
	return decimal.Zero
}

// ValStr implements Datum.
func (d *DNull) ValStr() string {
	return "NULL"
}

// Key implements Datum, all NULLs share one key.
func (d *DNull) Key(caseSensitive bool) string {
	return "null"
}
