/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package datum

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// DInt is an integer, unsigned values above MaxInt64 keep their bits in
// value.
type DInt struct {
	value    int64
	unsigned bool
}

// NewDInt creates the integer, unsigned reads value as uint64.
func NewDInt(v int64, unsigned bool) *DInt {
	return &DInt{value: v, unsigned: unsigned}
}

// Type implements Datum.
func (d *DInt) Type() Type {
	return TypeInt
}

// ValInt returns the raw value and whether it is unsigned.
func (d *DInt) ValInt() (int64, bool) {
	return d.value, d.unsigned
}

// ValReal implements Datum.
func (d *DInt) ValReal() float64 {
	if d.unsigned {
		return float64(uint64(d.value))
	}
	return float64(d.value)
}

// ValDecimal implements Datum.
func (d *DInt) ValDecimal() decimal.Decimal {
	if d.unsigned && d.value < 0 {
		dec, _ := decimal.NewFromString(d.ValStr())
		return dec
	}
	return decimal.NewFromInt(d.value)
}

// ValStr implements Datum.
func (d *DInt) ValStr() string {
	if d.unsigned {
		return strconv.FormatUint(uint64(d.value), 10)
	}
	return strconv.FormatInt(d.value, 10)
}

// Key implements Datum. Integers share the numeric key space with floats
// and decimals so 1, 1.0 and 1.00 fall in one group.
func (d *DInt) Key(caseSensitive bool) string {
	return numericKeyPrefix + d.ValStr()
}
