/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package datum

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// DFloat is a double.
type DFloat float64

// NewDFloat creates the double.
func NewDFloat(v float64) *DFloat {
	r := DFloat(v)
	return &r
}

// Type implements Datum.
func (d *DFloat) Type() Type {
	return TypeFloat
}

// ValInt rounds half away from zero and saturates at the int64 bounds.
func (d *DFloat) ValInt() (int64, bool) {
	f := math.Round(float64(*d))
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64, false
	case f <= math.MinInt64:
		return math.MinInt64, false
	}
	return int64(f), false
}

// ValReal implements Datum.
func (d *DFloat) ValReal() float64 {
	return float64(*d)
}

// ValDecimal implements Datum.
func (d *DFloat) ValDecimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(*d))
}

// ValStr implements Datum.
func (d *DFloat) ValStr() string {
	return strconv.FormatFloat(float64(*d), 'g', -1, 64)
}

// Key implements Datum, NaN and the infinities have no decimal form.
func (d *DFloat) Key(caseSensitive bool) string {
	f := float64(*d)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return numericKeyPrefix + d.ValStr()
	}
	return numericKeyPrefix + d.ValDecimal().String()
}
