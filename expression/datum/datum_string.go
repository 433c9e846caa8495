/*
 * Radon
 *
 * Copyright 2020 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package datum

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DString ...
type DString struct {
	value string
}

// NewDString new DString.
func NewDString(v string) *DString {
	return &DString{value: v}
}

// Type return datum type.
func (d *DString) Type() Type {
	return TypeString
}

// toNumeric cast the DString to a DFloat, using the longest numeric prefix.
func (d *DString) toNumeric() Datum {
	str := strings.TrimSpace(d.value)
	end := 0
	for end < len(str) {
		c := str[end]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || ((c == '-' || c == '+') && (end == 0 || str[end-1] == 'e' || str[end-1] == 'E')) {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if fval, err := strconv.ParseFloat(str[:end], 64); err == nil || math.IsInf(fval, 0) {
			return NewDFloat(fval)
		}
		end--
	}
	return NewDFloat(0)
}

// ValInt used to return int64. true: unsigned, false: signed.
func (d *DString) ValInt() (int64, bool) {
	return d.toNumeric().ValInt()
}

// ValReal used to return float64.
func (d *DString) ValReal() float64 {
	return d.toNumeric().ValReal()
}

// ValDecimal used to return decimal.
func (d *DString) ValDecimal() decimal.Decimal {
	return d.toNumeric().ValDecimal()
}

// ValStr used to return string.
func (d *DString) ValStr() string {
	return d.value
}

// Key implements Datum, the key folds the case unless caseSensitive.
func (d *DString) Key(caseSensitive bool) string {
	if caseSensitive {
		return stringKeyPrefix + d.value
	}
	return stringKeyPrefix + strings.ToLower(d.value)
}
