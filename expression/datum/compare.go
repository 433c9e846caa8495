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
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrIncomparable is the cause of every cross-family comparison error.
	ErrIncomparable = errors.New("datum.values.are.not.comparable")
)

// NullsafeCompare returns 0 if v1==v2, -1 if v1<v2, and 1 if v1>v2.
// NULL is the lowest value.
func NullsafeCompare(x, y Datum, cmpFunc CompareFunc) int64 {
	if CheckNull(x) {
		if CheckNull(y) {
			return 0
		}
		return -1
	}
	if CheckNull(y) {
		return 1
	}
	return cmpFunc(x, y)
}

// CompareFunc defines the compare function prototype.
type CompareFunc = func(x, y Datum) int64

// Comparable returns true if x and y belong to the same family.
// NULL is comparable with everything.
func Comparable(x, y Datum) bool {
	if CheckNull(x) || CheckNull(y) {
		return true
	}
	_, err := GetCompareFunc(x, y, true)
	return err == nil
}

// GetCompareFunc picks the compare function for the two families.
func GetCompareFunc(x, y Datum, caseSensitive bool) (CompareFunc, error) {
	switch {
	case IsNumeric(x) && IsNumeric(y):
		switch {
		case x.Type() == TypeInt && y.Type() == TypeInt:
			return CompareInt, nil
		case x.Type() == TypeFloat || y.Type() == TypeFloat:
			return CompareFloat64, nil
		}
		return CompareDecimal, nil
	case x.Type() == TypeString && y.Type() == TypeString:
		if caseSensitive {
			return CompareString, nil
		}
		return CompareStringCI, nil
	case x.Type() == TypeTime && y.Type() == TypeTime:
		return CompareDatetime, nil
	}
	return nil, errors.Wrapf(ErrIncomparable, "datum.can.not.compare[%v].with[%v]", x.Type(), y.Type())
}

// Compare returns 0 if x==y, -1 if x<y, and 1 if x>y.
// NULL is the lowest value, values of different families are an error.
func Compare(x, y Datum, caseSensitive bool) (int, error) {
	if CheckNull(x) || CheckNull(y) {
		return int(NullsafeCompare(x, y, nil)), nil
	}
	cmpFunc, err := GetCompareFunc(x, y, caseSensitive)
	if err != nil {
		return 0, err
	}
	return int(cmpFunc(x, y)), nil
}

// CompareInt returns an integer comparing the int64 x to y.
func CompareInt(x, y Datum) int64 {
	a, flag1 := x.ValInt()
	b, flag2 := y.ValInt()

	if !flag1 && !flag2 {
		if a == b {
			return 0
		}
		if a < b {
			return -1
		}
		return 1
	}

	if !flag2 {
		if b < 0 || uint64(a) > math.MaxInt64 {
			return 1
		}
	}

	if !flag1 {
		if a < 0 || uint64(b) > math.MaxInt64 {
			return -1
		}
	}

	if uint64(a) == uint64(b) {
		return 0
	}
	if uint64(a) < uint64(b) {
		return -1
	}
	return 1
}

// CompareFloat64 returns an integer comparing the float64 x to y.
func CompareFloat64(x, y Datum) int64 {
	a, b := x.ValReal(), y.ValReal()
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// CompareDecimal returns an integer comparing the decimal x to y.
func CompareDecimal(x, y Datum) int64 {
	return int64(x.ValDecimal().Cmp(y.ValDecimal()))
}

// CompareString returns an integer comparing the string x to y.
func CompareString(x, y Datum) int64 {
	return int64(strings.Compare(x.ValStr(), y.ValStr()))
}

// CompareStringCI compares the strings ignoring case.
func CompareStringCI(x, y Datum) int64 {
	return int64(strings.Compare(strings.ToLower(x.ValStr()), strings.ToLower(y.ValStr())))
}

// CompareDatetime returns an integer comparing the DTime x to y.
func CompareDatetime(x, y Datum) int64 {
	t1, t2 := x.(*DTime).Time(), y.(*DTime).Time()
	switch {
	case t1.Before(t2):
		return -1
	case t1.After(t2):
		return 1
	}
	return 0
}
