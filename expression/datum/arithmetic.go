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

	"github.com/pkg/errors"
)

// DivPrecision is the scale of a decimal division result.
const DivPrecision = 4

// Add operator. Integers overflow into decimal.
func Add(v1, v2 Datum) (Datum, error) {
	if CheckNull(v1, v2) {
		return NewDNull(), nil
	}
	if !IsNumeric(v1) || !IsNumeric(v2) {
		return nil, errors.Wrapf(ErrIncomparable, "datum.add.non.numeric[%v].and[%v]", v1.Type(), v2.Type())
	}
	switch {
	case v1.Type() == TypeInt && v2.Type() == TypeInt:
		val1, flag1 := v1.ValInt()
		val2, flag2 := v2.ValInt()
		switch {
		case !flag1 && !flag2:
			res := val1 + val2
			if (val1 > 0 && val2 > 0 && res < 0) || (val1 < 0 && val2 < 0 && res >= 0) {
				break
			}
			return NewDInt(res, false), nil
		case flag1 && flag2:
			if uint64(val1) <= math.MaxUint64-uint64(val2) {
				return NewDInt(int64(uint64(val1)+uint64(val2)), true), nil
			}
		}
		return NewDDecimal(v1.ValDecimal().Add(v2.ValDecimal())), nil
	case v1.Type() == TypeFloat || v2.Type() == TypeFloat:
		val1 := v1.ValReal()
		val2 := v2.ValReal()
		res := val1 + val2
		if math.IsInf(res, 0) {
			return nil, errors.Errorf("DOUBLE.value.is.out.of.range.in: '%v' + '%v'", val1, val2)
		}
		return NewDFloat(res), nil
	}
	return NewDDecimal(v1.ValDecimal().Add(v2.ValDecimal())), nil
}

// Div operator. A zero divisor yields NULL.
func Div(v1, v2 Datum) (Datum, error) {
	if CheckNull(v1, v2) {
		return NewDNull(), nil
	}
	if !IsNumeric(v1) || !IsNumeric(v2) {
		return nil, errors.Wrapf(ErrIncomparable, "datum.div.non.numeric[%v].and[%v]", v1.Type(), v2.Type())
	}
	if v1.Type() == TypeFloat || v2.Type() == TypeFloat {
		val2 := v2.ValReal()
		if val2 == 0 {
			return NewDNull(), nil
		}
		return NewDFloat(v1.ValReal() / val2), nil
	}
	val2 := v2.ValDecimal()
	if val2.IsZero() {
		return NewDNull(), nil
	}
	return NewDDecimal(v1.ValDecimal().DivRound(val2, DivPrecision)), nil
}
