/*
 * Radon
 *
 * Copyright 2020 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package datum

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Type .
type Type int

const (
	// TypeNull null.
	TypeNull Type = iota
	// TypeInt DInt.
	TypeInt
	// TypeFloat DFloat.
	TypeFloat
	// TypeDecimal DDecimal.
	TypeDecimal
	// TypeString DString.
	TypeString
	// TypeTime DTime.
	TypeTime
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "NULL"
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeDecimal:
		return "DECIMAL"
	case TypeString:
		return "STRING"
	case TypeTime:
		return "TIME"
	}
	return "UNKNOWN"
}

// Datum interface.
type Datum interface {
	Type() Type
	ValInt() (int64, bool)
	ValReal() float64
	ValDecimal() decimal.Decimal
	ValStr() string
	// Key is the canonical hashing key, datums comparing equal share it.
	Key(caseSensitive bool) string
}

// CheckNull check for null in args.
func CheckNull(args ...Datum) bool {
	for _, arg := range args {
		if arg == nil || arg.Type() == TypeNull {
			return true
		}
	}
	return false
}

// IsNumeric returns true if the datum belongs to the numeric family.
func IsNumeric(d Datum) bool {
	switch d.Type() {
	case TypeInt, TypeFloat, TypeDecimal:
		return true
	}
	return false
}

// ValueToDatum cast a driver value to Datum.
func ValueToDatum(v interface{}) (Datum, error) {
	switch v := v.(type) {
	case nil:
		return NewDNull(), nil
	case Datum:
		return v, nil
	case int:
		return NewDInt(int64(v), false), nil
	case int8:
		return NewDInt(int64(v), false), nil
	case int16:
		return NewDInt(int64(v), false), nil
	case int32:
		return NewDInt(int64(v), false), nil
	case int64:
		return NewDInt(v, false), nil
	case uint:
		return NewDInt(int64(v), true), nil
	case uint8:
		return NewDInt(int64(v), true), nil
	case uint16:
		return NewDInt(int64(v), true), nil
	case uint32:
		return NewDInt(int64(v), true), nil
	case uint64:
		return NewDInt(int64(v), true), nil
	case float32:
		return NewDFloat(float64(v)), nil
	case float64:
		return NewDFloat(v), nil
	case bool:
		if v {
			return NewDInt(1, false), nil
		}
		return NewDInt(0, false), nil
	case decimal.Decimal:
		return NewDDecimal(v), nil
	case string:
		return NewDString(v), nil
	case []byte:
		return NewDString(string(v)), nil
	case time.Time:
		return NewDTime(v), nil
	}
	return nil, errors.Wrapf(ErrIncomparable, "datum.unsupported.value.type[%T]", v)
}

// ParseValue builds a Datum from the raw text of a column, using the
// database type name reported by the driver.
func ParseValue(typeName string, raw []byte) (Datum, error) {
	if raw == nil {
		return NewDNull(), nil
	}
	str := string(raw)
	typ := strings.ToUpper(typeName)
	unsigned := strings.HasPrefix(typ, "UNSIGNED ")
	typ = strings.TrimPrefix(typ, "UNSIGNED ")
	switch typ {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR":
		if unsigned {
			uval, err := strconv.ParseUint(str, 10, 64)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			return NewDInt(int64(uval), true), nil
		}
		ival, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return NewDInt(ival, false), nil
	case "FLOAT", "DOUBLE", "REAL":
		fval, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return NewDFloat(fval), nil
	case "DECIMAL", "NUMERIC":
		dval, err := decimal.NewFromString(str)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return NewDDecimal(dval), nil
	case "DATE", "DATETIME", "TIMESTAMP":
		return ParseTime(str)
	}
	return NewDString(str), nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// ParseTime parses the mysql text representation of DATE/DATETIME/TIMESTAMP.
func ParseTime(str string) (Datum, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, str, time.Local); err == nil {
			return NewDTime(t), nil
		}
	}
	return nil, errors.Errorf("datum.invalid.time.value[%s]", str)
}

const (
	numericKeyPrefix = "n:"
	stringKeyPrefix  = "s:"
	timeKeyPrefix    = "t:"
)

// Key returns the canonical hashing key of the datum, nil reads as NULL.
func Key(d Datum, caseSensitive bool) string {
	if d == nil {
		return NewDNull().Key(caseSensitive)
	}
	return d.Key(caseSensitive)
}
