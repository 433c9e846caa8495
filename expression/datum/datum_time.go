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
	"time"

	"github.com/shopspring/decimal"
)

const timeFormat = "2006-01-02 15:04:05.999999"

// DTime ...
type DTime struct {
	value time.Time
}

// NewDTime new DTime.
func NewDTime(t time.Time) *DTime {
	return &DTime{value: t}
}

// Type return datum type.
func (d *DTime) Type() Type {
	return TypeTime
}

// Time returns the underlying time.
func (d *DTime) Time() time.Time {
	return d.value
}

// ValInt returns the time as YYYYMMDDhhmmss.
func (d *DTime) ValInt() (int64, bool) {
	t := d.value
	v := int64(t.Year())*10000000000 + int64(t.Month())*100000000 + int64(t.Day())*1000000 +
		int64(t.Hour())*10000 + int64(t.Minute())*100 + int64(t.Second())
	return v, false
}

// ValReal used to return float64.
func (d *DTime) ValReal() float64 {
	v, _ := d.ValInt()
	return float64(v) + float64(d.value.Nanosecond()/1000)/1e6
}

// ValDecimal used to return decimal.
func (d *DTime) ValDecimal() decimal.Decimal {
	v, _ := d.ValInt()
	return decimal.New(v, 0).Add(decimal.New(int64(d.value.Nanosecond()/1000), -6))
}

// ValStr used to return string.
func (d *DTime) ValStr() string {
	return d.value.Format(timeFormat)
}

// Key implements Datum.
func (d *DTime) Key(caseSensitive bool) string {
	return timeKeyPrefix + strconv.FormatInt(d.value.UnixNano(), 10)
}
