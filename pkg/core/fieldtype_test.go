package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFieldTypeNames(t *testing.T) {
	for ft := InvalidType; ft <= Tuple; ft++ {
		assert.Equal(t, ft, ParseFieldType(ft.String()), ft.String())
	}
	assert.Equal(t, "InvalidType", FieldType(-1).String())
	assert.Equal(t, "InvalidType", FieldType(1000).String())
	assert.Equal(t, InvalidType, ParseFieldType("Varchar"))
	assert.False(t, InvalidType.IsValid())
	assert.True(t, Null.IsValid())
}

func TestTypeGroups(t *testing.T) {
	tests := []struct {
		ft    FieldType
		group TypeGroup
	}{
		{Byte, IntegerGroup},
		{BigInteger, IntegerGroup},
		{Float, FloatGroup},
		{Double, FloatGroup},
		{Text, TextGroup},
		{LongText, TextGroup},
		{Boolean, BooleanGroup},
		{Time, DateTimeGroup},
		{BLOB, BLOBGroup},
		{Null, InvalidGroup},
		{Tuple, InvalidGroup},
	}
	for _, tt := range tests {
		t.Run(tt.ft.String(), func(t *testing.T) {
			assert.Equal(t, tt.group, tt.ft.Group())
		})
	}
	assert.True(t, ShortInteger.IsNumeric())
	assert.True(t, Double.IsNumeric())
	assert.False(t, Text.IsNumeric())
	assert.True(t, DateTime.IsDateTime())
}

func TestMaxInteger(t *testing.T) {
	assert.Equal(t, Integer, MaxInteger(Byte, Byte))
	assert.Equal(t, Integer, MaxInteger(ShortInteger, Byte))
	assert.Equal(t, Integer, MaxInteger(Integer, Integer))
	assert.Equal(t, BigInteger, MaxInteger(Integer, BigInteger))
}

func TestDefaultMaxLength(t *testing.T) {
	defer SetDefaultMaxLength(DefaultMaxLength())
	SetDefaultMaxLength(200)
	assert.Equal(t, 200, DefaultMaxLength())
	SetDefaultMaxLength(-5)
	assert.Equal(t, 0, DefaultMaxLength())
}

func TestValues(t *testing.T) {
	assert.True(t, NullValue().IsNull())
	assert.Equal(t, "NULL", Value{}.String())

	i, ok := IntValue(-3).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(-3), i)
	_, ok = IntValue(3).Uint()
	assert.False(t, ok)

	b, ok := BoolValue(true).Bool()
	assert.True(t, ok)
	assert.True(t, b)
	assert.Equal(t, "true", BoolValue(true).String())

	assert.Equal(t, "2024-02-29", DateValue(2024, time.February, 29).String())
	assert.Equal(t, "23:59:01", TimeValue(23, 59, 1, 0).String())
	assert.Equal(t, KindDateTime, DateTimeValue(time.Now()).Kind())
	assert.Equal(t, "00ff", BytesValue([]byte{0, 255}).String())
}

func TestBytesValueCopies(t *testing.T) {
	raw := []byte{1, 2}
	v := BytesValue(raw)
	raw[0] = 9
	got, _ := v.Bytes()
	assert.Equal(t, []byte{1, 2}, got)

	c := v.Clone()
	got[1] = 7
	cb, _ := c.Bytes()
	assert.Equal(t, []byte{1, 2}, cb)
}

func TestFormatReal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{-2.5, "-2.5"},
		{1e21, "1e+21"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatReal(tt.in))
	}
}
