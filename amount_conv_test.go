package money

import (
	"math/big"
	"testing"

	fixed "github.com/govalues/decimal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := MustParseAmount("USD", "-1.95")

		i, err := As[int](a)
		require.NoError(t, err)
		assert.Equal(t, -1, i)

		i8, err := As[int8](MustParseAmount("USD", "127.99"))
		require.NoError(t, err)
		assert.Equal(t, int8(127), i8)

		i64, err := As[int64](MustParseAmount("JPY", "-9223372036854775808"))
		require.NoError(t, err)
		assert.Equal(t, int64(-9223372036854775808), i64)

		u16, err := As[uint16](MustParseAmount("USD", "65535.5"))
		require.NoError(t, err)
		assert.Equal(t, uint16(65535), u16)

		u64, err := As[uint64](MustParseAmount("USD", "18446744073709551615"))
		require.NoError(t, err)
		assert.Equal(t, uint64(18446744073709551615), u64)

		f, err := As[float64](a)
		require.NoError(t, err)
		assert.InDelta(t, -1.95, f, 1e-12)

		s, err := As[string](MustParseAmount("USD", "1.50"))
		require.NoError(t, err)
		assert.Equal(t, "1.50", s)

		bi, err := As[*big.Int](a)
		require.NoError(t, err)
		assert.Equal(t, "-1", bi.String())

		r, err := As[*big.Rat](a)
		require.NoError(t, err)
		assert.Equal(t, "-39/20", r.String())

		d, err := As[decimal.Decimal](a)
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString("-1.95")))

		fx, err := As[fixed.Decimal](a)
		require.NoError(t, err)
		assert.Equal(t, "-1.95", fx.String())
	})

	t.Run("error", func(t *testing.T) {
		_, err := As[int8](MustParseAmount("USD", "128"))
		assert.ErrorIs(t, err, ErrArithmetic)
		_, err = As[int32](MustParseAmount("USD", "-2147483649"))
		assert.ErrorIs(t, err, ErrArithmetic)
		_, err = As[uint](MustParseAmount("USD", "-1"))
		assert.ErrorIs(t, err, ErrArithmetic)
		_, err = As[int64](MustParseAmount("USD", "9223372036854775808"))
		assert.ErrorIs(t, err, ErrArithmetic)
		_, err = As[fixed.Decimal](MustParseAmount("USD", "100000000000000000000"))
		assert.Error(t, err)
	})
}

func TestAmount_IntExact(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := MustParseAmount("USD", "11")
		i32, err := a.Int32Exact()
		require.NoError(t, err)
		assert.Equal(t, int32(11), i32)

		i64, err := MustParseAmount("USD", "-11.000").Int64Exact()
		require.NoError(t, err)
		assert.Equal(t, int64(-11), i64)

		i16, err := MustParseAmount("USD", "32767").Int16Exact()
		require.NoError(t, err)
		assert.Equal(t, int16(32767), i16)

		bi, err := MustParseAmount("USD", "1E+20").BigIntExact()
		require.NoError(t, err)
		assert.Equal(t, "100000000000000000000", bi.String())
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]func() error{
			"int32 fraction": func() error { _, err := MustParseAmount("USD", "0.65").Int32Exact(); return err },
			"int64 fraction": func() error { _, err := MustParseAmount("USD", "1.01").Int64Exact(); return err },
			"int16 overflow": func() error { _, err := MustParseAmount("USD", "32768").Int16Exact(); return err },
			"int32 overflow": func() error { _, err := MustParseAmount("USD", "2147483648").Int32Exact(); return err },
			"int64 overflow": func() error {
				_, err := MustParseAmount("USD", "9223372036854775808").Int64Exact()
				return err
			},
			"big.Int fraction": func() error { _, err := MustParseAmount("USD", "-0.5").BigIntExact(); return err },
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				assert.ErrorIs(t, tt(), ErrArithmetic)
			})
		}
	})
}

func TestAmount_Float64(t *testing.T) {
	f, exact := MustParseAmount("USD", "0.5").Float64()
	assert.Equal(t, 0.5, f)
	assert.True(t, exact)

	f, exact = MustParseAmount("USD", "0.1").Float64()
	assert.InDelta(t, 0.1, f, 1e-17)
	assert.False(t, exact)
}

func TestAmount_Fixed(t *testing.T) {
	got, err := MustParseAmount("EUR", "12.345").Fixed()
	require.NoError(t, err)
	assert.Equal(t, fixed.MustParse("12.345"), got)

	back, err := NewAmount(EUR, got)
	require.NoError(t, err)
	assert.Equal(t, "EUR 12.345", back.String())
}

func TestAmount_MajorMinorPart(t *testing.T) {
	tests := []struct {
		curr, a      string
		major, minor string
	}{
		{"CHF", "135135.151757", "135135", "0.151757"},
		{"USD", "-1.345", "-1", "-0.345"},
		{"USD", "1.99", "1", "0.99"},
		{"USD", "5", "5", "0"},
		{"USD", "-0.50", "0", "-0.50"},
		{"JPY", "1E+3", "1000", "0"},
	}
	for _, tt := range tests {
		a := MustParseAmount(tt.curr, tt.a)
		major, minor := a.MajorPart(), a.MinorPart()
		assert.Equal(t, tt.curr+" "+tt.major, major.String(), "%v.MajorPart()", a)
		assert.Equal(t, tt.curr+" "+tt.minor, minor.String(), "%v.MinorPart()", a)
		assert.Same(t, a.Curr(), major.Curr())
		assert.Same(t, a.Curr(), minor.Curr())

		sum, err := major.Add(minor)
		require.NoError(t, err)
		eq, err := sum.EqualTo(a)
		require.NoError(t, err)
		assert.True(t, eq, "%v + %v = %v, want %v", major, minor, sum, a)
	}
}

func TestAmount_MajorUnits(t *testing.T) {
	units, ok := MustParseAmount("USD", "-1.99").MajorUnits()
	assert.True(t, ok)
	assert.Equal(t, int64(-1), units)

	_, ok = MustParseAmount("USD", "1E+19").MajorUnits()
	assert.False(t, ok)
}

func TestAmount_MinorUnits(t *testing.T) {
	tests := []struct {
		curr, a string
		want    int64
		ok      bool
	}{
		{"USD", "1.234", 123, true},
		{"USD", "1.235", 124, true},
		{"USD", "1.5", 150, true},
		{"USD", "-0.01", -1, true},
		{"JPY", "1.5", 2, true},
		{"OMR", "1", 1000, true},
		{"XAU", "2.4", 2, true},
		{"USD", "92233720368547758.08", 0, false},
	}
	for _, tt := range tests {
		a := MustParseAmount(tt.curr, tt.a)
		got, ok := a.MinorUnits()
		assert.Equal(t, tt.ok, ok, "%v.MinorUnits()", a)
		assert.Equal(t, tt.want, got, "%v.MinorUnits()", a)

		if ok {
			back, err := NewAmountFromMinorUnits(a.Curr(), got)
			require.NoError(t, err)
			units, _ := back.MinorUnits()
			assert.Equal(t, got, units)
		}
	}
}
