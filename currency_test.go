package money

import (
	"encoding/json"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurr(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			code string
			want *Currency
		}{
			{"xxx", XXX},
			{"XXX", XXX},
			{"jpy", JPY},
			{"JPY", JPY},
			{"usd", USD},
			{" USD ", USD},
			{"omr", OMR},
			{"OMR", OMR},
		}
		for _, tt := range tests {
			got, err := ParseCurr(tt.code)
			require.NoError(t, err, "ParseCurr(%q)", tt.code)
			assert.Same(t, tt.want, got, "ParseCurr(%q)", tt.code)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			"", "000", "test", "$", "AU$", "UUU", "ZZZ",
		}
		for _, tt := range tests {
			_, err := ParseCurr(tt)
			require.Error(t, err, "ParseCurr(%q)", tt)
			assert.ErrorIs(t, err, ErrUnknownCurrency)

			var uerr *UnknownCurrencyError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, ISONamespace, uerr.Namespace)
		}
	})
}

func TestMustParseCurr(t *testing.T) {
	assert.Panics(t, func() { MustParseCurr("UUU") })
	assert.NotPanics(t, func() { MustParseCurr("CHF") })
}

func TestCurrency_Properties(t *testing.T) {
	tests := []struct {
		curr  *Currency
		code  string
		num   int
		frac  int
		legal bool
	}{
		{USD, "USD", 840, 2, true},
		{EUR, "EUR", 978, 2, true},
		{JPY, "JPY", 392, 0, true},
		{OMR, "OMR", 512, 3, true},
		{XXX, "XXX", 999, -1, false},
		{MustParseCurr("XAU"), "XAU", 959, -1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, ISONamespace, tt.curr.Namespace())
		assert.Equal(t, tt.code, tt.curr.Code())
		assert.Equal(t, tt.num, tt.curr.NumericCode(), "%v.NumericCode()", tt.curr)
		assert.Equal(t, tt.frac, tt.curr.FractionDigits(), "%v.FractionDigits()", tt.curr)
		assert.Equal(t, tt.legal, tt.curr.IsLegalTender(), "%v.IsLegalTender()", tt.curr)
		assert.False(t, tt.curr.IsVirtual())
		_, ok := tt.curr.ValidFrom()
		assert.False(t, ok)
		_, ok = tt.curr.ValidUntil()
		assert.False(t, ok)
	}
}

func TestCurrency_Nil(t *testing.T) {
	var c *Currency
	assert.Equal(t, "", c.Code())
	assert.Equal(t, "", c.Namespace())
	assert.Equal(t, -1, c.NumericCode())
	assert.Equal(t, -1, c.FractionDigits())
	assert.False(t, c.IsLegalTender())
	assert.False(t, c.IsVirtual())
	assert.False(t, c.IsValidAt(time.Now()))
	assert.Equal(t, "<nil>", c.String())
	assert.True(t, c.Equal(nil))
	assert.False(t, c.Equal(USD))
	assert.False(t, USD.Equal(c))
}

func TestCurrency_Equal(t *testing.T) {
	reg := NewRegistry()
	b := reg.NewBuilder("USD")
	require.NoError(t, b.SetFractionDigits(4))
	other, err := b.BuildUncached()
	require.NoError(t, err)

	assert.True(t, USD.Equal(USD))
	assert.True(t, USD.Equal(other), "same namespace and code")
	assert.False(t, USD.Equal(EUR))

	require.NoError(t, b.SetNamespace("test"))
	foreign, err := b.BuildUncached()
	require.NoError(t, err)
	assert.False(t, USD.Equal(foreign), "different namespace")
}

func TestCurrency_Compare(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	reg := NewRegistry()
	b := reg.NewBuilder("USD")
	b.SetValidFrom(from)
	bounded, err := b.BuildUncached()
	require.NoError(t, err)

	tests := []struct {
		c, d *Currency
		want int
	}{
		{USD, USD, 0},
		{EUR, USD, -1},
		{USD, EUR, 1},
		{nil, USD, -1},
		{USD, nil, 1},
		{nil, nil, 0},
		{USD, bounded, -1},
		{bounded, USD, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.Compare(tt.d), "%v.Compare(%v)", tt.c, tt.d)
	}

	got := []*Currency{USD, JPY, EUR, CHF, GBP}
	slices.SortFunc(got, (*Currency).Compare)
	assert.Equal(t, []*Currency{CHF, EUR, GBP, JPY, USD}, got)
}

func TestCurrency_IsValidAt(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewRegistry().NewBuilder("DEM")
	b.SetValidFrom(from)
	b.SetValidUntil(until)
	c, err := b.BuildUncached()
	require.NoError(t, err)

	tests := []struct {
		t    time.Time
		want bool
	}{
		{from.Add(-time.Second), false},
		{from, true},
		{from.AddDate(1, 0, 0), true},
		{until.Add(-time.Second), true},
		{until, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsValidAt(tt.t), "IsValidAt(%v)", tt.t)
	}
	assert.True(t, USD.IsValidAt(time.Time{}))
}

func TestCurrency_String(t *testing.T) {
	b := NewRegistry().NewBuilder("PTS")
	require.NoError(t, b.SetNamespace("loyalty"))
	pts, err := b.BuildUncached()
	require.NoError(t, err)

	assert.Equal(t, "USD", USD.String())
	assert.Equal(t, "loyalty:PTS", pts.String())
}

func TestCurrency_Format(t *testing.T) {
	tests := []struct {
		curr   *Currency
		format string
		want   string
	}{
		{USD, "%c", "USD"},
		{USD, "%s", "USD"},
		{USD, "%v", "USD"},
		{USD, "%q", `"USD"`},
		{USD, "%5v", "  USD"},
		{USD, "%-5v", "USD  "},
		{USD, "%x", "%!x(money.Currency=USD)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fmt.Sprintf(tt.format, tt.curr), "Sprintf(%q, %v)", tt.format, tt.curr)
	}
}

func TestCurrency_JSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		type wallet struct {
			Curr *Currency `json:"curr"`
		}
		data, err := json.Marshal(wallet{Curr: JPY})
		require.NoError(t, err)
		assert.JSONEq(t, `{"curr":"JPY"}`, string(data))

		var got wallet
		require.NoError(t, json.Unmarshal([]byte(`{"curr":"omr"}`), &got))
		assert.True(t, OMR.Equal(got.Curr))
		assert.Equal(t, 3, got.Curr.FractionDigits())

		got = wallet{}
		require.NoError(t, json.Unmarshal([]byte(`{"curr":null}`), &got))
		assert.Nil(t, got.Curr)
	})

	t.Run("namespaced", func(t *testing.T) {
		b := NewCurrencyBuilder("JSN")
		require.NoError(t, b.SetNamespace("currency-json-test"))
		require.NoError(t, b.SetFractionDigits(1))
		want, err := b.Build()
		require.NoError(t, err)

		text, err := want.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "currency-json-test:JSN", string(text))

		var got Currency
		require.NoError(t, got.UnmarshalText(text))
		assert.True(t, want.Equal(&got))
		assert.Equal(t, 1, got.FractionDigits())
	})

	t.Run("escaped", func(t *testing.T) {
		b := NewCurrencyBuilder(`Q"1`)
		require.NoError(t, b.SetNamespace(`json"ns\x`))
		want, err := b.Build()
		require.NoError(t, err)

		type wallet struct {
			Curr *Currency `json:"curr"`
		}
		data, err := json.Marshal(wallet{Curr: want})
		require.NoError(t, err)
		assert.JSONEq(t, `{"curr":"json\"ns\\x:Q\"1"}`, string(data))

		var got wallet
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, want.Equal(got.Curr))
	})

	t.Run("shared", func(t *testing.T) {
		v := struct{ C *Currency }{C: GBP}
		err := json.Unmarshal([]byte(`{"C":"JPY"}`), &v)
		assert.ErrorIs(t, err, ErrIllegalState)
		assert.Same(t, GBP, v.C)
		assert.Equal(t, "GBP", GBP.Code())
		assert.Equal(t, 2, GBP.FractionDigits())
		assert.Same(t, GBP, MustParseCurr("GBP"))

		_, err = MustNewAmount(GBP, 1).Add(MustNewAmount(JPY, 1))
		assert.ErrorIs(t, err, ErrCurrencyMismatch)

		assert.ErrorIs(t, USD.UnmarshalText([]byte("EUR")), ErrIllegalState)
		assert.Equal(t, "USD", USD.Code())
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			`"UUU"`, `"nowhere:ABC"`, `""`,
		}
		for _, tt := range tests {
			var c Currency
			err := json.Unmarshal([]byte(tt), &c)
			assert.ErrorIs(t, err, ErrUnknownCurrency, "Unmarshal(%v)", tt)
		}
	})
}
