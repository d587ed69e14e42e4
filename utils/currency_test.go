package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"plain integer", "1500", 150000, false},
		{"decimal comma", "1500,50", 150050, false},
		{"thousands separator", "1.500", 150000, false},
		{"thousands and decimals", "1.240,00", 124000, false},
		{"whitespace", "  1.250,50  ", 125050, false},
		{"currency suffix", "1.240,00 ₺", 124000, false},
		{"tl suffix", "750 TL", 75000, false},
		{"single kurus", "0,01", 1, false},
		{"rounding half up", "10,005", 1001, false},
		{"negative", "-5,50", -550, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"garbage", "abc", 0, true},
		{"only separators", ".,", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMajor(t *testing.T) {
	assert.Equal(t, int64(150000), FromMajor(1500))
	assert.Equal(t, int64(150050), FromMajor(1500.50))
	// Half away from zero
	assert.Equal(t, int64(1001), FromMajor(10.005))
	assert.Equal(t, int64(-1001), FromMajor(-10.005))
	assert.Equal(t, int64(0), FromMajor(0))
}

func TestToMajor(t *testing.T) {
	assert.Equal(t, 1240.0, ToMajor(124000))
	assert.Equal(t, 0.01, ToMajor(1))
}

func TestFormatDisplayRoundTrip(t *testing.T) {
	// Parsing the formatted output reproduces the original kuruş value
	for _, minor := range []int64{0, 1, 99, 100, 12345, 124000, 150050, 99999999} {
		formatted := FormatDisplay(minor)
		parsed, err := ParseAmount(formatted)
		require.NoError(t, err, "formatted value %q must parse", formatted)
		assert.Equal(t, minor, parsed, "round trip of %d through %q", minor, formatted)
	}
}

func TestIsValidMinorAmount(t *testing.T) {
	assert.True(t, IsValidMinorAmount(0))
	assert.True(t, IsValidMinorAmount(124000))
	assert.False(t, IsValidMinorAmount(-1))
}

func TestAmountUnmarshalJSON(t *testing.T) {
	type payload struct {
		Price Amount `json:"price"`
	}

	t.Run("number is TL", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"price": 1500.50}`), &p))
		assert.Equal(t, int64(150050), p.Price.Minor())
	})

	t.Run("string is formatted TL", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"price": "1.240,00"}`), &p))
		assert.Equal(t, int64(124000), p.Price.Minor())
	})

	t.Run("invalid string", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"price": "not money"}`), &p))
	})

	t.Run("marshals as kurus", func(t *testing.T) {
		data, err := json.Marshal(payload{Price: Amount(124000)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"price": 124000}`, string(data))
	})
}
