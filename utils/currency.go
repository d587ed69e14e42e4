// utils/currency.go
package utils

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidAmount is returned when a currency input cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

var displayPrinter = message.NewPrinter(language.Turkish)

// ParseAmount converts a human-entered TL string ("1.250,50") into kuruş.
// Thousands separators (.) are stripped, the decimal comma becomes a dot,
// and the result is rounded half away from zero to the nearest kuruş.
func ParseAmount(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	// Tolerate the currency marker so formatted output parses back
	cleaned = strings.ReplaceAll(cleaned, "₺", "")
	cleaned = strings.TrimSuffix(cleaned, "TL")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	// decimal.Round rounds half away from zero
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FromMajor converts a numeric TL value into kuruş, rounding half away
// from zero.
func FromMajor(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ToMajor converts kuruş back to TL. Exact, since the input is integral.
func ToMajor(minor int64) float64 {
	return float64(minor) / 100
}

// FormatDisplay renders kuruş as a Turkish-formatted TL string, e.g.
// 124000 -> "1.240,00 ₺".
func FormatDisplay(minor int64) string {
	return displayPrinter.Sprintf("%.2f ₺", ToMajor(minor))
}

// IsValidMinorAmount reports whether v is usable as a stored amount.
func IsValidMinorAmount(v int64) bool {
	return v >= 0
}

// Amount is an int64 kuruş value that accepts both JSON numbers (TL) and
// formatted strings ("1.250,50") on input. All decimal parsing funnels
// through here or ParseAmount; everything past the API boundary is kuruş.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		minor, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = Amount(minor)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidAmount
	}
	*a = Amount(FromMajor(n))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(a))
}

// Minor returns the raw kuruş value.
func (a Amount) Minor() int64 {
	return int64(a)
}
