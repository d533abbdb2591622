package incomeinput

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "1000000", want: "1000000"},
		{name: "western grouping", input: "1,000,000", want: "1000000"},
		{name: "lakh grouping with rupee", input: "₹10,00,000", want: "1000000"},
		{name: "Rs prefix", input: "Rs. 5,00,000.50", want: "500000.5"},
		{name: "INR prefix", input: "INR 75000", want: "75000"},
		{name: "surrounding spaces", input: "  500000  ", want: "500000"},
		{name: "underscores", input: "1_200_000", want: "1200000"},
		{name: "nbsp grouping", input: "12\u00a0000", want: "12000"},
		{name: "trailing point", input: "1000.", want: "1000"},
		{name: "leading point", input: ".5", want: "0.5"},
		{name: "zero", input: "0", want: "0"},
		{name: "minus zero", input: "-0", want: "0"},
		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "blank", input: "   ", wantErr: ErrEmpty},
		{name: "only symbol", input: "₹", wantErr: ErrEmpty},
		{name: "letters", input: "abc", wantErr: ErrNotNumeric},
		{name: "trailing junk", input: "12abc", wantErr: ErrNotNumeric},
		{name: "two points", input: "1.2.3", wantErr: ErrNotNumeric},
		{name: "exponent", input: "1e6", wantErr: ErrNotNumeric},
		{name: "NaN", input: "NaN", wantErr: ErrNotNumeric},
		{name: "Inf", input: "Inf", wantErr: ErrNotNumeric},
		{name: "negative", input: "-1000", wantErr: ErrNegative},
		{name: "negative rupee", input: "-₹1,000", wantErr: ErrNegative},
		{name: "rupee negative", input: "₹-1,000", wantErr: ErrNegative},
		{name: "too long", input: "1234567890123456", wantErr: ErrTooLong},
		{name: "too long after zeros", input: "0001234567890123456", wantErr: ErrTooLong},
		{name: "too many paise digits", input: "1000.123456789", wantErr: ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	s, err := Normalize("-₹ 1,23,456.78")
	require.NoError(t, err)
	assert.Equal(t, "-123456.78", s)
}

func TestCheck(t *testing.T) {
	_, err := Check(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrNegative)

	v, err := Check(decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(5)))
}

func TestCheckDigitLimits(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "999999999999999", want: "999999999999999"},
		{in: "1234567890123456", wantErr: ErrTooLong},
		{in: "1e15", wantErr: ErrTooLong},
		{in: "1e14", want: "100000000000000"},
		{in: "1e30", wantErr: ErrTooLong},
		{in: "1e200000", wantErr: ErrTooLong},
		{in: "1e-200000", wantErr: ErrTooLong},
		{in: "0e200000", want: "0"},
		{in: "500000.125", want: "500000.125"},
		{in: "1000.0000000000", want: "1000"},
		{in: "1000.000000001", wantErr: ErrTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Check(decimal.RequireFromString(tt.in))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
