package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLeadTime(t *testing.T) {
	cases := []struct {
		raw  string
		want *float64
	}{
		{"2", fptr(2)},
		{"1,5", fptr(1.5)},
		{" 0.25 ", fptr(0.25)},
		{"", nil},
		{"   ", nil},
		{"n/a", nil},
		{"0", nil},
		{"-3", nil},
		{"NaN", nil},
		{"Inf", nil},
	}

	for _, tc := range cases {
		got := ParseLeadTime(tc.raw)
		if tc.want == nil {
			require.Nil(t, got, "raw=%q", tc.raw)
			continue
		}
		require.NotNil(t, got, "raw=%q", tc.raw)
		require.Equal(t, *tc.want, *got, "raw=%q", tc.raw)
	}
}

func fptr(v float64) *float64 { return &v }
