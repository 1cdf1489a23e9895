package dataset

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseHours(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"8", "8", true},
		{"7.5", "7.5", true},
		{"  7.5  ", "7.5", true},
		{"0", "0", true},
		{"", "0", true},
		{"   ", "0", true},
		{"7:30", "7.5", true},
		{"0:45", "0.75", true},
		{"10:15", "10.25", true},
		{"7:30:00", "7.5", true},
		{"1:00:36", "1.01", true},
		{"7h 30m", "7.5", true},
		{"7H 30M", "7.5", true},
		{"8h", "8", true},
		{"45m", "0.75", true},
		{"-1", "-1", true},
		{"abc", "0", false},
		{"7:xx", "0", false},
		{"1:2:3:4", "0", false},
	}

	for _, c := range cases {
		got, ok := ParseHours(c.input)
		assert.Equal(t, c.ok, ok, "ParseHours(%q) ok", c.input)
		if c.ok {
			want := decimal.RequireFromString(c.want)
			assert.True(t, got.Equal(want), "ParseHours(%q) = %s, want %s", c.input, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"1234.50", "1234.5", true},
		{"$1,234.50", "1234.5", true},
		{"1 234", "1234", true},
		{"45%", "45", true},
		{"-250", "-250", true},
		{"0", "0", true},
		{"1234.50 USD", "1234.5", true},
		{"", "0", false},
		{"n/a", "0", false},
		{"$", "0", false},
	}

	for _, c := range cases {
		got, ok := ParseAmount(c.input)
		assert.Equal(t, c.ok, ok, "ParseAmount(%q) ok", c.input)
		if c.ok {
			want := decimal.RequireFromString(c.want)
			assert.True(t, got.Equal(want), "ParseAmount(%q) = %s, want %s", c.input, got, want)
		}
	}
}

func TestSplitNames(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"Alice Smith", []string{"Alice Smith"}},
		{"Alice, Bob", []string{"Alice", "Bob"}},
		{"Alice & Bob", []string{"Alice", "Bob"}},
		{"Alice, Bob & Carol", []string{"Alice", "Bob", "Carol"}},
		{" Alice ,  , Bob ", []string{"Alice", "Bob"}},
		{"", []string{}},
		{" , & ", []string{}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, SplitNames(c.input), "SplitNames(%q)", c.input)
	}
}
