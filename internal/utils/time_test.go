package utils

import "testing"

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0:00.000"},
		{5.5, "0:05.500"},
		{63.2, "1:03.200"},
		{600, "10:00.000"},
		{-1, "0:00.000"},
	}
	for _, c := range cases {
		if got := FormatTimestamp(c.in); got != c.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"63.2", 63.2},
		{"1:03.2", 63.2},
		{"0:05.500", 5.5},
		{"10:00", 600},
		{"0", 0},
		{" 2.5 ", 2.5},
	}
	for _, c := range cases {
		got, err := ParseTimestamp(c.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "1:-3", "x:10", "1:abc"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", in)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 5.5, 63.2, 3599.999} {
		got, err := ParseTimestamp(FormatTimestamp(v))
		if err != nil {
			t.Fatalf("round trip of %v failed: %v", v, err)
		}
		if diff := got - v; diff > 0.001 || diff < -0.001 {
			t.Errorf("round trip of %v drifted to %v", v, got)
		}
	}
}
