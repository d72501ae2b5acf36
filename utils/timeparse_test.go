package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	testCases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"08:30", 8, 30, true},
		{"0:00", 0, 0, true},
		{"23:59", 23, 59, true},
		{" 12:05 ", 12, 5, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"12", 0, 0, false},
		{"", 0, 0, false},
		{"ab:cd", 0, 0, false},
	}
	for _, tc := range testCases {
		h, m, err := ParseClock(tc.in)
		if tc.ok && (err != nil || h != tc.hour || m != tc.minute) {
			t.Errorf("ParseClock(%q) = %d,%d,%v; want %d,%d", tc.in, h, m, err, tc.hour, tc.minute)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseClock(%q) expected error", tc.in)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday("wednesday")
	if !ok || d != time.Wednesday {
		t.Errorf("expected wednesday, got %v ok=%v", d, ok)
	}
	if _, ok := ParseWeekday("wed"); ok {
		t.Error("abbreviations are not accepted")
	}
	if _, ok := ParseWeekday(""); ok {
		t.Error("empty day must not parse")
	}
}
