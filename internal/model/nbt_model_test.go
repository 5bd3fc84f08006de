package model

import (
	"testing"
	"time"
)

func TestNBTTestAvailableAt(t *testing.T) {
	from := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	test := &NBTTest{AvailableFrom: from, AvailableUntil: until}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "before window", now: from.Add(-time.Minute), want: false},
		{name: "window opens", now: from, want: true},
		{name: "inside window", now: from.AddDate(0, 0, 10), want: true},
		{name: "window closes", now: until, want: true},
		{name: "after window", now: until.Add(time.Minute), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := test.AvailableAt(tt.now); got != tt.want {
				t.Errorf("AvailableAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
