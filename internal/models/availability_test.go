package models_test

import (
	"testing"
	"time"

	"manis/internal/models"

	"github.com/stretchr/testify/assert"
)

func clock(hour, minute int) time.Time {
	return time.Date(2025, 6, 15, hour, minute, 0, 0, time.Local)
}

func TestProductInWindow(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		until string
		at    time.Time
		want  bool
	}{
		{"no window is always open", "", "", clock(3, 0), true},
		{"inside window", "10:00", "18:00", clock(12, 30), true},
		{"at opening minute", "10:00", "18:00", clock(10, 0), true},
		{"closing minute is exclusive", "10:00", "18:00", clock(18, 0), false},
		{"before window", "10:00", "18:00", clock(9, 59), false},
		{"wraps past midnight, evening side", "20:00", "02:00", clock(23, 15), true},
		{"wraps past midnight, morning side", "20:00", "02:00", clock(1, 30), true},
		{"wraps past midnight, closed daytime", "20:00", "02:00", clock(12, 0), false},
		{"degenerate window never opens", "00:00", "00:00", clock(0, 0), false},
		{"only lower bound", "14:00", "", clock(15, 0), true},
		{"only upper bound", "", "14:00", clock(15, 0), false},
		{"malformed bound ignored", "25:99", "18:00", clock(12, 0), true},
		{"both bounds malformed is always open", "noon", "dusk", clock(12, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Product{AvailableFrom: tt.from, AvailableUntil: tt.until}
			assert.Equal(t, tt.want, p.InWindow(tt.at))
		})
	}
}
