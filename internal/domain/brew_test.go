package domain_test

import (
	"testing"

	"brewlog/internal/domain"
)

func TestBrewFilterWindow(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"zero defaults", 0, 0, 50, 0},
		{"negative limit defaults", -1, 0, 50, 0},
		{"explicit limit kept", 25, 10, 25, 10},
		{"at the cap", 200, 0, 200, 0},
		{"oversized limit truncates", 500, 0, 200, 0},
		{"negative offset floors", 20, -5, 20, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := domain.BrewFilter{Limit: tc.limit, Offset: tc.offset}
			limit, offset := f.Window()
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Errorf("Window() = (%d, %d); want (%d, %d)", limit, offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
