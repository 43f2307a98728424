package contract

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		year     int
		existing int64
		want     string
	}{
		{2026, 0, "CTR-2026-0001"},
		{2026, 9, "CTR-2026-0010"},
		{2025, 123, "CTR-2025-0124"},
		{2025, 9999, "CTR-2025-10000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.year, tt.existing); got != tt.want {
			t.Errorf("FormatNumber(%d, %d) = %q, want %q", tt.year, tt.existing, got, tt.want)
		}
	}
}

func TestPreviewNumber(t *testing.T) {
	if got := PreviewNumber(2024); got != "CTR-2024-PREVIEW" {
		t.Fatalf("PreviewNumber = %q", got)
	}
	if got := NumberPrefix(2024); got != "CTR-2024-" {
		t.Fatalf("NumberPrefix = %q", got)
	}
}
