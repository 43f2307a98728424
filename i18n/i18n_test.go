package i18n

import (
	"testing"
	"time"
)

func TestTranslations(t *testing.T) {
	if T("required") != "Obrigatório" {
		t.Fatalf("expected Obrigatório")
	}
	// unknown code -> fallback to code
	if T("__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
}

func TestLongDate(t *testing.T) {
	d := time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)
	if got := LongDate(d); got != "18 de outubro de 2026" {
		t.Fatalf("LongDate = %q", got)
	}
	d = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := LongDate(d); got != "5 de março de 2025" {
		t.Fatalf("LongDate = %q", got)
	}
}

func TestMonthName_OutOfRange(t *testing.T) {
	if MonthName(0) != "" || MonthName(13) != "" {
		t.Fatalf("expected empty month name for invalid month")
	}
	if MonthName(time.December) != "dezembro" {
		t.Fatalf("expected dezembro")
	}
}

func TestDateTime(t *testing.T) {
	d := time.Date(2026, time.January, 2, 14, 5, 0, 0, time.UTC)
	if got := DateTime(d); got != "02/01/2026 14:05" {
		t.Fatalf("DateTime = %q", got)
	}
}
