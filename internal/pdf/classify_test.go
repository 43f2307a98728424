package pdf

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-contracts/internal/contract"
)

func TestClassify_Rules(t *testing.T) {
	text := strings.Join([]string{
		"CONTRATADA: MICAELA SAMPAIO, NIF 1, com sede em X, doravante denominada apenas CONTRATADA.",
		"Nome: Ana",
		"CLAUSULA escondida - dentro do bloco",
		"Doravante denominado(a) CONTRATANTE.",
		"+-------+-------+",
		"| Plano | Valor Clube |",
		"| BASIC | 75 EUR |",
		"CLAUSULA 1ª - DO OBJETO",
		"Clausula sem hifen",
		"2.1. Quadro Comparativo",
		"CONTRATO Nº: CTR-2026-0001",
		"",
		"   ",
		"Texto corrido do contrato.",
		strings.Repeat("A", 120),
	}, "\n")

	got := Classify(text, "Micaela Sampaio")
	want := []Segment{
		{Kind: KindTable},
		{Kind: KindHeading, Text: "CLAUSULA 1ª", Title: "DO OBJETO"},
		{Kind: KindHeading, Text: "Clausula sem hifen"},
		{Kind: KindSubheading, Text: "2.1. Quadro Comparativo"},
		{Kind: KindSubheading, Text: "CONTRATO Nº: CTR-2026-0001"},
		{Kind: KindGap},
		{Kind: KindGap},
		{Kind: KindBody, Text: "Texto corrido do contrato."},
		{Kind: KindBody, Text: strings.Repeat("A", 120)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Classify mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestClassify_OtherCompanyDoesNotSkip(t *testing.T) {
	got := Classify("CONTRATADA: OUTRA LDA, NIF 1\nNome: Ana", "Micaela Sampaio")
	if len(got) != 2 {
		t.Fatalf("expected both lines kept, got %+v", got)
	}
	if got[0].Kind != KindSubheading {
		t.Fatalf("upper-case party line should be a subheading, got %v", got[0].Kind)
	}
}

func TestClassify_ComposedContract(t *testing.T) {
	text := contract.Compose(contract.Input{
		Client:  contract.Client{Name: "Ana Pereira", Address: "Rua A"},
		Plan:    "PREMIUM - Anual",
		Company: contract.Company{Name: "MICAELA SAMPAIO"},
		Number:  "CTR-2026-0003",
		Date:    time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	})
	segs := Classify(text, "MICAELA SAMPAIO")
	counts := map[Kind]int{}
	for _, s := range segs {
		counts[s.Kind]++
		if s.Kind == KindBody && strings.Contains(s.Text, "Ana Pereira") {
			t.Fatalf("client identity block must be skipped: %q", s.Text)
		}
	}
	if counts[KindHeading] != 11 {
		t.Fatalf("expected 11 headings, got %d", counts[KindHeading])
	}
	if counts[KindTable] != 1 {
		t.Fatalf("expected the comparison table once, got %d", counts[KindTable])
	}
	if !reflect.DeepEqual(segs, Classify(text, "MICAELA SAMPAIO")) {
		t.Fatalf("classification must be deterministic")
	}
}

func TestAllUpper(t *testing.T) {
	tests := map[string]bool{
		"CONTRATO DE ADESAO": true,
		"NIF: 123":           true,
		"CONTRATO Nº: X":     true,
		"Mixed Case":         false,
		"1234":               false,
		"____":               false,
		"":                   false,
	}
	for in, want := range tests {
		if got := allUpper(in); got != want {
			t.Errorf("allUpper(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNumbered(t *testing.T) {
	if !numbered("2.1. Quadro") || !numbered("10. Item") {
		t.Fatalf("expected numbered")
	}
	if numbered("2023 was a year. Yes") || numbered("a.1") || numbered("") {
		t.Fatalf("unexpected numbered match")
	}
}

func TestNarrow(t *testing.T) {
	if got := narrow("Clausula 1ª"); got != "Clausula 1\xaa" {
		t.Fatalf("narrow kept latin-1 rune wrong: %q", got)
	}
	if got := narrow("Olá ✓ 😀"); got != "Ol\xe1 ? ?" {
		t.Fatalf("unsupported runes should become '?', got %q", got)
	}
	if got := narrow("€"); got != "\x80" {
		t.Fatalf("euro sign should map to cp1252, got %q", got)
	}
	long := strings.Repeat("é", 1000)
	if got := narrow(long); len(got) != maxSegmentRunes {
		t.Fatalf("expected truncation to %d, got %d", maxSegmentRunes, len(got))
	}
}
