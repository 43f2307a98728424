package pdf

import (
	"strings"
	"unicode"
)

// Kind tags a classified line of contract text.
type Kind int

const (
	KindBody Kind = iota
	KindHeading
	KindSubheading
	KindTable
	KindGap
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindSubheading:
		return "subheading"
	case KindTable:
		return "table"
	case KindGap:
		return "gap"
	default:
		return "body"
	}
}

// Segment is one unit of the document body.
// Headings carry the clause label in Text and its title in Title.
type Segment struct {
	Kind  Kind
	Text  string
	Title string
}

const (
	partyMarker     = "CONTRATADA:"
	partyEndMarker  = "Doravante denominado"
	clauseMarker    = "CLAUSULA"
	maxSubheadRunes = 100
)

// Classify splits composed contract text into layout segments.
//
// The identity block that starts on the line naming the contracted company
// and ends on the "Doravante denominado" line is dropped, since the renderer
// draws those fields in a box. ASCII table borders and rows are dropped; the
// table header line becomes a single KindTable segment.
func Classify(text, company string) []Segment {
	companyUpper := strings.ToUpper(strings.TrimSpace(company))
	var out []Segment
	skipping := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, partyMarker) && strings.Contains(strings.ToUpper(line), companyUpper) {
			skipping = true
			continue
		}
		if strings.Contains(line, partyEndMarker) {
			skipping = false
			continue
		}
		if skipping {
			continue
		}

		if line != "" && onlyRunes(line, "-| +") {
			continue
		}
		if strings.Count(line, "|") >= 2 {
			if strings.Contains(line, "Plano") && strings.Contains(line, "Valor") {
				out = append(out, Segment{Kind: KindTable})
			}
			continue
		}

		if strings.Contains(strings.ToUpper(line), clauseMarker) {
			label, title, found := strings.Cut(line, "-")
			if found {
				out = append(out, Segment{Kind: KindHeading, Text: strings.TrimSpace(label), Title: strings.TrimSpace(title)})
			} else {
				out = append(out, Segment{Kind: KindHeading, Text: line})
			}
			continue
		}

		if (numbered(line) || allUpper(line)) && len([]rune(line)) < maxSubheadRunes {
			out = append(out, Segment{Kind: KindSubheading, Text: line})
			continue
		}

		if line == "" {
			out = append(out, Segment{Kind: KindGap})
			continue
		}
		out = append(out, Segment{Kind: KindBody, Text: line})
	}
	return out
}

func onlyRunes(s, set string) bool {
	for _, r := range s {
		if !strings.ContainsRune(set, r) {
			return false
		}
	}
	return true
}

// numbered matches section numbers such as "2.1. Quadro".
func numbered(s string) bool {
	rs := []rune(s)
	if len(rs) == 0 || !unicode.IsDigit(rs[0]) {
		return false
	}
	if len(rs) > 5 {
		rs = rs[:5]
	}
	return strings.ContainsRune(string(rs), '.')
}

// allUpper is true when s has at least one cased letter and none in lower case.
func allUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
