// Package contract assembles the canonical agreement text from client data,
// the chosen plan and the company registration details.
package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/diewo77/go-contracts/i18n"
	"github.com/diewo77/go-contracts/internal/plans"
)

// Defaults used when company settings are missing.
const (
	DefaultCompanyName = "MICAELA SAMPAIO"
	DefaultCity        = "Vila Nova de Gaia"
	DefaultSignatory   = "Micaela Sampaio - Centro de Estetica"
)

// RescheduleTerms is the same for every plan and lists both tiers.
const RescheduleTerms = "Plano Basic: Permitido 01 (um) reagendamento mensal.\n" +
	"Plano Premium: Permitido ate 02 (dois) reagendamentos mensais."

// PremiumBenefit is added to clause 4 for PREMIUM plans only.
const PremiumBenefit = "- Vantagem para o Premium: 1 Consultoria de skincare personalizada inclusa."

// Client is the identity block of the contracting client.
type Client struct {
	Name     string
	TaxID    string
	Email    string
	WhatsApp string
	Address  string
}

// Company is the contracted business as configured by the administrator.
type Company struct {
	Name    string
	TaxID   string
	Address string
}

// Input gathers everything Compose needs.
type Input struct {
	Client  Client
	Plan    string
	Company Company
	Number  string
	Date    time.Time
}

// Fragments holds the plan dependent pieces of the text.
type Fragments struct {
	PlanSelection   string
	RescheduleTerms string
	PremiumBenefit  string
}

// FragmentsFor resolves the plan dependent text for p.
func FragmentsFor(p plans.Plan) Fragments {
	period := "PLANO ANUAL (12 Meses de Fidelidade - Desconto Extra)"
	if p.IsSemestral() {
		period = "PLANO SEMESTRAL (6 Meses de Fidelidade)"
	}
	f := Fragments{
		PlanSelection: fmt.Sprintf("O(A) CONTRATANTE optou por:\n[X] %s\n    (X) %s: %d EUR/mes",
			period, p.Family, p.MonthlyPrice),
		RescheduleTerms: RescheduleTerms,
	}
	if p.IsPremium() {
		f.PremiumBenefit = PremiumBenefit
	}
	return f
}

// Compose returns the full agreement text. Unknown plan labels resolve through
// plans.Resolve; missing client or company values are left empty.
func Compose(in Input) string {
	p := plans.Resolve(in.Plan)
	frag := FragmentsFor(p)
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	companyName := strings.TrimSpace(in.Company.Name)
	if companyName == "" {
		companyName = DefaultCompanyName
	}
	r := strings.NewReplacer(
		"{company_name}", companyName,
		"{company_tax_id}", in.Company.TaxID,
		"{company_address}", in.Company.Address,
		"{name}", in.Client.Name,
		"{tax_id}", in.Client.TaxID,
		"{email}", in.Client.Email,
		"{whatsapp}", in.Client.WhatsApp,
		"{address}", in.Client.Address,
		"{reference_price}", strconv.Itoa(plans.ReferenceSessionPrice()),
		"{comparison_table}", ComparisonTable(),
		"{plan_selection}", frag.PlanSelection,
		"{reschedule_terms}", frag.RescheduleTerms,
		"{extras_discount}", p.ExtrasDiscount,
		"{premium_benefit}", frag.PremiumBenefit,
		"{fidelity_months}", strconv.Itoa(p.FidelityMonths),
		"{city}", DefaultCity,
		"{date}", i18n.LongDate(date),
		"{number}", in.Number,
		"{business_signatory}", DefaultSignatory,
	)
	return r.Replace(baseText)
}

// ComparisonTable renders the plan comparison as an ASCII grid.
func ComparisonTable() string {
	headers := []string{"Plano", "Sessoes", "Valor Mercado", "Valor Clube", "Poupanca"}
	rows := [][]string{headers}
	for _, r := range plans.ComparisonRows() {
		rows = append(rows, r.Cells())
	}
	widths := make([]int, len(headers))
	for _, row := range rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	var border strings.Builder
	border.WriteString("+")
	for _, w := range widths {
		border.WriteString(strings.Repeat("-", w+2))
		border.WriteString("+")
	}
	var b strings.Builder
	b.WriteString(border.String())
	for i, row := range rows {
		b.WriteString("\n|")
		for j, c := range row {
			b.WriteString(" ")
			b.WriteString(c)
			b.WriteString(strings.Repeat(" ", widths[j]-utf8.RuneCountInString(c)+1))
			b.WriteString("|")
		}
		if i == 0 {
			b.WriteString("\n")
			b.WriteString(border.String())
		}
	}
	b.WriteString("\n")
	b.WriteString(border.String())
	return b.String()
}

// ClauseHeadings returns the clause heading lines found in text, in order.
func ClauseHeadings(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(strings.ToUpper(line), "CLAUSULA") {
			out = append(out, line)
		}
	}
	return out
}
