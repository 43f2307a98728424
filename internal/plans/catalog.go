// Package plans holds the fixed subscription catalog offered to clinic clients.
// The catalog is embedded as YAML and loaded once; it is read-only afterwards.
package plans

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Family is the plan tier.
type Family string

const (
	FamilyBasic   Family = "BASIC"
	FamilyPremium Family = "PREMIUM"
)

// Period is the billing commitment of a plan.
type Period string

const (
	PeriodSemestral Period = "semestral"
	PeriodAnual     Period = "anual"
)

// Plan describes one subscription offer.
type Plan struct {
	Key            string `yaml:"key" json:"key"`
	DisplayName    string `yaml:"display_name" json:"display_name"`
	Family         Family `yaml:"family" json:"family"`
	Sessions       int    `yaml:"sessions" json:"sessions"`
	MonthlyPrice   int    `yaml:"monthly_price" json:"monthly_price"`
	Period         Period `yaml:"period" json:"period"`
	FidelityMonths int    `yaml:"fidelity_months" json:"fidelity_months"`
	Description    string `yaml:"description" json:"description"`
	ExtrasDiscount string `yaml:"extras_discount" json:"extras_discount"`
	Reschedules    int    `yaml:"reschedules" json:"reschedules"`
	AnnualSavings  int    `yaml:"annual_savings,omitempty" json:"annual_savings,omitempty"`
}

// Savings returns the yearly savings advertised for the plan, if any.
func (p Plan) Savings() (int, bool) {
	if p.AnnualSavings <= 0 {
		return 0, false
	}
	return p.AnnualSavings, true
}

// IsPremium reports whether the plan belongs to the PREMIUM tier.
func (p Plan) IsPremium() bool { return p.Family == FamilyPremium }

// IsSemestral reports whether the plan has a six month commitment.
func (p Plan) IsSemestral() bool { return p.Period == PeriodSemestral }

// ComparisonRow is one line of the BASIC vs PREMIUM benefit table.
type ComparisonRow struct {
	Plan        string
	Sessions    string
	MarketValue string
	ClubValue   string
	Savings     string
}

// Cells returns the row values in column order.
func (r ComparisonRow) Cells() []string {
	return []string{r.Plan, r.Sessions, r.MarketValue, r.ClubValue, r.Savings}
}

// ComparisonHeaders are the column titles of the benefit table.
var ComparisonHeaders = []string{"Plano", "Sessoes", "V. Mercado", "V. Clube", "Poupanca"}

type catalogFile struct {
	ReferenceSessionPrice int    `yaml:"reference_session_price"`
	Plans                 []Plan `yaml:"plans"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	catalog        []Plan
	byKey          map[string]Plan
	referencePrice int
)

func init() {
	if err := load(catalogYAML); err != nil {
		panic(fmt.Sprintf("plans: invalid embedded catalog: %v", err))
	}
}

func load(data []byte) error {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	if len(f.Plans) == 0 {
		return fmt.Errorf("no plans defined")
	}
	keys := make(map[string]Plan, len(f.Plans))
	for _, p := range f.Plans {
		if p.Key == "" {
			return fmt.Errorf("plan without key")
		}
		if _, dup := keys[p.Key]; dup {
			return fmt.Errorf("duplicate plan %q", p.Key)
		}
		keys[p.Key] = p
	}
	catalog = f.Plans
	byKey = keys
	referencePrice = f.ReferenceSessionPrice
	return nil
}

// All returns the catalog in display order.
func All() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the plan registered under the exact key.
func Get(key string) (Plan, bool) {
	p, ok := byKey[key]
	return p, ok
}

// Resolve maps any plan label to a catalog entry and never fails.
// Lookup order: exact key, case-insensitive key, then a guess from the label
// ("PREMIUM" selects the premium tier, "SEMESTRAL" the six month period).
// An unrecognised label therefore resolves to "BASIC - Anual".
func Resolve(label string) Plan {
	if p, ok := byKey[label]; ok {
		return p
	}
	for _, p := range catalog {
		if strings.EqualFold(p.Key, label) {
			return p
		}
	}
	upper := strings.ToUpper(label)
	family := FamilyBasic
	if strings.Contains(upper, string(FamilyPremium)) {
		family = FamilyPremium
	}
	period := PeriodAnual
	if strings.Contains(upper, "SEMESTRAL") {
		period = PeriodSemestral
	}
	return find(family, period)
}

func find(f Family, per Period) Plan {
	for _, p := range catalog {
		if p.Family == f && p.Period == per {
			return p
		}
	}
	return catalog[0]
}

// ReferenceSessionPrice is the walk-in price of a single session in EUR.
func ReferenceSessionPrice() int { return referencePrice }

// ComparisonRows builds the benefit table from the semestral plans:
// market value is sessions at the reference price, club value the monthly fee.
func ComparisonRows() []ComparisonRow {
	rows := make([]ComparisonRow, 0, 2)
	for _, f := range []Family{FamilyBasic, FamilyPremium} {
		p := find(f, PeriodSemestral)
		market := p.Sessions * referencePrice
		rows = append(rows, ComparisonRow{
			Plan:        string(f),
			Sessions:    fmt.Sprintf("%d sessoes", p.Sessions),
			MarketValue: fmt.Sprintf("%d EUR", market),
			ClubValue:   fmt.Sprintf("%d EUR", p.MonthlyPrice),
			Savings:     fmt.Sprintf("%d EUR/mes", market-p.MonthlyPrice),
		})
	}
	return rows
}
