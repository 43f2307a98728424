package models

import "github.com/diewo77/go-contracts/internal/contract"

// Setting keys for the contracted company.
const (
	SettingCompanyName    = "contratada_nome"
	SettingCompanyTaxID   = "contratada_nif"
	SettingCompanyAddress = "contratada_endereco"
)

// Setting is a key/value pair edited from the admin area.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

// DefaultSettings are seeded once and never overwrite admin edits.
func DefaultSettings() []Setting {
	return []Setting{
		{Key: SettingCompanyName, Value: contract.DefaultCompanyName},
		{Key: SettingCompanyTaxID, Value: "NIF_PENDENTE"},
		{Key: SettingCompanyAddress, Value: "ENDERECO_PENDENTE"},
	}
}

// SettingKeys lists the keys accepted from the admin form, in display order.
func SettingKeys() []string {
	return []string{SettingCompanyName, SettingCompanyTaxID, SettingCompanyAddress}
}

// IsSettingKey reports whether key is editable.
func IsSettingKey(key string) bool {
	for _, k := range SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// CompanyFromSettings builds the company block from a key/value map.
func CompanyFromSettings(values map[string]string) contract.Company {
	return contract.Company{
		Name:    values[SettingCompanyName],
		TaxID:   values[SettingCompanyTaxID],
		Address: values[SettingCompanyAddress],
	}
}
