package services

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/validation"
)

func TestSettings_DefaultsAndUpdate(t *testing.T) {
	s := NewSettingsService(setupDB(t))
	ctx := context.Background()

	company, err := s.Company(ctx)
	if err != nil {
		t.Fatalf("Company: %v", err)
	}
	if company.Name != "MICAELA SAMPAIO" || company.TaxID != "NIF_PENDENTE" {
		t.Fatalf("unexpected defaults %+v", company)
	}

	err = s.Update(ctx, map[string]string{
		models.SettingCompanyTaxID:   " 500100200 ",
		models.SettingCompanyAddress: "Av. da Republica 1, Gaia",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	values, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if values[models.SettingCompanyTaxID] != "500100200" || values[models.SettingCompanyName] != "MICAELA SAMPAIO" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestSettings_RejectsUnknownAndEmpty(t *testing.T) {
	s := NewSettingsService(setupDB(t))
	ctx := context.Background()
	err := s.Update(ctx, map[string]string{
		"admin_password":          "x",
		models.SettingCompanyName: " ",
	})
	var v validation.Violations
	if !errors.As(err, &v) {
		t.Fatalf("expected violations, got %v", err)
	}
	if v["admin_password"] != "invalid_setting" || v[models.SettingCompanyName] != "required" {
		t.Fatalf("unexpected violations %v", v)
	}
	company, _ := s.Company(ctx)
	if company.Name != "MICAELA SAMPAIO" {
		t.Fatalf("nothing should be written on validation failure")
	}
}

func TestSettings_MissingRowsFallBack(t *testing.T) {
	db := setupDB(t)
	if err := db.Where("1 = 1").Delete(&models.Setting{}).Error; err != nil {
		t.Fatalf("clear: %v", err)
	}
	values, err := NewSettingsService(db).All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(values) != 3 || values[models.SettingCompanyAddress] != "ENDERECO_PENDENTE" {
		t.Fatalf("unexpected values %v", values)
	}
}
