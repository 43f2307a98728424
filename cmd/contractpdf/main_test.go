package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diewo77/go-contracts/internal/config"
	"github.com/diewo77/go-contracts/internal/db"
	"github.com/diewo77/go-contracts/internal/services"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// setup stores one contract in a fresh sqlite file and returns a config
// pointing at it together with the contract number.
func setup(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(dir, "contratos.db")},
		Branding: config.BrandingConfig{Brand: "CLINICA TESTE"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	conn, err := db.Open(cfg.Database, false, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Migrate(conn, cfg.Database, false); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	c, err := services.NewContractService(conn, log).Create(context.Background(), services.NewContract{
		Name:     "Ana Pereira",
		TaxID:    "123456789",
		WhatsApp: "+351 912 345 678",
		Email:    "ana@example.com",
		Address:  "Rua das Flores 10, Porto",
		Plan:     "PREMIUM - Anual",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return cfg, c.Number
}

func writeSignature(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 300, 100))
	for x := 20; x < 280; x++ {
		img.Set(x, 50+(x%20)-10, color.NRGBA{0, 0, 0, 255})
	}
	data, err := sigimage.EncodePNG(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRun_WritesPDF(t *testing.T) {
	cfg, number := setup(t)
	sigPath := filepath.Join(t.TempDir(), "business.png")
	writeSignature(t, sigPath)
	cfg.Branding.BusinessSignaturePath = sigPath
	out := filepath.Join(t.TempDir(), "contract.pdf")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-number", number, "-out", out}, cfg, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != out {
		t.Fatalf("stdout = %q", stdout.String())
	}
	body, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := api.Validate(bytes.NewReader(body), nil); err != nil {
		t.Fatalf("invalid pdf: %v", err)
	}
	if strings.Contains(stderr.String(), "business signature not loaded") {
		t.Fatalf("unexpected warning: %s", stderr.String())
	}
}

func TestRun_Text(t *testing.T) {
	cfg, number := setup(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-number", number, "-text"}, cfg, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), number) || !strings.Contains(stdout.String(), "Ana Pereira") {
		t.Fatalf("text output missing contract data: %q", stdout.String())
	}
}

func TestRun_MissingSignatureLogsWarning(t *testing.T) {
	cfg, number := setup(t)
	cfg.Branding.BusinessSignaturePath = filepath.Join(t.TempDir(), "missing.png")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-number", number, "-text"}, cfg, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "business signature not loaded") || !strings.Contains(stderr.String(), "missing.png") {
		t.Fatalf("expected a warning naming the asset, got %q", stderr.String())
	}
}

func TestRun_Errors(t *testing.T) {
	cfg, _ := setup(t)
	var stdout, stderr bytes.Buffer
	if code := run(nil, cfg, &stdout, &stderr); code != 2 {
		t.Fatalf("missing -number: exit %d", code)
	}
	stderr.Reset()
	if code := run([]string{"-number", "CTR-1999-0001"}, cfg, &stdout, &stderr); code != 3 {
		t.Fatalf("unknown contract: exit %d", code)
	}
	if !strings.Contains(stderr.String(), "load error") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
