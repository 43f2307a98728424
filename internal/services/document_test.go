package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func newDocumentService(t *testing.T) (*DocumentService, *ContractService, *SettingsService) {
	t.Helper()
	db := setupDB(t)
	settings := NewSettingsService(db)
	r := pdf.NewRenderer(pdf.Branding{}, quietLog())
	r.Now = func() time.Time { return fixedNow }
	docs := NewDocumentService(settings, r, quietLog())
	docs.now = func() time.Time { return fixedNow }
	return docs, newContractService(db), settings
}

func TestRender_StoredContract(t *testing.T) {
	docs, contracts, _ := newDocumentService(t)
	ctx := context.Background()
	in := validInput()
	in.Signature = signatureURI(t)
	c, err := contracts.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stored, err := contracts.Get(ctx, c.Number)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	out, err := docs.Render(ctx, stored)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := api.Validate(bytes.NewReader(out), nil); err != nil {
		t.Fatalf("invalid pdf: %v", err)
	}
}

func TestRender_MalformedSignatureStillRenders(t *testing.T) {
	docs, _, _ := newDocumentService(t)
	c := &models.Contract{
		Number: "CTR-2026-0009", CreatedAt: fixedNow, Name: "Ana", TaxID: "1", WhatsApp: "9",
		Email: "a@b.pt", Address: "Rua", Plan: "unknown-plan", SignatureData: "%%%",
	}
	out, err := docs.Render(context.Background(), c)
	if err != nil || len(out) == 0 {
		t.Fatalf("Render = %d bytes, %v", len(out), err)
	}
}

func TestText_UsesCurrentSettings(t *testing.T) {
	docs, _, settings := newDocumentService(t)
	ctx := context.Background()
	if err := settings.Update(ctx, map[string]string{models.SettingCompanyName: "ESTETICA NOVA LDA"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	c := &models.Contract{Number: "CTR-2026-0001", CreatedAt: fixedNow, Name: "Ana", Plan: "BASIC - Anual"}
	text, err := docs.Text(ctx, c)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(text, "ESTETICA NOVA LDA") || !strings.Contains(text, "18 de outubro de 2026") {
		t.Fatalf("settings or date missing from text")
	}

	preview, err := docs.Preview(ctx, &models.Contract{Name: "Ana", Plan: "BASIC - Anual"})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(preview, "CTR-2026-PREVIEW") {
		t.Fatalf("preview should carry the draft number")
	}
}

func TestText_KeepsSigningDate(t *testing.T) {
	docs, _, _ := newDocumentService(t)
	signed := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	c := &models.Contract{Number: "CTR-2025-0007", CreatedAt: signed, Name: "Ana", Plan: "BASIC - Anual"}
	text, err := docs.Text(context.Background(), c)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(text, "5 de março de 2025") {
		t.Fatal("text should carry the signing date")
	}
	if strings.Contains(text, "18 de outubro de 2026") {
		t.Fatal("text should not carry the regeneration date")
	}
}

func TestRender_EmptyOutput(t *testing.T) {
	docs, _, _ := newDocumentService(t)
	// A failing clock panics inside the layout; Render recovers and yields nothing.
	docs.renderer.Now = func() time.Time { panic("clock failure") }
	_, err := docs.Render(context.Background(), &models.Contract{Number: "CTR-2026-0001", CreatedAt: fixedNow})
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}
