package pdf

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
	"time"

	"github.com/diewo77/go-contracts/internal/contract"
	"github.com/diewo77/go-contracts/internal/plans"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

var fixedClock = func() time.Time { return time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC) }

func testRenderer() *Renderer {
	r := NewRenderer(Branding{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.Now = fixedClock
	return r
}

func signature() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 600, 200))
	for x := 50; x < 550; x++ {
		img.Set(x, 100+(x%40)-20, color.NRGBA{0, 0, 0, 255})
	}
	return img
}

func sampleDocument(plan string) Document {
	client := contract.Client{
		Name:     "Ana Pereira",
		TaxID:    "123456789",
		Email:    "ana@example.com",
		WhatsApp: "+351 912 345 678",
		Address:  "Rua das Flores 10, 4000-100 Porto",
	}
	return Document{
		Number:  "CTR-2026-0001",
		Company: "MICAELA SAMPAIO",
		Text: contract.Compose(contract.Input{
			Client:  client,
			Plan:    plan,
			Company: contract.Company{Name: "MICAELA SAMPAIO", TaxID: "500100200", Address: "Gaia"},
			Number:  "CTR-2026-0001",
			Date:    fixedClock(),
		}),
		Client: Client{
			Name:     client.Name,
			TaxID:    client.TaxID,
			Email:    client.Email,
			WhatsApp: client.WhatsApp,
			Address:  client.Address,
		},
		Signature: signature(),
	}
}

func pageCount(t *testing.T, b []byte) int {
	t.Helper()
	if err := api.Validate(bytes.NewReader(b), nil); err != nil {
		t.Fatalf("generated PDF is invalid: %v", err)
	}
	n, err := api.PageCount(bytes.NewReader(b), nil)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	return n
}

func TestRender_AllPlans(t *testing.T) {
	r := testRenderer()
	r.BusinessSignature = signature()
	for _, p := range plans.All() {
		t.Run(p.Key, func(t *testing.T) {
			out := r.Render(context.Background(), sampleDocument(p.Key))
			if len(out) == 0 {
				t.Fatalf("expected non-empty PDF")
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Fatalf("output is not a PDF")
			}
			if n := pageCount(t, out); n < 2 {
				t.Fatalf("expected a multi-page contract, got %d pages", n)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := testRenderer()
	r.BusinessSignature = signature()
	doc := sampleDocument("PREMIUM - Semestral")

	first := r.Render(context.Background(), doc)
	if len(first) == 0 {
		t.Fatal("expected output")
	}
	pageCount(t, first)
	for i := 0; i < 10; i++ {
		if again := r.Render(context.Background(), doc); !bytes.Equal(first, again) {
			t.Fatalf("render %d differs from the first", i+1)
		}
	}

	doc.Signature = nil
	r.BusinessSignature = nil
	a := r.Render(context.Background(), doc)
	b := r.Render(context.Background(), doc)
	if len(a) == 0 || !bytes.Equal(a, b) {
		t.Fatal("renders without images differ")
	}
}

func TestStampImages_DistinctWidths(t *testing.T) {
	client, business := stampImages(signature(), signature())
	if client.Bounds().Dx() != stampMaxPixels {
		t.Fatalf("client stamp width %d", client.Bounds().Dx())
	}
	if business.Bounds().Dx() == client.Bounds().Dx() {
		t.Fatalf("stamps share width %d", business.Bounds().Dx())
	}
	if c, b := stampImages(nil, signature()); c != nil || b.Bounds().Dx() != stampMaxPixels {
		t.Fatalf("single business stamp should keep full width")
	}
}

func TestRender_HeaderUsesBrand(t *testing.T) {
	r := NewRenderer(Branding{Brand: "CLINICA TESTE"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.Now = fixedClock
	doc := sampleDocument("BASIC - Anual")
	doc.Company = "OUTRA EMPRESA LDA"

	out := r.Render(context.Background(), doc)
	if len(out) == 0 {
		t.Fatal("expected output")
	}
	dir := t.TempDir()
	if err := api.ExtractContent(bytes.NewReader(out), dir, "contract", nil, nil); err != nil {
		t.Fatalf("extract content: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("no content extracted: %v", err)
	}
	var content strings.Builder
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		content.Write(b)
	}
	if !strings.Contains(content.String(), "(CLINICA TESTE)") {
		t.Error("header does not show the configured brand")
	}
	if strings.Contains(content.String(), "OUTRA EMPRESA LDA") {
		t.Error("company name leaked into the header")
	}
}

func TestRender_MalformedSignatureStillRenders(t *testing.T) {
	img, err := sigimage.Decode("data:image/png;base64,not-a-real-image")
	if err == nil || img != nil {
		t.Fatalf("expected decode failure")
	}
	doc := sampleDocument("BASIC - Anual")
	doc.Signature = img
	out := testRenderer().Render(context.Background(), doc)
	if len(out) == 0 {
		t.Fatalf("document must render without the signature")
	}
	pageCount(t, out)
}

func TestRender_LongLines(t *testing.T) {
	doc := sampleDocument("BASIC - Semestral")
	long := strings.Repeat("Endereco muito longo ", 50)
	doc.Client.Address = long
	doc.Text += "\n" + long + "\n" + strings.Repeat("X", 1000) + "\n"
	out := testRenderer().Render(context.Background(), doc)
	if len(out) == 0 {
		t.Fatalf("long lines must not break rendering")
	}
	pageCount(t, out)
}

func TestRender_UnsupportedCharacters(t *testing.T) {
	doc := sampleDocument("PREMIUM - Anual")
	doc.Client.Name = "Zoë 王 ✓"
	doc.Text = strings.Replace(doc.Text, "FAT Redux", "FAT Redux ✓ 😀", 1)
	out := testRenderer().Render(context.Background(), doc)
	if len(out) == 0 {
		t.Fatalf("unsupported characters must be substituted, not fail")
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	out := testRenderer().Render(context.Background(), Document{})
	if len(out) == 0 {
		t.Fatalf("an empty document still has header, box and signatures")
	}
	if pageCount(t, out) != 1 {
		t.Fatalf("expected a single page")
	}
}

func TestRender_SignatureBlockMovesToNewPage(t *testing.T) {
	r := testRenderer()
	short := Document{Number: "CTR-2026-0009", Text: "Linha unica."}
	if n := pageCount(t, r.Render(context.Background(), short)); n != 1 {
		t.Fatalf("short document should fit one page, got %d", n)
	}
	// Enough body to end near the bottom of the first page.
	filler := strings.Repeat("Linha de texto do contrato.\n", 20)
	full := Document{Number: "CTR-2026-0010", Text: filler}
	if n := pageCount(t, r.Render(context.Background(), full)); n != 2 {
		t.Fatalf("signature block should start a new page, got %d pages", n)
	}
}

func TestBrandingDefaults(t *testing.T) {
	b := Branding{Subtitle: "Outro"}.withDefaults()
	if b.Brand != "MICAELA SAMPAIO" || b.Subtitle != "Outro" || b.BusinessCaption == "" || b.ClientCaption == "" {
		t.Fatalf("unexpected branding %+v", b)
	}
}
