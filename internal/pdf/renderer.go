// Package pdf lays out a composed contract as a paginated A4 document.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/diewo77/go-contracts/i18n"
	"github.com/diewo77/go-contracts/internal/plans"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

// Page geometry in millimetres.
const (
	fontFamily      = "Helvetica"
	marginSide      = 20.0
	marginTop       = 10.0
	pageBreakMargin = 35.0
	contentWidth    = 170.0
	addressMaxRunes = 60
	stampMaxPixels  = 400

	// Height of the signature block: spacing, title, stamps, rule and captions.
	signatureBlockHeight = 67.0
)

type rgb struct{ r, g, b int }

var (
	gold      = rgb{212, 175, 55}
	greyText  = rgb{100, 100, 100}
	greyPager = rgb{128, 128, 128}
	greyStamp = rgb{150, 150, 150}
	black     = rgb{0, 0, 0}
)

// Branding is the fixed wording printed around the contract body.
type Branding struct {
	Brand           string
	Subtitle        string
	BusinessCaption string
	ClientCaption   string
}

// DefaultBranding matches the clinic's printed contracts.
func DefaultBranding() Branding {
	return Branding{
		Brand:           "MICAELA SAMPAIO",
		Subtitle:        "CLUBE + ESTETICA 3.0",
		BusinessCaption: "Micaela Sampaio - Clube Estetica",
		ClientCaption:   "Cliente (Assinatura Digital)",
	}
}

func (b Branding) withDefaults() Branding {
	d := DefaultBranding()
	if b.Brand == "" {
		b.Brand = d.Brand
	}
	if b.Subtitle == "" {
		b.Subtitle = d.Subtitle
	}
	if b.BusinessCaption == "" {
		b.BusinessCaption = d.BusinessCaption
	}
	if b.ClientCaption == "" {
		b.ClientCaption = d.ClientCaption
	}
	return b
}

// Client is printed in the identity box on the first page.
type Client struct {
	Name     string
	TaxID    string
	Email    string
	WhatsApp string
	Address  string
}

// Document is everything needed to lay out one contract.
type Document struct {
	Number    string
	Text      string
	Company   string
	Client    Client
	Signature image.Image
}

// Renderer turns documents into PDF bytes.
type Renderer struct {
	Branding          Branding
	BusinessSignature image.Image
	Now               func() time.Time
	Logger            *slog.Logger
}

// NewRenderer returns a renderer using the wall clock.
func NewRenderer(b Branding, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{Branding: b.withDefaults(), Now: time.Now, Logger: logger}
}

// Render lays out doc. It never panics: any failure is logged and an empty
// slice is returned, which callers must treat as "no document".
func (r *Renderer) Render(ctx context.Context, doc Document) (out []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger().ErrorContext(ctx, "contract pdf render panicked",
				"number", doc.Number, "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
			out = nil
		}
	}()
	b, err := r.render(ctx, doc)
	if err != nil {
		r.logger().ErrorContext(ctx, "contract pdf render failed", "number", doc.Number, "err", err)
		return nil
	}
	return b
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// layout carries per-render state.
type layout struct {
	ctx      context.Context
	f        *gofpdf.Fpdf
	r        *Renderer
	brand    string
	client   string
	business string
}

func (r *Renderer) render(ctx context.Context, doc Document) ([]byte, error) {
	now := r.now()
	branding := r.Branding.withDefaults()

	f := gofpdf.New("P", "mm", "A4", "")
	f.SetCreationDate(now)
	f.SetModificationDate(now)
	f.SetCatalogSort(true)
	f.SetTitle(narrow("Contrato "+doc.Number), false)
	f.SetMargins(marginSide, marginTop, marginSide)
	f.SetAutoPageBreak(true, pageBreakMargin)
	f.AliasNbPages("")

	l := &layout{ctx: ctx, f: f, r: r, brand: branding.Brand}
	client, business := stampImages(doc.Signature, r.BusinessSignature)
	l.client = l.register("client", client)
	l.business = l.register("business", business)

	f.SetHeaderFunc(func() { l.header(branding.Subtitle) })
	f.SetFooterFunc(l.footer)
	f.AddPage()

	l.title(doc.Number)
	l.clientBox(doc.Client)
	for _, s := range Classify(doc.Text, doc.Company) {
		l.segment(s)
	}
	l.signatures(branding, now)

	if err := f.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stampImages scales both signatures to stamp size. The catalog orders images
// by width, so the business stamp is kept one pixel narrower on a tie.
func stampImages(client, business image.Image) (image.Image, image.Image) {
	if client != nil {
		client = sigimage.Thumbnail(client, stampMaxPixels)
	}
	if business != nil {
		business = sigimage.Thumbnail(business, stampMaxPixels)
	}
	if client == nil || business == nil {
		return client, business
	}
	if w := client.Bounds().Dx(); w > 1 && business.Bounds().Dx() == w {
		business = sigimage.Thumbnail(business, w-1)
	}
	return client, business
}

// register embeds img under a fresh name. Images that cannot be encoded are
// skipped and the document is produced without them.
func (l *layout) register(kind string, img image.Image) string {
	if img == nil {
		return ""
	}
	data, err := sigimage.EncodePNG(img)
	if err != nil {
		l.r.logger().WarnContext(l.ctx, "signature skipped", "kind", kind, "err", err)
		return ""
	}
	name := kind + "-" + uuid.NewString()
	l.f.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	if !l.f.Ok() {
		l.r.logger().WarnContext(l.ctx, "signature skipped", "kind", kind, "err", l.f.Error())
		l.f.ClearError()
		return ""
	}
	return name
}

// stamp draws a registered image centred in a box of maxW x maxH.
func (l *layout) stamp(name string, x, y, maxW, maxH float64) {
	if name == "" {
		return
	}
	info := l.f.GetImageInfo(name)
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return
	}
	w := maxW
	h := maxW * info.Height() / info.Width()
	if h > maxH {
		h = maxH
		w = maxH * info.Width() / info.Height()
	}
	l.f.ImageOptions(name, x+(maxW-w)/2, y, w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (l *layout) color(c rgb)     { l.f.SetTextColor(c.r, c.g, c.b) }
func (l *layout) drawColor(c rgb) { l.f.SetDrawColor(c.r, c.g, c.b) }

func (l *layout) cell(w, h float64, txt string, ln int, align string) {
	l.f.CellFormat(w, h, narrow(txt), "", ln, align, false, 0, "")
}

func (l *layout) header(subtitle string) {
	f := l.f
	f.SetFont(fontFamily, "B", 16)
	l.color(gold)
	l.cell(0, 10, l.brand, 1, "C")
	f.SetFont(fontFamily, "I", 10)
	l.color(greyText)
	l.cell(0, 5, subtitle, 1, "C")
	y := f.GetY()
	l.drawColor(gold)
	f.Line(marginSide, y, marginSide+contentWidth, y)
	f.Ln(15)
	l.color(black)
}

func (l *layout) footer() {
	f := l.f
	f.SetY(-25)
	y := f.GetY()
	l.stamp(l.client, marginSide, y, 15, 8)
	l.stamp(l.business, marginSide+contentWidth-15, y, 15, 8)
	f.SetY(-15)
	f.SetFont(fontFamily, "I", 8)
	l.color(greyPager)
	l.cell(0, 10, fmt.Sprintf("Pagina %d/{nb}", f.PageNo()), 0, "C")
}

func (l *layout) title(number string) {
	f := l.f
	f.SetFont(fontFamily, "B", 14)
	l.color(black)
	l.cell(0, 10, "CONTRATO DE ADESAO", 1, "C")
	f.SetFont(fontFamily, "", 10)
	l.color(gold)
	l.cell(0, 6, "N. "+number, 1, "C")
	f.Ln(10)
}

func (l *layout) clientBox(c Client) {
	f := l.f
	f.SetFillColor(250, 250, 250)
	l.drawColor(rgb{230, 230, 230})
	top := f.GetY()
	f.Rect(marginSide, top, contentWidth, 45, "DF")

	f.SetXY(marginSide+5, top+5)
	f.SetFont(fontFamily, "B", 10)
	l.color(black)
	l.cell(0, 6, "DADOS DO(A) CONTRATANTE", 1, "L")

	f.SetFont(fontFamily, "", 9)
	rows := [][2]string{
		{"Nome:", c.Name},
		{"NIF:", c.TaxID},
		{"Email:", c.Email},
		{"WhatsApp:", c.WhatsApp},
		{"Endereco:", truncateRunes(c.Address, addressMaxRunes)},
	}
	for _, row := range rows {
		f.SetX(marginSide + 5)
		l.cell(20, 6, row[0], 0, "")
		l.cell(0, 6, row[1], 1, "")
	}
	f.SetY(f.GetY() + 10)
}

func (l *layout) segment(s Segment) {
	f := l.f
	switch s.Kind {
	case KindHeading:
		f.Ln(5)
		f.SetFont(fontFamily, "B", 10)
		l.color(black)
		l.cell(0, 6, s.Text, 1, "L")
		if s.Title != "" {
			l.cell(0, 6, s.Title, 1, "L")
		}
		f.SetFont(fontFamily, "", 9)
		f.Ln(2)
	case KindSubheading:
		f.Ln(2)
		f.SetFont(fontFamily, "B", 9)
		l.cell(0, 5, s.Text, 1, "")
		f.SetFont(fontFamily, "", 9)
	case KindTable:
		l.comparisonTable()
	case KindGap:
		f.Ln(2)
	default:
		l.body(s.Text)
	}
}

// body wraps a paragraph; a failed wrap is retried once at 8 pt and then dropped.
func (l *layout) body(text string) {
	f := l.f
	txt := narrow(text)
	f.SetFont(fontFamily, "", 9)
	f.SetX(marginSide)
	f.MultiCell(0, 5, txt, "", "J", false)
	if f.Ok() {
		return
	}
	l.r.logger().WarnContext(l.ctx, "body line wrap failed, retrying smaller", "err", f.Error())
	f.ClearError()
	f.SetFont(fontFamily, "", 8)
	f.SetX(marginSide)
	f.MultiCell(0, 5, txt, "", "J", false)
	if !f.Ok() {
		l.r.logger().WarnContext(l.ctx, "body line dropped", "err", f.Error())
		f.ClearError()
	}
	f.SetFont(fontFamily, "", 9)
}

func (l *layout) comparisonTable() {
	f := l.f
	const colW, rowH = 35.0, 8.0
	f.Ln(5)
	f.SetFont(fontFamily, "B", 8)
	f.SetFillColor(240, 240, 240)
	l.drawColor(black)
	l.color(black)
	for _, h := range plans.ComparisonHeaders {
		f.CellFormat(colW, rowH, narrow(h), "1", 0, "C", true, 0, "")
	}
	f.Ln(-1)
	f.SetFont(fontFamily, "", 8)
	for _, row := range plans.ComparisonRows() {
		for _, c := range row.Cells() {
			f.CellFormat(colW, rowH, narrow(c), "1", 0, "C", false, 0, "")
		}
		f.Ln(-1)
	}
	f.Ln(5)
	f.SetFont(fontFamily, "", 9)
}

// signatures keeps the whole block on one page.
func (l *layout) signatures(b Branding, now time.Time) {
	f := l.f
	_, pageH := f.GetPageSize()
	if f.GetY()+signatureBlockHeight > pageH-pageBreakMargin {
		f.AddPage()
	}
	f.Ln(10)
	f.SetFont(fontFamily, "B", 10)
	l.color(black)
	l.cell(0, 10, "ASSINATURAS", 1, "C")
	f.Ln(5)

	y := f.GetY()
	l.stamp(l.client, 45, y, 40, 22)
	l.stamp(l.business, 135, y, 40, 22)
	f.Ln(25)

	y = f.GetY()
	l.drawColor(black)
	f.Line(30, y, 90, y)
	f.Line(120, y, 180, y)
	f.Ln(2)

	f.SetFont(fontFamily, "", 8)
	l.cell(75, 5, b.ClientCaption, 0, "C")
	l.cell(15, 5, "", 0, "")
	l.cell(75, 5, b.BusinessCaption, 1, "C")
	f.Ln(5)
	l.color(greyStamp)
	l.cell(0, 5, "Assinado digitalmente em: "+i18n.DateTime(now), 1, "C")
}
