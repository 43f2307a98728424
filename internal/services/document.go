package services

import (
	"context"
	"image"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/diewo77/go-contracts/internal/contract"
	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/pdf"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/diewo77/go-contracts/internal/telemetry"
)

// DocumentService turns contracts into text and PDF using the current settings.
type DocumentService struct {
	settings *SettingsService
	renderer *pdf.Renderer
	log      *slog.Logger
	now      func() time.Time
}

func NewDocumentService(settings *SettingsService, renderer *pdf.Renderer, log *slog.Logger) *DocumentService {
	if log == nil {
		log = slog.Default()
	}
	return &DocumentService{settings: settings, renderer: renderer, log: log, now: time.Now}
}

func (s *DocumentService) compose(ctx context.Context, c *models.Contract, number string) (string, contract.Company, error) {
	company, err := s.settings.Company(ctx)
	if err != nil {
		return "", contract.Company{}, err
	}
	date := c.CreatedAt
	if date.IsZero() {
		date = s.now()
	}
	text := contract.Compose(contract.Input{
		Client:  c.ClientData(),
		Plan:    c.Plan,
		Company: company,
		Number:  number,
		Date:    date,
	})
	return text, company, nil
}

// Preview composes the text an unsaved contract would get, numbered as a draft.
func (s *DocumentService) Preview(ctx context.Context, c *models.Contract) (string, error) {
	text, _, err := s.compose(ctx, c, contract.PreviewNumber(s.now().Year()))
	return text, err
}

// Text composes the text of a stored contract. The date in the text is the
// contract's CreatedAt, not the current day.
func (s *DocumentService) Text(ctx context.Context, c *models.Contract) (string, error) {
	text, _, err := s.compose(ctx, c, c.Number)
	return text, err
}

// Render produces the PDF of a stored contract. The contract text is dated
// with CreatedAt, so a PDF regenerated later keeps the signing date. A corrupt
// signature is left out of the document; an empty result is reported as
// ErrEmptyDocument.
func (s *DocumentService) Render(ctx context.Context, c *models.Contract) ([]byte, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "contract.render",
		trace.WithAttributes(attribute.String("contract.number", c.Number), attribute.String("contract.plan", c.Plan)))
	defer span.End()

	text, company, err := s.compose(ctx, c, c.Number)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load settings")
		return nil, err
	}

	var sig image.Image
	if c.HasSignature() {
		img, err := sigimage.Decode(c.SignatureData)
		if err != nil {
			s.log.WarnContext(ctx, "signature omitted from pdf", "number", c.Number, "err", err)
		} else {
			sig = img
		}
	}
	span.SetAttributes(attribute.Bool("contract.signature", sig != nil))

	out := s.renderer.Render(ctx, pdf.Document{
		Number:    c.Number,
		Text:      text,
		Company:   company.Name,
		Client:    c.PDFClient(),
		Signature: sig,
	})
	if len(out) == 0 {
		span.SetStatus(codes.Error, ErrEmptyDocument.Error())
		return nil, ErrEmptyDocument
	}
	span.SetAttributes(attribute.Int("pdf.bytes", len(out)))
	return out, nil
}
