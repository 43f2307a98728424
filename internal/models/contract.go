package models

import (
	"time"

	"github.com/diewo77/go-contracts/internal/contract"
	"github.com/diewo77/go-contracts/internal/pdf"
	"gorm.io/gorm"
)

// Contract is a signed membership agreement.
// Rows are append-only: once created they are never updated or deleted.
type Contract struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Contract identification
	Number string `gorm:"column:contract_number;size:32;uniqueIndex;not null" json:"contract_number"`

	// Client identity
	Name     string `gorm:"size:255;not null;index" json:"name"`
	TaxID    string `gorm:"size:32;not null" json:"tax_id"`
	WhatsApp string `gorm:"size:64;not null" json:"whatsapp"`
	Email    string `gorm:"size:255;not null" json:"email"`
	Address  string `gorm:"type:text;not null" json:"address"`

	// Plan label as chosen in the wizard
	Plan string `gorm:"size:64;not null" json:"plan"`

	// SignatureData is a PNG data URI; may be empty.
	SignatureData string `gorm:"type:text" json:"signature_data,omitempty"`
}

// BeforeUpdate refuses any modification of a stored contract.
func (c *Contract) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

// BeforeDelete refuses removal of a stored contract.
func (c *Contract) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutable
}

// HasSignature reports whether a client signature was captured.
func (c *Contract) HasSignature() bool {
	return c.SignatureData != ""
}

// ClientData maps the record to the composer's client block.
func (c *Contract) ClientData() contract.Client {
	return contract.Client{
		Name:     c.Name,
		TaxID:    c.TaxID,
		Email:    c.Email,
		WhatsApp: c.WhatsApp,
		Address:  c.Address,
	}
}

// PDFClient maps the record to the identity box of the PDF.
func (c *Contract) PDFClient() pdf.Client {
	return pdf.Client{
		Name:     c.Name,
		TaxID:    c.TaxID,
		Email:    c.Email,
		WhatsApp: c.WhatsApp,
		Address:  c.Address,
	}
}
