package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-contracts/internal/contract"
	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/diewo77/go-contracts/validation"
	"gorm.io/gorm"
)

// maxNumberAttempts bounds retries when another writer took the same number.
const maxNumberAttempts = 5

// NewContract is what a client submits to create a contract.
type NewContract struct {
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	WhatsApp  string `json:"whatsapp"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Plan      string `json:"plan"`
	Signature string `json:"signature"`
}

func (n NewContract) trimmed() NewContract {
	return NewContract{
		Name:      strings.TrimSpace(n.Name),
		TaxID:     strings.TrimSpace(n.TaxID),
		WhatsApp:  strings.TrimSpace(n.WhatsApp),
		Email:     strings.TrimSpace(n.Email),
		Address:   strings.TrimSpace(n.Address),
		Plan:      strings.TrimSpace(n.Plan),
		Signature: strings.TrimSpace(n.Signature),
	}
}

// Validate checks that every identity field and the plan label are present.
// Plan labels are not checked against the catalog; unknown labels resolve later.
func (n NewContract) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", n.Name, v)
	validation.Required("tax_id", n.TaxID, v)
	validation.Required("whatsapp", n.WhatsApp, v)
	validation.Required("email", n.Email, v)
	validation.Required("address", n.Address, v)
	validation.Required("plan", n.Plan, v)
	return v
}

// ContractService stores contracts and assigns their numbers.
type ContractService struct {
	db  *gorm.DB
	log *slog.Logger
	now func() time.Time

	// mu serializes number assignment inside this process; the unique index
	// and retry loop cover other processes sharing the database.
	mu sync.Mutex
}

func NewContractService(db *gorm.DB, log *slog.Logger) *ContractService {
	if log == nil {
		log = slog.Default()
	}
	return &ContractService{db: db, log: log, now: time.Now}
}

// Create validates in, assigns the next number of the current year and
// stores the contract. Validation failures are returned as validation.Violations.
func (s *ContractService) Create(ctx context.Context, in NewContract) (*models.Contract, error) {
	in = in.trimmed()
	if v := in.Validate(); !v.Empty() {
		return nil, v
	}

	sig := in.Signature
	if sig != "" {
		if norm, err := sigimage.Normalize(sig); err == nil {
			sig = norm
		} else {
			s.log.WarnContext(ctx, "storing undecodable signature as received", "err", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	year := now.Year()
	var lastErr error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		c := &models.Contract{
			CreatedAt:     now,
			Name:          in.Name,
			TaxID:         in.TaxID,
			WhatsApp:      in.WhatsApp,
			Email:         in.Email,
			Address:       in.Address,
			Plan:          in.Plan,
			SignatureData: sig,
		}
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			n, err := countYear(tx, year)
			if err != nil {
				return err
			}
			c.Number = contract.FormatNumber(year, n)
			return tx.Create(c).Error
		})
		if err == nil {
			s.log.InfoContext(ctx, "contract created", "number", c.Number, "plan", c.Plan)
			return c, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create contract: %w", err)
		}
		lastErr = err
		s.log.WarnContext(ctx, "contract number collision, retrying", "number", c.Number, "attempt", attempt)
	}
	return nil, fmt.Errorf("%w: %v", ErrNumberExhausted, lastErr)
}

func countYear(tx *gorm.DB, year int) (int64, error) {
	var n int64
	err := tx.Model(&models.Contract{}).
		Where("contract_number LIKE ?", contract.NumberPrefix(year)+"%").
		Count(&n).Error
	return n, err
}

// NextNumber returns the number the next contract of year would receive.
func (s *ContractService) NextNumber(ctx context.Context, year int) (string, error) {
	n, err := countYear(s.db.WithContext(ctx), year)
	if err != nil {
		return "", err
	}
	return contract.FormatNumber(year, n), nil
}

// Search lists contracts whose name contains q (case-insensitive), newest
// first. Signatures are not loaded.
func (s *ContractService) Search(ctx context.Context, q string) ([]models.Contract, error) {
	var out []models.Contract
	tx := s.db.WithContext(ctx).Omit("signature_data").Order("created_at DESC").Order("id DESC")
	if q = strings.TrimSpace(q); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads a contract with its signature.
func (s *ContractService) Get(ctx context.Context, number string) (*models.Contract, error) {
	var c models.Contract
	err := s.db.WithContext(ctx).Where("contract_number = ?", number).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
