package services

import (
	"context"
	"strings"

	"github.com/diewo77/go-contracts/internal/contract"
	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// All returns every known setting; keys missing from the table carry their default.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	values := make(map[string]string, len(models.SettingKeys()))
	for _, d := range models.DefaultSettings() {
		values[d.Key] = d.Value
	}
	var rows []models.Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		if models.IsSettingKey(r.Key) {
			values[r.Key] = r.Value
		}
	}
	return values, nil
}

// Company returns the contracted business as printed on contracts.
func (s *SettingsService) Company(ctx context.Context) (contract.Company, error) {
	values, err := s.All(ctx)
	if err != nil {
		return contract.Company{}, err
	}
	return models.CompanyFromSettings(values), nil
}

// Update stores the given values. Unknown keys and empty values are rejected
// as validation.Violations and nothing is written.
func (s *SettingsService) Update(ctx context.Context, values map[string]string) error {
	v := validation.Violations{}
	rows := make([]models.Setting, 0, len(values))
	for k, val := range values {
		if !models.IsSettingKey(k) {
			v[k] = "invalid_setting"
			continue
		}
		val = strings.TrimSpace(val)
		validation.Required(k, val, v)
		rows = append(rows, models.Setting{Key: k, Value: val})
	}
	if !v.Empty() {
		return v
	}
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&rows).Error
	})
}
