package services

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC)

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(models.DefaultSettings()).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func newContractService(db *gorm.DB) *ContractService {
	s := NewContractService(db, quietLog())
	s.now = func() time.Time { return fixedNow }
	return s
}

func validInput() NewContract {
	return NewContract{
		Name:     "Ana Pereira",
		TaxID:    "123456789",
		WhatsApp: "+351 912 345 678",
		Email:    "ana@example.com",
		Address:  "Rua das Flores 10, Porto",
		Plan:     "PREMIUM - Anual",
	}
}

func signatureURI(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 300, 100))
	for x := 20; x < 280; x++ {
		img.Set(x, 50+(x%20)-10, color.NRGBA{0, 0, 0, 255})
	}
	s, err := sigimage.EncodeDataURI(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return s
}
