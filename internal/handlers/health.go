package handlers

import (
	"net/http"

	"github.com/diewo77/go-contracts/httpx"
	"github.com/diewo77/go-contracts/internal/db"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live reports that the process is up.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready also checks the database.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(h.db); err != nil {
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "db": err.Error()})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "ok"})
}
