package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-contracts/auth"
)

type identityForm struct {
	Name, TaxID, Email, WhatsApp, Address string
}

func TestRenderStatus_LayoutAndPartials(t *testing.T) {
	ResetForTests()
	SetBaseDir("../templates")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	err := RenderStatus(w, r, http.StatusUnprocessableEntity, "wizard/identity.html", map[string]any{
		"Form":   identityForm{Name: "Ana <b>"},
		"Step":   1,
		"Steps":  []string{"Dados", "Plano", "Assinatura", "Fim"},
		"Errors": map[string]string{"email": "E-mail inválido"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`<html lang="pt-PT">`, `class="current">Dados`, "E-mail inválido", "Ana &lt;b&gt;"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in body", want)
		}
	}
	if strings.Contains(body, `action="/admin/logout"`) {
		t.Errorf("admin nav shown to anonymous visitor")
	}
}

func TestRender_AdminNavUsesRequestContext(t *testing.T) {
	ResetForTests()
	SetBaseDir("../templates")

	// First render warms the cache; the second must still see its own request.
	anon := httptest.NewRecorder()
	if err := Render(anon, httptest.NewRequest(http.MethodGet, "/admin/login", nil), "admin/login.html", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	r = r.WithContext(auth.WithAdmin(r.Context()))
	admin := httptest.NewRecorder()
	if err := Render(admin, r, "admin/login.html", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(anon.Body.String(), `action="/admin/logout"`) {
		t.Fatalf("anonymous page shows admin nav")
	}
	if !strings.Contains(admin.Body.String(), `action="/admin/logout"`) {
		t.Fatalf("admin page misses admin nav")
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	ResetForTests()
	SetBaseDir("../templates")
	w := httptest.NewRecorder()
	if err := Render(w, httptest.NewRequest(http.MethodGet, "/", nil), "nope/missing.html", nil); err == nil {
		t.Fatal("expected error")
	}
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
}

func TestFuncs(t *testing.T) {
	f := Funcs(httptest.NewRequest(http.MethodGet, "/", nil))
	if got := f["euro"].(func(int) string)(390); got != "390 €" {
		t.Fatalf("euro = %q", got)
	}
	d := f["dict"].(func(...any) map[string]any)("A", 1, "B", "x")
	if d["A"] != 1 || d["B"] != "x" {
		t.Fatalf("dict = %v", d)
	}
	if f["dict"].(func(...any) map[string]any)("odd") != nil {
		t.Fatal("dict with odd args should be nil")
	}
}
