// Package auth implements the static admin password gate and its signed session cookie.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

const (
	sessionCookieName = "admin_session"
	adminCtxKey       = ctxKey("admin")
	sessionSubject    = "admin"

	// DefaultSessionTTL bounds how long an admin stays logged in.
	DefaultSessionTTL = 12 * time.Hour
)

// ErrNoPassword is returned when neither a password nor a hash is configured.
var ErrNoPassword = errors.New("auth: admin password not configured")

// Admin checks the admin password and issues signed session cookies.
type Admin struct {
	hash   []byte
	secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// NewAdmin builds the gate. A bcrypt hash wins over a plain password; a plain
// password is hashed once here so it never stays in memory as a comparison value.
func NewAdmin(password, passwordHash, secret string) (*Admin, error) {
	var hash []byte
	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("auth: invalid password hash: %w", err)
		}
		hash = []byte(passwordHash)
	case password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password: %w", err)
		}
		hash = h
	default:
		return nil, ErrNoPassword
	}
	if secret == "" {
		secret = "devsessionsecret"
	}
	return &Admin{hash: hash, secret: []byte(secret), TTL: DefaultSessionTTL, now: time.Now}, nil
}

// CheckPassword reports whether pw is the admin password.
func (a *Admin) CheckPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(pw)) == nil
}

func (a *Admin) sign(payload string) string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie that expires after TTL.
func (a *Admin) CreateSession(w http.ResponseWriter) {
	expires := a.now().Add(a.TTL)
	payload := sessionSubject + "." + strconv.FormatInt(expires.Unix(), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + a.sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

// ClearSession deletes the session cookie.
func (a *Admin) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and expiry.
func (a *Admin) ParseSession(r *http.Request) bool {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 3 || parts[0] != sessionSubject {
		return false
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(a.sign(payload))) {
		return false
	}
	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return false
	}
	return a.now().Before(time.Unix(exp, 0))
}

// WithAdmin marks the context as belonging to a logged-in admin.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminCtxKey, true)
}

// IsAdmin reports whether WithAdmin was applied.
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(adminCtxKey).(bool)
	return v
}

// Middleware attaches the admin flag to the request context if the cookie is valid.
func (a *Admin) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.ParseSession(r) {
			r = r.WithContext(WithAdmin(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin redirects to /admin/login (HTML) or returns 401 JSON.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			accept := r.Header.Get("Accept")
			if strings.HasPrefix(r.URL.Path, "/api/") || (strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":"unauthorized"}`)
				return
			}
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
