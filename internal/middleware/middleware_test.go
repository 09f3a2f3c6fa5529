package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers struct {
	users map[string]*models.User
	err   error
}

func (s *stubUsers) GetUserByID(id string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func newTokens(t *testing.T) *security.TokenService {
	t.Helper()
	tokens, err := security.NewTokenService("test-secret", "HS256")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

func issue(t *testing.T, tokens *security.TokenService, userID, role string, ttl time.Duration) string {
	t.Helper()
	token, err := tokens.Issue(security.Claims{UserID: userID, Role: role}, ttl)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func protectedRouter(tokens *security.TokenService, users UserLookup, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(tokens, users)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID), "role": c.GetString(ContextRole)})
	})
	r.GET("/protected", chain...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse error body: %v\nbody: %s", err, rec.Body.String())
	}
	return body.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens(t)
	users := &stubUsers{users: map[string]*models.User{
		"u-1": {ID: "u-1", Role: models.RoleUser},
	}}
	r := protectedRouter(tokens, users)

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		rec := get(r, "Bearer "+issue(t, tokens, "u-1", models.RoleUser, time.Hour))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body map[string]string
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body["user_id"] != "u-1" || body["role"] != models.RoleUser {
			t.Errorf("unexpected context values: %v", body)
		}
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		rec := get(r, "bearer "+issue(t, tokens, "u-1", models.RoleUser, time.Hour))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	tests := []struct {
		name   string
		header func() string
	}{
		{"missing header", func() string { return "" }},
		{"wrong scheme", func() string { return "Basic abc" }},
		{"empty token", func() string { return "Bearer " }},
		{"garbage token", func() string { return "Bearer not-a-jwt" }},
		{"expired token", func() string {
			past := tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
			return "Bearer " + issue(t, past, "u-1", models.RoleUser, time.Hour)
		}},
		{"wrong secret", func() string {
			other, _ := security.NewTokenService("other-secret", "HS256")
			return "Bearer " + issue(t, other, "u-1", models.RoleUser, time.Hour)
		}},
		{"deleted user", func() string {
			return "Bearer " + issue(t, tokens, "gone", models.RoleUser, time.Hour)
		}},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			rec := get(r, tt.header())
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
			if code := errorCode(t, rec); code != "UNAUTHORIZED" {
				t.Errorf("expected UNAUTHORIZED, got %s", code)
			}
			if rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("expected WWW-Authenticate header")
			}
		})
	}

	t.Run("store failure is an internal error", func(t *testing.T) {
		failing := protectedRouter(tokens, &stubUsers{err: apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down"))})
		rec := get(failing, "Bearer "+issue(t, tokens, "u-1", models.RoleUser, time.Hour))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	tokens := newTokens(t)
	users := &stubUsers{users: map[string]*models.User{
		"user":  {ID: "user", Role: models.RoleUser},
		"admin": {ID: "admin", Role: models.RoleAdmin},
	}}
	r := protectedRouter(tokens, users, RequireRole(models.RoleAdmin))

	t.Run("admin passes", func(t *testing.T) {
		rec := get(r, "Bearer "+issue(t, tokens, "admin", models.RoleAdmin, time.Hour))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("role is read from the user record", func(t *testing.T) {
		// A token claiming admin does not grant it.
		rec := get(r, "Bearer "+issue(t, tokens, "user", models.RoleAdmin, time.Hour))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "FORBIDDEN" {
			t.Errorf("expected FORBIDDEN, got %s", code)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail bool
	}{
		{"app error", apperrors.ErrGoalNotFound, http.StatusNotFound, "GOAL_NOT_FOUND", false},
		{"wrapped app error", apperrors.Wrap(apperrors.ErrInternalServer, errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR", false},
		{"validation details", apperrors.WithDetails(apperrors.ErrValidation, []apperrors.FieldError{{Field: "amount", Rule: "gt", Message: "too small"}}), http.StatusUnprocessableEntity, "VALIDATION_ERROR", true},
		{"plain error", errors.New("secret detail"), http.StatusInternalServerError, "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/fail", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body struct {
				Error struct {
					Code    string                 `json:"code"`
					Message string                 `json:"message"`
					Details []apperrors.FieldError `json:"details"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, body.Error.Code)
			}
			if tt.wantDetail != (len(body.Error.Details) > 0) {
				t.Errorf("unexpected details: %v", body.Error.Details)
			}
			if body.Error.Message == "secret detail" {
				t.Error("internal error message leaked to the client")
			}
		})
	}
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	t.Run("assigns a request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := rec.Header().Get("X-Request-ID")
		if id == "" || id != rec.Body.String() {
			t.Errorf("expected matching request id, header=%q body=%q", id, rec.Body.String())
		}
	})

	t.Run("reuses a valid incoming id", func(t *testing.T) {
		const incoming = "0190f5d4-7b1c-7cc3-9d2e-3b9b5c4e8a11"
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", incoming)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Header().Get("X-Request-ID") != incoming {
			t.Errorf("expected %s, got %s", incoming, rec.Header().Get("X-Request-ID"))
		}
	})

	t.Run("replaces an invalid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "<script>")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Header().Get("X-Request-ID") == "<script>" {
			t.Error("invalid request id was echoed")
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/x", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected wildcard origin")
	}
}
