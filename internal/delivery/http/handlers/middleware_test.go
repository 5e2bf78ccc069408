package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

type fakeTokens struct {
	actor *domain.Actor
	err   error
}

func (f *fakeTokens) Issue(_ *domain.TeamMember) (string, error) { return "token", nil }

func (f *fakeTokens) Parse(_ string) (*domain.Actor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.actor, nil
}

func testHandlers(tokens *fakeTokens) *Handlers {
	gin.SetMode(gin.TestMode)
	return &Handlers{
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokens: tokens,
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("client id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "req-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
	})
}

func TestAuthMiddleware(t *testing.T) {
	manager := &domain.Actor{UID: "mem1", IsManager: true}

	newRouter := func(tokens *fakeTokens) *gin.Engine {
		h := testHandlers(tokens)
		router := gin.New()
		router.GET("/protected", h.Auth(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"uid": currentActor(c).UID})
		})
		router.GET("/managers", h.Auth(), h.RequireManager(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	do := func(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("missing header", func(t *testing.T) {
		w := do(newRouter(&fakeTokens{actor: manager}), "/protected", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": {"code": "UNAUTHORIZED", "message": "missing or invalid credentials"}}`, w.Body.String())
	})

	t.Run("malformed header", func(t *testing.T) {
		w := do(newRouter(&fakeTokens{actor: manager}), "/protected", "Basic abc")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := do(newRouter(&fakeTokens{err: domain.ErrUnauthorized}), "/protected", "Bearer bad")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token attaches actor", func(t *testing.T) {
		w := do(newRouter(&fakeTokens{actor: manager}), "/protected", "Bearer good")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"uid": "mem1"}`, w.Body.String())
	})

	t.Run("manager passes role gate", func(t *testing.T) {
		w := do(newRouter(&fakeTokens{actor: manager}), "/managers", "Bearer good")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-manager rejected", func(t *testing.T) {
		member := &domain.Actor{UID: "mem2"}
		w := do(newRouter(&fakeTokens{actor: member}), "/managers", "Bearer good")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error": {"code": "FORBIDDEN", "message": "manager role required"}}`, w.Body.String())
	})
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"member not found", domain.ErrMemberNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"report not found", domain.ErrReportNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"email conflict", domain.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"manager notes reserved", domain.ErrManagerNotesReserved, http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"team not found", domain.ErrTeamNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown error", errors.New("contentstack exploded"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandlers(&fakeTokens{})
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"`+tt.wantCode+`"`)
		})
	}
}

func TestSplitSentinel(t *testing.T) {
	code, message := splitSentinel("NOT_FOUND: team member not found")
	assert.Equal(t, "NOT_FOUND", code)
	assert.Equal(t, "team member not found", message)

	code, message = splitSentinel("no separator here")
	assert.Equal(t, "INTERNAL", code)
	assert.Equal(t, "no separator here", message)
}
