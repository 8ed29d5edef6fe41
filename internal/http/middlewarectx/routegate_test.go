package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
	authservice "github.com/magabrotheeeer/exam-trainer/internal/services/auth"
)

// Mock for SessionResolver
type SessionResolverMock struct {
	mock.Mock
}

func (m *SessionResolverMock) ResolveSession(ctx context.Context, token string) (authservice.Session, error) {
	args := m.Called(ctx, token)
	sess, _ := args.Get(0).(authservice.Session)
	return sess, args.Error(1)
}

func TestRouteGate(t *testing.T) {
	logger := newNoopLogger()

	regularUser := &models.User{Username: "user1", Role: models.RoleUser}
	adminUser := &models.User{Username: "root", Role: models.RoleAdmin}

	tests := []struct {
		name          string
		path          string
		cookieToken   string
		sess          authservice.Session
		resolveErr    error
		setupResolver bool
		wantNextCall  bool
		wantStatus    int
		wantLocation  string
	}{
		{
			name:         "static asset skipped without session resolution",
			path:         "/static/app.js",
			cookieToken:  "tok",
			wantNextCall: true,
			wantStatus:   http.StatusOK,
		},
		{
			name:         "api path skipped",
			path:         "/api/v1/login",
			cookieToken:  "tok",
			wantNextCall: true,
			wantStatus:   http.StatusOK,
		},
		{
			name:         "anonymous without cookie on protected page",
			path:         "/dashboard",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:          "anonymous with invalid token on protected page",
			path:          "/test/42",
			cookieToken:   "garbage",
			sess:          authservice.Session{},
			setupResolver: true,
			wantStatus:    http.StatusSeeOther,
			wantLocation:  "/login",
		},
		{
			name:         "anonymous on admin page goes to login",
			path:         "/admin/users",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:         "anonymous on public page passes",
			path:         "/",
			wantNextCall: true,
			wantStatus:   http.StatusOK,
		},
		{
			name:          "authenticated on login page bounces to dashboard",
			path:          "/login",
			cookieToken:   "tok",
			sess:          authservice.Session{Authenticated: true, User: regularUser},
			setupResolver: true,
			wantStatus:    http.StatusSeeOther,
			wantLocation:  "/dashboard",
		},
		{
			name:          "authenticated on register page bounces to dashboard",
			path:          "/register",
			cookieToken:   "tok",
			sess:          authservice.Session{Authenticated: true, User: regularUser},
			setupResolver: true,
			wantStatus:    http.StatusSeeOther,
			wantLocation:  "/dashboard",
		},
		{
			name:          "authenticated user on protected page passes",
			path:          "/tickets",
			cookieToken:   "tok",
			sess:          authservice.Session{Authenticated: true, User: regularUser},
			setupResolver: true,
			wantNextCall:  true,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "non-admin on admin page bounces to dashboard",
			path:          "/admin/users",
			cookieToken:   "tok",
			sess:          authservice.Session{Authenticated: true, User: regularUser},
			setupResolver: true,
			wantStatus:    http.StatusSeeOther,
			wantLocation:  "/dashboard",
		},
		{
			name:          "admin on admin page passes",
			path:          "/admin/users",
			cookieToken:   "tok",
			sess:          authservice.Session{Authenticated: true, User: adminUser},
			setupResolver: true,
			wantNextCall:  true,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "backend error on regular page fails open",
			path:          "/dashboard",
			cookieToken:   "tok",
			sess:          authservice.Session{Authenticated: true},
			resolveErr:    errors.New("db down"),
			setupResolver: true,
			wantNextCall:  true,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "backend error on admin page fails closed",
			path:          "/admin/users",
			cookieToken:   "tok",
			sess:          authservice.Session{Authenticated: true},
			resolveErr:    errors.New("db down"),
			setupResolver: true,
			wantStatus:    http.StatusSeeOther,
			wantLocation:  "/dashboard",
		},
		{
			name:          "unauthenticated admin page with backend error fails open",
			path:          "/admin/users",
			cookieToken:   "tok",
			sess:          authservice.Session{},
			resolveErr:    errors.New("db down"),
			setupResolver: true,
			wantNextCall:  true,
			wantStatus:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(SessionResolverMock)
			if tt.setupResolver {
				resolver.On("ResolveSession", mock.Anything, tt.cookieToken).
					Return(tt.sess, tt.resolveErr).Once()
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			gate := middlewarectx.RouteGate(resolver, logger, time.Hour)(next)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookieToken != "" {
				req.AddCookie(middlewarectx.SessionCookie(tt.cookieToken, time.Hour))
			}

			rec := httptest.NewRecorder()

			gate.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNextCall, nextCalled)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestRouteGate_RefreshedTokenSetsCookie(t *testing.T) {
	logger := newNoopLogger()
	resolver := new(SessionResolverMock)
	resolver.On("ResolveSession", mock.Anything, "old-token").
		Return(authservice.Session{
			Authenticated:  true,
			User:           &models.User{Username: "user1", Role: models.RoleUser},
			RefreshedToken: "new-token",
		}, nil).Once()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := middlewarectx.RouteGate(resolver, logger, time.Hour)(next)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(middlewarectx.SessionCookie("old-token", time.Hour))
	rec := httptest.NewRecorder()

	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middlewarectx.SessionCookieName {
			found = true
			assert.Equal(t, "new-token", c.Value)
		}
	}
	assert.True(t, found, "refreshed session cookie must be set")
	resolver.AssertExpectations(t)
}
