package check

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	sessionguard "github.com/magabrotheeeer/exam-trainer/internal/services/sessionguard"
)

type GuardMock struct {
	mock.Mock
}

func (m *GuardMock) Check(ctx context.Context, username, deviceToken string) sessionguard.Verdict {
	args := m.Called(ctx, username, deviceToken)
	return args.Get(0).(sessionguard.Verdict)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCheckHandler_ServeHTTP(t *testing.T) {
	guardMock := new(GuardMock)
	logger := newNoopLogger()

	handler := New(logger, guardMock)

	tests := []struct {
		name           string
		deviceHeader   string
		verdict        sessionguard.Verdict
		wantStatusCode int
		wantStatus     string
		wantRedirect   string
		wantCookieGone bool
	}{
		{
			name:           "device matches",
			deviceHeader:   "device-1",
			verdict:        sessionguard.VerdictAuthorized,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "conflict forces logout",
			deviceHeader:   "device-stale",
			verdict:        sessionguard.VerdictConflict,
			wantStatusCode: http.StatusConflict,
			wantStatus:     "Error",
			wantRedirect:   ConflictRedirect,
			wantCookieGone: true,
		},
		{
			name:           "missing header still authorized",
			deviceHeader:   "",
			verdict:        sessionguard.VerdictAuthorized,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guardMock.ExpectedCalls = nil
			guardMock.Calls = nil

			guardMock.On("Check", mock.Anything, "user1", tt.deviceHeader).
				Return(tt.verdict).Once()

			req := httptest.NewRequest(http.MethodPost, "/session/check", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.User, "user1")
			req = req.WithContext(ctx)
			if tt.deviceHeader != "" {
				req.Header.Set(DeviceHeader, tt.deviceHeader)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantRedirect != "" {
				assert.Equal(t, tt.wantRedirect, got["redirect"])
			}

			if tt.wantCookieGone {
				cookies := rec.Result().Cookies()
				var found bool
				for _, c := range cookies {
					if c.Name == middlewarectx.SessionCookieName {
						found = true
						assert.Empty(t, c.Value)
						assert.Negative(t, c.MaxAge)
					}
				}
				assert.True(t, found, "session cookie must be cleared on conflict")
			}

			guardMock.AssertExpectations(t)
		})
	}
}
