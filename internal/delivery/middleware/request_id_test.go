package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "yearbook/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "generated when absent", reuse: false},
		{name: "client id reused", header: "trace-01.abc_9", reuse: true},
		{name: "malformed id replaced", header: "bad id\nwith newline", reuse: false},
		{name: "oversized id replaced", header: string(make([]byte, 65)), reuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.header != "" {
				req.Header[deliverycontext.HeaderXRequestID] = []string{tt.header}
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
			err := m.Process(func(c echo.Context) error {
				ctx := c.Request().Context()
				seen = deliverycontext.GetRequestIDFromContext(ctx)
				assert.NotNil(t, deliverycontext.GetLogger(ctx))
				assert.Equal(t, seen, deliverycontext.GetRequestID(c))

				return nil
			})(c)

			require.NoError(t, err)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			if tt.reuse {
				assert.Equal(t, tt.header, seen)
			} else {
				_, parseErr := uuid.Parse(seen)
				assert.NoError(t, parseErr)
			}
		})
	}
}
