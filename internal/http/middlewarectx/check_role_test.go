package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vetrovdenis/ad-marketplace/internal/http/middlewarectx"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		ctxRole        any
		allowed        []string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "vendor allowed to mutate",
			ctxRole:        "vendor",
			allowed:        []string{"vendor"},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "plain user forbidden",
			ctxRole:        "user",
			allowed:        []string{"vendor"},
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "role missing from context",
			ctxRole:        nil,
			allowed:        []string{"vendor"},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "empty role in context",
			ctxRole:        "",
			allowed:        []string{"vendor"},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.RequireRole(newNoopLogger(), tt.allowed...)(nextHandler)

			req := httptest.NewRequest(http.MethodPost, "/advert", nil)
			if tt.ctxRole != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Role, tt.ctxRole))
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
