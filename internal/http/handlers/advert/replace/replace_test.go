package replace

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vetrovdenis/ad-marketplace/internal/http/middlewarectx"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// MockService реализует интерфейс replace.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Replace(ctx context.Context, userUID, id string, req models.DummyAdvert, flyer *models.FlyerUpload) error {
	args := m.Called(ctx, userUID, id, req, flyer)
	return args.Error(0)
}

const (
	advertID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	userUID  = "6c1a1f34-9e05-4f2a-9a15-1f6f21f0a111"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newReplaceRequest(t *testing.T, fields map[string]string, uid string) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/advert/"+advertID, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", advertID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if uid != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, uid)
	}
	return req.WithContext(ctx)
}

func TestReplaceHandler_ServeHTTP(t *testing.T) {
	validFields := map[string]string{
		"title":       "Spring sale",
		"description": "New discounts",
		"price":       "49.90",
		"category":    "electronics",
	}

	t.Run("владелец заменяет объявление", func(t *testing.T) {
		serviceMock := new(MockService)
		serviceMock.On("Replace", mock.Anything, userUID, advertID, models.DummyAdvert{
			Title:       "Spring sale",
			Description: "New discounts",
			Price:       49.90,
			Category:    "electronics",
		}, (*models.FlyerUpload)(nil)).Return(nil).Once()

		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newReplaceRequest(t, validFields, userUID))

		assert.Equal(t, http.StatusOK, rec.Code)
		serviceMock.AssertExpectations(t)
	})

	t.Run("неполная форма не проходит валидацию", func(t *testing.T) {
		serviceMock := new(MockService)
		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newReplaceRequest(t, map[string]string{
			"price": "49.90",
		}, userUID))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		serviceMock.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("не владелец объявления", func(t *testing.T) {
		serviceMock := new(MockService)
		serviceMock.On("Replace", mock.Anything, userUID, advertID, mock.Anything, mock.Anything).
			Return(errlist.ErrAccessDenied).Once()

		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newReplaceRequest(t, validFields, userUID))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "access denied")
	})

	t.Run("объявление не найдено", func(t *testing.T) {
		serviceMock := new(MockService)
		serviceMock.On("Replace", mock.Anything, userUID, advertID, mock.Anything, mock.Anything).
			Return(errlist.ErrAdvertNotFound).Once()

		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newReplaceRequest(t, validFields, userUID))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("нет пользователя в контексте", func(t *testing.T) {
		serviceMock := new(MockService)
		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newReplaceRequest(t, validFields, ""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
