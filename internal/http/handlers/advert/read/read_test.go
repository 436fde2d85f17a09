package read

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, id string) (*models.Advert, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Advert), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	const advertID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение объявления",
			id:   advertID,
			setupMock: func(m *MockService) {
				ad := &models.Advert{
					UID:      advertID,
					Title:    "Winter sale",
					Price:    99.90,
					Category: "electronics",
				}
				m.On("Read", mock.Anything, advertID).Return(ad, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Winter sale"`,
		},
		{
			name: "некорректный идентификатор",
			id:   "not-a-uuid",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "not-a-uuid").Return(nil, errlist.ErrInvalidID)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid advert id format",
		},
		{
			name: "объявление не найдено",
			id:   advertID,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, advertID).Return(nil, errlist.ErrAdvertNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "advert not found",
		},
		{
			name: "внутренняя ошибка",
			id:   advertID,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, advertID).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not read advert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(MockService)
			tt.setupMock(serviceMock)

			handler := New(logger, serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/advert/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)

			serviceMock.AssertExpectations(t)
		})
	}
}
