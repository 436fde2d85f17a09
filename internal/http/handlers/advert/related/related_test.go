package related

import (
	"context"
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

// MockService реализует интерфейс related.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Related(ctx context.Context, id string, limit, skip int) ([]*models.Advert, error) {
	args := m.Called(ctx, id, limit, skip)
	if res := args.Get(0); res != nil {
		return res.([]*models.Advert), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRelatedHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	const advertID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	tests := []struct {
		name           string
		id             string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "похожие объявления найдены",
			id:    advertID,
			query: "",
			setupMock: func(m *MockService) {
				related := []*models.Advert{
					{UID: "id-2", Title: "Old laptop", Category: "electronics"},
					{UID: "id-3", Title: "Spare monitor", Category: "electronics"},
				}
				m.On("Related", mock.Anything, advertID, 0, 0).Return(related, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":2`,
		},
		{
			name:  "лимит и смещение пробрасываются",
			id:    advertID,
			query: "?limit=3&skip=1",
			setupMock: func(m *MockService) {
				m.On("Related", mock.Anything, advertID, 3, 1).Return([]*models.Advert{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":0`,
		},
		{
			name:  "некорректный идентификатор",
			id:    "garbage",
			query: "",
			setupMock: func(m *MockService) {
				m.On("Related", mock.Anything, "garbage", 0, 0).Return(nil, errlist.ErrInvalidID)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid advert id format",
		},
		{
			name:  "исходное объявление не найдено",
			id:    advertID,
			query: "",
			setupMock: func(m *MockService) {
				m.On("Related", mock.Anything, advertID, 0, 0).Return(nil, errlist.ErrAdvertNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "advert not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(MockService)
			tt.setupMock(serviceMock)

			handler := New(logger, serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/advert/"+tt.id+"/related"+tt.query, nil)
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
