package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
)

func TestClient_Generate(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")

	t.Run("успешная генерация", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/images/generations", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Winter sale", req["prompt"])
			assert.Equal(t, float64(1), req["n"])
			assert.Equal(t, "b64_json", req["response_format"])

			resp := map[string]any{
				"data": []map[string]string{
					{"b64_json": base64.StdEncoding.EncodeToString(imageBytes)},
				},
			}
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", 5*time.Second)

		got, err := client.Generate(context.Background(), "Winter sale")
		require.NoError(t, err)
		assert.Equal(t, imageBytes, got)
	})

	t.Run("не-200 статус отдается как ошибка внешнего сервиса", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", 5*time.Second)

		got, err := client.Generate(context.Background(), "Winter sale")
		assert.ErrorIs(t, err, errlist.ErrUpstream)
		assert.Nil(t, got)
	})

	t.Run("пустой список картинок", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", 5*time.Second)

		got, err := client.Generate(context.Background(), "Winter sale")
		assert.ErrorIs(t, err, errlist.ErrUpstream)
		assert.Nil(t, got)
	})

	t.Run("недоступный сервис", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", "test-key", time.Second)

		got, err := client.Generate(context.Background(), "Winter sale")
		assert.ErrorIs(t, err, errlist.ErrUpstream)
		assert.Nil(t, got)
	})

	t.Run("некорректный base64", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data": [{"b64_json": "!!!not-base64!!!"}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key", 5*time.Second)

		got, err := client.Generate(context.Background(), "Winter sale")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
