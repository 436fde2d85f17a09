// Package imagegen реализует клиент внешнего сервиса генерации картинок.
// Используется при создании объявления без флаера: по заголовку объявления
// запрашивается ровно одна картинка-заглушка. Ошибки сервиса наружу
// всплывают как ошибка генерации, повторных попыток нет.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
)

// Client — HTTP-клиент сервиса генерации картинок.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт клиент с заданным адресом, ключом и таймаутом запросов.
func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type generateResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// Generate запрашивает одну картинку по текстовому описанию
// и возвращает её содержимое.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	const op = "imagegen.Generate"

	reqBody := generateRequest{
		Prompt:         prompt,
		N:              1,
		ResponseFormat: "b64_json",
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/images/generations", &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, errlist.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: unexpected status %s", op, errlist.ErrUpstream, resp.Status)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(genResp.Data) != 1 {
		return nil, fmt.Errorf("%s: %w: expected exactly one image, got %d", op, errlist.ErrUpstream, len(genResp.Data))
	}

	img, err := base64.StdEncoding.DecodeString(genResp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return img, nil
}
