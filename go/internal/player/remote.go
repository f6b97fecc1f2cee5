package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// RemoteSource fetches a player pool document over HTTP.
type RemoteSource struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

func NewRemoteSource(baseURL string) *RemoteSource {
	return &RemoteSource{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (s *RemoteSource) SetHeader(key, value string) {
	s.headers[key] = value
}

func (s *RemoteSource) SetTimeout(timeout time.Duration) {
	s.client.Timeout = timeout
}

func (s *RemoteSource) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pool source returned status code: %d, response: %s", resp.StatusCode, string(responseBody))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return responseBody, nil
}

// FetchPool downloads the pool at endpoint. The decoder is picked from the
// endpoint's extension, defaulting to JSON.
func (s *RemoteSource) FetchPool(ctx context.Context, endpoint string) ([]models.Player, error) {
	name := endpoint
	if path.Ext(name) == "" {
		name += ".json"
	}
	decode, err := decoderFor(name)
	if err != nil {
		return nil, err
	}

	data, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player pool: %w", err)
	}
	return parsePool(data, decode)
}
