package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"roguedex/pkg/models"
)

// MirrorSource reads a prefetched series payload from a local mirror
// server (see the cli `mirror` subcommand). Useful for re-processing
// without hammering the wiki.
type MirrorSource struct {
	URL    string
	Client *http.Client
}

func NewMirrorSource(url string) *MirrorSource {
	return &MirrorSource{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *MirrorSource) Name() string { return "mirror" }

func (s *MirrorSource) FetchSeries(ctx context.Context) (*models.SeriesInput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("mirror: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mirror: status %d: %s", resp.StatusCode, string(body))
	}

	var input models.SeriesInput
	if err := json.NewDecoder(resp.Body).Decode(&input); err != nil {
		return nil, fmt.Errorf("mirror: decode: %w", err)
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("mirror: %w", err)
	}
	return &input, nil
}
