package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	admin "github.com/paulvitic/members-admin"
	"github.com/paulvitic/members-admin/table"
)

const maxBodySize = 16 << 20

var ErrUnexpectedStatus = errors.New("unexpected response status")

// HTTP reads the records from a JSON array served at a URL.
type HTTP struct {
	url    string
	client *http.Client
	logger *admin.Logger
}

func NewHTTP(url string, client *http.Client, logger *admin.Logger) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTP{url: url, client: client, logger: logger.Named("HttpSource")}
}

func (s *HTTP) Fetch(ctx context.Context) ([]table.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("fetching %s", s.url)
	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s returned %s", ErrUnexpectedStatus, s.url, res.Status)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.url, err)
	}
	return table.DecodeRecords(body)
}
