// Package smartsheet is a minimal client for the two Smartsheet operations
// the sync needs: fetch the full sheet snapshot and append rows.
package smartsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"attendance-sync/internal/config"
)

// Client exposes the destination sheet operations used by the sync.
type Client interface {
	GetSheet(ctx context.Context) (*Sheet, error)
	AddRows(ctx context.Context, rows []NewRow) error
}

type HTTPClient struct {
	baseURL string
	sheetID string
	token   string
	http    *http.Client
}

// NewClient builds the Smartsheet client from configuration.
func NewClient(cfg *config.Config) Client {
	return &HTTPClient{
		baseURL: cfg.SheetBaseURL,
		sheetID: cfg.SheetID,
		token:   cfg.SheetToken,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClient) GetSheet(ctx context.Context) (*Sheet, error) {
	url := fmt.Sprintf("%s/sheets/%s", c.baseURL, c.sheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}

	var sheet Sheet
	if err := json.NewDecoder(resp.Body).Decode(&sheet); err != nil {
		return nil, fmt.Errorf("decode sheet: %w", err)
	}
	return &sheet, nil
}

func (c *HTTPClient) AddRows(ctx context.Context, rows []NewRow) error {
	url := fmt.Sprintf("%s/sheets/%s/rows", c.baseURL, c.sheetID)

	body, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("append rows: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("append rows: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
}
