// Package contentstack is a thin REST client for the headless content store.
// Reads go through the delivery API, writes through the management API; every
// write is published to the configured environment so the delivery API can
// see it.
package contentstack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/momentum-hq/momentum-api/internal/config"
)

// ErrNotFound is returned when the store has no entry for the given uid.
var ErrNotFound = errors.New("contentstack: entry not found")

// Reference is how the store models links between entries.
type Reference struct {
	UID            string `json:"uid"`
	ContentTypeUID string `json:"_content_type_uid,omitempty"`
}

// Query narrows a delivery-API listing.
type Query struct {
	Where            map[string]any
	Limit            int
	Skip             int
	IncludeReference []string
	Descending       string
}

type Client struct {
	httpClient      *http.Client
	deliveryURL     string
	managementURL   string
	apiKey          string
	deliveryToken   string
	managementToken string
	environment     string
}

func New(cfg config.Contentstack) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		deliveryURL:     cfg.DeliveryURL,
		managementURL:   cfg.ManagementURL,
		apiKey:          cfg.APIKey,
		deliveryToken:   cfg.DeliveryToken,
		managementToken: cfg.ManagementToken,
		environment:     cfg.Environment,
	}
}

// GetEntries fetches entries of a content type into out, which must be a
// pointer to a slice of the caller's wire struct.
func (c *Client) GetEntries(ctx context.Context, contentType string, q Query, out any) error {
	params := url.Values{}
	params.Set("environment", c.environment)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	if len(q.Where) > 0 {
		where, err := json.Marshal(q.Where)
		if err != nil {
			return fmt.Errorf("contentstack: encode query: %w", err)
		}
		params.Set("query", string(where))
	}
	if q.Descending != "" {
		params.Set("desc", q.Descending)
	}
	for _, ref := range q.IncludeReference {
		params.Add("include[]", ref)
	}

	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries?%s", c.deliveryURL, contentType, params.Encode())

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, c.deliveryHeaders())
	if err != nil {
		return err
	}

	var wrapper struct {
		Entries json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return fmt.Errorf("contentstack: decode entries: %w", err)
	}
	if wrapper.Entries == nil {
		return nil
	}
	if err := json.Unmarshal(wrapper.Entries, out); err != nil {
		return fmt.Errorf("contentstack: decode entries: %w", err)
	}
	return nil
}

// GetEntry fetches a single entry by uid into out.
func (c *Client) GetEntry(ctx context.Context, contentType, uid string, includeReference []string, out any) error {
	params := url.Values{}
	params.Set("environment", c.environment)
	for _, ref := range includeReference {
		params.Add("include[]", ref)
	}

	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries/%s?%s", c.deliveryURL, contentType, uid, params.Encode())

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, c.deliveryHeaders())
	if err != nil {
		return err
	}
	return unwrapEntry(body, out)
}

// Count returns the number of entries matching where.
func (c *Client) Count(ctx context.Context, contentType string, where map[string]any) (int, error) {
	params := url.Values{}
	params.Set("environment", c.environment)
	params.Set("include_count", "true")
	params.Set("limit", "1")
	if len(where) > 0 {
		q, err := json.Marshal(where)
		if err != nil {
			return 0, fmt.Errorf("contentstack: encode query: %w", err)
		}
		params.Set("query", string(q))
	}

	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries?%s", c.deliveryURL, contentType, params.Encode())

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, c.deliveryHeaders())
	if err != nil {
		return 0, err
	}

	var wrapper struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return 0, fmt.Errorf("contentstack: decode count: %w", err)
	}
	return wrapper.Count, nil
}

// CreateEntry writes a new entry and publishes it. The stored representation,
// including the assigned uid, is decoded into out.
func (c *Client) CreateEntry(ctx context.Context, contentType string, entry, out any) error {
	payload, err := json.Marshal(map[string]any{"entry": entry})
	if err != nil {
		return fmt.Errorf("contentstack: encode entry: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries", c.managementURL, contentType)

	body, err := c.do(ctx, http.MethodPost, endpoint, payload, c.managementHeaders())
	if err != nil {
		return err
	}

	var created struct {
		Entry struct {
			UID string `json:"uid"`
		} `json:"entry"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return fmt.Errorf("contentstack: decode created entry: %w", err)
	}

	if err := c.publish(ctx, contentType, created.Entry.UID); err != nil {
		return err
	}
	return unwrapEntry(body, out)
}

// UpdateEntry overwrites the given fields of an entry and republishes it.
func (c *Client) UpdateEntry(ctx context.Context, contentType, uid string, entry, out any) error {
	payload, err := json.Marshal(map[string]any{"entry": entry})
	if err != nil {
		return fmt.Errorf("contentstack: encode entry: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries/%s", c.managementURL, contentType, uid)

	body, err := c.do(ctx, http.MethodPut, endpoint, payload, c.managementHeaders())
	if err != nil {
		return err
	}

	if err := c.publish(ctx, contentType, uid); err != nil {
		return err
	}
	return unwrapEntry(body, out)
}

func (c *Client) DeleteEntry(ctx context.Context, contentType, uid string) error {
	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries/%s", c.managementURL, contentType, uid)
	_, err := c.do(ctx, http.MethodDelete, endpoint, nil, c.managementHeaders())
	return err
}

func (c *Client) publish(ctx context.Context, contentType, uid string) error {
	payload, err := json.Marshal(map[string]any{
		"entry": map[string]any{
			"environments": []string{c.environment},
			"locales":      []string{"en-us"},
		},
	})
	if err != nil {
		return fmt.Errorf("contentstack: encode publish request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v3/content_types/%s/entries/%s/publish", c.managementURL, contentType, uid)
	_, err = c.do(ctx, http.MethodPost, endpoint, payload, c.managementHeaders())
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, headers map[string]string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("contentstack: build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentstack: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("contentstack: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("contentstack: %s %s: status %d: %s", method, endpoint, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func (c *Client) deliveryHeaders() map[string]string {
	return map[string]string{
		"api_key":      c.apiKey,
		"access_token": c.deliveryToken,
	}
}

func (c *Client) managementHeaders() map[string]string {
	return map[string]string{
		"api_key":       c.apiKey,
		"authorization": c.managementToken,
	}
}

func unwrapEntry(body []byte, out any) error {
	var wrapper struct {
		Entry json.RawMessage `json:"entry"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return fmt.Errorf("contentstack: decode entry: %w", err)
	}
	if err := json.Unmarshal(wrapper.Entry, out); err != nil {
		return fmt.Errorf("contentstack: decode entry: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
