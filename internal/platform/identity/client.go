package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/weatherlyhq/weatherly/internal/config"
)

var ErrService = errors.New("identity: service request failed")

// Status is the point-in-time verification state of an email address.
type Status string

const (
	StatusUnverified Status = "unverified"
	StatusPending    Status = "pending"
	StatusVerified   Status = "verified"
)

// Service wraps the managed mail provider's address-identity endpoints.
type Service interface {
	// Status returns the current verification state for the address.
	Status(ctx context.Context, email string) (Status, error)
	// Verify asks the provider to (re)send a verification challenge.
	// Idempotent at the provider.
	Verify(ctx context.Context, email string) error
}

// Client talks to the mail provider's identity API over JSON/HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ Service = (*Client)(nil)

func NewClient(cfg *config.Identity) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout.Duration},
	}
}

type statusResponse struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

func (c *Client) Status(ctx context.Context, email string) (Status, error) {
	endpoint := c.baseURL + "/identities/status?email=" + url.QueryEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build status request for %q: %w", email, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: status for %q: %v", ErrService, email, err)
	}
	defer res.Body.Close()

	// An identity the provider has never seen is simply unverified.
	if res.StatusCode == http.StatusNotFound {
		return StatusUnverified, nil
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status for %q returned %d", ErrService, email, res.StatusCode)
	}

	var payload statusResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode status for %q: %v", ErrService, email, err)
	}

	switch Status(payload.Status) {
	case StatusPending:
		return StatusPending, nil
	case StatusVerified:
		return StatusVerified, nil
	default:
		return StatusUnverified, nil
	}
}

func (c *Client) Verify(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("encode verify request for %q: %w", email, err)
	}

	endpoint := c.baseURL + "/identities/verify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build verify request for %q: %w", email, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: verify %q: %v", ErrService, email, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: verify %q returned %d", ErrService, email, res.StatusCode)
	}

	return nil
}
