package iplookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/roombook-cli/internal/ports"
)

const maxResponseBytes = 4 << 10

// Client asks an ipify-compatible service for the caller's public address.
type Client struct {
	URL        string
	HTTPClient *http.Client
	Timeout    time.Duration
}

var _ ports.IPLookup = Client{}

type ipResponse struct {
	IP string `json:"ip"`
}

func (c Client) PublicIP(ctx context.Context) (string, error) {
	if strings.TrimSpace(c.URL) == "" {
		return "", errors.New("ip lookup url is required")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create ip lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup public ip: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("lookup public ip: status %d", resp.StatusCode)
	}

	var payload ipResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode ip lookup response: %w", err)
	}
	ip := strings.TrimSpace(payload.IP)
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("ip lookup returned %q", payload.IP)
	}
	return ip, nil
}
