package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultTimeout = 3 * time.Second
)

// ErrNotFound is returned when the gateway does not know the protected
// data address.
var ErrNotFound = errors.New("protected data not found")

// Client talks to the confidential data-protection gateway. Lookups are
// cached; protected data records never change once published.
type Client struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
	gateway   string
}

func New(gateway string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		cache:     cache.New(10*time.Minute, 15*time.Minute),
		userAgent: "folionet-client",
		gateway:   gateway,
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// ProtectedData is the gateway's record of an encrypted artifact.
type ProtectedData struct {
	Address      string `json:"address"`
	Owner        string `json:"owner,omitempty"`
	CollectionID string `json:"collectionId,omitempty"`
	Schema       string `json:"schema,omitempty"`
	Multiaddr    string `json:"multiaddr,omitempty"`
}

func (c *Client) baseURL() string {
	if strings.Contains(c.gateway, "://") {
		return strings.TrimSuffix(c.gateway, "/")
	}
	return "https://" + strings.TrimSuffix(c.gateway, "/")
}

// GetProtectedData fetches the gateway record for a protected data address.
func (c *Client) GetProtectedData(ctx context.Context, address string) (ProtectedData, error) {

	if cached, found := c.cache.Get(address); found {
		return cached.(ProtectedData), nil
	}

	url := c.baseURL() + "/protected-data/" + address
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ProtectedData{}, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ProtectedData{}, fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ProtectedData{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return ProtectedData{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data ProtectedData
	err = json.NewDecoder(resp.Body).Decode(&data)
	if err != nil {
		return ProtectedData{}, fmt.Errorf("failed to decode response: %v", err)
	}

	c.cache.Set(address, data, cache.DefaultExpiration)

	return data, nil
}

// Exists reports whether the protected data address resolves on the
// gateway. Infrastructure failures are returned as errors, not mistaken
// for absence.
func (c *Client) Exists(ctx context.Context, address string) (bool, error) {
	_, err := c.GetProtectedData(ctx, address)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
