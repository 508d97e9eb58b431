package topsortclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Client interfaces with the Topsort marketplace API.
// It holds nothing but immutable configuration, so one instance can serve
// any number of concurrent calls.
type Client struct {
	marketplace string
	apiKey      string
	baseURL     *url.URL
	rawClient   *http.Client
}

// New takes the marketplace identifier and API key and returns an initialized
// client. An empty baseURL selects the production endpoint. The marketplace id
// is not sent with requests yet but is kept for request tracing and upcoming
// API versions.
func New(marketplace, apiKey, baseURL string) (c *Client, err error) {
	if baseURL == "" {
		baseURL = BaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return c, fmt.Errorf("Failed to parse base URL - %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return c, fmt.Errorf("Base URL needs a scheme and a host: %s", baseURL)
	}

	return &Client{
		marketplace: marketplace,
		apiKey:      apiKey,
		baseURL:     u,
		rawClient:   new(http.Client),
	}, nil
}

// Marketplace returns the tenant identifier the client was built with.
func (c *Client) Marketplace() string {
	return c.marketplace
}

// NewSession returns a Session with a freshly generated id for callers that
// do not track their own visit identifiers.
func NewSession() Session {
	return Session{SessionID: uuid.NewString()}
}

func (c *Client) endpointURL(endpoint string) string {
	return strings.TrimSuffix(c.baseURL.String(), "/") + endpoint
}

// decode checks that a success body is well-formed JSON and hands it back
// untransformed. Response schemas are owned by the remote service, the SDK
// never validates them.
func decode(label string, body []byte) (json.RawMessage, error) {
	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, newDecodeError(label, err)
	}
	return json.RawMessage(body), nil
}
