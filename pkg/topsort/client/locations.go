package topsortclient

import (
	"encoding/json"
	"net/http"
)

// GetAdLocations lists the ad locations available on the marketplace.
func (c *Client) GetAdLocations() (json.RawMessage, error) {
	raw, err := c.send(apiRequest{
		label:    opGetAdLocations,
		method:   http.MethodGet,
		endpoint: "/api/v1/ad_locations",
	})
	if err != nil {
		return nil, err
	}

	return decode(opGetAdLocations, raw)
}
