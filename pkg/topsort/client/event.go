package topsortclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Placement names where on the marketplace an ad was shown or clicked.
type Placement struct {
	Page     string `json:"page"`
	Location string `json:"location"`
}

// Validate checks the required fields
func (p Placement) Validate() error {
	if p.Page == "" || p.Location == "" {
		return fmt.Errorf("Placement needs both page and location")
	}
	return nil
}

// Impression records one rendered ad.
type Impression struct {
	Placement Placement `json:"placement"`
	ProductID string    `json:"productId"`
	AuctionID string    `json:"auctionId,omitempty"`
	ID        string    `json:"id,omitempty"`
}

// ClickData reports a consumer clicking a promoted product.
type ClickData struct {
	Session   Session   `json:"session"`
	Placement Placement `json:"placement"`
	ProductID string    `json:"productId"`
	AuctionID string    `json:"auctionId,omitempty"`
	ID        string    `json:"id,omitempty"`
}

// ImpressionData reports a batch of rendered ads.
type ImpressionData struct {
	Session     Session      `json:"session"`
	Impressions []Impression `json:"impressions"`
}

// PurchaseItem is one line of a reported purchase.
// UnitPrice is in the currency's minor units.
type PurchaseItem struct {
	ProductID string `json:"productId"`
	AuctionID string `json:"auctionId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	UnitPrice int    `json:"unitPrice"`
}

// PurchaseData reports a completed order for attribution. PurchasedAt goes
// out as its RFC 3339 rendering, everything else is passed through untouched.
type PurchaseData struct {
	Session     Session        `json:"session"`
	ID          string         `json:"id,omitempty"`
	PurchasedAt time.Time      `json:"-"`
	Items       []PurchaseItem `json:"items"`
}

// ReportClick sends a click event for attribution.
func (c *Client) ReportClick(data ClickData) (json.RawMessage, error) {
	if err := data.Session.Validate(); err != nil {
		return nil, fmt.Errorf("%s - %v", opCreateEvent, err)
	}
	if err := data.Placement.Validate(); err != nil {
		return nil, fmt.Errorf("%s - %v", opCreateEvent, err)
	}
	if data.ProductID == "" {
		return nil, fmt.Errorf("%s - Click needs a productId", opCreateEvent)
	}

	return c.createEvent(EventClick, data)
}

// ReportImpressions sends a batch of impression events for attribution.
func (c *Client) ReportImpressions(data ImpressionData) (json.RawMessage, error) {
	if err := data.Session.Validate(); err != nil {
		return nil, fmt.Errorf("%s - %v", opCreateEvent, err)
	}
	if len(data.Impressions) == 0 {
		return nil, fmt.Errorf("%s - No impressions to report", opCreateEvent)
	}
	for i := range data.Impressions {
		if err := data.Impressions[i].Placement.Validate(); err != nil {
			return nil, fmt.Errorf("%s - %v", opCreateEvent, err)
		}
	}

	return c.createEvent(EventImpression, data)
}

// ReportPurchase sends a purchase event for attribution.
func (c *Client) ReportPurchase(data PurchaseData) (json.RawMessage, error) {
	if err := data.Session.Validate(); err != nil {
		return nil, fmt.Errorf("%s - %v", opCreateEvent, err)
	}
	if len(data.Items) == 0 {
		return nil, fmt.Errorf("%s - Purchase needs at least one item", opCreateEvent)
	}
	for i := range data.Items {
		if data.Items[i].ProductID == "" {
			return nil, fmt.Errorf("%s - Purchase item needs a productId", opCreateEvent)
		}
	}

	payload, err := toPayload(data)
	if err != nil {
		return nil, newTransportError(opCreateEvent, c.endpointURL("/v1/events"), err)
	}
	payload["purchasedAt"] = data.PurchasedAt.Format(time.RFC3339)

	return c.createEvent(EventPurchase, payload)
}

// createEvent posts data to the events endpoint with eventType stamped on
// top. The stamp always wins, callers cannot smuggle their own eventType.
func (c *Client) createEvent(eventType string, data interface{}) (json.RawMessage, error) {
	payload, err := toPayload(data)
	if err != nil {
		return nil, newTransportError(opCreateEvent, c.endpointURL("/v1/events"), err)
	}
	payload["eventType"] = eventType

	raw, err := c.send(apiRequest{
		label:    opCreateEvent,
		method:   http.MethodPost,
		endpoint: "/v1/events",
		payload:  payload,
	})
	if err != nil {
		return nil, err
	}

	return decode(opCreateEvent, raw)
}

// toPayload flattens a typed record into the open map the events endpoint takes.
func toPayload(data interface{}) (map[string]interface{}, error) {
	if m, ok := data.(map[string]interface{}); ok {
		return m, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	return payload, nil
}
