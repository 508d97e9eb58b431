package topsortclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Slots lists how many promotional positions of each category are up for auction.
type Slots struct {
	Listings  int `json:"listings,omitempty"`
	VideoAds  int `json:"videoAds,omitempty"`
	BannerAds int `json:"bannerAds,omitempty"`
}

// Validate checks the slot capacities
func (s Slots) Validate() error {
	if s.Listings < 0 || s.VideoAds < 0 || s.BannerAds < 0 {
		return fmt.Errorf("Slot capacities must not be negative")
	}
	return nil
}

// Product is a candidate for a promotional slot.
type Product struct {
	ProductID string `json:"productId"`
	Quality   string `json:"quality,omitempty"`
}

// Validate checks the required fields
func (p Product) Validate() error {
	if p.ProductID == "" {
		return fmt.Errorf("Product needs a productId")
	}
	return nil
}

// Session carries the correlation ids tying auctions and events to one visit.
type Session struct {
	SessionID     string `json:"sessionId"`
	ConsumerID    string `json:"consumerId,omitempty"`
	OrderIntentID string `json:"orderIntentId,omitempty"`
	OrderID       string `json:"orderId,omitempty"`
}

// Validate checks the required fields
func (s Session) Validate() error {
	if s.SessionID == "" {
		return fmt.Errorf("Session needs a sessionId")
	}
	return nil
}

// AuctionRequest is sent verbatim as the body of an auction creation.
// BannerOptions is deliberately schemaless and only included when set.
type AuctionRequest struct {
	Slots         Slots                  `json:"slots"`
	Products      []Product              `json:"products"`
	Session       Session                `json:"session"`
	BannerOptions map[string]interface{} `json:"bannerOptions,omitempty"`
}

// Validate checks the whole request before anything is sent
func (a AuctionRequest) Validate() error {
	if err := a.Slots.Validate(); err != nil {
		return err
	}
	if len(a.Products) == 0 {
		return fmt.Errorf("Auction needs at least one product")
	}
	for i := range a.Products {
		if err := a.Products[i].Validate(); err != nil {
			return err
		}
	}
	return a.Session.Validate()
}

// CreateAuction runs an auction among the candidate products for the
// requested slots and returns the winners as served by the marketplace API.
func (c *Client) CreateAuction(auction AuctionRequest) (json.RawMessage, error) {
	if err := auction.Validate(); err != nil {
		return nil, fmt.Errorf("%s - %v", opCreateAuction, err)
	}

	raw, err := c.send(apiRequest{
		label:    opCreateAuction,
		method:   http.MethodPost,
		endpoint: "/v1/auctions",
		payload:  auction,
	})
	if err != nil {
		return nil, err
	}

	return decode(opCreateAuction, raw)
}

// GetAuction retrieves the result of a previously created auction by its id.
// Each call issues its own independent request.
func (c *Client) GetAuction(auctionID string) (json.RawMessage, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("%s - Auction id is empty", opGetAuction)
	}

	raw, err := c.send(apiRequest{
		label:    opGetAuction,
		method:   http.MethodGet,
		endpoint: "/v1/auctions/" + auctionID,
	})
	if err != nil {
		return nil, err
	}

	return decode(opGetAuction, raw)
}
