package topsortclient

import "time"

const (
	// Version is reported to the marketplace API with every request
	Version   = "1.0.0"
	UserAgent = "Topsort/gotopsort SDK " + Version
	// BaseURL is the production endpoint; pass your own to New for staging setups
	BaseURL = "https://api.topsort.com"

	requestTimeout = 30 * time.Second
)

// Event types accepted by the events endpoint.
// createEvent stamps one of these onto every payload.
const (
	EventClick      = "Click"
	EventImpression = "Impression"
	EventPurchase   = "Purchase"
)

// Operation labels prefixing every error an operation can return
const (
	opCreateAuction  = "Auction creation failed"
	opGetAuction     = "Failed to get auction"
	opCreateEvent    = "Event creation failed"
	opGetAdLocations = "Failed to get ad locations"
)
