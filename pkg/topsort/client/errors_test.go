package topsortclient

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseErrorWithBody(t *testing.T) {
	api := newFakeAPI(http.StatusInternalServerError, "internal error")
	c, server := newTestClient(t, api)
	defer server.Close()

	_, err := c.CreateAuction(AuctionRequest{
		Slots:    Slots{Listings: 1},
		Products: []Product{{ProductID: "p1"}},
		Session:  Session{SessionID: "s1"},
	})
	require.NotNil(t, err)

	assert.Contains(t, err.Error(), "Auction creation failed")
	assert.Contains(t, err.Error(), "Content: internal error")

	var tsErr *TopsortError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, KindResponse, tsErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, tsErr.Status)
	assert.Equal(t, "internal error", tsErr.Body)
	assert.NotNil(t, tsErr.Unwrap())
}

func TestResponseErrorWithoutBody(t *testing.T) {
	api := newFakeAPI(http.StatusNotFound, "")
	c, server := newTestClient(t, api)
	defer server.Close()

	_, err := c.GetAuction("missing")
	require.NotNil(t, err)

	// with an empty body the underlying error text carries the detail
	assert.Contains(t, err.Error(), "Failed to get auction")
	assert.Contains(t, err.Error(), "Request failed: 404")
	assert.NotContains(t, err.Error(), "Content:")

	var tsErr *TopsortError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, KindResponse, tsErr.Kind)
	assert.Contains(t, tsErr.URL, "/v1/auctions/missing")
}

func TestConnectionError(t *testing.T) {
	api := newFakeAPI(http.StatusOK, "{}")
	c, server := newTestClient(t, api)

	// nobody listens on the port anymore
	server.Close()

	_, err := c.GetAdLocations()
	require.NotNil(t, err)

	assert.Contains(t, err.Error(), "Failed to get ad locations")
	assert.Contains(t, err.Error(), "Could not connect to "+server.URL+"/api/v1/ad_locations")

	var tsErr *TopsortError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, KindConnection, tsErr.Kind)
	assert.Equal(t, 0, tsErr.Status)
	assert.NotNil(t, tsErr.Unwrap())
}

func TestDecodeError(t *testing.T) {
	api := newFakeAPI(http.StatusOK, "this is not json")
	c, server := newTestClient(t, api)
	defer server.Close()

	_, err := c.ReportClick(ClickData{
		Session:   Session{SessionID: "s1"},
		Placement: Placement{Page: "search", Location: "top"},
		ProductID: "p1",
	})
	require.NotNil(t, err)

	assert.Contains(t, err.Error(), "Event creation failed")
	assert.Contains(t, err.Error(), "Failed to decode response")

	var tsErr *TopsortError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, KindDecode, tsErr.Kind)
	assert.NotNil(t, tsErr.Unwrap())
}
