package testsuite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	topsort "topsort.com/gotopsort/pkg/topsort/client"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]interface{}
}

// TopsortTestSuite drives the whole SDK against an in-process fake of the
// marketplace API and inspects what actually went over the wire.
type TopsortTestSuite struct {
	suite.Suite

	server *httptest.Server
	client *topsort.Client

	mux      sync.Mutex
	requests []recordedRequest
}

// SetupTest starts a fresh fake marketplace API and points a client at it
func (s *TopsortTestSuite) SetupTest() {
	s.requests = nil

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auctions", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Write([]byte(`{"auctionId":"auction-1","results":[{"productId":"p1","winner":true},{"productId":"p2","winner":false}]}`))
	})
	mux.HandleFunc("/v1/auctions/", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		id := strings.TrimPrefix(r.URL.Path, "/v1/auctions/")
		w.Write([]byte(`{"auctionId":"` + id + `","status":"done"}`))
	})
	mux.HandleFunc("/v1/events", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/api/v1/ad_locations", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Write([]byte(`[{"location":"home","name":"Homepage"},{"location":"search","name":"Search results"}]`))
	})

	s.server = httptest.NewServer(mux)

	c, err := topsort.New("suite-marketplace", "suite-key", s.server.URL)
	assert.Nil(s.T(), err)
	s.client = c
}

// TearDownTest stops the fake API
func (s *TopsortTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *TopsortTestSuite) record(r *http.Request) {
	body := make(map[string]interface{})
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	s.requests = append(s.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
}

func (s *TopsortTestSuite) recorded() []recordedRequest {
	s.mux.Lock()
	defer s.mux.Unlock()

	out := make([]recordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// TestAuctionLifecycle runs an auction and retrieves its result again
func (s *TopsortTestSuite) TestAuctionLifecycle() {
	session := topsort.NewSession()

	result, err := s.client.CreateAuction(topsort.AuctionRequest{
		Slots:    topsort.Slots{Listings: 2, BannerAds: 1},
		Products: []topsort.Product{{ProductID: "p1"}, {ProductID: "p2", Quality: "0.9"}},
		Session:  session,
		BannerOptions: map[string]interface{}{
			"size": "728x90",
		},
	})
	assert.Nil(s.T(), err)

	created := make(map[string]interface{})
	assert.Nil(s.T(), json.Unmarshal(result, &created))
	assert.Equal(s.T(), "auction-1", created["auctionId"])

	result, err = s.client.GetAuction("auction-1")
	assert.Nil(s.T(), err)

	fetched := make(map[string]interface{})
	assert.Nil(s.T(), json.Unmarshal(result, &fetched))
	assert.Equal(s.T(), "auction-1", fetched["auctionId"])

	_, err = s.client.GetAuction("auction-1")
	assert.Nil(s.T(), err)

	requests := s.recorded()
	assert.Len(s.T(), requests, 3)

	assert.Equal(s.T(), http.MethodPost, requests[0].Method)
	assert.Equal(s.T(), "/v1/auctions", requests[0].Path)
	assert.Equal(s.T(), session.SessionID, requests[0].Body["session"].(map[string]interface{})["sessionId"])
	_, exists := requests[0].Body["bannerOptions"]
	assert.True(s.T(), exists)

	// retrievals are independent requests to the same path
	assert.Equal(s.T(), "/v1/auctions/auction-1", requests[1].Path)
	assert.Equal(s.T(), "/v1/auctions/auction-1", requests[2].Path)

	for _, req := range requests {
		assert.Equal(s.T(), "Bearer suite-key", req.Header.Get("Authorization"))
		assert.Equal(s.T(), topsort.UserAgent, req.Header.Get("User-Agent"))
	}
}

// TestEventReporting sends one event of each type
func (s *TopsortTestSuite) TestEventReporting() {
	session := topsort.NewSession()
	placement := topsort.Placement{Page: "search", Location: "top"}
	purchasedAt := time.Date(2021, 4, 15, 9, 30, 0, 0, time.UTC)

	_, err := s.client.ReportClick(topsort.ClickData{
		Session:   session,
		Placement: placement,
		ProductID: "p1",
		AuctionID: "auction-1",
	})
	assert.Nil(s.T(), err)

	_, err = s.client.ReportImpressions(topsort.ImpressionData{
		Session: session,
		Impressions: []topsort.Impression{
			{Placement: placement, ProductID: "p1", AuctionID: "auction-1"},
		},
	})
	assert.Nil(s.T(), err)

	_, err = s.client.ReportPurchase(topsort.PurchaseData{
		Session:     session,
		PurchasedAt: purchasedAt,
		Items: []topsort.PurchaseItem{
			{ProductID: "p1", AuctionID: "auction-1", Quantity: 1, UnitPrice: 2500},
		},
	})
	assert.Nil(s.T(), err)

	requests := s.recorded()
	assert.Len(s.T(), requests, 3)

	expectedTypes := []string{topsort.EventClick, topsort.EventImpression, topsort.EventPurchase}
	for i, req := range requests {
		assert.Equal(s.T(), http.MethodPost, req.Method)
		assert.Equal(s.T(), "/v1/events", req.Path)
		assert.Equal(s.T(), expectedTypes[i], req.Body["eventType"])
	}

	assert.Equal(s.T(), "2021-04-15T09:30:00Z", requests[2].Body["purchasedAt"])
}

// TestAdLocations lists the sellable locations
func (s *TopsortTestSuite) TestAdLocations() {
	result, err := s.client.GetAdLocations()
	assert.Nil(s.T(), err)

	locations := make([]map[string]interface{}, 0)
	assert.Nil(s.T(), json.Unmarshal(result, &locations))
	assert.Len(s.T(), locations, 2)
	assert.Equal(s.T(), "home", locations[0]["location"])
}

// TestErrorScenarios exercises the failure normalization end to end
func (s *TopsortTestSuite) TestErrorScenarios() {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer failing.Close()

	c, err := topsort.New("suite-marketplace", "suite-key", failing.URL)
	assert.Nil(s.T(), err)

	_, err = c.CreateAuction(topsort.AuctionRequest{
		Slots:    topsort.Slots{Listings: 1},
		Products: []topsort.Product{{ProductID: "p1"}},
		Session:  topsort.NewSession(),
	})
	assert.NotNil(s.T(), err)
	assert.Contains(s.T(), err.Error(), "Auction creation failed")
	assert.Contains(s.T(), err.Error(), "Content: internal error")

	gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	goneURL := gone.URL
	gone.Close()

	c, err = topsort.New("suite-marketplace", "suite-key", goneURL)
	assert.Nil(s.T(), err)

	_, err = c.GetAdLocations()
	assert.NotNil(s.T(), err)
	assert.Contains(s.T(), err.Error(), "Could not connect to "+goneURL)
}
