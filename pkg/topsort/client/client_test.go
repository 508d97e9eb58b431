package topsortclient

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// fakeAPI records every request it sees and answers with a canned response.
type fakeAPI struct {
	status   int
	response string

	mux      sync.Mutex
	requests []recordedRequest
}

func newFakeAPI(status int, response string) *fakeAPI {
	return &fakeAPI{
		status:   status,
		response: response,
	}
}

func (f *fakeAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)

		f.mux.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mux.Unlock()

		w.WriteHeader(f.status)
		w.Write([]byte(f.response))
	}
}

func (f *fakeAPI) count() int {
	f.mux.Lock()
	defer f.mux.Unlock()

	return len(f.requests)
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	f.mux.Lock()
	defer f.mux.Unlock()

	require.NotEmpty(t, f.requests, "no request reached the fake API")
	return f.requests[len(f.requests)-1]
}

// newTestClient points a fresh client at the fake API. The caller owns the
// returned server and must Close it.
func newTestClient(t *testing.T, f *fakeAPI) (*Client, *httptest.Server) {
	server := httptest.NewServer(f.handler())

	c, err := New("test-marketplace", "test-key", server.URL)
	require.Nil(t, err)

	return c, server
}

func TestNew(t *testing.T) {
	c, err := New("test-marketplace", "test-key", "")
	assert.Nil(t, err)
	assert.Equal(t, BaseURL, c.baseURL.String())
	assert.Equal(t, "test-marketplace", c.Marketplace())

	_, err = New("test-marketplace", "test-key", "://nope")
	assert.NotNil(t, err)

	_, err = New("test-marketplace", "test-key", "no-scheme-no-host")
	assert.NotNil(t, err)
}

func TestRequestHeaders(t *testing.T) {
	api := newFakeAPI(http.StatusOK, `{"ok":true}`)
	c, server := newTestClient(t, api)
	defer server.Close()

	_, err := c.GetAdLocations()
	require.Nil(t, err)

	req := api.last(t)
	assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))
	assert.Equal(t, UserAgent, req.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestGetAdLocations(t *testing.T) {
	response := `[{"location":"home","name":"Homepage"},{"location":"search","name":"Search results"}]`
	api := newFakeAPI(http.StatusOK, response)
	c, server := newTestClient(t, api)
	defer server.Close()

	result, err := c.GetAdLocations()
	require.Nil(t, err)

	req := api.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v1/ad_locations", req.Path)

	// the decoded response body comes back untransformed
	assert.Equal(t, response, string(result))
}

func TestNewSession(t *testing.T) {
	first := NewSession()
	second := NewSession()

	assert.Nil(t, first.Validate())
	assert.Nil(t, second.Validate())
	assert.NotEqual(t, first.SessionID, second.SessionID)
}
