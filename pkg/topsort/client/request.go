package topsortclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type apiRequest struct {
	label    string // operation label, prefixes every error on this request
	method   string
	endpoint string
	payload  interface{}
}

// send issues the request and normalizes every failure into a TopsortError.
// Exactly one HTTP request goes out per call; nothing is retried here.
func (c *Client) send(r apiRequest) (rawResponse []byte, err error) {
	var (
		req    *http.Request
		reqURL = c.endpointURL(r.endpoint)
	)

	switch r.method {
	case http.MethodPost:
		body := new(bytes.Buffer)
		encoder := json.NewEncoder(body)
		if err := encoder.Encode(r.payload); err != nil {
			return rawResponse, newTransportError(r.label, reqURL, err)
		}
		req, err = http.NewRequest(http.MethodPost, reqURL, body)
	case http.MethodGet:
		req, err = http.NewRequest(http.MethodGet, reqURL, nil)
	default:
		return rawResponse, newTransportError(r.label, reqURL, fmt.Errorf("Method is not recognised: %s", r.method))
	}
	if err != nil {
		return rawResponse, newTransportError(r.label, reqURL, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req = req.WithContext(ctx)

	log.WithFields(
		log.Fields{
			"Marketplace": c.marketplace,
			"Method":      r.method,
			"URL":         reqURL,
		},
	).Debugln("Sending request")

	resp, err := c.rawClient.Do(req)
	if err != nil {
		// no response was obtainable at all
		return rawResponse, newConnectionError(r.label, reqURL, err)
	}
	defer resp.Body.Close()

	rawResponse, err = ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(r.label, reqURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.WithFields(
			log.Fields{
				"Status": resp.Status,
				"URL":    reqURL,
			},
		).Debugln("Request failed")
		return nil, newResponseError(r.label, reqURL, resp, rawResponse)
	}

	return rawResponse, nil
}
