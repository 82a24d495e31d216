package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type apiResponse struct {
	Status       string          `json:"status"`
	Code         int             `json:"code"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	ErrorDetails struct {
		ErrorCode string `json:"error_code"`
	} `json:"error_details"`
}

// client talks to a busticket server.
type client struct {
	base string
	http *http.Client
}

func newClient(server string) *client {
	return &client{
		base: strings.TrimRight(server, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) url(path string, q url.Values) string {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// get decodes the data field of the envelope into dst. It returns false
// with a nil error on 204.
func (c *client) get(path string, q url.Values, dst any) (bool, error) {
	resp, err := c.http.Get(c.url(path, q))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	var env apiResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("%s: %s", env.ErrorDetails.ErrorCode, env.Message)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			return false, fmt.Errorf("decode data: %w", err)
		}
	}
	return true, nil
}
