// Package client is a typed gateway to the ideaboard GraphQL endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Error is the single error type the gateway returns. Message is meant to be
// shown to a user as-is.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Idea mirrors the GraphQL Idea type.
type Idea struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Upvotes   int    `json:"upvotes"`
	CreatedAt string `json:"createdAt"`
}

// Created parses CreatedAt as epoch milliseconds. It returns the zero time
// when the value is not a number.
func (i Idea) Created() time.Time {
	ms, err := strconv.ParseInt(i.CreatedAt, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

const ideaFields = "id text upvotes createdAt"

const (
	ideasQuery     = `query Ideas { ideas { ` + ideaFields + ` } }`
	ideaQuery      = `query Idea($id: ID!) { idea(id: $id) { ` + ideaFields + ` } }`
	createMutation = `mutation CreateIdea($text: String!) { createIdea(text: $text) { ` + ideaFields + ` } }`
	upvoteMutation = `mutation UpvoteIdea($id: ID!) { upvoteIdea(id: $id) { ` + ideaFields + ` } }`
)

// Client issues the four idea operations against one endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the GraphQL endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ideas lists every idea in server order.
func (c *Client) Ideas(ctx context.Context) ([]Idea, error) {
	var data struct {
		Ideas []Idea `json:"ideas"`
	}
	if err := c.do(ctx, ideasQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Ideas == nil {
		data.Ideas = []Idea{}
	}
	return data.Ideas, nil
}

// Idea fetches one idea. It returns nil with no error when the id is unknown.
func (c *Client) Idea(ctx context.Context, id string) (*Idea, error) {
	var data struct {
		Idea *Idea `json:"idea"`
	}
	if err := c.do(ctx, ideaQuery, map[string]interface{}{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.Idea, nil
}

// CreateIdea submits text as a new idea.
func (c *Client) CreateIdea(ctx context.Context, text string) (*Idea, error) {
	var data struct {
		CreateIdea *Idea `json:"createIdea"`
	}
	if err := c.do(ctx, createMutation, map[string]interface{}{"text": text}, &data); err != nil {
		return nil, err
	}
	if data.CreateIdea == nil {
		return nil, errNoData()
	}
	return data.CreateIdea, nil
}

// UpvoteIdea adds one upvote to the idea with the given id.
func (c *Client) UpvoteIdea(ctx context.Context, id string) (*Idea, error) {
	var data struct {
		UpvoteIdea *Idea `json:"upvoteIdea"`
	}
	if err := c.do(ctx, upvoteMutation, map[string]interface{}{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.UpvoteIdea == nil {
		return nil, errNoData()
	}
	return data.UpvoteIdea, nil
}

// errNoData reports a successful response without the requested payload.
// Mutation fields are non-null, so a null field counts as missing data.
func errNoData() error {
	return &Error{Message: "No data returned from GraphQL query"}
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return &Error{Message: "encode request: " + err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Message: fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)}
	}

	var gr response
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return &Error{Message: "decode response: " + err.Error(), Err: err}
	}
	if len(gr.Errors) > 0 {
		return &Error{Message: gr.Errors[0].Message}
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return errNoData()
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return &Error{Message: "decode data: " + err.Error(), Err: err}
	}
	return nil
}
