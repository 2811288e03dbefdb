// Package httpapi implements the sync provider over the outline service's
// HTTP API. All responses go through the envelope decoder in pkg/sync; this
// package only translates HTTP mechanics (URLs, headers, transport errors)
// into the boundary's terms.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jfarrand/syllabus/pkg/models"
	"github.com/jfarrand/syllabus/pkg/outline"
	syncapi "github.com/jfarrand/syllabus/pkg/sync"
)

var (
	_ syncapi.Provider = (*Client)(nil)
	_ syncapi.Editor   = (*Client)(nil)
)

// Client talks to one outline service instance.
type Client struct {
	base   *url.URL
	http   *http.Client
	token  string
	logger *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	c := &Client{
		base:   u,
		http:   &http.Client{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LoadOutline fetches the outline for a course and normalizes its order
// fields, so drifted or sparse remote orders never leak past the boundary.
func (c *Client) LoadOutline(ctx context.Context, scopeID string) (models.Outline, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/%s/outline", url.PathEscape(scopeID)), nil)
	if err != nil {
		return models.Outline{}, err
	}

	o, err := syncapi.DecodeOutline(env.Data)
	if err != nil {
		return models.Outline{}, err
	}

	sort.SliceStable(o.Sections, func(i, j int) bool {
		return o.Sections[i].Order < o.Sections[j].Order
	})
	for i := range o.Sections {
		items := o.Sections[i].Items
		sort.SliceStable(items, func(a, b int) bool { return items[a].Order < items[b].Order })
	}
	return outline.Normalize(o), nil
}

// PersistOrder stores a new sibling order for a course scope.
func (c *Client) PersistOrder(ctx context.Context, scopeID string, order []models.OrderedID) error {
	body, err := json.Marshal(map[string]any{"order": order})
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, fmt.Sprintf("/courses/%s/order", url.PathEscape(scopeID)), body)
	return err
}

// do issues one request and decodes the envelope. Errors raised before a
// response is obtained become TransportErrors; everything after that point is
// the envelope decoder's call.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (syncapi.Envelope, error) {
	reqID := uuid.NewString()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return syncapi.Envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"request_id": reqID,
		}).Debugf("transport failure: %v", err)
		return syncapi.Envelope{}, &syncapi.TransportError{RequestID: reqID, Err: err}
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": reqID,
		"elapsed":    time.Since(start).Round(time.Millisecond).String(),
	}).Debug("outline service response")

	env, err := syncapi.DecodeEnvelope(resp.Body)
	if err != nil {
		return syncapi.Envelope{}, err
	}
	return env, nil
}
