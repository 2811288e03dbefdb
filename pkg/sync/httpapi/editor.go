package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jfarrand/syllabus/pkg/models"
	syncapi "github.com/jfarrand/syllabus/pkg/sync"
)

// CreateSection makes a new section at the end of the outline.
func (c *Client) CreateSection(ctx context.Context, scopeID, title string) (models.Section, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return models.Section{}, fmt.Errorf("marshal section: %w", err)
	}
	env, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/courses/%s/sections", url.PathEscape(scopeID)), body)
	if err != nil {
		return models.Section{}, err
	}
	return syncapi.DecodeSection(env.Data)
}

// UpdateSection stores a section's title and collapsed flag.
func (c *Client) UpdateSection(ctx context.Context, scopeID string, sec models.Section) error {
	body, err := json.Marshal(map[string]any{
		"title":     sec.Title,
		"collapsed": sec.Collapsed,
	})
	if err != nil {
		return fmt.Errorf("marshal section: %w", err)
	}
	_, err = c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/courses/%s/sections/%d", url.PathEscape(scopeID), sec.ID), body)
	return err
}

// DeleteSection removes a section and its items.
func (c *Client) DeleteSection(ctx context.Context, scopeID string, sectionID int64) error {
	_, err := c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/courses/%s/sections/%d", url.PathEscape(scopeID), sectionID), nil)
	return err
}

// DuplicateSection copies a section server-side.
func (c *Client) DuplicateSection(ctx context.Context, scopeID string, sectionID int64) (models.Section, error) {
	env, err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/courses/%s/sections/%d/duplicate", url.PathEscape(scopeID), sectionID), nil)
	if err != nil {
		return models.Section{}, err
	}
	return syncapi.DecodeSection(env.Data)
}
