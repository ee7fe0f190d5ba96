package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListContributors returns all contributors.
func (c *Client) ListContributors(ctx context.Context) ([]Contributor, error) {
	var contributors []Contributor
	if err := c.do(ctx, http.MethodGet, "/contributors", nil, &contributors); err != nil {
		return nil, err
	}
	return contributors, nil
}

// GetContributor returns one contributor by id.
func (c *Client) GetContributor(ctx context.Context, id string) (*Contributor, error) {
	var contributor Contributor
	if err := c.do(ctx, http.MethodGet, "/contributors/"+url.PathEscape(id), nil, &contributor); err != nil {
		return nil, err
	}
	return &contributor, nil
}

// CreateContributor creates a contributor.
func (c *Client) CreateContributor(ctx context.Context, in ContributorInput) (*Contributor, error) {
	var contributor Contributor
	if err := c.do(ctx, http.MethodPost, "/contributors", in, &contributor); err != nil {
		return nil, err
	}
	return &contributor, nil
}

// UpdateContributor updates a contributor.
func (c *Client) UpdateContributor(ctx context.Context, id string, in ContributorInput) (*Contributor, error) {
	var contributor Contributor
	if err := c.do(ctx, http.MethodPut, "/contributors/"+url.PathEscape(id), in, &contributor); err != nil {
		return nil, err
	}
	return &contributor, nil
}

// DeleteContributor deletes a contributor.
func (c *Client) DeleteContributor(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/contributors/"+url.PathEscape(id), nil, nil)
}
