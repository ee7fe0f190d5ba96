package api

import (
	"context"
	"net/http"
)

// GetSocialLinks returns the site-wide social link configuration.
func (c *Client) GetSocialLinks(ctx context.Context) (*SocialLinks, error) {
	var links SocialLinks
	if err := c.do(ctx, http.MethodGet, "/settings/social-links", nil, &links); err != nil {
		return nil, err
	}
	return &links, nil
}

// SetSocialLinks replaces the site-wide social link configuration.
func (c *Client) SetSocialLinks(ctx context.Context, links SocialLinks) (*SocialLinks, error) {
	var updated SocialLinks
	if err := c.do(ctx, http.MethodPut, "/settings/social-links", links, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
