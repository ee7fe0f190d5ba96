package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListArticles returns all articles, optionally limited to one project.
func (c *Client) ListArticles(ctx context.Context, projectID string) ([]Article, error) {
	path := "/articles"
	if projectID != "" {
		path += "?project_id=" + url.QueryEscape(projectID)
	}

	var articles []Article
	if err := c.do(ctx, http.MethodGet, path, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle returns one article by id.
func (c *Client) GetArticle(ctx context.Context, id string) (*Article, error) {
	var article Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle creates an article.
func (c *Client) CreateArticle(ctx context.Context, in ArticleInput) (*Article, error) {
	var article Article
	if err := c.do(ctx, http.MethodPost, "/articles", in, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticle updates an article.
func (c *Client) UpdateArticle(ctx context.Context, id string, in ArticleInput) (*Article, error) {
	var article Article
	if err := c.do(ctx, http.MethodPut, "/articles/"+url.PathEscape(id), in, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// PublishArticle flips an article to published.
func (c *Client) PublishArticle(ctx context.Context, id string) (*Article, error) {
	var article Article
	if err := c.do(ctx, http.MethodPost, "/articles/"+url.PathEscape(id)+"/publish", nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteArticle deletes an article.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), nil, nil)
}
