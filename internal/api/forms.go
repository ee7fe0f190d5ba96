package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListForms returns all form definitions.
func (c *Client) ListForms(ctx context.Context) ([]Form, error) {
	var forms []Form
	if err := c.do(ctx, http.MethodGet, "/forms", nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// ListFormSubmissions returns submissions for one form.
func (c *Client) ListFormSubmissions(ctx context.Context, formID string) ([]FormSubmission, error) {
	var submissions []FormSubmission
	if err := c.do(ctx, http.MethodGet, "/forms/"+url.PathEscape(formID)+"/submissions", nil, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// GetFormSubmission returns one submission.
func (c *Client) GetFormSubmission(ctx context.Context, formID, submissionID string) (*FormSubmission, error) {
	var submission FormSubmission
	path := "/forms/" + url.PathEscape(formID) + "/submissions/" + url.PathEscape(submissionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}
