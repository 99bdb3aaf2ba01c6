package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CommentClient wraps the comment endpoints for one meetup at a time.
type CommentClient struct {
	api     api
	toaster *Toaster

	// Comments is the latest fetched page.
	Comments *Signal[[]Comment]
	// Loading gates spinners while a request is in flight.
	Loading *Signal[bool]
	// TotalPages and CurrentPage mirror the server's pagination fields;
	// both default to 1.
	TotalPages  *Signal[int]
	CurrentPage *Signal[int]
}

// NewCommentClient builds a comment client over an authenticated HTTP client.
func NewCommentClient(baseURL string, httpClient *http.Client, toaster *Toaster) *CommentClient {
	return &CommentClient{
		api:         api{baseURL: baseURL, http: httpClient},
		toaster:     toaster,
		Comments:    NewSignal([]Comment(nil)),
		Loading:     NewSignal(false),
		TotalPages:  NewSignal(1),
		CurrentPage: NewSignal(1),
	}
}

type commentListResponse struct {
	Comments    string `json:"comments"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
}

// GetComments fetches one page of a meetup's comments. The list arrives
// embedded as a JSON string. On error the list empties and loading clears.
func (c *CommentClient) GetComments(ctx context.Context, meetupID uint, page int) {
	c.Loading.Set(true)

	path := fmt.Sprintf("%s/comments", meetupPath(meetupID))
	var out commentListResponse
	err := c.api.do(ctx, http.MethodGet, listPath(path, page), nil, &out)

	var comments []Comment
	if err == nil {
		err = json.Unmarshal([]byte(out.Comments), &comments)
	}

	if err != nil {
		c.Comments.Set(nil)
		c.Loading.Set(false)
		c.notifyErr(err, "Could not load comments.")
		return
	}

	c.Comments.Set(comments)
	c.TotalPages.Set(out.TotalPages)
	c.CurrentPage.Set(out.CurrentPage)
	c.Loading.Set(false)
}

// AddComment posts content on a meetup and appends the returned record to
// the local list. On failure the list is left unchanged.
func (c *CommentClient) AddComment(ctx context.Context, meetupID uint, content string) (*Comment, error) {
	var created Comment
	err := c.api.do(ctx, http.MethodPost, meetupPath(meetupID)+"/comments",
		map[string]any{"comment": map[string]string{"content": content}}, &created)
	if err != nil {
		c.notifyErr(err, "Could not post comment.")
		return nil, err
	}

	c.Comments.Update(func(comments []Comment) []Comment {
		return append(comments, created)
	})
	c.toaster.Success("Comment posted!")
	return &created, nil
}

// SeedComments replaces the local list directly with no network call — used
// when a parent detail view already received comments inline.
func (c *CommentClient) SeedComments(comments []Comment) {
	c.Comments.Set(comments)
}

// ClearComments resets list and pagination to defaults, called when leaving
// a detail view.
func (c *CommentClient) ClearComments() {
	c.Comments.Set(nil)
	c.TotalPages.Set(1)
	c.CurrentPage.Set(1)
}

func (c *CommentClient) notifyErr(err error, fallback string) {
	if c.toaster == nil {
		return
	}
	if apiErr, ok := err.(*APIError); ok {
		c.toaster.Error(apiErr.FirstMessage(fallback))
		return
	}
	c.toaster.Error(fallback)
}
