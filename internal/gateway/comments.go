package gateway

import (
	"context"
	"fmt"
	"net/http"

	"parley/client/internal/model"
)

type createCommentRequest struct {
	UserID          int    `json:"userId"`
	Body            string `json:"body"`
	ParentCommentID int    `json:"parentCommentId,omitempty"`
}

type updateCommentRequest struct {
	UserID int    `json:"userId"`
	Body   string `json:"body"`
}

// ListComments returns a post's comments in creation order.
func (c *Client) ListComments(ctx context.Context, postID int) ([]model.Comment, error) {
	var comments []model.Comment
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

// CreateComment adds a comment to a post. parentID nests the comment under
// an existing one; zero means a top-level comment and is omitted from the
// payload.
func (c *Client) CreateComment(ctx context.Context, postID, userID int, body string, parentID int) (model.Comment, error) {
	var comment model.Comment
	req := createCommentRequest{UserID: userID, Body: body, ParentCommentID: parentID}
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &comment); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

// UpdateComment patches a comment's body on behalf of userID.
func (c *Client) UpdateComment(ctx context.Context, id, userID int, body string) (model.Comment, error) {
	var comment model.Comment
	req := updateCommentRequest{UserID: userID, Body: body}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/comments/%d", id), nil, req, &comment); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment on behalf of userID.
func (c *Client) DeleteComment(ctx context.Context, id, userID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, deleteRequest{UserID: userID}, nil)
}
