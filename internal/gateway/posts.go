package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"parley/client/internal/model"
)

type createPostRequest struct {
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type updatePostRequest struct {
	UserID int    `json:"userId"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
}

type deleteRequest struct {
	UserID int `json:"userId"`
}

// ListPosts returns the posts of a topic in creation order, optionally
// filtered by a search query.
func (c *Client) ListPosts(ctx context.Context, topicID int, query string) ([]model.Post, error) {
	values := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		values.Set("q", q)
	}
	var posts []model.Post
	path := fmt.Sprintf("/topics/%d/posts", topicID)
	if err := c.do(ctx, http.MethodGet, path, values, nil, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// CreatePost creates a post in the topic owned by userID.
func (c *Client) CreatePost(ctx context.Context, topicID, userID int, in model.PostInput) (model.Post, error) {
	var post model.Post
	req := createPostRequest{UserID: userID, Title: in.Title, Body: in.Body}
	path := fmt.Sprintf("/topics/%d/posts", topicID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// PostByID fetches a single post.
func (c *Client) PostByID(ctx context.Context, id int) (model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, nil, &post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// UpdatePost patches a post's title and body on behalf of userID and
// returns the stored entity, which carries the fresh timestamps.
func (c *Client) UpdatePost(ctx context.Context, id, userID int, in model.PostInput) (model.Post, error) {
	var post model.Post
	req := updatePostRequest{UserID: userID, Title: in.Title, Body: in.Body}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/posts/%d", id), nil, req, &post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// DeletePost removes a post on behalf of userID. The API authorizes the
// caller from the userId in the request body.
func (c *Client) DeletePost(ctx context.Context, id, userID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, deleteRequest{UserID: userID}, nil)
}
