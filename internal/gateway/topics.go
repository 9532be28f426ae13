package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"parley/client/internal/model"
)

type createTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      int    `json:"userId"`
}

// ListTopics returns all topics, optionally filtered by a search query.
// A blank query lists everything.
func (c *Client) ListTopics(ctx context.Context, query string) ([]model.Topic, error) {
	values := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		values.Set("q", q)
	}
	var topics []model.Topic
	if err := c.do(ctx, http.MethodGet, "/topics", values, nil, &topics); err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	return topics, nil
}

// CreateTopic creates a topic owned by userID and returns the stored entity.
func (c *Client) CreateTopic(ctx context.Context, in model.TopicInput, userID int) (model.Topic, error) {
	var topic model.Topic
	req := createTopicRequest{Title: in.Title, Description: in.Description, UserID: userID}
	if err := c.do(ctx, http.MethodPost, "/topics", nil, req, &topic); err != nil {
		return model.Topic{}, err
	}
	return topic, nil
}

// TopicByID resolves a single topic. The API has no direct topic fetch, so
// this scans the full list; a miss reports not_found like a real endpoint
// would.
func (c *Client) TopicByID(ctx context.Context, id int) (model.Topic, error) {
	topics, err := c.ListTopics(ctx, "")
	if err != nil {
		return model.Topic{}, err
	}
	for _, t := range topics {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Topic{}, &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Topic not found"}
}
