package view

import (
	"context"

	"parley/client/internal/model"
)

// TopicGateway is the slice of the remote API the topic list needs.
type TopicGateway interface {
	ListTopics(ctx context.Context, query string) ([]model.Topic, error)
	CreateTopic(ctx context.Context, in model.TopicInput, userID int) (model.Topic, error)
}

// TopicView is the controller for the topic list.
type TopicView struct {
	list[model.Topic]
	gw       TopicGateway
	sessions Sessions
}

func NewTopicView(gw TopicGateway, sessions Sessions) *TopicView {
	v := &TopicView{gw: gw, sessions: sessions}
	v.id = func(t model.Topic) int { return t.ID }
	return v
}

// Load fetches the topic list, optionally filtered by query. If a newer
// Load starts before this one resolves, this one's result is discarded.
func (v *TopicView) Load(ctx context.Context, query string) error {
	token := v.begin()
	topics, err := v.gw.ListTopics(ctx, query)
	return v.finish(token, topics, err)
}

// Create validates and creates a topic owned by the current viewer, then
// appends the server-returned entity to the cache. Nothing is inserted
// optimistically; a gateway failure leaves the cache untouched.
func (v *TopicView) Create(ctx context.Context, title, description string) (model.Topic, error) {
	viewer := v.sessions.Current()
	if viewer == nil {
		return model.Topic{}, ErrAuthRequired
	}
	in, err := model.ValidateTopicInput(title, description)
	if err != nil {
		return model.Topic{}, err
	}
	topic, err := v.gw.CreateTopic(ctx, in, viewer.ID)
	if err != nil {
		return model.Topic{}, v.setErr(err)
	}
	v.append(topic)
	return topic, nil
}

// Topics returns the cached topic list in server order.
func (v *TopicView) Topics() []model.Topic {
	return v.snapshot()
}
