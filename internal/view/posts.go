package view

import (
	"context"

	"parley/client/internal/gateway"
	"parley/client/internal/model"
	"parley/client/internal/rbac"
)

// PostGateway is the slice of the remote API the post list needs. The
// parent topic is fetched alongside the posts; children are not shown for
// a topic that no longer exists.
type PostGateway interface {
	TopicByID(ctx context.Context, id int) (model.Topic, error)
	ListPosts(ctx context.Context, topicID int, query string) ([]model.Post, error)
	CreatePost(ctx context.Context, topicID, userID int, in model.PostInput) (model.Post, error)
	UpdatePost(ctx context.Context, id, userID int, in model.PostInput) (model.Post, error)
	DeletePost(ctx context.Context, id, userID int) error
}

// PostView is the controller for the posts of one topic.
type PostView struct {
	list[model.Post]
	gw       PostGateway
	sessions Sessions
	topicID  int
	topic    *model.Topic
}

func NewPostView(gw PostGateway, sessions Sessions, topicID int) *PostView {
	v := &PostView{gw: gw, sessions: sessions, topicID: topicID}
	v.id = func(p model.Post) int { return p.ID }
	return v
}

// TopicID returns the scope key.
func (v *PostView) TopicID() int {
	return v.topicID
}

// Topic returns the cached parent topic, or nil while unloaded or after
// the parent has gone missing.
func (v *PostView) Topic() *model.Topic {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.topic == nil {
		return nil
	}
	t := *v.topic
	return &t
}

// Load fetches the parent topic and the topic's posts. A missing parent
// fails the scope and drops the cached posts; any other parent failure
// keeps the stale posts available. Superseded loads are discarded.
func (v *PostView) Load(ctx context.Context, query string) error {
	token := v.begin()

	topic, err := v.gw.TopicByID(ctx, v.topicID)
	if err != nil {
		if gateway.IsNotFound(err) {
			v.setTopic(token, nil)
			return v.failClear(token, err)
		}
		return v.fail(token, err)
	}
	v.setTopic(token, &topic)

	posts, err := v.gw.ListPosts(ctx, v.topicID, query)
	return v.finish(token, posts, err)
}

func (v *PostView) setTopic(token uint64, topic *model.Topic) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.gen {
		return
	}
	v.topic = topic
}

// Create validates and creates a post in this topic owned by the current
// viewer, appending the server-returned entity to the cache.
func (v *PostView) Create(ctx context.Context, title, body string) (model.Post, error) {
	viewer := v.sessions.Current()
	if viewer == nil {
		return model.Post{}, ErrAuthRequired
	}
	in, err := model.ValidatePostInput(title, body)
	if err != nil {
		return model.Post{}, err
	}
	post, err := v.gw.CreatePost(ctx, v.topicID, viewer.ID, in)
	if err != nil {
		return model.Post{}, v.setErr(err)
	}
	v.append(post)
	return post, nil
}

// Update patches a cached post's title and body. Only the owner may edit.
// On success the cached entity is replaced wholesale by the server
// response; on failure the cache keeps its pre-call value so the edit form
// can stay open over unchanged data.
func (v *PostView) Update(ctx context.Context, id int, title, body string) (model.Post, error) {
	viewer := v.sessions.Current()
	if viewer == nil {
		return model.Post{}, ErrAuthRequired
	}
	cached, ok := v.find(id)
	if !ok {
		return model.Post{}, ErrUnknownContent
	}
	if !rbac.CanEdit(viewer, cached.UserID) {
		return model.Post{}, ErrPermissionDenied
	}
	in, err := model.ValidatePostInput(title, body)
	if err != nil {
		return model.Post{}, err
	}
	post, err := v.gw.UpdatePost(ctx, id, viewer.ID, in)
	if err != nil {
		return model.Post{}, v.setErr(err)
	}
	v.replace(id, post)
	return post, nil
}

// Remove deletes a post. Owners, moderators and admins may delete. The
// cached entity goes away only once the remote confirms; a remote
// not-found still drops it, since the post is gone either way, which makes
// repeated removes converge instead of corrupting the count.
func (v *PostView) Remove(ctx context.Context, id int) error {
	viewer := v.sessions.Current()
	if viewer == nil {
		return ErrAuthRequired
	}
	cached, ok := v.find(id)
	if !ok {
		return nil
	}
	if !rbac.CanDelete(viewer, cached.UserID) {
		return ErrPermissionDenied
	}
	if err := v.gw.DeletePost(ctx, id, viewer.ID); err != nil {
		if gateway.IsNotFound(err) {
			v.remove(id)
		}
		return v.setErr(err)
	}
	v.remove(id)
	return nil
}

// Posts returns the cached posts in server order.
func (v *PostView) Posts() []model.Post {
	return v.snapshot()
}
