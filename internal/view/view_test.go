package view

import (
	"context"
	"net/http"
	"sync"

	"parley/client/internal/gateway"
	"parley/client/internal/model"
)

// Shared fakes for the controller tests, in the spirit of the gateway
// they stand in for: programmable per-call behavior plus call counting.

type fakeSessions struct {
	mu   sync.Mutex
	user *model.User
}

func (f *fakeSessions) Current() *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil
	}
	u := *f.user
	return &u
}

func (f *fakeSessions) set(u *model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = u
}

func member(id int) *fakeSessions {
	return &fakeSessions{user: &model.User{ID: id, Username: "ada", Role: model.RoleMember}}
}

func moderator(id int) *fakeSessions {
	return &fakeSessions{user: &model.User{ID: id, Username: "eve", Role: model.RoleModerator}}
}

func anonymous() *fakeSessions {
	return &fakeSessions{}
}

func notFoundErr(msg string) error {
	return &gateway.APIError{Status: http.StatusNotFound, Code: gateway.CodeNotFound, Message: msg}
}

func remoteErr(msg string) error {
	return &gateway.APIError{Status: http.StatusInternalServerError, Code: gateway.CodeRemote, Message: msg}
}

type fakeTopicGateway struct {
	mu       sync.Mutex
	listN    int
	createN  int
	listFn   func(ctx context.Context, query string) ([]model.Topic, error)
	createFn func(ctx context.Context, in model.TopicInput, userID int) (model.Topic, error)
}

func (f *fakeTopicGateway) ListTopics(ctx context.Context, query string) ([]model.Topic, error) {
	f.mu.Lock()
	f.listN++
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return []model.Topic{}, nil
	}
	return fn(ctx, query)
}

func (f *fakeTopicGateway) CreateTopic(ctx context.Context, in model.TopicInput, userID int) (model.Topic, error) {
	f.mu.Lock()
	f.createN++
	fn := f.createFn
	f.mu.Unlock()
	if fn == nil {
		return model.Topic{Title: in.Title, Description: in.Description, CreatedByUserID: userID}, nil
	}
	return fn(ctx, in, userID)
}

func (f *fakeTopicGateway) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listN, f.createN
}

type fakePostGateway struct {
	mu       sync.Mutex
	updateN  int
	topicFn  func(ctx context.Context, id int) (model.Topic, error)
	listFn   func(ctx context.Context, topicID int, query string) ([]model.Post, error)
	createFn func(ctx context.Context, topicID, userID int, in model.PostInput) (model.Post, error)
	updateFn func(ctx context.Context, id, userID int, in model.PostInput) (model.Post, error)
	deleteFn func(ctx context.Context, id, userID int) error
}

func (f *fakePostGateway) TopicByID(ctx context.Context, id int) (model.Topic, error) {
	if f.topicFn == nil {
		return model.Topic{ID: id, Title: "Cats"}, nil
	}
	return f.topicFn(ctx, id)
}

func (f *fakePostGateway) ListPosts(ctx context.Context, topicID int, query string) ([]model.Post, error) {
	if f.listFn == nil {
		return []model.Post{}, nil
	}
	return f.listFn(ctx, topicID, query)
}

func (f *fakePostGateway) CreatePost(ctx context.Context, topicID, userID int, in model.PostInput) (model.Post, error) {
	if f.createFn == nil {
		return model.Post{TopicID: topicID, UserID: userID, Title: in.Title, Body: in.Body}, nil
	}
	return f.createFn(ctx, topicID, userID, in)
}

func (f *fakePostGateway) UpdatePost(ctx context.Context, id, userID int, in model.PostInput) (model.Post, error) {
	f.mu.Lock()
	f.updateN++
	fn := f.updateFn
	f.mu.Unlock()
	if fn == nil {
		return model.Post{ID: id, UserID: userID, Title: in.Title, Body: in.Body}, nil
	}
	return fn(ctx, id, userID, in)
}

func (f *fakePostGateway) DeletePost(ctx context.Context, id, userID int) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id, userID)
}

func (f *fakePostGateway) updateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateN
}

type fakeCommentGateway struct {
	postFn       func(ctx context.Context, id int) (model.Post, error)
	listFn       func(ctx context.Context, postID int) ([]model.Comment, error)
	createFn     func(ctx context.Context, postID, userID int, body string, parentID int) (model.Comment, error)
	updateFn     func(ctx context.Context, id, userID int, body string) (model.Comment, error)
	deleteFn     func(ctx context.Context, id, userID int) error
	updatePostFn func(ctx context.Context, id, userID int, in model.PostInput) (model.Post, error)
	deletePostFn func(ctx context.Context, id, userID int) error
}

func (f *fakeCommentGateway) PostByID(ctx context.Context, id int) (model.Post, error) {
	if f.postFn == nil {
		return model.Post{ID: id, UserID: 7, Title: "Hello", Body: "First"}, nil
	}
	return f.postFn(ctx, id)
}

func (f *fakeCommentGateway) ListComments(ctx context.Context, postID int) ([]model.Comment, error) {
	if f.listFn == nil {
		return []model.Comment{}, nil
	}
	return f.listFn(ctx, postID)
}

func (f *fakeCommentGateway) CreateComment(ctx context.Context, postID, userID int, body string, parentID int) (model.Comment, error) {
	if f.createFn == nil {
		return model.Comment{PostID: postID, UserID: userID, Body: body, ParentCommentID: parentID}, nil
	}
	return f.createFn(ctx, postID, userID, body, parentID)
}

func (f *fakeCommentGateway) UpdateComment(ctx context.Context, id, userID int, body string) (model.Comment, error) {
	if f.updateFn == nil {
		return model.Comment{ID: id, UserID: userID, Body: body}, nil
	}
	return f.updateFn(ctx, id, userID, body)
}

func (f *fakeCommentGateway) DeleteComment(ctx context.Context, id, userID int) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id, userID)
}

func (f *fakeCommentGateway) UpdatePost(ctx context.Context, id, userID int, in model.PostInput) (model.Post, error) {
	if f.updatePostFn == nil {
		return model.Post{ID: id, UserID: userID, Title: in.Title, Body: in.Body}, nil
	}
	return f.updatePostFn(ctx, id, userID, in)
}

func (f *fakeCommentGateway) DeletePost(ctx context.Context, id, userID int) error {
	if f.deletePostFn == nil {
		return nil
	}
	return f.deletePostFn(ctx, id, userID)
}
