package view

import (
	"context"

	"parley/client/internal/gateway"
	"parley/client/internal/model"
	"parley/client/internal/rbac"
)

// CommentGateway is the slice of the remote API the comment list needs.
// It includes the parent post operations because the post detail screen
// edits the post it is showing.
type CommentGateway interface {
	PostByID(ctx context.Context, id int) (model.Post, error)
	ListComments(ctx context.Context, postID int) ([]model.Comment, error)
	CreateComment(ctx context.Context, postID, userID int, body string, parentID int) (model.Comment, error)
	UpdateComment(ctx context.Context, id, userID int, body string) (model.Comment, error)
	DeleteComment(ctx context.Context, id, userID int) error
	UpdatePost(ctx context.Context, id, userID int, in model.PostInput) (model.Post, error)
	DeletePost(ctx context.Context, id, userID int) error
}

// CommentView is the controller for one post and its comments.
type CommentView struct {
	list[model.Comment]
	gw       CommentGateway
	sessions Sessions
	postID   int
	post     *model.Post
}

func NewCommentView(gw CommentGateway, sessions Sessions, postID int) *CommentView {
	v := &CommentView{gw: gw, sessions: sessions, postID: postID}
	v.id = func(c model.Comment) int { return c.ID }
	return v
}

// PostID returns the scope key.
func (v *CommentView) PostID() int {
	return v.postID
}

// Post returns the cached parent post, or nil while unloaded or after the
// post has gone missing.
func (v *CommentView) Post() *model.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.post == nil {
		return nil
	}
	p := *v.post
	return &p
}

// Load fetches the parent post and its comments. A missing post fails the
// scope and drops the comments; other failures keep the stale cache.
func (v *CommentView) Load(ctx context.Context) error {
	token := v.begin()

	post, err := v.gw.PostByID(ctx, v.postID)
	if err != nil {
		if gateway.IsNotFound(err) {
			v.setPost(token, nil)
			return v.failClear(token, err)
		}
		return v.fail(token, err)
	}
	v.setPost(token, &post)

	comments, err := v.gw.ListComments(ctx, v.postID)
	return v.finish(token, comments, err)
}

func (v *CommentView) setPost(token uint64, post *model.Post) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.gen {
		return
	}
	v.post = post
}

// Create validates and adds a comment by the current viewer, optionally
// nested under parentID (zero means top-level), appending the
// server-returned entity to the cache.
func (v *CommentView) Create(ctx context.Context, body string, parentID int) (model.Comment, error) {
	viewer := v.sessions.Current()
	if viewer == nil {
		return model.Comment{}, ErrAuthRequired
	}
	trimmed, err := model.ValidateCommentBody(body)
	if err != nil {
		return model.Comment{}, err
	}
	comment, err := v.gw.CreateComment(ctx, v.postID, viewer.ID, trimmed, parentID)
	if err != nil {
		return model.Comment{}, v.setErr(err)
	}
	v.append(comment)
	return comment, nil
}

// Update patches a cached comment's body. Only the owner may edit; the
// server response replaces the cached entity wholesale.
func (v *CommentView) Update(ctx context.Context, id int, body string) (model.Comment, error) {
	viewer := v.sessions.Current()
	if viewer == nil {
		return model.Comment{}, ErrAuthRequired
	}
	cached, ok := v.find(id)
	if !ok {
		return model.Comment{}, ErrUnknownContent
	}
	if !rbac.CanEdit(viewer, cached.UserID) {
		return model.Comment{}, ErrPermissionDenied
	}
	trimmed, err := model.ValidateCommentBody(body)
	if err != nil {
		return model.Comment{}, err
	}
	comment, err := v.gw.UpdateComment(ctx, id, viewer.ID, trimmed)
	if err != nil {
		return model.Comment{}, v.setErr(err)
	}
	v.replace(id, comment)
	return comment, nil
}

// Remove deletes a comment once the remote confirms. A remote not-found
// still drops the cached row so repeated removes converge.
func (v *CommentView) Remove(ctx context.Context, id int) error {
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
	if err := v.gw.DeleteComment(ctx, id, viewer.ID); err != nil {
		if gateway.IsNotFound(err) {
			v.remove(id)
		}
		return v.setErr(err)
	}
	v.remove(id)
	return nil
}

// UpdatePost edits the parent post in place. Only the owner may edit.
func (v *CommentView) UpdatePost(ctx context.Context, title, body string) (model.Post, error) {
	viewer := v.sessions.Current()
	if viewer == nil {
		return model.Post{}, ErrAuthRequired
	}
	parent := v.Post()
	if parent == nil {
		return model.Post{}, ErrUnknownContent
	}
	if !rbac.CanEdit(viewer, parent.UserID) {
		return model.Post{}, ErrPermissionDenied
	}
	in, err := model.ValidatePostInput(title, body)
	if err != nil {
		return model.Post{}, err
	}
	post, err := v.gw.UpdatePost(ctx, parent.ID, viewer.ID, in)
	if err != nil {
		return model.Post{}, v.setErr(err)
	}
	v.mu.Lock()
	v.post = &post
	v.mu.Unlock()
	return post, nil
}

// RemovePost deletes the parent post. The scope is dead afterwards; the
// caller navigates away and tears the view down.
func (v *CommentView) RemovePost(ctx context.Context) error {
	viewer := v.sessions.Current()
	if viewer == nil {
		return ErrAuthRequired
	}
	parent := v.Post()
	if parent == nil {
		return ErrUnknownContent
	}
	if !rbac.CanDelete(viewer, parent.UserID) {
		return ErrPermissionDenied
	}
	if err := v.gw.DeletePost(ctx, parent.ID, viewer.ID); err != nil {
		return v.setErr(err)
	}
	v.mu.Lock()
	v.post = nil
	v.items = nil
	v.mu.Unlock()
	return nil
}

// Comments returns the cached comments in server order.
func (v *CommentView) Comments() []model.Comment {
	return v.snapshot()
}
