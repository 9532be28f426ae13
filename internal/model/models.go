// Package model defines the forum entities exchanged with the remote API
// and the display/validation rules that apply to them locally.
package model

import "time"

type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// NormalizeRole maps an unknown role string to the least-privileged role.
func NormalizeRole(role string) Role {
	switch Role(role) {
	case RoleMember, RoleModerator, RoleAdmin:
		return Role(role)
	default:
		return RoleMember
	}
}

// User is the authenticated viewer as issued by the remote API at login.
// The snapshot is immutable for the life of a session.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// AuthorRef is the denormalized author embedded in list responses.
type AuthorRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Topic struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatedByUserID int        `json:"createdByUserId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Author          *AuthorRef `json:"author,omitempty"`
}

// Official reports whether the topic was seeded by the site rather than a
// user. The API signals this by omitting createdByUserId.
func (t Topic) Official() bool {
	return t.CreatedByUserID == 0
}

type Post struct {
	ID        int        `json:"id"`
	TopicID   int        `json:"topicId"`
	UserID    int        `json:"userId"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
	Author    *AuthorRef `json:"author,omitempty"`
}

func (p Post) Edited() bool {
	return Edited(p.CreatedAt, p.UpdatedAt, p.EditedAt)
}

type Comment struct {
	ID              int        `json:"id"`
	PostID          int        `json:"postId"`
	UserID          int        `json:"userId"`
	Body            string     `json:"body"`
	ParentCommentID int        `json:"parentCommentId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	EditedAt        *time.Time `json:"editedAt,omitempty"`
	Author          *AuthorRef `json:"author,omitempty"`
}

func (c Comment) Edited() bool {
	return Edited(c.CreatedAt, c.UpdatedAt, c.EditedAt)
}

// editGrace absorbs server-side timestamp jitter at creation: an update
// within this window of creation does not count as an edit.
const editGrace = 1000 * time.Millisecond

// Edited reports whether an entity has been edited after creation. An
// explicit editedAt always wins; otherwise the updatedAt/createdAt delta
// must exceed the grace window.
func Edited(createdAt, updatedAt time.Time, editedAt *time.Time) bool {
	if editedAt != nil {
		return true
	}
	if createdAt.IsZero() || updatedAt.IsZero() {
		return false
	}
	return updatedAt.Sub(createdAt) > editGrace
}
