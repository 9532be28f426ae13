// Package rbac decides whether the current viewer may edit or delete a
// piece of content. Decisions are pure functions of the viewer snapshot and
// the content's owner; they are evaluated fresh on every call and never
// cached alongside an entity.
package rbac

import "parley/client/internal/model"

// CanEdit reports whether viewer may edit content owned by ownerID.
// Only the owner may edit; moderators and admins may not rewrite other
// people's words.
func CanEdit(viewer *model.User, ownerID int) bool {
	return viewer != nil && viewer.ID == ownerID
}

// CanDelete reports whether viewer may delete content owned by ownerID.
// Owners, moderators and admins may delete.
func CanDelete(viewer *model.User, ownerID int) bool {
	if viewer == nil {
		return false
	}
	if viewer.Role == model.RoleModerator || viewer.Role == model.RoleAdmin {
		return true
	}
	return viewer.ID == ownerID
}
