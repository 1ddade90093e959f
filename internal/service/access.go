package service

import "spark/internal/model"

// Each predicate takes the caller's membership in the society concerned, or
// nil when the caller is not a member.

// canManageEvents gates event creation and editing.
func canManageEvents(user *model.User, member *model.SocietyMember) bool {
	if user.IsAdmin {
		return true
	}
	return member != nil && (member.Role == model.RoleAdmin || member.Role == model.RoleModerator)
}

// canDeleteEvents gates event deletion. Moderators may not delete.
func canDeleteEvents(user *model.User, member *model.SocietyMember) bool {
	if user.IsAdmin {
		return true
	}
	return member != nil && member.Role == model.RoleAdmin
}

func canEditSociety(user *model.User, member *model.SocietyMember) bool {
	if user.IsAdmin {
		return true
	}
	return member != nil && member.Role == model.RoleAdmin
}

// canDeleteSociety is reserved to site admins; society admins may only edit.
func canDeleteSociety(user *model.User) bool {
	return user.IsAdmin
}
