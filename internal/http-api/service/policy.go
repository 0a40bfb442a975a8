package service

import (
	"errors"

	"reviewhub/internal/http-api/models"
)

// All authorization decisions live here so every mutation path shares the
// same rules and they can be tested in one place. Read operations are
// public and never consult the policy.

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// CanMutateContent reports whether actor may update or delete a review or
// comment authored by authorID: the author themselves, a moderator, or an
// admin.
func CanMutateContent(actor *models.User, authorID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == authorID || actor.IsModerator() || actor.IsAdmin()
}

// CanManageCatalog reports whether actor may create, update or delete
// catalog reference data (categories, genres, titles).
func CanManageCatalog(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// CanAdministerUsers reports whether actor may list, create, update or
// delete arbitrary user accounts. The self-service path bypasses this.
func CanAdministerUsers(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// IsSelf reports whether username addresses the actor's own account,
// either literally or through the "me" alias.
func IsSelf(actor *models.User, username string) bool {
	if actor == nil {
		return false
	}
	return username == "me" || username == actor.Username
}
