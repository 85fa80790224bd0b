package database

import (
	"errors"

	"tcu-system/internal/models"
)

// Deletion preconditions. The storage engine would happily SET NULL its way
// through these, so they are enforced here, before any delete runs.
var (
	ErrHasAssignedUsers = errors.New("project has assigned students")
	ErrHasRequests      = errors.New("record has associated requests")
	ErrIsAdmin          = errors.New("admin users cannot be deleted")
	ErrIsSelf           = errors.New("users cannot delete their own account")
)

// CanDeleteProject reports whether the project may be hard-deleted: no user
// may have it assigned and no request may reference it.
func CanDeleteProject(projectID uint) error {
	var users int64
	if err := DB.Model(&models.User{}).Where("project_id = ?", projectID).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return ErrHasAssignedUsers
	}

	var requests int64
	if err := DB.Model(&models.Request{}).Where("project_id = ?", projectID).Count(&requests).Error; err != nil {
		return err
	}
	if requests > 0 {
		return ErrHasRequests
	}
	return nil
}

// CanDeleteUser reports whether actor may hard-delete the given user.
// Admins are never deletable, nobody deletes themselves, and a student with
// requests on record must keep their account.
func CanDeleteUser(actorID, userID uint) error {
	var user models.User
	if err := DB.Preload("Role").First(&user, userID).Error; err != nil {
		return err
	}

	kind, err := models.ParseRoleKind(user.Role.Name)
	if err != nil {
		return err
	}
	if kind == models.RoleAdmin {
		return ErrIsAdmin
	}
	if actorID == userID {
		return ErrIsSelf
	}

	var requests int64
	if err := DB.Model(&models.Request{}).Where("student_id = ?", userID).Count(&requests).Error; err != nil {
		return err
	}
	if requests > 0 {
		return ErrHasRequests
	}
	return nil
}
