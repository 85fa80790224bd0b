package models

import (
	"fmt"
	"strings"
)

// Role is the stored catalog record. Nothing outside this file compares the
// free-text name; authorization works on RoleKind only.
type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

// RoleKind is the closed set of roles the authorization rules understand.
type RoleKind string

const (
	RoleStudent   RoleKind = "estudiante"
	RoleProfessor RoleKind = "profesor"
	RoleAdmin     RoleKind = "admin"
)

// ParseRoleKind translates a stored role name into its variant, once, at the
// boundary. An unrecognized name is an error rather than "no permissions".
func ParseRoleKind(name string) (RoleKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "estudiante":
		return RoleStudent, nil
	case "profesor", "professor", "coordinador", "coordinator":
		return RoleProfessor, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role name %q", name)
	}
}
