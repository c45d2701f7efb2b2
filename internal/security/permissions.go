package security

import (
	"strings"

	"github.com/yourorg/shipkeeper/internal/domain"
)

// Permission names a UI affordance a role may render. The table is advisory
// only: it gates which controls the dashboard shows and is not an
// enforcement boundary.
type Permission string

const (
	PermCreateShip      Permission = "canCreateShip"
	PermEditShip        Permission = "canEditShip"
	PermDeleteShip      Permission = "canDeleteShip"
	PermCreateComponent Permission = "canCreateComponent"
	PermEditComponent   Permission = "canEditComponent"
	PermDeleteComponent Permission = "canDeleteComponent"
	PermCreateJob       Permission = "canCreateJob"
	PermEditJob         Permission = "canEditJob"
	PermDeleteJob       Permission = "canDeleteJob"
	PermAssignJob       Permission = "canAssignJob"
	PermViewReports     Permission = "canViewReports"
)

// rolePermissions maps each role to its permission flags
var rolePermissions = map[domain.Role]map[Permission]bool{
	domain.RoleAdmin: {
		PermCreateShip:      true,
		PermEditShip:        true,
		PermDeleteShip:      true,
		PermCreateComponent: true,
		PermEditComponent:   true,
		PermDeleteComponent: true,
		PermCreateJob:       true,
		PermEditJob:         true,
		PermDeleteJob:       true,
		PermAssignJob:       true,
		PermViewReports:     true,
	},
	domain.RoleInspector: {
		PermCreateShip:      false,
		PermEditShip:        false,
		PermDeleteShip:      false,
		PermCreateComponent: true,
		PermEditComponent:   true,
		PermDeleteComponent: false,
		PermCreateJob:       true,
		PermEditJob:         true,
		PermDeleteJob:       false,
		PermAssignJob:       true,
		PermViewReports:     true,
	},
	domain.RoleEngineer: {
		PermCreateShip:      false,
		PermEditShip:        false,
		PermDeleteShip:      false,
		PermCreateComponent: false,
		PermEditComponent:   false,
		PermDeleteComponent: false,
		PermCreateJob:       false,
		PermEditJob:         true, // can update job status
		PermDeleteJob:       false,
		PermAssignJob:       false,
		PermViewReports:     false,
	},
}

// HasPermission reports whether the user's role carries the permission.
// A nil user or an unknown permission key is false.
func HasPermission(user *domain.User, permission Permission) bool {
	if user == nil {
		return false
	}
	return rolePermissions[user.Role][permission]
}

// PermissionsFor returns the full permission map for a user's role.
// A nil user gets an empty map.
func PermissionsFor(user *domain.User) map[Permission]bool {
	if user == nil {
		return map[Permission]bool{}
	}
	perms := rolePermissions[user.Role]
	out := make(map[Permission]bool, len(perms))
	for k, v := range perms {
		out[k] = v
	}
	return out
}

// FormatRoleName normalizes a role string for display
func FormatRoleName(role string) string {
	if role == "" {
		return ""
	}
	return strings.ToUpper(role[:1]) + strings.ToLower(role[1:])
}
