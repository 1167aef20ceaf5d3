package domain

import (
	"slices"
	"time"
)

// Claims is the decoded claim set of a verified credential.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	// Permissions lists the granted permission strings.
	Permissions []string
	// HasPermissions reports whether the token carried a permissions claim at all.
	// A token with an empty permissions array has HasPermissions set and no Permissions.
	HasPermissions bool
}

// RequirePermission checks that the claims grant the given permission.
// It fails with ErrPermissionsClaimMissing when the token format carries no
// permissions claim and with ErrPermissionNotFound when the permission is absent.
func (c *Claims) RequirePermission(permission Permission) error {
	if c == nil || !c.HasPermissions {
		return ErrPermissionsClaimMissing
	}
	if !slices.Contains(c.Permissions, string(permission)) {
		return ErrPermissionNotFound
	}
	return nil
}
