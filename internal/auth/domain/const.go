// Package domain defines authentication and authorization domain models.
// Callers are authenticated with bearer tokens issued by an external identity provider
// and authorized by the permission strings those tokens carry.
package domain

// Permission is an opaque scope identifier granted to a credential (e.g. "post:drinks").
type Permission string

const (
	// GetDrinksDetailPermission allows reading drinks with full recipes.
	GetDrinksDetailPermission Permission = "get:drinks-detail"

	// PostDrinksPermission allows creating drinks.
	PostDrinksPermission Permission = "post:drinks"

	// PatchDrinksPermission allows updating drinks.
	PatchDrinksPermission Permission = "patch:drinks"

	// DeleteDrinksPermission allows deleting drinks.
	DeleteDrinksPermission Permission = "delete:drinks"
)

// PermissionsClaim is the name of the private claim holding the granted permissions.
const PermissionsClaim = "permissions"
