package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"viewer": {
		"groups:view",
		"lookups:view",
		"catalog:view",
	},
	"operator": {
		"groups:view",
		"groups:edit",
		"bulk:create",
		"mapping:edit",
		"mapping:delete",
		"lookups:view",
		"catalog:view",
	},
	"admin": {
		"*", // everything
	},
}
