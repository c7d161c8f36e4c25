package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"quiz:view",
		"submission:create",
		"submission:view-own",
		"books:list",
		"review:create",
		"review:view-own",
		"profile:view-own",
		"profile:update-own",
	},
	"educator": {
		"quiz:view",
		"quiz:view-answers",
		"quiz:create",
		"quiz:update",
		"catalog:manage",
		"books:list",
		"submission:view-all",
		"review:view-all",
		"progress:view",
		"users:create",
	},
	"admin": {
		"*", // everything
	},
}
