// Package permission holds the access policies as pure predicates over
// (method, principal, optional target author). Handlers evaluate them
// explicitly; there is no per-field introspection and no shared state.
package permission

var safeMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"OPTIONS": true,
}

// Principal is the acting identity extracted by the auth middleware and
// threaded explicitly into every check.
type Principal struct {
	UserID        uint
	IsAdmin       bool
	Authenticated bool
}

// ReadOpenWriteAuthorOrAdmin allows any read; mutations require an
// authenticated principal that is either the resource author or an
// admin. Recipes use this policy.
func ReadOpenWriteAuthorOrAdmin(method string, p Principal, authorID uint) bool {
	if safeMethods[method] {
		return true
	}
	if !p.Authenticated {
		return false
	}
	return p.IsAdmin || p.UserID == authorID
}

// ReadOpenWriteAdminOnly allows any read; mutations require an admin
// regardless of authorship. Reference data (tags, ingredients) uses
// this policy.
func ReadOpenWriteAdminOnly(method string, p Principal) bool {
	if safeMethods[method] {
		return true
	}
	return p.Authenticated && p.IsAdmin
}
