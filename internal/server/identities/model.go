// Package identities reads caller identity records. The records are owned by
// an external identity service; this core only ever loads them, freshly on
// each request.
package identities

// Identity is a resolved caller. PrivilegeLevel is ordinal: higher values
// grant strictly more access.
type Identity struct {
	ID             string
	PrivilegeLevel int
	IsBanned       bool
	IsVerified     bool
}
