// Package credentials maintains the decoy identities planted on stations and
// the global pool of fake passwords the hack puzzle is padded with. Both are
// append-only: decoys and fakes are added, never edited or removed here.
package credentials

// GameUser is a decoy identity registered for a station. Passwords is
// ordered; a hack candidate's password kind is the index picked from this
// list.
type GameUser struct {
	UserName  string
	StationID int64
	Passwords []string
}
