// Package hacksessions stores per-identity hack puzzle state. The store keys
// sessions by owner, so at most one session (active or resolved) exists per
// identity at any time.
package hacksessions

// PasswordHint reveals a single character of a candidate's password.
type PasswordHint struct {
	Index int    `json:"index"`
	Char  string `json:"char"`
}

// Candidate is one of the (at most two) decoy identities offered in a
// session's puzzle. Exactly one candidate per session is correct.
type Candidate struct {
	UserName     string       `json:"user_name"`
	Password     string       `json:"password"`
	IsCorrect    bool         `json:"is_correct"`
	PasswordKind int          `json:"password_kind"`
	Hint         PasswordHint `json:"hint"`
}

// Session is the full per-owner puzzle state. IsDone marks a resolved
// session; resolved sessions stay in the store until the owner starts a hack
// against a different station.
type Session struct {
	Owner             string
	StationID         int64
	Candidates        []Candidate
	TriesRemaining    int
	IsDone            bool
	WasSuccessful     bool
	ResultCoordinates *string
}

// Correct returns the session's correct candidate, or nil when the record is
// malformed.
func (s *Session) Correct() *Candidate {
	for i := range s.Candidates {
		if s.Candidates[i].IsCorrect {
			return &s.Candidates[i]
		}
	}
	return nil
}
