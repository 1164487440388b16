// Package hacking implements the hack use cases: starting or fetching a
// session's puzzle and submitting guesses against it.
//
// Per owner the session moves through NONE -> ACTIVE -> RESOLVED_SUCCESS or
// RESOLVED_FAIL. Resolved sessions are never deleted; requesting a hack for a
// different station replaces them with a fresh ACTIVE session, discarding any
// remaining tries.
package hacking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/vpavlenko/signalwars/internal/common"
	"github.com/vpavlenko/signalwars/internal/logging"
	"github.com/vpavlenko/signalwars/internal/server/auth"
	"github.com/vpavlenko/signalwars/internal/server/broadcast"
	"github.com/vpavlenko/signalwars/internal/server/config"
	"github.com/vpavlenko/signalwars/internal/server/credentials"
	"github.com/vpavlenko/signalwars/internal/server/hacksessions"
	"github.com/vpavlenko/signalwars/internal/server/signal"
)

// fakePasswordCount is how many decoy passwords pad the client-visible list.
const fakePasswordCount = 13

// HackView is the client-visible slice of a session: the correct candidate's
// identity and hint, the padded password list, and the remaining tries. The
// second candidate's password is never exposed.
type HackView struct {
	StationID      int64
	UserName       string
	PasswordKind   int
	Hint           hacksessions.PasswordHint
	TriesRemaining int
	Passwords      []string
}

// MatchFeedback reports how many characters of a wrong guess occur anywhere
// in the correct password.
type MatchFeedback struct {
	Amount int
}

// GuessResult is the outcome of one submitted guess. A wrong password is not
// an error: Success is false and, while tries remain, Matches carries the
// character feedback.
type GuessResult struct {
	Success        bool
	BoostingSignal bool
	TriesRemaining int
	Matches        *MatchFeedback
}

// HackActivity is the payload broadcast after a successful hack.
type HackActivity struct {
	StationID   int64
	StationName string
	Boosting    bool
}

type Service struct {
	gate        *auth.Gate
	sessions    hacksessions.Repository
	credentials *credentials.Service
	engine      *signal.Engine
	hub         *broadcast.Hub
	tries       int
	logger      logging.Logger
	rnd         *rand.Rand
}

func NewService(gate *auth.Gate, sessions hacksessions.Repository, credentialPool *credentials.Service,
	engine *signal.Engine, hub *broadcast.Hub, cfg *config.Config, logger logging.Logger, rnd *rand.Rand) *Service {
	return &Service{
		gate:        gate,
		sessions:    sessions,
		credentials: credentialPool,
		engine:      engine,
		hub:         hub,
		tries:       cfg.HackingTriesAmount,
		logger:      logger.With("module", "hack_service"),
		rnd:         rnd,
	}
}

// StartOrFetch returns the caller's puzzle for the station. An existing
// session for the same station is returned as-is; otherwise a fresh puzzle is
// built and the previous session, resolved or not, is replaced.
func (s *Service) StartOrFetch(ctx context.Context, token string, stationID int64) (*HackView, error) {

	identity, err := s.gate.Authorize(ctx, token, auth.CommandHackStart, nil)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByOwner(ctx, identity.ID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if session == nil || session.StationID != stationID {
		session, err = s.startSession(ctx, identity.ID, stationID)
		if err != nil {
			return nil, err
		}
	}

	return s.buildView(ctx, session)
}

// startSession builds a fresh puzzle from the station's decoy pool and
// replaces whatever session the owner had.
func (s *Service) startSession(ctx context.Context, owner string, stationID int64) (*hacksessions.Session, error) {

	decoys, err := s.credentials.ListDecoysByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if len(decoys) == 0 {
		return nil, fmt.Errorf("game users: %w", common.ErrorNotFound)
	}

	count := 2
	if len(decoys) < count {
		count = len(decoys)
	}

	order := s.rnd.Perm(len(decoys))

	candidates := make([]hacksessions.Candidate, 0, count)
	for i := 0; i < count; i++ {
		decoy := decoys[order[i]]

		kind := s.rnd.IntN(len(decoy.Passwords))
		password := decoy.Passwords[kind]
		hintIndex := s.rnd.IntN(len(password))

		candidates = append(candidates, hacksessions.Candidate{
			UserName:     decoy.UserName,
			Password:     password,
			IsCorrect:    i == 0,
			PasswordKind: kind,
			Hint: hacksessions.PasswordHint{
				Index: hintIndex,
				Char:  string(password[hintIndex]),
			},
		})
	}

	session := &hacksessions.Session{
		Owner:          owner,
		StationID:      stationID,
		Candidates:     candidates,
		TriesRemaining: s.tries,
	}

	if err := s.sessions.Upsert(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// buildView assembles the client-visible data: up to fakePasswordCount
// shuffled fakes plus the distinct real candidate passwords, shuffled again.
func (s *Service) buildView(ctx context.Context, session *hacksessions.Session) (*HackView, error) {

	correct := session.Correct()
	if correct == nil {
		return nil, fmt.Errorf("session has no correct candidate: %w", common.ErrorStorage)
	}

	fakes, err := s.credentials.GetFakePasswords(ctx)
	if err != nil {
		return nil, err
	}

	shuffled := append([]string(nil), fakes...)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > fakePasswordCount {
		shuffled = shuffled[:fakePasswordCount]
	}

	seen := make(map[string]struct{}, len(session.Candidates))
	for _, candidate := range session.Candidates {
		if _, ok := seen[candidate.Password]; ok {
			continue
		}
		seen[candidate.Password] = struct{}{}
		shuffled = append(shuffled, candidate.Password)
	}

	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return &HackView{
		StationID:      session.StationID,
		UserName:       correct.UserName,
		PasswordKind:   correct.PasswordKind,
		Hint:           correct.Hint,
		TriesRemaining: session.TriesRemaining,
		Passwords:      shuffled,
	}, nil
}

// SubmitGuess resolves one guess against the caller's active session.
//
// A correct password (case-insensitive) adjusts the station signal and
// resolves the session successfully without consuming a try; if the signal
// adjustment fails the session is left active and the error is surfaced. A
// wrong password consumes a try and either returns character-match feedback
// or, once tries are exhausted, resolves the session as failed.
func (s *Service) SubmitGuess(ctx context.Context, token string, password string, boosting bool) (*GuessResult, error) {

	identity, err := s.gate.Authorize(ctx, token, auth.CommandHackGuess, nil)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByOwner(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if session.IsDone {
		return nil, fmt.Errorf("active hack session: %w", common.ErrorNotFound)
	}

	correct := session.Correct()
	if correct == nil {
		return nil, fmt.Errorf("session has no correct candidate: %w", common.ErrorStorage)
	}

	guess := strings.ToLower(password)
	answer := strings.ToLower(correct.Password)

	if guess == answer && session.TriesRemaining > 0 {
		return s.resolveSuccess(ctx, identity.ID, session, boosting)
	}

	session.TriesRemaining--

	if session.TriesRemaining <= 0 {
		if err := s.sessions.SetTriesRemaining(ctx, identity.ID, 0); err != nil {
			return nil, err
		}
		if err := s.sessions.Finalize(ctx, identity.ID, false, nil); err != nil {
			return nil, err
		}
		return &GuessResult{Success: false, TriesRemaining: 0}, nil
	}

	if err := s.sessions.SetTriesRemaining(ctx, identity.ID, session.TriesRemaining); err != nil {
		return nil, err
	}

	return &GuessResult{
		Success:        false,
		TriesRemaining: session.TriesRemaining,
		Matches:        &MatchFeedback{Amount: matchCount(guess, answer)},
	}, nil
}

func (s *Service) resolveSuccess(ctx context.Context, owner string, session *hacksessions.Session, boosting bool) (*GuessResult, error) {

	station, err := s.engine.Adjust(ctx, session.StationID, boosting)
	if err != nil {
		// session stays active; the caller may retry without losing a try
		return nil, err
	}

	if err := s.sessions.Finalize(ctx, owner, true, &station.Name); err != nil {
		return nil, err
	}

	s.hub.Publish(broadcast.TopicHackActivity, HackActivity{
		StationID:   station.ID,
		StationName: station.Name,
		Boosting:    boosting,
	})

	s.logger.Info(ctx, "station hacked",
		"station_id", station.ID, "boosting", boosting, "signal_value", station.SignalValue)

	return &GuessResult{Success: true, BoostingSignal: boosting}, nil
}

// matchCount counts, for every character of the guess, whether that
// character occurs anywhere in the correct password. Position is ignored, so
// "ab" against "ba" scores 2.
func matchCount(guess, correct string) int {
	count := 0
	for _, r := range guess {
		if strings.ContainsRune(correct, r) {
			count++
		}
	}
	return count
}
