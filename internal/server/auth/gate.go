package auth

import (
	"context"
	"fmt"

	"github.com/vpavlenko/signalwars/internal/common"
	"github.com/vpavlenko/signalwars/internal/server/config"
	"github.com/vpavlenko/signalwars/internal/server/identities"
)

// Gate is the single authorization check every operation passes through. It
// is a pure check: no side effects, no storage writes.
type Gate struct {
	identities     identities.Repository
	jwtSecret      []byte
	anonymousLevel int
	required       map[string]int
}

func NewGate(repo identities.Repository, cfg *config.Config) *Gate {
	return &Gate{
		identities:     repo,
		jwtSecret:      []byte(cfg.SecretKey),
		anonymousLevel: cfg.AnonymousLevel,
		required:       requiredLevels(),
	}
}

// Authorize resolves the caller's token to an identity and checks it against
// the named command's minimum privilege level.
//
// A non-nil internal identity is trusted as-is and bypasses verification; it
// must only ever be built for server-internal calls, never from external
// input. An empty token authorizes as the anonymous identity, which succeeds
// only for commands at or below the configured anonymous level.
func (g *Gate) Authorize(ctx context.Context, token string, command string, internal *identities.Identity) (*identities.Identity, error) {

	if internal != nil {
		return internal, nil
	}

	required, ok := g.required[command]
	if !ok {
		return nil, fmt.Errorf("unknown command %q: %w", command, common.ErrorNotFound)
	}

	if token == "" {
		if required <= g.anonymousLevel {
			return &identities.Identity{PrivilegeLevel: g.anonymousLevel}, nil
		}
		return nil, common.ErrorNotAllowed
	}

	identityID, err := GetIdentityIDFromToken(token, g.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("token verification: %w", common.ErrorNotAllowed)
	}

	identity, err := g.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if identity.PrivilegeLevel < required {
		return nil, common.ErrorNotAllowed
	}

	return identity, nil
}
