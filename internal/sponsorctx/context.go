package sponsorctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	SponsorID snowflake.ID
	Role      string
}

type identityKey struct{}

// WithIdentity stores the caller identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, if set.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// SponsorIDFromContext returns the authenticated sponsor ID from context.
func SponsorIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.SponsorID == 0 {
		return 0, false
	}
	return id.SponsorID, true
}

// ParseSponsorID parses a sponsor ID from its string form.
func ParseSponsorID(value string) (snowflake.ID, bool) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || parsed == 0 {
		return 0, false
	}
	return parsed, true
}
