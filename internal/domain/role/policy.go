package role

import (
	"sort"
	"strings"
)

// Level classifies a stored role token into one of exactly two privilege levels.
type Level int

const (
	// Standard is the default level for every account.
	Standard Level = iota
	// Elevated grants access to all mutation endpoints.
	Elevated
)

// String returns the level name.
func (l Level) String() string {
	if l == Elevated {
		return "elevated"
	}
	return "standard"
}

// Canonical is the role value written for new elevated accounts.
const Canonical = "manager"

// DefaultElevatedTokens are the raw role spellings that classify as Elevated.
// The stored column has drifted across schema generations ("admin" in the
// first, "manager"/"m"/"1" in the second), so the accepted set is policy
// configuration rather than a literal.
var DefaultElevatedTokens = []string{"manager", "m", "1", "admin"}

// Policy decides whether a raw role token counts as elevated.
type Policy struct {
	elevated map[string]bool
}

// NewPolicy builds a Policy from the accepted elevated tokens.
// Tokens are normalized (trimmed, case-folded) on the way in.
// PRE: none — an empty token list yields a policy where nothing is elevated
// POST: returned policy is immutable and safe for concurrent use
func NewPolicy(elevatedTokens []string) Policy {
	set := make(map[string]bool, len(elevatedTokens))
	for _, tok := range elevatedTokens {
		norm := normalize(tok)
		if norm != "" {
			set[norm] = true
		}
	}
	return Policy{elevated: set}
}

// DefaultPolicy returns a Policy accepting DefaultElevatedTokens.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultElevatedTokens)
}

// IsElevated reports whether the raw role token classifies as Elevated.
// Missing/empty tokens are never elevated.
// INVARIANT: pure — no side effects, deterministic over the input domain
func (p Policy) IsElevated(token string) bool {
	norm := normalize(token)
	if norm == "" {
		return false
	}
	return p.elevated[norm]
}

// Classify maps a raw role token to its Level.
// INVARIANT: Classify(t) == Elevated iff IsElevated(t)
func (p Policy) Classify(token string) Level {
	if p.IsElevated(token) {
		return Elevated
	}
	return Standard
}

// Tokens returns the normalized elevated tokens in stable order.
func (p Policy) Tokens() []string {
	out := make([]string, 0, len(p.elevated))
	for tok := range p.elevated {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
