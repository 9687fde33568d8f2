package searchq

import (
	"strings"
	"testing"
)

// TestBuild_Empty tests that blank queries match everything.
func TestBuild_Empty(t *testing.T) {
	b := New("first_name", "last_name")
	for _, q := range []string{"", "   ", "\t"} {
		p := b.Build(q)
		if !p.MatchAll() {
			t.Errorf("Build(%q).MatchAll() = false, want true", q)
		}
		if len(p.Args) != 0 {
			t.Errorf("Build(%q) args = %v, want none", q, p.Args)
		}
	}
}

// TestBuild_Fields tests one LIKE clause per configured column.
func TestBuild_Fields(t *testing.T) {
	p := New("first_name", "last_name", "email").Build("Ada")

	if got := strings.Count(p.Clause, "LIKE ?"); got != 3 {
		t.Errorf("clause %q has %d LIKE placeholders, want 3", p.Clause, got)
	}
	if len(p.Args) != 3 {
		t.Fatalf("args = %d, want 3", len(p.Args))
	}
	for _, a := range p.Args {
		if a != "%ada%" {
			t.Errorf("arg = %v, want %%ada%%", a)
		}
	}
	if !strings.Contains(p.Clause, "LOWER(first_name) LIKE ?") {
		t.Errorf("clause %q missing lowered column match", p.Clause)
	}
}

// TestBuild_Raw tests raw expressions join the OR list.
func TestBuild_Raw(t *testing.T) {
	p := New("email").
		WithRaw("p.first_name || ' ' || p.last_name").
		Build("ada lovelace")

	if !strings.Contains(p.Clause, "LOWER(p.first_name || ' ' || p.last_name) LIKE ?") {
		t.Errorf("clause %q missing raw expression", p.Clause)
	}
	if len(p.Args) != 2 {
		t.Errorf("args = %d, want 2", len(p.Args))
	}
}

// TestBuild_Alias tests alias tokens add an exact-equality clause.
func TestBuild_Alias(t *testing.T) {
	b := New("email").WithAlias("role", "manager", "manager", "m", "1", "admin")

	for _, q := range []string{"manager", "  M ", "1", "ADMIN"} {
		p := b.Build(q)
		if !strings.Contains(p.Clause, "role = ?") {
			t.Errorf("Build(%q) clause %q missing alias equality", q, p.Clause)
		}
		if p.Args[len(p.Args)-1] != "manager" {
			t.Errorf("Build(%q) last arg = %v, want manager", q, p.Args[len(p.Args)-1])
		}
	}

	// Non-alias queries get no equality clause.
	p := b.Build("manage")
	if strings.Contains(p.Clause, "role = ?") {
		t.Errorf("Build(manage) clause %q should not contain alias equality", p.Clause)
	}
}

// TestBuild_AliasPlurals tests plural spellings configured as alias tokens
// produce the equality clause like their singular forms.
func TestBuild_AliasPlurals(t *testing.T) {
	b := New("email").WithAlias("role", "manager", "manager", "managers", "admin", "admins")

	for _, q := range []string{"managers", "admins"} {
		p := b.Build(q)
		if !strings.Contains(p.Clause, "role = ?") {
			t.Errorf("Build(%q) clause %q missing alias equality", q, p.Clause)
		}
	}
}

// TestBuild_ArgCountMatchesPlaceholders tests args line up with placeholders.
func TestBuild_ArgCountMatchesPlaceholders(t *testing.T) {
	p := New("a", "b").WithRaw("a || b").WithAlias("role", "manager", "m").Build("m")
	if got := strings.Count(p.Clause, "?"); got != len(p.Args) {
		t.Errorf("placeholders = %d, args = %d", got, len(p.Args))
	}
}
