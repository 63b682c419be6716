package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/core/domain"
)

var linux = domain.Platform{OS: "linux", Arch: "x86_64"}

func TestRulesAllow_EmptyListAllows(t *testing.T) {
	require.True(t, domain.RulesAllow(nil, linux, nil))
	require.True(t, domain.RulesAllow([]domain.Rule{}, linux, nil))
}

func TestRulesAllow_DefaultDeny(t *testing.T) {
	// A non-empty list with no matching allow denies, even without any
	// disallow. This is deliberate and compatibility-sensitive.
	rules := []domain.Rule{
		{Action: "allow", OS: &domain.OSRule{Name: "osx"}},
	}
	require.False(t, domain.RulesAllow(rules, linux, nil))
}

func TestRulesAllow_DisallowWins(t *testing.T) {
	rules := []domain.Rule{
		{Action: "allow"},
		{Action: "disallow", OS: &domain.OSRule{Name: "linux"}},
	}
	require.False(t, domain.RulesAllow(rules, linux, nil))
}

func TestRulesAllow_UnconditionalAllow(t *testing.T) {
	rules := []domain.Rule{{Action: "allow"}}
	require.True(t, domain.RulesAllow(rules, linux, nil))
}

func TestRulesAllow_OSMatch(t *testing.T) {
	rules := []domain.Rule{
		{Action: "allow", OS: &domain.OSRule{Name: "linux"}},
	}
	require.True(t, domain.RulesAllow(rules, linux, nil))
	require.False(t, domain.RulesAllow(rules, domain.Platform{OS: "windows"}, nil))
}

func TestRulesAllow_ArchConstraint(t *testing.T) {
	rules := []domain.Rule{
		{Action: "allow", OS: &domain.OSRule{Name: "linux", Arch: "arm64"}},
	}
	require.False(t, domain.RulesAllow(rules, linux, nil))
	require.True(t, domain.RulesAllow(rules, domain.Platform{OS: "linux", Arch: "arm64"}, nil))
}

func TestRulesAllow_Features(t *testing.T) {
	rules := []domain.Rule{
		{Action: "allow", Features: map[string]bool{"has_custom_resolution": true}},
	}
	require.False(t, domain.RulesAllow(rules, linux, nil))
	require.True(t, domain.RulesAllow(rules, linux, map[string]bool{"has_custom_resolution": true}))
}
