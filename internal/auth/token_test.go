package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

func memberFixture() *domain.TeamMember {
	return &domain.TeamMember{
		UID:       "mem1",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Team:      "Platform",
		IsManager: true,
	}
}

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(memberFixture())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := m.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "mem1", actor.UID)
	assert.Equal(t, "alice@example.com", actor.Email)
	assert.Equal(t, "Alice", actor.FirstName)
	assert.Equal(t, "Smith", actor.LastName)
	assert.Equal(t, "Platform", actor.Team)
	assert.True(t, actor.IsManager)
	assert.False(t, actor.IsAdmin)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(memberFixture())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(memberFixture())
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
