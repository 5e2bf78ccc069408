package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

func TestBuildPromptSequentialReferences(t *testing.T) {
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityLow, domain.CategoryProcess, domain.StatusOpen, "low one"),
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "high one"),
		blockerFixture(domain.SeverityMedium, domain.CategoryDependency, domain.StatusResolved, "medium one"),
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "high two"),
	}

	_, user := buildPrompt(blockers, domain.ReportIndividual, "Alice")

	// Ids run high to medium to low without gaps or repeats.
	assert.Contains(t, user, "B1. [Technical] high one (Status: Open)")
	assert.Contains(t, user, "B2. [Technical] high two (Status: Open)")
	assert.Contains(t, user, "B3. [Dependency] medium one (Status: Resolved)")
	assert.Contains(t, user, "B4. [Process] low one (Status: Open)")
	assert.NotContains(t, user, "B5.")

	assert.Contains(t, user, "HIGH SEVERITY (2 blockers)")
	assert.Contains(t, user, "MEDIUM SEVERITY (1 blockers)")
	assert.Contains(t, user, "LOW SEVERITY (1 blockers)")
	assert.Contains(t, user, "- Total Blockers: 4")
	assert.Contains(t, user, "- Open Blockers: 3")
	assert.Contains(t, user, "- Categories Affected: Dependency, Process, Technical")
}

func TestBuildPromptSubject(t *testing.T) {
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "x"),
	}

	system, individual := buildPrompt(blockers, domain.ReportIndividual, "Alice")
	_, team := buildPrompt(blockers, domain.ReportTeam, "Platform")

	assert.Contains(t, system, "productivity analyst")
	assert.Contains(t, individual, `an individual team member named "Alice"`)
	assert.Contains(t, team, `a team named "Platform"`)
}

func TestBuildPromptEmptyBuckets(t *testing.T) {
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityMedium, domain.CategoryOther, domain.StatusOpen, "only one"),
	}

	_, user := buildPrompt(blockers, domain.ReportIndividual, "Alice")

	// Empty buckets render as None rather than an empty list.
	assert.Equal(t, 2, strings.Count(user, "None\n"))
	assert.Contains(t, user, "B1. [Other] only one")
}

func TestBuildPromptDeterministic(t *testing.T) {
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "a"),
		blockerFixture(domain.SeverityLow, domain.CategoryProcess, domain.StatusOpen, "b"),
	}

	_, first := buildPrompt(blockers, domain.ReportTeam, "Platform")
	_, second := buildPrompt(blockers, domain.ReportTeam, "Platform")

	assert.Equal(t, first, second)
}
