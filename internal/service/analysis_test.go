package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

func blockerFixture(severity domain.BlockerSeverity, category domain.BlockerCategory, status domain.BlockerStatus, description string) *domain.Blocker {
	return &domain.Blocker{
		Description: description,
		Category:    category,
		Severity:    severity,
		Status:      status,
	}
}

func TestGroupBySeverity(t *testing.T) {
	tests := []struct {
		name       string
		severities []domain.BlockerSeverity
		wantHigh   int
		wantMedium int
		wantLow    int
	}{
		{
			name:       "all buckets populated",
			severities: []domain.BlockerSeverity{"High", "High", "Medium", "Low", "Low", "Low"},
			wantHigh:   2,
			wantMedium: 1,
			wantLow:    3,
		},
		{
			name:       "unknown severity excluded from every bucket",
			severities: []domain.BlockerSeverity{"High", "Critical", "medium", ""},
			wantHigh:   1,
		},
		{
			name: "empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var blockers []*domain.Blocker
			for _, sev := range tt.severities {
				blockers = append(blockers, blockerFixture(sev, domain.CategoryOther, domain.StatusOpen, "x"))
			}

			g := groupBySeverity(blockers)

			assert.Len(t, g.High, tt.wantHigh)
			assert.Len(t, g.Medium, tt.wantMedium)
			assert.Len(t, g.Low, tt.wantLow)
		})
	}
}

func TestTopCategory(t *testing.T) {
	t.Run("most frequent wins", func(t *testing.T) {
		hist := map[domain.BlockerCategory]int{
			domain.CategoryTechnical: 3,
			domain.CategoryProcess:   1,
		}
		cat, count := topCategory(hist)
		assert.Equal(t, domain.CategoryTechnical, cat)
		assert.Equal(t, 3, count)
	})

	t.Run("ties break on name", func(t *testing.T) {
		hist := map[domain.BlockerCategory]int{
			domain.CategoryTechnical: 2,
			domain.CategoryProcess:   2,
		}
		cat, count := topCategory(hist)
		assert.Equal(t, domain.CategoryProcess, cat)
		assert.Equal(t, 2, count)
	})

	t.Run("empty histogram", func(t *testing.T) {
		cat, count := topCategory(nil)
		assert.Empty(t, cat)
		assert.Zero(t, count)
	})
}

func TestFallbackAnalysisDeterministic(t *testing.T) {
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "CI pipeline is broken"),
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "Flaky integration tests block merges"),
		blockerFixture(domain.SeverityMedium, domain.CategoryProcess, domain.StatusResolved, "Approval workflow too slow"),
	}

	first := fallbackAnalysis(blockers, "Alice")
	second := fallbackAnalysis(blockers, "Alice")

	assert.Equal(t, first, second)
}

func TestFallbackAnalysisScenario(t *testing.T) {
	// 3 blockers: severities High, High, Medium; categories Technical,
	// Technical, Process; 2 Open, 1 Resolved.
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "CI pipeline is broken"),
		blockerFixture(domain.SeverityHigh, domain.CategoryTechnical, domain.StatusOpen, "Flaky integration tests block merges"),
		blockerFixture(domain.SeverityMedium, domain.CategoryProcess, domain.StatusResolved, "Approval workflow too slow"),
	}

	a := fallbackAnalysis(blockers, "Alice")

	assert.Contains(t, a.Summary, "3 blockers")
	assert.Contains(t, a.Summary, "2 require immediate attention")
	assert.Contains(t, a.Summary, "Technical")
	assert.Contains(t, a.Summary, "2 blockers remain open")

	// One item per non-empty severity bucket plus the recurring-category item.
	require.Len(t, a.ActionItems, 3)
	assert.Equal(t, "high", a.ActionItems[0].Priority)
	assert.Equal(t, "quick-win", a.ActionItems[0].EstimatedEffort)
	assert.Equal(t, []string{"CI pipeline is broken", "Flaky integration tests block merges"}, a.ActionItems[0].RelatedBlockers)
	assert.Equal(t, "medium", a.ActionItems[1].Priority)
	assert.Equal(t, "short-term", a.ActionItems[1].EstimatedEffort)
	assert.Contains(t, a.ActionItems[2].Title, "Technical")
	assert.Equal(t, categorySuggestion(domain.CategoryTechnical), a.ActionItems[2].SuggestedSolution)

	require.Len(t, a.Insights, 4)
	assert.Contains(t, a.Insights[0], "3")
	assert.Contains(t, a.Insights[1], "High severity: 2")
	assert.Contains(t, a.Insights[2], "67% unresolved")
	assert.Contains(t, a.Insights[3], "Technical")
	assert.Contains(t, a.Insights[3], "67%")
}

func TestFallbackAnalysisTruncatesRelatedBlockers(t *testing.T) {
	long := strings.Repeat("a", 80)
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityLow, domain.CategoryOther, domain.StatusOpen, long),
	}

	a := fallbackAnalysis(blockers, "Bob")

	require.Len(t, a.ActionItems, 1)
	require.Len(t, a.ActionItems[0].RelatedBlockers, 1)
	assert.Len(t, a.ActionItems[0].RelatedBlockers[0], 50)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 50))
	assert.Equal(t, strings.Repeat("a", 50), truncateRunes(strings.Repeat("a", 80), 50))

	// Multi-byte characters count as one and never get split mid-sequence.
	wide := strings.Repeat("ブ", 60)
	got := truncateRunes(wide, 50)
	assert.Equal(t, strings.Repeat("ブ", 50), got)
	assert.True(t, utf8.ValidString(got))
}

func TestFallbackAnalysisSkipsCategoryItemBelowThreshold(t *testing.T) {
	blockers := []*domain.Blocker{
		blockerFixture(domain.SeverityLow, domain.CategoryAccess, domain.StatusOpen, "VPN access pending"),
	}

	a := fallbackAnalysis(blockers, "Bob")

	// Only the low-severity bucket item; top category appears once.
	require.Len(t, a.ActionItems, 1)
	assert.Equal(t, "low", a.ActionItems[0].Priority)
}

func TestCategorySuggestionFallsBackToOther(t *testing.T) {
	assert.Equal(t,
		categorySuggestion(domain.CategoryOther),
		categorySuggestion(domain.BlockerCategory("Unmapped")),
	)
	assert.NotEqual(t,
		categorySuggestion(domain.CategoryOther),
		categorySuggestion(domain.CategoryDependency),
	)
}
