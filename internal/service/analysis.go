package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

// Fallback action items name-check at most this many blockers per bucket,
// each truncated to this many characters.
const (
	relatedBlockerMax = 2
	relatedBlockerLen = 50
)

type severityGroups struct {
	High   []*domain.Blocker
	Medium []*domain.Blocker
	Low    []*domain.Blocker
}

func (g severityGroups) total() int {
	return len(g.High) + len(g.Medium) + len(g.Low)
}

// groupBySeverity buckets blockers by exact severity match. An unrecognized
// severity lands in no bucket.
func groupBySeverity(blockers []*domain.Blocker) severityGroups {
	var g severityGroups
	for _, b := range blockers {
		switch b.Severity {
		case domain.SeverityHigh:
			g.High = append(g.High, b)
		case domain.SeverityMedium:
			g.Medium = append(g.Medium, b)
		case domain.SeverityLow:
			g.Low = append(g.Low, b)
		}
	}
	return g
}

func openCount(blockers []*domain.Blocker) int {
	n := 0
	for _, b := range blockers {
		if b.Status == domain.StatusOpen {
			n++
		}
	}
	return n
}

func categoryHistogram(blockers []*domain.Blocker) map[domain.BlockerCategory]int {
	hist := make(map[domain.BlockerCategory]int)
	for _, b := range blockers {
		hist[b.Category]++
	}
	return hist
}

// topCategory picks the most frequent category. Ties break on category name
// so the result is stable regardless of map iteration order.
func topCategory(hist map[domain.BlockerCategory]int) (domain.BlockerCategory, int) {
	if len(hist) == 0 {
		return "", 0
	}

	cats := make([]domain.BlockerCategory, 0, len(hist))
	for c := range hist {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if hist[cats[i]] != hist[cats[j]] {
			return hist[cats[i]] > hist[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats[0], hist[cats[0]]
}

// analyzeBlockers synthesizes an analysis for the blocker set. Generation
// errors never escape: any failure of the external call degrades to the
// deterministic fallback.
func (s *Service) analyzeBlockers(ctx context.Context, blockers []*domain.Blocker, reportType domain.ReportType, targetName string) *domain.Analysis {
	if len(blockers) == 0 {
		return &domain.Analysis{
			Summary:     fmt.Sprintf("No blockers were reported for %s during this period. Great job maintaining productivity!", targetName),
			ActionItems: []domain.ActionItem{},
			Insights:    []string{"No blockers to analyze for this period."},
		}
	}

	system, user := buildPrompt(blockers, reportType, targetName)

	analysis, err := s.gen.GenerateAnalysis(ctx, system, user)
	if err != nil {
		s.log.Error("service.analyzeBlockers: generation failed, using fallback",
			slog.String("target", targetName),
			slog.Any("error", err),
		)
		return fallbackAnalysis(blockers, targetName)
	}
	return analysis
}

// fallbackAnalysis derives an analysis from the grouped counts alone. It is
// deterministic: the same blocker slice always yields the same result.
func fallbackAnalysis(blockers []*domain.Blocker, targetName string) *domain.Analysis {
	grouped := groupBySeverity(blockers)
	hist := categoryHistogram(blockers)
	topCat, topCount := topCategory(hist)
	open := openCount(blockers)

	actionItems := []domain.ActionItem{}

	if len(grouped.High) > 0 {
		actionItems = append(actionItems, domain.ActionItem{
			Title:             "Immediate: Address High Severity Blockers",
			Description:       fmt.Sprintf("There are %d high severity blockers requiring immediate attention. These are blocking critical work.", len(grouped.High)),
			Priority:          "high",
			Severity:          string(domain.SeverityHigh),
			Category:          string(grouped.High[0].Category),
			SuggestedSolution: "1. Schedule emergency meeting to discuss blockers\n2. Identify owners for each blocker\n3. Set 24-hour resolution target\n4. Escalate to management if external dependencies",
			EstimatedEffort:   "quick-win",
			RelatedBlockers:   relatedBlockers(grouped.High),
		})
	}

	if len(grouped.Medium) > 0 {
		actionItems = append(actionItems, domain.ActionItem{
			Title:             "This Sprint: Resolve Medium Priority Issues",
			Description:       fmt.Sprintf("%d medium severity blockers should be addressed within this sprint to prevent escalation.", len(grouped.Medium)),
			Priority:          "medium",
			Severity:          string(domain.SeverityMedium),
			Category:          string(grouped.Medium[0].Category),
			SuggestedSolution: "1. Add blockers to sprint backlog\n2. Assign clear ownership\n3. Set realistic deadlines\n4. Create follow-up tasks if needed",
			EstimatedEffort:   "short-term",
			RelatedBlockers:   relatedBlockers(grouped.Medium),
		})
	}

	if len(grouped.Low) > 0 {
		actionItems = append(actionItems, domain.ActionItem{
			Title:             "Backlog: Schedule Low Priority Items",
			Description:       fmt.Sprintf("%d low severity blockers can be scheduled for future sprints.", len(grouped.Low)),
			Priority:          "low",
			Severity:          string(domain.SeverityLow),
			Category:          string(grouped.Low[0].Category),
			SuggestedSolution: "1. Add to backlog with proper labels\n2. Review during sprint planning\n3. Consider batching similar issues\n4. Document workarounds if available",
			EstimatedEffort:   "long-term",
			RelatedBlockers:   relatedBlockers(grouped.Low),
		})
	}

	if topCount >= 2 {
		actionItems = append(actionItems, domain.ActionItem{
			Title:             fmt.Sprintf("Pattern: Address Recurring %s Issues", topCat),
			Description:       fmt.Sprintf("%s blockers appear %d times. Consider a systematic approach to prevent recurrence.", topCat, topCount),
			Priority:          "medium",
			Category:          string(topCat),
			SuggestedSolution: categorySuggestion(topCat),
			EstimatedEffort:   "short-term",
		})
	}

	summary := fmt.Sprintf("%s reported %d blockers during this period. ", targetName, len(blockers))
	if len(grouped.High) > 0 {
		summary += fmt.Sprintf("%d require immediate attention. ", len(grouped.High))
	}
	summaryCat := topCat
	if summaryCat == "" {
		summaryCat = domain.CategoryOther
	}
	summary += fmt.Sprintf("The most common category was %s with %d occurrences. Currently, %d blockers remain open.", summaryCat, topCount, open)

	insights := []string{
		fmt.Sprintf("Total blockers: %d", len(blockers)),
		fmt.Sprintf("High severity: %d, Medium: %d, Low: %d", len(grouped.High), len(grouped.Medium), len(grouped.Low)),
		fmt.Sprintf("Open blockers: %d (%d%% unresolved)", open, percent(open, len(blockers))),
	}
	if topCat != "" {
		insights = append(insights, fmt.Sprintf("Most frequent category: %s (%d%% of all blockers)", topCat, percent(topCount, len(blockers))))
	}

	return &domain.Analysis{
		Summary:     summary,
		ActionItems: actionItems,
		Insights:    insights,
	}
}

func relatedBlockers(blockers []*domain.Blocker) []string {
	n := len(blockers)
	if n > relatedBlockerMax {
		n = relatedBlockerMax
	}
	related := make([]string, 0, n)
	for _, b := range blockers[:n] {
		related = append(related, truncateRunes(b.Description, relatedBlockerLen))
	}
	return related
}

// truncateRunes cuts on a rune boundary so a multi-byte character is never
// split mid-sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func categorySuggestion(category domain.BlockerCategory) string {
	switch category {
	case domain.CategoryTechnical:
		return "1. Review technical architecture\n2. Consider pair programming sessions\n3. Set up knowledge sharing sessions\n4. Create technical documentation"
	case domain.CategoryDependency:
		return "1. Map all external dependencies\n2. Set up regular sync meetings with dependent teams\n3. Create escalation procedures\n4. Consider building abstractions to reduce coupling"
	case domain.CategoryResource:
		return "1. Review resource allocation with management\n2. Prioritize tasks by impact\n3. Consider temporary resource augmentation\n4. Identify tasks that can be deferred"
	case domain.CategoryProcess:
		return "1. Document current processes\n2. Identify bottlenecks\n3. Streamline approval workflows\n4. Implement automation where possible"
	case domain.CategoryCommunication:
		return "1. Set up regular sync meetings\n2. Create shared communication channels\n3. Document decisions and rationale\n4. Establish clear escalation paths"
	default:
		return "1. Categorize blockers more specifically\n2. Identify root causes\n3. Create action plans for each\n4. Set up regular review meetings"
	}
}
