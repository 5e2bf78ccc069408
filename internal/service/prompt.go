package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

const systemPrompt = "You are an expert productivity analyst who provides specific, actionable recommendations. Always be concrete and avoid generic advice. Reference specific blockers in your recommendations."

// buildPrompt renders the blocker set into the generation prompts. Every
// blocker gets a sequential reference id (B1, B2, ...) assigned in
// high-medium-low order, so action items can point at a specific blocker.
func buildPrompt(blockers []*domain.Blocker, reportType domain.ReportType, targetName string) (system, user string) {
	grouped := groupBySeverity(blockers)
	open := openCount(blockers)
	hist := categoryHistogram(blockers)

	subject := "a team"
	if reportType == domain.ReportIndividual {
		subject = "an individual team member"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert productivity analyst and engineering manager. Analyze the blockers reported by %s named %q and provide actionable, specific recommendations.\n\n", subject, targetName)
	sb.WriteString("## BLOCKERS BY SEVERITY\n\n")

	ref := 0
	fmt.Fprintf(&sb, "### HIGH SEVERITY (%d blockers) - Immediate attention required\n", len(grouped.High))
	writeBlockerList(&sb, grouped.High, &ref)
	fmt.Fprintf(&sb, "\n### MEDIUM SEVERITY (%d blockers) - Should be addressed this sprint\n", len(grouped.Medium))
	writeBlockerList(&sb, grouped.Medium, &ref)
	fmt.Fprintf(&sb, "\n### LOW SEVERITY (%d blockers) - Can be scheduled for later\n", len(grouped.Low))
	writeBlockerList(&sb, grouped.Low, &ref)

	sb.WriteString("\n## STATISTICS\n")
	fmt.Fprintf(&sb, "- Total Blockers: %d\n", len(blockers))
	fmt.Fprintf(&sb, "- Open Blockers: %d\n", open)
	fmt.Fprintf(&sb, "- Categories Affected: %s\n", strings.Join(categoryNames(hist), ", "))

	sb.WriteString(`
## YOUR TASK

Provide a comprehensive analysis with SPECIFIC, ACTIONABLE recommendations for EACH severity level. Each action item should:
1. Reference the specific blocker(s) it addresses by their id (B1, B2, ...)
2. Provide a concrete solution or approach
3. Include an estimated effort level (quick-win: <1 day, short-term: 1-5 days, long-term: >5 days)

Respond in JSON format:
{
  "summary": "A 2-3 sentence executive summary of the main productivity challenges and overall health",
  "actionItems": [
    {
      "title": "Brief action title",
      "description": "Detailed description of what to do",
      "priority": "high|medium|low",
      "severity": "High|Medium|Low",
      "category": "category name this addresses",
      "suggestedSolution": "Specific step-by-step solution or approach to resolve this",
      "estimatedEffort": "quick-win|short-term|long-term",
      "relatedBlockers": ["brief description of related blocker 1", "brief description of related blocker 2"]
    }
  ],
  "insights": [
    "Pattern or trend observation 1",
    "Pattern or trend observation 2",
    "Recommendation for process improvement"
  ]
}

GUIDELINES:
- Generate 2-3 action items for HIGH severity blockers (if any exist)
- Generate 1-2 action items for MEDIUM severity blockers (if any exist)
- Generate 1 action item for LOW severity blockers (if any exist)
- Make suggestions specific to the blocker descriptions, not generic advice
- Include concrete solutions like "Set up daily standup", "Create shared documentation", "Implement code review checklist"
- For technical blockers, suggest specific tools, processes, or architectural changes
- For dependency blockers, suggest communication strategies or escalation paths
- For resource blockers, suggest prioritization frameworks or resource allocation strategies`)

	return systemPrompt, sb.String()
}

// writeBlockerList renders one severity bucket, advancing the shared
// reference counter so ids stay unique across buckets.
func writeBlockerList(sb *strings.Builder, blockers []*domain.Blocker, ref *int) {
	if len(blockers) == 0 {
		sb.WriteString("None\n")
		return
	}
	for _, b := range blockers {
		*ref++
		fmt.Fprintf(sb, "  B%d. [%s] %s (Status: %s)\n", *ref, b.Category, b.Description, b.Status)
	}
}

func categoryNames(hist map[domain.BlockerCategory]int) []string {
	names := make([]string, 0, len(hist))
	for c := range hist {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}
