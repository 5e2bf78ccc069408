package blocker

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/momentum-hq/momentum-api/internal/domain"
	"github.com/momentum-hq/momentum-api/internal/repository/contentstack"
)

func TestEntryMapping(t *testing.T) {
	ts := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	b := &domain.Blocker{
		UID:            "blk1",
		TeamMemberUID:  "mem1",
		Description:    "waiting on infra team",
		Category:       domain.CategoryDependency,
		Severity:       domain.SeverityHigh,
		Status:         domain.StatusOpen,
		ReportedVia:    "Slack",
		Timestamp:      ts,
		ManagerNotes:   "escalated",
		SlackMessageID: "C123:456.789",
	}

	e := fromDomain(b)

	assert.Equal(t, []contentstack.Reference{{UID: "mem1", ContentTypeUID: "team_member"}}, e.TeamMember)
	assert.Equal(t, "Dependency - waiting on infra team", e.Title)
	assert.Equal(t, "2025-05-01T08:00:00Z", e.Timestamp)

	got := toDomain(e)
	assert.Equal(t, b, got)
}

func TestTitleTruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 60)
	b := &domain.Blocker{Description: long, Category: domain.CategoryTechnical}

	assert.Equal(t, "Technical - "+long[:30], title(b))

	// Truncation counts characters, not bytes, so a multi-byte description
	// never ends in a broken sequence.
	wide := strings.Repeat("ü", 40)
	got := title(&domain.Blocker{Description: wide, Category: domain.CategoryTechnical})
	assert.Equal(t, "Technical - "+strings.Repeat("ü", 30), got)
	assert.True(t, utf8.ValidString(got))
}

func TestWhereClause(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	where := whereClause(domain.BlockerFilter{
		MemberUID: "mem1",
		Category:  domain.CategoryProcess,
		Severity:  domain.SeverityLow,
		Status:    domain.StatusOpen,
		FromDate:  from,
	})

	assert.Equal(t, map[string]any{
		"team_member.uid": "mem1",
		"category":        "Process",
		"severity":        "Low",
		"status":          "Open",
		"timestamp":       map[string]any{"$gte": "2025-05-01T00:00:00Z"},
	}, where)

	assert.Empty(t, whereClause(domain.BlockerFilter{}))
}
