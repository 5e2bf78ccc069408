// Package blocker maps blocker entries to the domain model.
package blocker

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/momentum-hq/momentum-api/internal/domain"
	"github.com/momentum-hq/momentum-api/internal/repository/contentstack"
)

const contentType = "blocker"

// Entry titles cap the description at this many characters.
const titleDescriptionLen = 30

type Repo struct {
	cs *contentstack.Client
}

func New(cs *contentstack.Client) *Repo {
	return &Repo{cs: cs}
}

type entry struct {
	UID            string                   `json:"uid,omitempty"`
	Title          string                   `json:"title,omitempty"`
	TeamMember     []contentstack.Reference `json:"team_member,omitempty"`
	Description    string                   `json:"description,omitempty"`
	Category       string                   `json:"category,omitempty"`
	Severity       string                   `json:"severity,omitempty"`
	Status         string                   `json:"status,omitempty"`
	ReportedVia    string                   `json:"reported_via,omitempty"`
	Timestamp      string                   `json:"timestamp,omitempty"`
	ManagerNotes   string                   `json:"manager_notes,omitempty"`
	SlackMessageID string                   `json:"slack_message_id,omitempty"`
	CreatedAt      string                   `json:"created_at,omitempty"`
	UpdatedAt      string                   `json:"updated_at,omitempty"`
}

func toDomain(e entry) *domain.Blocker {
	b := &domain.Blocker{
		UID:            e.UID,
		Description:    e.Description,
		Category:       domain.BlockerCategory(e.Category),
		Severity:       domain.BlockerSeverity(e.Severity),
		Status:         domain.BlockerStatus(e.Status),
		ReportedVia:    e.ReportedVia,
		Timestamp:      contentstack.ParseTime(e.Timestamp),
		ManagerNotes:   e.ManagerNotes,
		SlackMessageID: e.SlackMessageID,
		CreatedAt:      contentstack.ParseTime(e.CreatedAt),
		UpdatedAt:      contentstack.ParseTime(e.UpdatedAt),
	}
	if len(e.TeamMember) > 0 {
		b.TeamMemberUID = e.TeamMember[0].UID
	}
	return b
}

func fromDomain(b *domain.Blocker) entry {
	e := entry{
		UID:            b.UID,
		Title:          title(b),
		Description:    b.Description,
		Category:       string(b.Category),
		Severity:       string(b.Severity),
		Status:         string(b.Status),
		ReportedVia:    b.ReportedVia,
		Timestamp:      contentstack.FormatTime(b.Timestamp),
		ManagerNotes:   b.ManagerNotes,
		SlackMessageID: b.SlackMessageID,
	}
	if b.TeamMemberUID != "" {
		e.TeamMember = []contentstack.Reference{{UID: b.TeamMemberUID, ContentTypeUID: "team_member"}}
	}
	return e
}

func title(b *domain.Blocker) string {
	desc := b.Description
	if utf8.RuneCountInString(desc) > titleDescriptionLen {
		desc = string([]rune(desc)[:titleDescriptionLen])
	}
	return string(b.Category) + " - " + desc
}

func (r *Repo) Create(ctx context.Context, b *domain.Blocker) (*domain.Blocker, error) {
	var created entry
	if err := r.cs.CreateEntry(ctx, contentType, fromDomain(b), &created); err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

func (r *Repo) GetByUID(ctx context.Context, uid string) (*domain.Blocker, error) {
	var e entry
	if err := r.cs.GetEntry(ctx, contentType, uid, []string{"team_member"}, &e); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return nil, domain.ErrBlockerNotFound
		}
		return nil, err
	}
	return toDomain(e), nil
}

// List fetches blockers matching the filter. The Team field is not handled
// here; resolving a team to its member set is the service's job.
func (r *Repo) List(ctx context.Context, f domain.BlockerFilter) ([]*domain.Blocker, error) {
	where := whereClause(f)

	var entries []entry
	q := contentstack.Query{
		Where:            where,
		Limit:            f.Limit,
		Skip:             f.Skip,
		IncludeReference: []string{"team_member"},
		Descending:       "timestamp",
	}
	if err := r.cs.GetEntries(ctx, contentType, q, &entries); err != nil {
		return nil, err
	}

	blockers := make([]*domain.Blocker, 0, len(entries))
	for _, e := range entries {
		blockers = append(blockers, toDomain(e))
	}
	return blockers, nil
}

func (r *Repo) Count(ctx context.Context, f domain.BlockerFilter) (int, error) {
	return r.cs.Count(ctx, contentType, whereClause(f))
}

// Update patches only the fields an explicit update may touch; title is
// recomputed so the store's display name tracks the description.
func (r *Repo) Update(ctx context.Context, b *domain.Blocker) (*domain.Blocker, error) {
	patch := entry{
		Title:        title(b),
		Description:  b.Description,
		Category:     string(b.Category),
		Severity:     string(b.Severity),
		Status:       string(b.Status),
		ManagerNotes: b.ManagerNotes,
	}

	var updated entry
	if err := r.cs.UpdateEntry(ctx, contentType, b.UID, patch, &updated); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return nil, domain.ErrBlockerNotFound
		}
		return nil, err
	}
	return toDomain(updated), nil
}

func whereClause(f domain.BlockerFilter) map[string]any {
	where := map[string]any{}
	if f.MemberUID != "" {
		where["team_member.uid"] = f.MemberUID
	}
	if f.Category != "" {
		where["category"] = string(f.Category)
	}
	if f.Severity != "" {
		where["severity"] = string(f.Severity)
	}
	if f.Status != "" {
		where["status"] = string(f.Status)
	}
	if !f.FromDate.IsZero() {
		where["timestamp"] = map[string]any{"$gte": contentstack.FormatTime(f.FromDate)}
	}
	return where
}
