// Package report maps ai_report entries to the domain model. The store keeps
// action_items and insights as JSON-encoded text fields, so both directions
// go through an explicit encode/decode step.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/momentum-hq/momentum-api/internal/domain"
	"github.com/momentum-hq/momentum-api/internal/repository/contentstack"
)

const contentType = "ai_report"

type Repo struct {
	cs *contentstack.Client
}

func New(cs *contentstack.Client) *Repo {
	return &Repo{cs: cs}
}

type entry struct {
	UID          string                   `json:"uid,omitempty"`
	Title        string                   `json:"title,omitempty"`
	ReportType   string                   `json:"report_type,omitempty"`
	TargetMember []contentstack.Reference `json:"target_member,omitempty"`
	TargetTeam   string                   `json:"target_team,omitempty"`
	ReportPeriod string                   `json:"report_period,omitempty"`
	Summary      string                   `json:"summary,omitempty"`
	ActionItems  string                   `json:"action_items,omitempty"`
	Insights     string                   `json:"insights,omitempty"`
	GeneratedAt  string                   `json:"generated_at,omitempty"`
	CreatedAt    string                   `json:"created_at,omitempty"`
	UpdatedAt    string                   `json:"updated_at,omitempty"`
}

func toDomain(e entry) *domain.Report {
	r := &domain.Report{
		UID:         e.UID,
		Title:       e.Title,
		Type:        domain.ReportType(e.ReportType),
		TargetTeam:  e.TargetTeam,
		Period:      domain.ReportPeriod(e.ReportPeriod),
		Summary:     e.Summary,
		ActionItems: []domain.ActionItem{},
		Insights:    []string{},
		GeneratedAt: contentstack.ParseTime(e.GeneratedAt),
		CreatedAt:   contentstack.ParseTime(e.CreatedAt),
		UpdatedAt:   contentstack.ParseTime(e.UpdatedAt),
	}
	if len(e.TargetMember) > 0 {
		r.TargetMemberUID = e.TargetMember[0].UID
	}

	// Stale or hand-edited entries may hold malformed JSON; a report with
	// empty items is still useful, so decode failures degrade to empty.
	if e.ActionItems != "" {
		var items []domain.ActionItem
		if err := json.Unmarshal([]byte(e.ActionItems), &items); err == nil {
			r.ActionItems = items
		}
	}
	if e.Insights != "" {
		var insights []string
		if err := json.Unmarshal([]byte(e.Insights), &insights); err == nil {
			r.Insights = insights
		}
	}
	return r
}

func fromDomain(r *domain.Report) (entry, error) {
	items, err := json.Marshal(r.ActionItems)
	if err != nil {
		return entry{}, fmt.Errorf("encode action items: %w", err)
	}
	insights, err := json.Marshal(r.Insights)
	if err != nil {
		return entry{}, fmt.Errorf("encode insights: %w", err)
	}

	e := entry{
		UID:          r.UID,
		Title:        r.Title,
		ReportType:   string(r.Type),
		TargetTeam:   r.TargetTeam,
		ReportPeriod: string(r.Period),
		Summary:      r.Summary,
		ActionItems:  string(items),
		Insights:     string(insights),
		GeneratedAt:  contentstack.FormatTime(r.GeneratedAt),
	}
	if r.TargetMemberUID != "" {
		e.TargetMember = []contentstack.Reference{{UID: r.TargetMemberUID, ContentTypeUID: "team_member"}}
	}
	return e, nil
}

func (r *Repo) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	e, err := fromDomain(report)
	if err != nil {
		return nil, err
	}

	var created entry
	if err := r.cs.CreateEntry(ctx, contentType, e, &created); err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

func (r *Repo) GetByUID(ctx context.Context, uid string) (*domain.Report, error) {
	var e entry
	if err := r.cs.GetEntry(ctx, contentType, uid, []string{"target_member"}, &e); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return toDomain(e), nil
}

// ListByMember returns recent individual reports for one member. The store
// can't query on reference fields directly, so this filters client-side from
// the recent individual reports.
func (r *Repo) ListByMember(ctx context.Context, memberUID string, limit int) ([]*domain.Report, error) {
	var entries []entry
	q := contentstack.Query{
		Where:            map[string]any{"report_type": string(domain.ReportIndividual)},
		Limit:            limit,
		IncludeReference: []string{"target_member"},
		Descending:       "generated_at",
	}
	if err := r.cs.GetEntries(ctx, contentType, q, &entries); err != nil {
		return nil, err
	}

	var reports []*domain.Report
	for _, e := range entries {
		if len(e.TargetMember) > 0 && e.TargetMember[0].UID == memberUID {
			reports = append(reports, toDomain(e))
		}
	}
	return reports, nil
}

func (r *Repo) ListByTeam(ctx context.Context, teamName string, limit int) ([]*domain.Report, error) {
	var entries []entry
	q := contentstack.Query{
		Where: map[string]any{
			"report_type": string(domain.ReportTeam),
			"target_team": teamName,
		},
		Limit:      limit,
		Descending: "generated_at",
	}
	if err := r.cs.GetEntries(ctx, contentType, q, &entries); err != nil {
		return nil, err
	}

	reports := make([]*domain.Report, 0, len(entries))
	for _, e := range entries {
		reports = append(reports, toDomain(e))
	}
	return reports, nil
}
