package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

const (
	defaultBlockerPage = 10
	statsBlockerLimit  = 1000
	trendWeeks         = 12
)

// BlockerPage pairs one page of blockers with the unpaged total.
type BlockerPage struct {
	Blockers []*domain.Blocker `json:"blockers"`
	Total    int               `json:"total"`
}

// BlockerUpdate carries the fields a blocker update may change. Empty
// fields are left untouched.
type BlockerUpdate struct {
	Description  string
	Category     domain.BlockerCategory
	Severity     domain.BlockerSeverity
	Status       domain.BlockerStatus
	ManagerNotes string
}

// CreateBlocker records a new blocker for an existing member. Status always
// starts Open; timestamp and reportedVia default when the caller omits them.
func (s *Service) CreateBlocker(ctx context.Context, b *domain.Blocker) (*domain.Blocker, error) {
	if _, err := s.members.GetByUID(ctx, b.TeamMemberUID); err != nil {
		return nil, err
	}

	b.Status = domain.StatusOpen
	if b.Timestamp.IsZero() {
		b.Timestamp = s.now()
	}
	if b.ReportedVia == "" {
		b.ReportedVia = "Web"
	}

	created, err := s.blockers.Create(ctx, b)
	if err != nil {
		s.log.Error("service.CreateBlocker: failed to create blocker",
			slog.String("member_uid", b.TeamMemberUID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

func (s *Service) ListBlockers(ctx context.Context, f domain.BlockerFilter) (*BlockerPage, error) {
	if f.Limit == 0 {
		f.Limit = defaultBlockerPage
	}

	blockers, err := s.blockers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.blockers.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	return &BlockerPage{Blockers: blockers, Total: total}, nil
}

func (s *Service) BlockersForMember(ctx context.Context, memberUID string, f domain.BlockerFilter) (*BlockerPage, error) {
	f.MemberUID = memberUID
	return s.ListBlockers(ctx, f)
}

// BlockersForTeam merges each team member's blockers into one page sorted by
// timestamp descending. Total reflects the merged list, not a store count.
func (s *Service) BlockersForTeam(ctx context.Context, team string, f domain.BlockerFilter) (*BlockerPage, error) {
	members, err := s.members.List(ctx, team, nil)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return &BlockerPage{Blockers: []*domain.Blocker{}, Total: 0}, nil
	}

	if f.Limit == 0 {
		f.Limit = defaultBlockerPage
	}

	perMember := make([][]*domain.Blocker, len(members))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range members {
		g.Go(func() error {
			mf := f
			mf.MemberUID = m.UID
			blockers, err := s.blockers.List(gctx, mf)
			if err != nil {
				return err
			}
			perMember[i] = blockers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := []*domain.Blocker{}
	for _, blockers := range perMember {
		merged = append(merged, blockers...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	// The per-member fetches each honor the limit, so the merged list can
	// exceed it; trim after sorting so the page keeps the newest entries.
	total := len(merged)
	if f.Limit > 0 && len(merged) > f.Limit {
		merged = merged[:f.Limit]
	}

	return &BlockerPage{Blockers: merged, Total: total}, nil
}

func (s *Service) GetBlocker(ctx context.Context, uid string) (*domain.Blocker, error) {
	return s.blockers.GetByUID(ctx, uid)
}

// UpdateBlocker applies the patch if the actor owns the blocker or is a
// manager. Manager notes are manager-only regardless of ownership.
func (s *Service) UpdateBlocker(ctx context.Context, uid string, update BlockerUpdate, actor *domain.Actor) (*domain.Blocker, error) {
	existing, err := s.blockers.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	isOwner := existing.TeamMemberUID == actor.UID
	if !isOwner && !actor.IsManager {
		return nil, domain.ErrForbidden
	}
	if update.ManagerNotes != "" && !actor.IsManager {
		return nil, domain.ErrManagerNotesReserved
	}

	if update.Description != "" {
		existing.Description = update.Description
	}
	if update.Category != "" {
		existing.Category = update.Category
	}
	if update.Severity != "" {
		existing.Severity = update.Severity
	}
	if update.Status != "" {
		existing.Status = update.Status
	}
	if update.ManagerNotes != "" {
		existing.ManagerNotes = update.ManagerNotes
	}

	updated, err := s.blockers.Update(ctx, existing)
	if err != nil {
		s.log.Error("service.UpdateBlocker: failed to update blocker",
			slog.String("blocker_uid", uid),
			slog.Any("error", err),
		)
		return nil, err
	}
	return updated, nil
}

func (s *Service) StatsForMember(ctx context.Context, memberUID string) (*domain.BlockerStats, error) {
	page, err := s.BlockersForMember(ctx, memberUID, domain.BlockerFilter{Limit: statsBlockerLimit})
	if err != nil {
		return nil, err
	}
	return calculateStats(page.Blockers), nil
}

func (s *Service) StatsForTeam(ctx context.Context, team string) (*domain.BlockerStats, error) {
	page, err := s.BlockersForTeam(ctx, team, domain.BlockerFilter{Limit: statsBlockerLimit})
	if err != nil {
		return nil, err
	}
	return calculateStats(page.Blockers), nil
}

// calculateStats aggregates counts by category, severity and status, plus a
// weekly trend over the last 12 weeks. Weeks start on Sunday.
func calculateStats(blockers []*domain.Blocker) *domain.BlockerStats {
	stats := &domain.BlockerStats{
		Total:      len(blockers),
		ByCategory: make(map[domain.BlockerCategory]int, len(domain.Categories)),
		BySeverity: make(map[domain.BlockerSeverity]int, 3),
		ByStatus:   make(map[domain.BlockerStatus]int, 3),
	}
	for _, c := range domain.Categories {
		stats.ByCategory[c] = 0
	}
	for _, sev := range []domain.BlockerSeverity{domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh} {
		stats.BySeverity[sev] = 0
	}
	for _, st := range []domain.BlockerStatus{domain.StatusOpen, domain.StatusResolved, domain.StatusIgnored} {
		stats.ByStatus[st] = 0
	}

	weekly := make(map[string]int)
	for _, b := range blockers {
		stats.ByCategory[b.Category]++
		stats.BySeverity[b.Severity]++
		stats.ByStatus[b.Status]++
		weekly[weekKey(b.Timestamp)]++
	}

	weeks := make([]string, 0, len(weekly))
	for w := range weekly {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)
	if len(weeks) > trendWeeks {
		weeks = weeks[len(weeks)-trendWeeks:]
	}

	stats.WeeklyTrend = make([]domain.WeekCount, 0, len(weeks))
	for _, w := range weeks {
		stats.WeeklyTrend = append(stats.WeeklyTrend, domain.WeekCount{Week: w, Count: weekly[w]})
	}
	return stats
}

func weekKey(t time.Time) string {
	t = t.UTC()
	weekStart := t.AddDate(0, 0, -int(t.Weekday()))
	return weekStart.Format("2006-01-02")
}
