package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

const (
	individualBlockerLimit = 100
	teamBlockerLimit       = 500

	// Existing-report lookup scans this many recent reports.
	existingReportScan = 10
)

// periodCutoff returns the start of the reporting window relative to now.
func (s *Service) periodCutoff(period domain.ReportPeriod) time.Time {
	if period == domain.PeriodWeekly {
		return s.now().Add(-7 * 24 * time.Hour)
	}
	return s.now().Add(-30 * 24 * time.Hour)
}

// findExistingReport looks for a report of the same period generated within
// the current window. Ordering from the store is not trusted; recent reports
// are re-sorted by generatedAt before selecting.
func (s *Service) findExistingReport(ctx context.Context, reportType domain.ReportType, targetID string, period domain.ReportPeriod) (*domain.Report, error) {
	var (
		reports []*domain.Report
		err     error
	)
	if reportType == domain.ReportIndividual {
		reports, err = s.reports.ListByMember(ctx, targetID, existingReportScan)
	} else {
		reports, err = s.reports.ListByTeam(ctx, targetID, existingReportScan)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
	})

	cutoff := s.periodCutoff(period)
	for _, r := range reports {
		if r.Period != period {
			continue
		}
		if !r.GeneratedAt.Before(cutoff) {
			return r, nil
		}
	}
	return nil, nil
}

// GenerateIndividualReport synthesizes a report for one member. Unless force
// is set, a report already generated within the current window is returned
// as-is with IsExisting set, and no new report is written.
func (s *Service) GenerateIndividualReport(ctx context.Context, memberUID string, period domain.ReportPeriod, force bool) (*domain.Report, error) {
	member, err := s.members.GetByUID(ctx, memberUID)
	if err != nil {
		return nil, err
	}

	unlock := s.genLocks.lock("individual:" + memberUID + ":" + string(period))
	defer unlock()

	if !force {
		existing, err := s.findExistingReport(ctx, domain.ReportIndividual, memberUID, period)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.log.Info("service.GenerateIndividualReport: returning existing report",
				slog.String("member_uid", memberUID),
				slog.String("period", string(period)),
			)
			existing.IsExisting = true
			return existing, nil
		}
	}

	blockers, err := s.blockers.List(ctx, domain.BlockerFilter{
		MemberUID: memberUID,
		FromDate:  s.periodCutoff(period),
		Limit:     individualBlockerLimit,
	})
	if err != nil {
		return nil, err
	}

	analysis := s.analyzeBlockers(ctx, blockers, domain.ReportIndividual, member.FirstName)

	report := &domain.Report{
		Title:           fmt.Sprintf("%s Report - %s", period, member.FullName()),
		Type:            domain.ReportIndividual,
		TargetMemberUID: memberUID,
		Period:          period,
		Summary:         analysis.Summary,
		ActionItems:     analysis.ActionItems,
		Insights:        analysis.Insights,
		GeneratedAt:     s.now(),
	}

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		s.log.Error("service.GenerateIndividualReport: failed to persist report",
			slog.String("member_uid", memberUID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

// GenerateTeamReport synthesizes a report across every active member of the
// named team. Blocker retrieval fans out per member; the merged list is
// sorted by timestamp descending before analysis.
func (s *Service) GenerateTeamReport(ctx context.Context, teamName string, period domain.ReportPeriod, force bool) (*domain.Report, error) {
	team, err := s.teams.FindByName(ctx, teamName)
	if err != nil {
		return nil, err
	}

	unlock := s.genLocks.lock("team:" + teamName + ":" + string(period))
	defer unlock()

	if !force {
		existing, err := s.findExistingReport(ctx, domain.ReportTeam, teamName, period)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.log.Info("service.GenerateTeamReport: returning existing report",
				slog.String("team", teamName),
				slog.String("period", string(period)),
			)
			existing.IsExisting = true
			return existing, nil
		}
	}

	blockers, err := s.teamBlockers(ctx, team.MemberUIDs, domain.BlockerFilter{
		FromDate: s.periodCutoff(period),
		Limit:    teamBlockerLimit,
	})
	if err != nil {
		return nil, err
	}

	analysis := s.analyzeBlockers(ctx, blockers, domain.ReportTeam, teamName)

	report := &domain.Report{
		Title:       fmt.Sprintf("%s Team Report - %s", period, teamName),
		Type:        domain.ReportTeam,
		TargetTeam:  teamName,
		Period:      period,
		Summary:     analysis.Summary,
		ActionItems: analysis.ActionItems,
		Insights:    analysis.Insights,
		GeneratedAt: s.now(),
	}

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		s.log.Error("service.GenerateTeamReport: failed to persist report",
			slog.String("team", teamName),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

// teamBlockers fetches each member's blockers concurrently and merges them
// into one timestamp-descending list.
func (s *Service) teamBlockers(ctx context.Context, memberUIDs []string, f domain.BlockerFilter) ([]*domain.Blocker, error) {
	perMember := make([][]*domain.Blocker, len(memberUIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, uid := range memberUIDs {
		g.Go(func() error {
			mf := f
			mf.MemberUID = uid
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

	var merged []*domain.Blocker
	for _, blockers := range perMember {
		merged = append(merged, blockers...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if len(merged) > f.Limit && f.Limit > 0 {
		merged = merged[:f.Limit]
	}
	return merged, nil
}

func (s *Service) ReportsForMember(ctx context.Context, memberUID string) ([]*domain.Report, error) {
	return s.reports.ListByMember(ctx, memberUID, existingReportScan)
}

func (s *Service) ReportsForTeam(ctx context.Context, teamName string) ([]*domain.Report, error) {
	return s.reports.ListByTeam(ctx, teamName, existingReportScan)
}

func (s *Service) ReportByUID(ctx context.Context, uid string) (*domain.Report, error) {
	return s.reports.GetByUID(ctx, uid)
}
