package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

// In-memory fakes for the store interfaces. They cover only the behavior
// the service exercises; unsupported lookups return not-found.

type fakeBlockerRepo struct {
	mu       sync.Mutex
	blockers []*domain.Blocker
	listErr  error
	listed   []domain.BlockerFilter
}

func (f *fakeBlockerRepo) Create(_ context.Context, b *domain.Blocker) (*domain.Blocker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := *b
	created.UID = "blk" + strconv.Itoa(len(f.blockers)+1)
	f.blockers = append(f.blockers, &created)
	return &created, nil
}

func (f *fakeBlockerRepo) GetByUID(_ context.Context, uid string) (*domain.Blocker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blockers {
		if b.UID == uid {
			copied := *b
			return &copied, nil
		}
	}
	return nil, domain.ErrBlockerNotFound
}

func (f *fakeBlockerRepo) List(_ context.Context, filter domain.BlockerFilter) ([]*domain.Blocker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.listed = append(f.listed, filter)

	var result []*domain.Blocker
	for _, b := range f.blockers {
		if filter.MemberUID != "" && b.TeamMemberUID != filter.MemberUID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if !filter.FromDate.IsZero() && b.Timestamp.Before(filter.FromDate) {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeBlockerRepo) Count(ctx context.Context, filter domain.BlockerFilter) (int, error) {
	blockers, err := f.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(blockers), nil
}

func (f *fakeBlockerRepo) Update(_ context.Context, b *domain.Blocker) (*domain.Blocker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.blockers {
		if existing.UID == b.UID {
			copied := *b
			f.blockers[i] = &copied
			result := copied
			return &result, nil
		}
	}
	return nil, domain.ErrBlockerNotFound
}

type fakeMemberRepo struct {
	members []*domain.TeamMember
}

func (f *fakeMemberRepo) Create(_ context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	created := *m
	created.UID = "mem" + strconv.Itoa(len(f.members)+1)
	f.members = append(f.members, &created)
	return &created, nil
}

func (f *fakeMemberRepo) List(_ context.Context, team string, isManager *bool) ([]*domain.TeamMember, error) {
	var result []*domain.TeamMember
	for _, m := range f.members {
		if team != "" && m.Team != team {
			continue
		}
		if isManager != nil && m.IsManager != *isManager {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeMemberRepo) GetByUID(_ context.Context, uid string) (*domain.TeamMember, error) {
	for _, m := range f.members {
		if m.UID == uid {
			return m, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeMemberRepo) FindByEmail(_ context.Context, email string) (*domain.TeamMember, error) {
	for _, m := range f.members {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeMemberRepo) FindBySlackID(_ context.Context, slackID string) (*domain.TeamMember, error) {
	for _, m := range f.members {
		if m.SlackID == slackID {
			return m, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeMemberRepo) Update(_ context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	for i, existing := range f.members {
		if existing.UID == m.UID {
			copied := *m
			f.members[i] = &copied
			return &copied, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeMemberRepo) Delete(_ context.Context, uid string) error {
	for i, m := range f.members {
		if m.UID == uid {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return domain.ErrMemberNotFound
}

type fakeTeamRepo struct {
	teams []*domain.Team
}

func (f *fakeTeamRepo) Create(_ context.Context, t *domain.Team) (*domain.Team, error) {
	created := *t
	created.UID = "team" + strconv.Itoa(len(f.teams)+1)
	f.teams = append(f.teams, &created)
	return &created, nil
}

func (f *fakeTeamRepo) List(_ context.Context, activeOnly bool) ([]*domain.Team, error) {
	var result []*domain.Team
	for _, t := range f.teams {
		if activeOnly && t.Status != "Active" {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (f *fakeTeamRepo) GetByUID(_ context.Context, uid string) (*domain.Team, error) {
	for _, t := range f.teams {
		if t.UID == uid {
			return t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (f *fakeTeamRepo) FindByTeamID(_ context.Context, teamID string) (*domain.Team, error) {
	for _, t := range f.teams {
		if t.TeamID == teamID {
			return t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (f *fakeTeamRepo) FindByName(_ context.Context, name string) (*domain.Team, error) {
	for _, t := range f.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (f *fakeTeamRepo) Update(_ context.Context, t *domain.Team) (*domain.Team, error) {
	for i, existing := range f.teams {
		if existing.UID == t.UID {
			copied := *t
			f.teams[i] = &copied
			return &copied, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (f *fakeTeamRepo) Delete(_ context.Context, uid string) error {
	for i, t := range f.teams {
		if t.UID == uid {
			f.teams = append(f.teams[:i], f.teams[i+1:]...)
			return nil
		}
	}
	return domain.ErrTeamNotFound
}

type fakeReportRepo struct {
	reports   []*domain.Report
	createErr error
	creates   int
}

func (f *fakeReportRepo) Create(_ context.Context, r *domain.Report) (*domain.Report, error) {
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *r
	created.UID = "rep" + strconv.Itoa(len(f.reports)+1)
	created.CreatedAt = created.GeneratedAt
	f.reports = append(f.reports, &created)
	return &created, nil
}

func (f *fakeReportRepo) GetByUID(_ context.Context, uid string) (*domain.Report, error) {
	for _, r := range f.reports {
		if r.UID == uid {
			copied := *r
			return &copied, nil
		}
	}
	return nil, domain.ErrReportNotFound
}

func (f *fakeReportRepo) ListByMember(_ context.Context, memberUID string, limit int) ([]*domain.Report, error) {
	var result []*domain.Report
	for _, r := range f.reports {
		if r.Type == domain.ReportIndividual && r.TargetMemberUID == memberUID {
			copied := *r
			result = append(result, &copied)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeReportRepo) ListByTeam(_ context.Context, teamName string, limit int) ([]*domain.Report, error) {
	var result []*domain.Report
	for _, r := range f.reports {
		if r.Type == domain.ReportTeam && r.TargetTeam == teamName {
			copied := *r
			result = append(result, &copied)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeGenerator struct {
	analysis *domain.Analysis
	err      error
	calls    int
	lastUser string
}

func (f *fakeGenerator) GenerateAnalysis(_ context.Context, _, userPrompt string) (*domain.Analysis, error) {
	f.calls++
	f.lastUser = userPrompt
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

var errGenDown = errors.New("generation service unavailable")

type serviceFixture struct {
	svc      *Service
	blockers *fakeBlockerRepo
	members  *fakeMemberRepo
	teams    *fakeTeamRepo
	reports  *fakeReportRepo
	gen      *fakeGenerator
	now      time.Time
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		blockers: &fakeBlockerRepo{},
		members:  &fakeMemberRepo{},
		teams:    &fakeTeamRepo{},
		reports:  &fakeReportRepo{},
		gen: &fakeGenerator{analysis: &domain.Analysis{
			Summary:     "generated summary",
			ActionItems: []domain.ActionItem{},
			Insights:    []string{"generated insight"},
		}},
		now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = New(log, f.blockers, f.members, f.teams, f.reports, f.gen)
	f.svc.now = func() time.Time { return f.now }
	return f
}
