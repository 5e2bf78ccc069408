// Package service holds the business logic: blocker tracking, team and
// member management, and report synthesis.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

type BlockerRepo interface {
	Create(ctx context.Context, b *domain.Blocker) (*domain.Blocker, error)
	GetByUID(ctx context.Context, uid string) (*domain.Blocker, error)
	List(ctx context.Context, f domain.BlockerFilter) ([]*domain.Blocker, error)
	Count(ctx context.Context, f domain.BlockerFilter) (int, error)
	Update(ctx context.Context, b *domain.Blocker) (*domain.Blocker, error)
}

type MemberRepo interface {
	Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	List(ctx context.Context, team string, isManager *bool) ([]*domain.TeamMember, error)
	GetByUID(ctx context.Context, uid string) (*domain.TeamMember, error)
	FindByEmail(ctx context.Context, email string) (*domain.TeamMember, error)
	FindBySlackID(ctx context.Context, slackID string) (*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	Delete(ctx context.Context, uid string) error
}

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) (*domain.Team, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Team, error)
	GetByUID(ctx context.Context, uid string) (*domain.Team, error)
	FindByTeamID(ctx context.Context, teamID string) (*domain.Team, error)
	FindByName(ctx context.Context, name string) (*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) (*domain.Team, error)
	Delete(ctx context.Context, uid string) error
}

type ReportRepo interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	GetByUID(ctx context.Context, uid string) (*domain.Report, error)
	ListByMember(ctx context.Context, memberUID string, limit int) ([]*domain.Report, error)
	ListByTeam(ctx context.Context, teamName string, limit int) ([]*domain.Report, error)
}

// AnalysisGenerator produces an analysis from prepared prompts. Failures are
// recoverable: the caller substitutes a deterministic fallback.
type AnalysisGenerator interface {
	GenerateAnalysis(ctx context.Context, systemPrompt, userPrompt string) (*domain.Analysis, error)
}

type Service struct {
	log      *slog.Logger
	blockers BlockerRepo
	members  MemberRepo
	teams    TeamRepo
	reports  ReportRepo
	gen      AnalysisGenerator

	now      func() time.Time
	genLocks keyedMutex
}

func New(log *slog.Logger, blockers BlockerRepo, members MemberRepo, teams TeamRepo, reports ReportRepo, gen AnalysisGenerator) *Service {
	return &Service{
		log:      log,
		blockers: blockers,
		members:  members,
		teams:    teams,
		reports:  reports,
		gen:      gen,
		now:      time.Now,
	}
}

// keyedMutex serializes work per key. Concurrent report generations for the
// same target and period must not race each other into duplicate reports.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
