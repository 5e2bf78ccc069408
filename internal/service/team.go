package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

// CreateTeam registers a team. The short team_id is unique across the store.
func (s *Service) CreateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	existing, err := s.teams.FindByTeamID(ctx, t.TeamID)
	if err != nil && !errors.Is(err, domain.ErrTeamNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrTeamExists
	}

	if t.Status == "" {
		t.Status = "Active"
	}

	created, err := s.teams.Create(ctx, t)
	if err != nil {
		s.log.Error("service.CreateTeam: failed to create team",
			slog.String("team_id", t.TeamID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

func (s *Service) ListTeams(ctx context.Context, activeOnly bool) ([]*domain.Team, error) {
	return s.teams.List(ctx, activeOnly)
}

func (s *Service) GetTeam(ctx context.Context, uid string) (*domain.Team, error) {
	return s.teams.GetByUID(ctx, uid)
}

func (s *Service) FindTeamByName(ctx context.Context, name string) (*domain.Team, error) {
	return s.teams.FindByName(ctx, name)
}

func (s *Service) FindTeamByTeamID(ctx context.Context, teamID string) (*domain.Team, error) {
	return s.teams.FindByTeamID(ctx, teamID)
}

func (s *Service) UpdateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	if _, err := s.teams.GetByUID(ctx, t.UID); err != nil {
		return nil, err
	}
	return s.teams.Update(ctx, t)
}

func (s *Service) DeleteTeam(ctx context.Context, uid string) error {
	return s.teams.Delete(ctx, uid)
}

// AddTeamMember attaches a member to the team's member list. Adding an
// already-present member is a no-op.
func (s *Service) AddTeamMember(ctx context.Context, teamUID, memberUID string) (*domain.Team, error) {
	team, err := s.teams.GetByUID(ctx, teamUID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.GetByUID(ctx, memberUID); err != nil {
		return nil, err
	}

	if slices.Contains(team.MemberUIDs, memberUID) {
		return team, nil
	}
	team.MemberUIDs = append(team.MemberUIDs, memberUID)

	return s.teams.Update(ctx, team)
}

func (s *Service) RemoveTeamMember(ctx context.Context, teamUID, memberUID string) (*domain.Team, error) {
	team, err := s.teams.GetByUID(ctx, teamUID)
	if err != nil {
		return nil, err
	}

	before := len(team.MemberUIDs)
	team.MemberUIDs = slices.DeleteFunc(team.MemberUIDs, func(uid string) bool {
		return uid == memberUID
	})
	if len(team.MemberUIDs) == before {
		return team, nil
	}

	return s.teams.Update(ctx, team)
}

// TeamsForMember returns every team the member belongs to or manages.
func (s *Service) TeamsForMember(ctx context.Context, memberUID string) ([]*domain.Team, error) {
	teams, err := s.teams.List(ctx, false)
	if err != nil {
		return nil, err
	}

	var result []*domain.Team
	for _, t := range teams {
		if t.ManagerUID == memberUID || slices.Contains(t.MemberUIDs, memberUID) {
			result = append(result, t)
		}
	}
	return result, nil
}
