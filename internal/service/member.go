package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

// CreateMember registers a member. Email is unique across the store.
func (s *Service) CreateMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	existing, err := s.members.FindByEmail(ctx, m.Email)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	if m.Status == "" {
		m.Status = domain.MemberActive
	}

	created, err := s.members.Create(ctx, m)
	if err != nil {
		s.log.Error("service.CreateMember: failed to create member",
			slog.String("email", m.Email),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

func (s *Service) ListMembers(ctx context.Context, team string, isManager *bool) ([]*domain.TeamMember, error) {
	return s.members.List(ctx, team, isManager)
}

func (s *Service) GetMember(ctx context.Context, uid string) (*domain.TeamMember, error) {
	return s.members.GetByUID(ctx, uid)
}

func (s *Service) FindMemberByEmail(ctx context.Context, email string) (*domain.TeamMember, error) {
	return s.members.FindByEmail(ctx, email)
}

func (s *Service) FindMemberBySlackID(ctx context.Context, slackID string) (*domain.TeamMember, error) {
	return s.members.FindBySlackID(ctx, slackID)
}

// UpdateMember applies a full update. Changing the email to one already
// held by another member is a conflict.
func (s *Service) UpdateMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	existing, err := s.members.GetByUID(ctx, m.UID)
	if err != nil {
		return nil, err
	}

	if m.Email != "" && m.Email != existing.Email {
		other, err := s.members.FindByEmail(ctx, m.Email)
		if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
			return nil, err
		}
		if other != nil && other.UID != m.UID {
			return nil, domain.ErrEmailExists
		}
	}

	return s.members.Update(ctx, m)
}

func (s *Service) DeleteMember(ctx context.Context, uid string) error {
	return s.members.Delete(ctx, uid)
}

// FindOrCreateMemberByEmail resolves the member behind an authenticated
// identity, provisioning a new non-manager member on first login.
func (s *Service) FindOrCreateMemberByEmail(ctx context.Context, email, firstName, lastName, profilePic string) (*domain.TeamMember, error) {
	member, err := s.members.FindByEmail(ctx, email)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	s.log.Info("service.FindOrCreateMemberByEmail: provisioning new member",
		slog.String("email", email),
	)
	return s.members.Create(ctx, &domain.TeamMember{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		ProfilePic: profilePic,
		Status:     domain.MemberActive,
	})
}
