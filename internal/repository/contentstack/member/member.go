// Package member maps team_member entries to the domain model.
package member

import (
	"context"
	"errors"

	"github.com/momentum-hq/momentum-api/internal/domain"
	"github.com/momentum-hq/momentum-api/internal/repository/contentstack"
)

const contentType = "team_member"

type Repo struct {
	cs *contentstack.Client
}

func New(cs *contentstack.Client) *Repo {
	return &Repo{cs: cs}
}

type entry struct {
	UID           string `json:"uid,omitempty"`
	Title         string `json:"title,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Email         string `json:"email,omitempty"`
	SlackID       string `json:"slack_id,omitempty"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
	Designation   string `json:"designation,omitempty"`
	Team          string `json:"team,omitempty"`
	IsManager     bool   `json:"is_manager,omitempty"`
	JoinedDate    string `json:"joined_date,omitempty"`
	Status        string `json:"status,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

func toDomain(e entry) *domain.TeamMember {
	return &domain.TeamMember{
		UID:         e.UID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		SlackID:     e.SlackID,
		ProfilePic:  e.ProfilePicURL,
		Designation: e.Designation,
		Team:        e.Team,
		IsManager:   e.IsManager,
		JoinedDate:  e.JoinedDate,
		Status:      domain.MemberStatus(e.Status),
		CreatedAt:   contentstack.ParseTime(e.CreatedAt),
		UpdatedAt:   contentstack.ParseTime(e.UpdatedAt),
	}
}

func fromDomain(m *domain.TeamMember) entry {
	return entry{
		UID:           m.UID,
		Title:         m.FullName(),
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		SlackID:       m.SlackID,
		ProfilePicURL: m.ProfilePic,
		Designation:   m.Designation,
		Team:          m.Team,
		IsManager:     m.IsManager,
		JoinedDate:    m.JoinedDate,
		Status:        string(m.Status),
	}
}

func (r *Repo) Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	var created entry
	if err := r.cs.CreateEntry(ctx, contentType, fromDomain(m), &created); err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// List returns active members, optionally narrowed by team or manager flag.
func (r *Repo) List(ctx context.Context, team string, isManager *bool) ([]*domain.TeamMember, error) {
	where := map[string]any{"status": string(domain.MemberActive)}
	if team != "" {
		where["team"] = team
	}
	if isManager != nil {
		where["is_manager"] = *isManager
	}

	var entries []entry
	q := contentstack.Query{Where: where, Limit: 100}
	if err := r.cs.GetEntries(ctx, contentType, q, &entries); err != nil {
		return nil, err
	}

	members := make([]*domain.TeamMember, 0, len(entries))
	for _, e := range entries {
		members = append(members, toDomain(e))
	}
	return members, nil
}

func (r *Repo) GetByUID(ctx context.Context, uid string) (*domain.TeamMember, error) {
	var e entry
	if err := r.cs.GetEntry(ctx, contentType, uid, nil, &e); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return toDomain(e), nil
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (*domain.TeamMember, error) {
	return r.findByField(ctx, "email", email)
}

func (r *Repo) FindBySlackID(ctx context.Context, slackID string) (*domain.TeamMember, error) {
	return r.findByField(ctx, "slack_id", slackID)
}

func (r *Repo) findByField(ctx context.Context, field, value string) (*domain.TeamMember, error) {
	var entries []entry
	q := contentstack.Query{Where: map[string]any{field: value}, Limit: 1}
	if err := r.cs.GetEntries(ctx, contentType, q, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrMemberNotFound
	}
	return toDomain(entries[0]), nil
}

func (r *Repo) Update(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	var updated entry
	if err := r.cs.UpdateEntry(ctx, contentType, m.UID, fromDomain(m), &updated); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return toDomain(updated), nil
}

func (r *Repo) Delete(ctx context.Context, uid string) error {
	if err := r.cs.DeleteEntry(ctx, contentType, uid); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}
	return nil
}
