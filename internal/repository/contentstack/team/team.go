// Package team maps team entries to the domain model. A team's name lives in
// the store's title field; manager and members are reference fields.
package team

import (
	"context"
	"errors"

	"github.com/momentum-hq/momentum-api/internal/domain"
	"github.com/momentum-hq/momentum-api/internal/repository/contentstack"
)

const contentType = "team"

type Repo struct {
	cs *contentstack.Client
}

func New(cs *contentstack.Client) *Repo {
	return &Repo{cs: cs}
}

type entry struct {
	UID         string      `json:"uid,omitempty"`
	Title       string      `json:"title,omitempty"`
	TeamID      string      `json:"team_id,omitempty"`
	Description string      `json:"description,omitempty"`
	Manager     []memberRef `json:"manager,omitempty"`
	Members     []memberRef `json:"members,omitempty"`
	Status      string      `json:"status,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

// memberRef carries the reference plus whatever member fields the store
// resolved when the query asked for included references.
type memberRef struct {
	UID            string `json:"uid"`
	ContentTypeUID string `json:"_content_type_uid,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email,omitempty"`
	SlackID        string `json:"slack_id,omitempty"`
	ProfilePicURL  string `json:"profile_pic_url,omitempty"`
	Designation    string `json:"designation,omitempty"`
	Team           string `json:"team,omitempty"`
	IsManager      bool   `json:"is_manager,omitempty"`
	Status         string `json:"status,omitempty"`
}

func refToMember(ref memberRef) domain.TeamMember {
	return domain.TeamMember{
		UID:         ref.UID,
		FirstName:   ref.FirstName,
		LastName:    ref.LastName,
		Email:       ref.Email,
		SlackID:     ref.SlackID,
		ProfilePic:  ref.ProfilePicURL,
		Designation: ref.Designation,
		Team:        ref.Team,
		IsManager:   ref.IsManager,
		Status:      domain.MemberStatus(ref.Status),
	}
}

func toDomain(e entry) *domain.Team {
	t := &domain.Team{
		UID:         e.UID,
		Name:        e.Title,
		TeamID:      e.TeamID,
		Description: e.Description,
		MemberUIDs:  make([]string, 0, len(e.Members)),
		Status:      e.Status,
		CreatedAt:   contentstack.ParseTime(e.CreatedAt),
		UpdatedAt:   contentstack.ParseTime(e.UpdatedAt),
	}

	if len(e.Manager) > 0 {
		manager := refToMember(e.Manager[0])
		t.ManagerUID = manager.UID
		t.Manager = &manager
	}
	for _, ref := range e.Members {
		t.MemberUIDs = append(t.MemberUIDs, ref.UID)
		t.Members = append(t.Members, refToMember(ref))
	}
	return t
}

func fromDomain(t *domain.Team) entry {
	e := entry{
		UID:         t.UID,
		Title:       t.Name,
		TeamID:      t.TeamID,
		Description: t.Description,
		Status:      t.Status,
	}
	if t.ManagerUID != "" {
		e.Manager = []memberRef{{UID: t.ManagerUID, ContentTypeUID: "team_member"}}
	}
	for _, uid := range t.MemberUIDs {
		e.Members = append(e.Members, memberRef{UID: uid, ContentTypeUID: "team_member"})
	}
	return e
}

func (r *Repo) Create(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	var created entry
	if err := r.cs.CreateEntry(ctx, contentType, fromDomain(t), &created); err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

func (r *Repo) List(ctx context.Context, activeOnly bool) ([]*domain.Team, error) {
	var where map[string]any
	if activeOnly {
		where = map[string]any{"status": "Active"}
	}

	var entries []entry
	q := contentstack.Query{Where: where, Limit: 100, IncludeReference: []string{"manager", "members"}}
	if err := r.cs.GetEntries(ctx, contentType, q, &entries); err != nil {
		return nil, err
	}

	teams := make([]*domain.Team, 0, len(entries))
	for _, e := range entries {
		teams = append(teams, toDomain(e))
	}
	return teams, nil
}

func (r *Repo) GetByUID(ctx context.Context, uid string) (*domain.Team, error) {
	var e entry
	if err := r.cs.GetEntry(ctx, contentType, uid, []string{"manager", "members"}, &e); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return toDomain(e), nil
}

func (r *Repo) FindByTeamID(ctx context.Context, teamID string) (*domain.Team, error) {
	return r.findOne(ctx, map[string]any{"team_id": teamID})
}

func (r *Repo) FindByName(ctx context.Context, name string) (*domain.Team, error) {
	return r.findOne(ctx, map[string]any{"title": name})
}

func (r *Repo) findOne(ctx context.Context, where map[string]any) (*domain.Team, error) {
	var entries []entry
	q := contentstack.Query{Where: where, Limit: 1, IncludeReference: []string{"manager", "members"}}
	if err := r.cs.GetEntries(ctx, contentType, q, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrTeamNotFound
	}
	return toDomain(entries[0]), nil
}

func (r *Repo) Update(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	var updated entry
	if err := r.cs.UpdateEntry(ctx, contentType, t.UID, fromDomain(t), &updated); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return toDomain(updated), nil
}

func (r *Repo) Delete(ctx context.Context, uid string) error {
	if err := r.cs.DeleteEntry(ctx, contentType, uid); err != nil {
		if errors.Is(err, contentstack.ErrNotFound) {
			return domain.ErrTeamNotFound
		}
		return err
	}
	return nil
}
