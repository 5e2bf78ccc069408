package domain

import "errors"

var (
	ErrMemberNotFound  = errors.New("NOT_FOUND: team member not found")
	ErrTeamNotFound    = errors.New("NOT_FOUND: team not found")
	ErrBlockerNotFound = errors.New("NOT_FOUND: blocker not found")
	ErrReportNotFound  = errors.New("NOT_FOUND: report not found")

	ErrEmailExists = errors.New("CONFLICT: a team member with this email already exists")
	ErrTeamExists  = errors.New("CONFLICT: team_id already exists")

	ErrUnauthorized         = errors.New("UNAUTHORIZED: missing or invalid credentials")
	ErrForbidden            = errors.New("FORBIDDEN: only the owner or a manager may update this blocker")
	ErrManagerNotesReserved = errors.New("FORBIDDEN: only managers can add manager notes")
)
