package repository

import (
	"github.com/momentum-hq/momentum-api/internal/repository/contentstack"
	cs_blocker "github.com/momentum-hq/momentum-api/internal/repository/contentstack/blocker"
	cs_member "github.com/momentum-hq/momentum-api/internal/repository/contentstack/member"
	cs_report "github.com/momentum-hq/momentum-api/internal/repository/contentstack/report"
	cs_team "github.com/momentum-hq/momentum-api/internal/repository/contentstack/team"
)

type Repositories struct {
	Blocker *cs_blocker.Repo
	Member  *cs_member.Repo
	Team    *cs_team.Repo
	Report  *cs_report.Repo
}

func New(cs *contentstack.Client) *Repositories {
	return &Repositories{
		Blocker: cs_blocker.New(cs),
		Member:  cs_member.New(cs),
		Team:    cs_team.New(cs),
		Report:  cs_report.New(cs),
	}
}
