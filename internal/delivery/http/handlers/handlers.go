// Package handlers wires the HTTP API: route table, request binding,
// auth middleware and error mapping.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/momentum-hq/momentum-api/internal/auth"
	"github.com/momentum-hq/momentum-api/internal/domain"
	"github.com/momentum-hq/momentum-api/internal/service"
	"github.com/momentum-hq/momentum-api/internal/slack"
)

type Service interface {
	CreateBlocker(ctx context.Context, b *domain.Blocker) (*domain.Blocker, error)
	ListBlockers(ctx context.Context, f domain.BlockerFilter) (*service.BlockerPage, error)
	BlockersForMember(ctx context.Context, memberUID string, f domain.BlockerFilter) (*service.BlockerPage, error)
	BlockersForTeam(ctx context.Context, team string, f domain.BlockerFilter) (*service.BlockerPage, error)
	GetBlocker(ctx context.Context, uid string) (*domain.Blocker, error)
	UpdateBlocker(ctx context.Context, uid string, update service.BlockerUpdate, actor *domain.Actor) (*domain.Blocker, error)
	StatsForMember(ctx context.Context, memberUID string) (*domain.BlockerStats, error)
	StatsForTeam(ctx context.Context, team string) (*domain.BlockerStats, error)

	CreateMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	ListMembers(ctx context.Context, team string, isManager *bool) ([]*domain.TeamMember, error)
	GetMember(ctx context.Context, uid string) (*domain.TeamMember, error)
	UpdateMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	DeleteMember(ctx context.Context, uid string) error
	FindOrCreateMemberByEmail(ctx context.Context, email, firstName, lastName, profilePic string) (*domain.TeamMember, error)

	CreateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error)
	ListTeams(ctx context.Context, activeOnly bool) ([]*domain.Team, error)
	GetTeam(ctx context.Context, uid string) (*domain.Team, error)
	FindTeamByName(ctx context.Context, name string) (*domain.Team, error)
	FindTeamByTeamID(ctx context.Context, teamID string) (*domain.Team, error)
	UpdateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error)
	DeleteTeam(ctx context.Context, uid string) error
	AddTeamMember(ctx context.Context, teamUID, memberUID string) (*domain.Team, error)
	RemoveTeamMember(ctx context.Context, teamUID, memberUID string) (*domain.Team, error)
	TeamsForMember(ctx context.Context, memberUID string) ([]*domain.Team, error)

	GenerateIndividualReport(ctx context.Context, memberUID string, period domain.ReportPeriod, force bool) (*domain.Report, error)
	GenerateTeamReport(ctx context.Context, teamName string, period domain.ReportPeriod, force bool) (*domain.Report, error)
	ReportsForMember(ctx context.Context, memberUID string) ([]*domain.Report, error)
	ReportsForTeam(ctx context.Context, teamName string) ([]*domain.Report, error)
	ReportByUID(ctx context.Context, uid string) (*domain.Report, error)
}

type TokenManager interface {
	Issue(member *domain.TeamMember) (string, error)
	Parse(token string) (*domain.Actor, error)
}

type GoogleAuth interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.Profile, error)
}

type SlackChannel interface {
	VerifySignature(signature, timestamp string, body []byte) bool
	HandleCommand(ctx context.Context, payload slack.CommandPayload) error
	HandleInteraction(ctx context.Context, payload slack.InteractionPayload) error
}

type Handlers struct {
	log         *slog.Logger
	svc         Service
	tokens      TokenManager
	google      GoogleAuth
	slack       SlackChannel
	frontendURL string
}

func New(log *slog.Logger, svc Service, tokens TokenManager, google GoogleAuth, slackChannel SlackChannel, frontendURL string) *Handlers {
	return &Handlers{
		log:         log,
		svc:         svc,
		tokens:      tokens,
		google:      google,
		slack:       slackChannel,
		frontendURL: frontendURL,
	}
}

func (h *Handlers) Router() *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery(), RequestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.GET("/google", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)
		authGroup.GET("/me", h.Auth(), h.me)
		authGroup.POST("/refresh", h.Auth(), h.refresh)
	}

	slackGroup := api.Group("/slack")
	{
		slackGroup.POST("/commands/blocker", h.slackCommand)
		slackGroup.POST("/interactions", h.slackInteraction)
		slackGroup.POST("/events", h.slackEvent)
	}

	members := api.Group("/team-members", h.Auth())
	{
		members.POST("", h.RequireManager(), h.createMember)
		members.GET("", h.listMembers)
		members.GET("/team/:teamName", h.listMembersByTeam)
		members.GET("/:id", h.getMember)
		members.PATCH("/:id", h.RequireManager(), h.updateMember)
		members.DELETE("/:id", h.RequireManager(), h.deleteMember)
	}

	teams := api.Group("/teams", h.Auth())
	{
		teams.POST("", h.RequireManager(), h.createTeam)
		teams.GET("", h.listTeams)
		teams.GET("/by-team-id/:teamId", h.getTeamByTeamID)
		teams.GET("/member/:memberUid", h.teamsForMember)
		teams.GET("/:uid", h.getTeam)
		teams.PUT("/:uid", h.RequireManager(), h.updateTeam)
		teams.DELETE("/:uid", h.RequireManager(), h.deleteTeam)
		teams.POST("/:uid/members/:memberUid", h.RequireManager(), h.addTeamMember)
		teams.DELETE("/:uid/members/:memberUid", h.RequireManager(), h.removeTeamMember)
	}

	blockers := api.Group("/blockers", h.Auth())
	{
		blockers.POST("", h.createBlocker)
		blockers.GET("", h.RequireManager(), h.listBlockers)
		blockers.GET("/my", h.myBlockers)
		blockers.GET("/my/stats", h.myBlockerStats)
		blockers.GET("/team/:teamName", h.RequireManager(), h.teamBlockers)
		blockers.GET("/team/:teamName/stats", h.RequireManager(), h.teamBlockerStats)
		blockers.GET("/member/:memberId", h.RequireManager(), h.memberBlockers)
		blockers.GET("/:id", h.getBlocker)
		blockers.PATCH("/:id", h.updateBlocker)
	}

	reports := api.Group("/ai-reports", h.Auth())
	{
		reports.POST("/generate/my", h.generateMyReport)
		reports.POST("/generate/member/:memberId", h.RequireManager(), h.generateMemberReport)
		reports.POST("/generate/team/:teamName", h.RequireManager(), h.generateTeamReport)
		reports.GET("/my", h.myReports)
		reports.GET("/team/:teamName", h.RequireManager(), h.teamReports)
		reports.GET("/member/:memberId", h.RequireManager(), h.memberReports)
		reports.GET("/:id", h.getReport)
	}

	return router
}

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("blockercategory", func(fl validator.FieldLevel) bool {
		value := domain.BlockerCategory(fl.Field().String())
		for _, c := range domain.Categories {
			if value == c {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("blockerseverity", func(fl validator.FieldLevel) bool {
		switch domain.BlockerSeverity(fl.Field().String()) {
		case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("blockerstatus", func(fl validator.FieldLevel) bool {
		switch domain.BlockerStatus(fl.Field().String()) {
		case domain.StatusOpen, domain.StatusResolved, domain.StatusIgnored:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("reportperiod", func(fl validator.FieldLevel) bool {
		return domain.ReportPeriod(fl.Field().String()).Valid()
	})
}

// respondError maps domain sentinels onto status codes. Sentinel messages
// follow "CODE: message", which doubles as the response payload.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrBlockerNotFound),
		errors.Is(err, domain.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrTeamExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrManagerNotesReserved):
		status = http.StatusForbidden
	}

	code, message := "INTERNAL", "internal server error"
	if status != http.StatusInternalServerError {
		code, message = splitSentinel(err.Error())
	} else {
		h.log.Error("handlers: unhandled error",
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}

func (h *Handlers) respondBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()},
	})
}

func splitSentinel(msg string) (code, message string) {
	code, message, found := strings.Cut(msg, ": ")
	if !found {
		return "INTERNAL", msg
	}
	return code, message
}
