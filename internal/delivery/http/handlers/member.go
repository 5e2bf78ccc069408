package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

type createMemberRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	SlackID     string `json:"slackId"`
	ProfilePic  string `json:"profilePic"`
	Designation string `json:"designation"`
	Team        string `json:"team"`
	IsManager   bool   `json:"isManager"`
}

type updateMemberRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" binding:"omitempty,email"`
	SlackID     string `json:"slackId"`
	ProfilePic  string `json:"profilePic"`
	Designation string `json:"designation"`
	Team        string `json:"team"`
	IsManager   *bool  `json:"isManager"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

func (h *Handlers) createMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	member, err := h.svc.CreateMember(c.Request.Context(), &domain.TeamMember{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		SlackID:     req.SlackID,
		ProfilePic:  req.ProfilePic,
		Designation: req.Designation,
		Team:        req.Team,
		IsManager:   req.IsManager,
		Status:      domain.MemberActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *Handlers) listMembers(c *gin.Context) {
	var isManager *bool
	if raw := c.Query("isManager"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondBadRequest(c, err)
			return
		}
		isManager = &parsed
	}

	members, err := h.svc.ListMembers(c.Request.Context(), c.Query("team"), isManager)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handlers) listMembersByTeam(c *gin.Context) {
	members, err := h.svc.ListMembers(c.Request.Context(), c.Param("teamName"), nil)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handlers) getMember(c *gin.Context) {
	member, err := h.svc.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handlers) updateMember(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	existing, err := h.svc.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if req.FirstName != "" {
		existing.FirstName = req.FirstName
	}
	if req.LastName != "" {
		existing.LastName = req.LastName
	}
	if req.Email != "" {
		existing.Email = req.Email
	}
	if req.SlackID != "" {
		existing.SlackID = req.SlackID
	}
	if req.ProfilePic != "" {
		existing.ProfilePic = req.ProfilePic
	}
	if req.Designation != "" {
		existing.Designation = req.Designation
	}
	if req.Team != "" {
		existing.Team = req.Team
	}
	if req.IsManager != nil {
		existing.IsManager = *req.IsManager
	}
	if req.Status != "" {
		existing.Status = domain.MemberStatus(req.Status)
	}

	member, err := h.svc.UpdateMember(c.Request.Context(), existing)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handlers) deleteMember(c *gin.Context) {
	if err := h.svc.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
