package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

type createTeamRequest struct {
	Name        string   `json:"name" binding:"required"`
	TeamID      string   `json:"teamId" binding:"required"`
	Description string   `json:"description"`
	ManagerUID  string   `json:"managerUid"`
	MemberUIDs  []string `json:"memberUids"`
}

type updateTeamRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ManagerUID  string   `json:"managerUid"`
	MemberUIDs  []string `json:"memberUids"`
	Status      string   `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

func (h *Handlers) createTeam(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	team, err := h.svc.CreateTeam(c.Request.Context(), &domain.Team{
		Name:        req.Name,
		TeamID:      req.TeamID,
		Description: req.Description,
		ManagerUID:  req.ManagerUID,
		MemberUIDs:  req.MemberUIDs,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *Handlers) listTeams(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	teams, err := h.svc.ListTeams(c.Request.Context(), activeOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handlers) getTeam(c *gin.Context) {
	team, err := h.svc.GetTeam(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *Handlers) getTeamByTeamID(c *gin.Context) {
	team, err := h.svc.FindTeamByTeamID(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *Handlers) teamsForMember(c *gin.Context) {
	teams, err := h.svc.TeamsForMember(c.Request.Context(), c.Param("memberUid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handlers) updateTeam(c *gin.Context) {
	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	existing, err := h.svc.GetTeam(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.ManagerUID != "" {
		existing.ManagerUID = req.ManagerUID
	}
	if req.MemberUIDs != nil {
		existing.MemberUIDs = req.MemberUIDs
	}
	if req.Status != "" {
		existing.Status = req.Status
	}

	team, err := h.svc.UpdateTeam(c.Request.Context(), existing)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *Handlers) deleteTeam(c *gin.Context) {
	if err := h.svc.DeleteTeam(c.Request.Context(), c.Param("uid")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) addTeamMember(c *gin.Context) {
	team, err := h.svc.AddTeamMember(c.Request.Context(), c.Param("uid"), c.Param("memberUid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *Handlers) removeTeamMember(c *gin.Context) {
	team, err := h.svc.RemoveTeamMember(c.Request.Context(), c.Param("uid"), c.Param("memberUid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}
