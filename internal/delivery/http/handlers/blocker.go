package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momentum-hq/momentum-api/internal/domain"
	"github.com/momentum-hq/momentum-api/internal/service"
)

type createBlockerRequest struct {
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required,blockercategory"`
	Severity    string `json:"severity" binding:"required,blockerseverity"`
}

type updateBlockerRequest struct {
	Description  string `json:"description"`
	Category     string `json:"category" binding:"omitempty,blockercategory"`
	Severity     string `json:"severity" binding:"omitempty,blockerseverity"`
	Status       string `json:"status" binding:"omitempty,blockerstatus"`
	ManagerNotes string `json:"managerNotes"`
}

type blockerFilterQuery struct {
	Category string    `form:"category" binding:"omitempty,blockercategory"`
	Severity string    `form:"severity" binding:"omitempty,blockerseverity"`
	Status   string    `form:"status" binding:"omitempty,blockerstatus"`
	FromDate time.Time `form:"fromDate" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit    int       `form:"limit" binding:"omitempty,min=1,max=1000"`
	Skip     int       `form:"skip" binding:"omitempty,min=0"`
}

func (q blockerFilterQuery) toFilter() domain.BlockerFilter {
	return domain.BlockerFilter{
		Category: domain.BlockerCategory(q.Category),
		Severity: domain.BlockerSeverity(q.Severity),
		Status:   domain.BlockerStatus(q.Status),
		FromDate: q.FromDate,
		Limit:    q.Limit,
		Skip:     q.Skip,
	}
}

// createBlocker records a blocker for the authenticated member.
func (h *Handlers) createBlocker(c *gin.Context) {
	var req createBlockerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	actor := currentActor(c)

	blocker, err := h.svc.CreateBlocker(c.Request.Context(), &domain.Blocker{
		TeamMemberUID: actor.UID,
		Description:   req.Description,
		Category:      domain.BlockerCategory(req.Category),
		Severity:      domain.BlockerSeverity(req.Severity),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blocker)
}

func (h *Handlers) listBlockers(c *gin.Context) {
	var q blockerFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	page, err := h.svc.ListBlockers(c.Request.Context(), q.toFilter())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) myBlockers(c *gin.Context) {
	var q blockerFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	actor := currentActor(c)

	page, err := h.svc.BlockersForMember(c.Request.Context(), actor.UID, q.toFilter())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) myBlockerStats(c *gin.Context) {
	actor := currentActor(c)

	stats, err := h.svc.StatsForMember(c.Request.Context(), actor.UID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) teamBlockers(c *gin.Context) {
	var q blockerFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	page, err := h.svc.BlockersForTeam(c.Request.Context(), c.Param("teamName"), q.toFilter())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) teamBlockerStats(c *gin.Context) {
	stats, err := h.svc.StatsForTeam(c.Request.Context(), c.Param("teamName"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) memberBlockers(c *gin.Context) {
	var q blockerFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	page, err := h.svc.BlockersForMember(c.Request.Context(), c.Param("memberId"), q.toFilter())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) getBlocker(c *gin.Context) {
	blocker, err := h.svc.GetBlocker(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocker)
}

func (h *Handlers) updateBlocker(c *gin.Context) {
	var req updateBlockerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	actor := currentActor(c)

	blocker, err := h.svc.UpdateBlocker(c.Request.Context(), c.Param("id"), service.BlockerUpdate{
		Description:  req.Description,
		Category:     domain.BlockerCategory(req.Category),
		Severity:     domain.BlockerSeverity(req.Severity),
		Status:       domain.BlockerStatus(req.Status),
		ManagerNotes: req.ManagerNotes,
	}, actor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocker)
}
