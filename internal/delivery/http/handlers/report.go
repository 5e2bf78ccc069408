package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

type generateReportQuery struct {
	Period string `form:"period" binding:"omitempty,reportperiod"`
	Force  bool   `form:"force"`
}

func (q generateReportQuery) period() domain.ReportPeriod {
	if q.Period == "" {
		return domain.PeriodWeekly
	}
	return domain.ReportPeriod(q.Period)
}

func (h *Handlers) generateMyReport(c *gin.Context) {
	var q generateReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBadRequest(c, err)
		return
	}
	actor := currentActor(c)

	report, err := h.svc.GenerateIndividualReport(c.Request.Context(), actor.UID, q.period(), q.Force)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) generateMemberReport(c *gin.Context) {
	var q generateReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	report, err := h.svc.GenerateIndividualReport(c.Request.Context(), c.Param("memberId"), q.period(), q.Force)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) generateTeamReport(c *gin.Context) {
	var q generateReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	report, err := h.svc.GenerateTeamReport(c.Request.Context(), c.Param("teamName"), q.period(), q.Force)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) myReports(c *gin.Context) {
	actor := currentActor(c)

	reports, err := h.svc.ReportsForMember(c.Request.Context(), actor.UID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handlers) teamReports(c *gin.Context) {
	reports, err := h.svc.ReportsForTeam(c.Request.Context(), c.Param("teamName"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handlers) memberReports(c *gin.Context) {
	reports, err := h.svc.ReportsForMember(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handlers) getReport(c *gin.Context) {
	report, err := h.svc.ReportByUID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
