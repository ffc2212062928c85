package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saemcare/saem-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReport handles POST /reports?elder_id=...&year=...&week_number=...
func (rh *ReportHandler) CreateReport(c *gin.Context) {
	elderID, err := uuid.Parse(c.Query("elder_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ELDER_ID", fmt.Errorf("elder_id must be a uuid"))
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_YEAR", fmt.Errorf("year must be an integer"))
		return
	}
	weekNumber, err := strconv.Atoi(c.Query("week_number"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_WEEK", fmt.Errorf("week_number must be an integer"))
		return
	}

	report, err := rh.reportService.CreateReport(c.Request.Context(), elderID, year, weekNumber)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, report)
}

// GetReports handles GET /reports?elder_id=...
func (rh *ReportHandler) GetReports(c *gin.Context) {
	elderID, err := uuid.Parse(c.Query("elder_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ELDER_ID", fmt.Errorf("elder_id must be a uuid"))
		return
	}

	reports, err := rh.reportService.GetReports(c.Request.Context(), elderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reports)
}
