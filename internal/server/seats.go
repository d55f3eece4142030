package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/metricdeck/insights/internal/analytics"
	seatsdomain "github.com/metricdeck/insights/internal/seats/domain"
	seatservice "github.com/metricdeck/insights/internal/seats/service"
	"go.uber.org/zap"
)

type seatReportResponse struct {
	ReportID    snowflake.ID `json:"report_id"`
	GeneratedAt time.Time    `json:"generated_at"`

	Rows []seatsdomain.Row `json:"rows"`

	Overview      analytics.SeatOverview    `json:"overview"`
	TeamSummaries []analytics.TeamSummary   `json:"team_summaries"`
	Timeline      []analytics.ActivityPoint `json:"timeline"`
}

// SeatReport flattens a seat payload and returns the filtered table with its
// derived views.
func (s *Server) SeatReport(c *gin.Context) {
	table, rows, err := s.flattenSeatRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, seatReportResponse{
		ReportID:      table.ReportID,
		GeneratedAt:   table.GeneratedAt,
		Rows:          rows,
		Overview:      analytics.SeatsOverview(table.TotalSeats, rows),
		TeamSummaries: analytics.TeamSummaries(rows),
		Timeline:      analytics.ActivityTimeline(rows),
	})
}

// SeatExport streams the seat detail view as CSV with the fixed human
// column order.
func (s *Server) SeatExport(c *gin.Context) {
	_, rows, err := s.flattenSeatRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="seat_report.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := seatservice.WriteDetailCSV(c.Writer, rows); err != nil {
		s.log.Error("seat csv export failed", zap.Error(err))
	}
}

// flattenSeatRequest runs the seat pipeline for a request body and applies
// the optional created-at range and team filters.
func (s *Server) flattenSeatRequest(c *gin.Context) (*seatsdomain.Table, []seatsdomain.Row, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, nil, err
	}

	start, end, err := dateRangeFromQuery(c)
	if err != nil {
		return nil, nil, err
	}

	table, err := s.seatsvc.Flatten(c.Request.Context(), raw)
	if err != nil {
		return nil, nil, err
	}

	rows := analytics.FilterSeatsByCreated(table.Rows, start, end)
	if team := strings.TrimSpace(c.Query("team")); team != "" {
		rows = analytics.FilterSeatsByTeam(rows, team)
	}
	return table, rows, nil
}
