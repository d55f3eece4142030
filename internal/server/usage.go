package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/metricdeck/insights/internal/analytics"
	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
)

type usageReportResponse struct {
	ReportID    snowflake.ID `json:"report_id"`
	GeneratedAt time.Time    `json:"generated_at"`

	Summary     []usagedomain.SummaryRow    `json:"summary"`
	Chat        []usagedomain.ChatRow       `json:"chat"`
	Completions []usagedomain.CompletionRow `json:"completions"`

	Overview                 map[string]analytics.Rate             `json:"overview"`
	ChatByEditor             []analytics.EditorChatSummary         `json:"chat_by_editor"`
	CompletionsByLanguage    []analytics.LanguageCompletionSummary `json:"completions_by_language"`
	AcceptanceRateByLanguage []analytics.LanguageRate              `json:"acceptance_rate_by_language"`
	DailyEngagement          []analytics.DailyEngagementRow        `json:"daily_engagement"`
	Heatmap                  analytics.Heatmap                     `json:"heatmap"`
}

// UsageReport flattens a raw usage payload and returns the tables plus every
// derived view, all computed over the same optional date range.
func (s *Server) UsageReport(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start, end, err := dateRangeFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tables, err := s.usagesvc.Flatten(c.Request.Context(), raw)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filtered := analytics.FilterTables(tables, start, end)

	c.JSON(http.StatusOK, usageReportResponse{
		ReportID:                 filtered.ReportID,
		GeneratedAt:              filtered.GeneratedAt,
		Summary:                  filtered.Summary,
		Chat:                     filtered.Chat,
		Completions:              filtered.Completions,
		Overview:                 analytics.Overview(filtered),
		ChatByEditor:             analytics.ChatByEditor(filtered.Chat),
		CompletionsByLanguage:    analytics.CompletionsByLanguage(filtered.Completions),
		AcceptanceRateByLanguage: analytics.AcceptanceRateByLanguage(filtered.Completions),
		DailyEngagement:          analytics.DailyEngagement(filtered.Summary),
		Heatmap:                  analytics.ActivityHeatmap(filtered.Summary),
	})
}

type usageMetricResponse struct {
	Name  string         `json:"name"`
	Value analytics.Rate `json:"value"`
}

// UsageMetric returns one named metric for a payload.
func (s *Server) UsageMetric(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		AbortWithError(c, newValidationError("name", "required", "metric name is required"))
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start, end, err := dateRangeFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tables, err := s.usagesvc.Flatten(c.Request.Context(), raw)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	value, err := analytics.Metric(name, analytics.FilterTables(tables, start, end))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, usageMetricResponse{Name: name, Value: value})
}
