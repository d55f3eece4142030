package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/metricdeck/insights/internal/clock"
	"github.com/metricdeck/insights/internal/config"
	obsmetrics "github.com/metricdeck/insights/internal/observability/metrics"
	seatservice "github.com/metricdeck/insights/internal/seats/service"
	usageservice "github.com/metricdeck/insights/internal/usage/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		FlattenCacheTTL:        time.Minute,
		FlattenCacheMaxEntries: 8,
	}
	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin: engine,
		Cfg: cfg,
		Log: log,
		Usagesvc: usageservice.NewService(usageservice.ServiceParam{
			Cfg: cfg, Log: log, GenID: node, Clock: clk,
		}),
		Seatsvc: seatservice.NewService(seatservice.ServiceParam{
			Cfg: cfg, Log: log, GenID: node, Clock: clk,
		}),
	})
	srv.RegisterAPIRoutes()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

const usagePayload = `[
	{
		"date": "2024-01-01",
		"total_active_users": 100,
		"total_engaged_users": 40,
		"copilot_ide_chat": {
			"total_engaged_users": 20,
			"editors": [{
				"name": "vscode",
				"models": [{"name": "gpt-4", "total_chats": 50, "total_engaged_users": 20}]
			}]
		}
	},
	{
		"date": "2024-01-02",
		"total_active_users": 300,
		"total_engaged_users": 180
	}
]`

const seatPayload = `{
	"total_seats": 5,
	"seats": [
		{
			"created_at": "2024-01-10T00:00:00Z",
			"updated_at": "2024-01-15T00:00:00Z",
			"last_activity_at": "2024-02-01T09:30:00Z",
			"assigning_team": {"id": 1, "name": "core"},
			"assignee": {"id": 7, "login": "octocat", "type": "User"},
			"last_activity_editor": "vscode",
			"plan_type": "business"
		},
		{
			"created_at": "2024-01-12T00:00:00Z",
			"updated_at": "2024-01-12T00:00:00Z",
			"last_activity_at": null,
			"plan_type": "business"
		}
	]
}`

func TestUsageReportEndpoint(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/usage/reports", usagePayload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ReportID    string `json:"report_id"`
		GeneratedAt string `json:"generated_at"`
		Summary     []struct {
			TotalActiveUsers int64 `json:"total_active_users"`
		} `json:"summary"`
		Overview map[string]*float64 `json:"overview"`
		Heatmap  struct {
			Days   []string    `json:"days"`
			Values [][]float64 `json:"values"`
		} `json:"heatmap"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ReportID)
	require.Len(t, resp.Summary, 2)
	assert.Equal(t, int64(100), resp.Summary[0].TotalActiveUsers)

	total := resp.Overview["total_active_users"]
	require.NotNil(t, total)
	assert.InDelta(t, 400.0, *total, 1e-9)

	assert.Len(t, resp.Heatmap.Days, 7)
	assert.Len(t, resp.Heatmap.Values, 7)
}

func TestUsageReportDateFilter(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/usage/reports?start=2024-01-02&end=2024-01-02", usagePayload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary []json.RawMessage `json:"summary"`
		Chat    []json.RawMessage `json:"chat"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Summary, 1)
	assert.Empty(t, resp.Chat)
}

func TestUsageReportErrorTaxonomy(t *testing.T) {
	engine := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantType string
	}{
		{"malformed json", `[{"date": `, "invalid_json"},
		{"wrong shape", `{"date": "2024-01-01"}`, "invalid_schema"},
		{"bad date", `[{"date": "01/02/2024", "total_active_users": 1}]`, "invalid_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPost, "/v1/usage/reports", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Error struct {
					Type string `json:"type"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

func TestUsageReportBadQueryParams(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/usage/reports?start=yesterday", usagePayload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "start", resp.Error.Errors[0].Field)

	w = doJSON(t, engine, http.MethodPost, "/v1/usage/reports?start=2024-01-05&end=2024-01-01", usagePayload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "invalid_range", resp.Error.Errors[0].Code)
}

func TestUsageMetricEndpoint(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/usage/metrics?name=total_chats", usagePayload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name  string   `json:"name"`
		Value *float64 `json:"value"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "total_chats", resp.Name)
	require.NotNil(t, resp.Value)
	assert.InDelta(t, 50.0, *resp.Value, 1e-9)
}

func TestUsageMetricValidation(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/usage/metrics", usagePayload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/usage/metrics?name=bogus", usagePayload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestSeatReportEndpoint(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/seats/reports", seatPayload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows     []json.RawMessage `json:"rows"`
		Overview struct {
			TotalAvailableSeats int64 `json:"total_available_seats"`
			AssignedSeats       int64 `json:"assigned_seats"`
			ActiveUsers         int64 `json:"active_users"`
			UnassignedSeats     int64 `json:"unassigned_seats"`
		} `json:"overview"`
		TeamSummaries []struct {
			Team       string `json:"team"`
			TotalUsers int64  `json:"total_users"`
		} `json:"team_summaries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, int64(5), resp.Overview.TotalAvailableSeats)
	assert.Equal(t, int64(2), resp.Overview.AssignedSeats)
	assert.Equal(t, int64(1), resp.Overview.ActiveUsers)
	assert.Equal(t, int64(3), resp.Overview.UnassignedSeats)

	require.Len(t, resp.TeamSummaries, 1)
	assert.Equal(t, "core", resp.TeamSummaries[0].Team)
	assert.Equal(t, int64(1), resp.TeamSummaries[0].TotalUsers)
}

func TestSeatReportTeamFilter(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/seats/reports?team=core", seatPayload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows []json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Rows, 1)
}

func TestSeatExportEndpoint(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/seats/export", seatPayload)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "seat_report.csv")

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "User,Team,Created Date,Last Activity,Last Editor,Plan Type", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "octocat,core,"))
}

func TestSeatReportErrorTaxonomy(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/seats/reports", `{"total_seats": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_json", resp.Error.Type)

	w = doJSON(t, engine, http.MethodPost, "/v1/seats/reports",
		`{"total_seats": 1, "seats": [{"created_at": "not a time", "plan_type": "business"}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_date", resp.Error.Type)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	engine := NewEngine(
		config.Config{CORSOrigins: []string{"http://localhost:5173"}},
		zap.NewNop(),
		obsmetrics.NewHTTPMetrics(reg),
		reg,
	)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
