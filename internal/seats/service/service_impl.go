package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/metricdeck/insights/internal/cache"
	"github.com/metricdeck/insights/internal/clock"
	"github.com/metricdeck/insights/internal/config"
	obsmetrics "github.com/metricdeck/insights/internal/observability/metrics"
	"github.com/metricdeck/insights/internal/seats/domain"
	"github.com/metricdeck/insights/pkg/jsonx"
	"github.com/metricdeck/insights/pkg/timeparse"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const metricsDomain = "seats"

type ServiceParam struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Metrics *obsmetrics.PipelineMetrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *obsmetrics.PipelineMetrics

	memo *cache.Memoizer[flatSeats]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:     p.Log.Named("seats.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
		memo:    cache.NewMemoizer[flatSeats](p.Cfg.FlattenCacheMaxEntries, p.Cfg.FlattenCacheTTL),
	}
}

type flatSeats struct {
	totalSeats int64
	rows       []domain.Row
}

func (s *Service) Flatten(ctx context.Context, raw []byte) (*domain.Table, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	flat, hit, err := s.memo.Do(raw, func() (flatSeats, error) {
		payload, err := decodePayload(raw)
		if err != nil {
			return flatSeats{}, err
		}
		rows, err := flattenSeats(payload)
		if err != nil {
			return flatSeats{}, err
		}
		return flatSeats{totalSeats: payload.TotalSeats, rows: rows}, nil
	})
	s.metrics.CacheResult(metricsDomain, hit)
	if err != nil {
		s.metrics.FlattenError(metricsDomain, errorKind(err))
		s.log.Warn("seat flatten failed", zap.Error(err))
		return nil, err
	}

	if !hit {
		s.metrics.ReportFlattened(metricsDomain)
		s.metrics.RowsProduced(metricsDomain, "seats", len(flat.rows))
	}

	return &domain.Table{
		ReportID:    s.genID.Generate(),
		GeneratedAt: s.clock.Now(),
		TotalSeats:  flat.totalSeats,
		Rows:        flat.rows,
	}, nil
}

func decodePayload(raw []byte) (domain.Payload, error) {
	var payload domain.Payload
	if err := jsonx.Decode(raw, &payload); err != nil {
		switch {
		case errors.Is(err, jsonx.ErrSyntax):
			return domain.Payload{}, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
		default:
			return domain.Payload{}, fmt.Errorf("%w: %v", domain.ErrInvalidShape, err)
		}
	}
	return payload, nil
}

// flattenSeats derives the team/user columns and broadcasts the root-level
// seat total to every row. An absent nested object leaves its derived
// columns nil; a timestamp that is present but unparseable aborts the batch.
func flattenSeats(payload domain.Payload) ([]domain.Row, error) {
	rows := make([]domain.Row, 0, len(payload.Seats))
	for i, seat := range payload.Seats {
		createdAt, err := timeparse.Parse(seat.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: seat %d created_at: %v", domain.ErrInvalidDate, i, err)
		}

		updatedAt, err := optionalTime(seat.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: seat %d updated_at: %v", domain.ErrInvalidDate, i, err)
		}

		var lastActivity *time.Time
		if seat.LastActivityAt != nil && *seat.LastActivityAt != "" {
			t, err := timeparse.Parse(*seat.LastActivityAt)
			if err != nil {
				return nil, fmt.Errorf("%w: seat %d last_activity_at: %v", domain.ErrInvalidDate, i, err)
			}
			lastActivity = &t
		}

		row := domain.Row{
			CreatedAt:           createdAt,
			UpdatedAt:           updatedAt,
			LastActivityAt:      lastActivity,
			LastActivityEditor:  seat.LastActivityEditor,
			PlanType:            seat.PlanType,
			TotalAvailableSeats: payload.TotalSeats,
		}
		if team := seat.AssigningTeam; team != nil {
			row.TeamName = &team.Name
			row.TeamID = &team.ID
		}
		if assignee := seat.Assignee; assignee != nil {
			row.UserLogin = &assignee.Login
			row.UserType = &assignee.Type
			row.UserID = &assignee.ID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func optionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timeparse.Parse(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, domain.ErrInvalidShape):
		return "invalid_shape"
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	default:
		return "internal"
	}
}
