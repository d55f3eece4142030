package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/metricdeck/insights/internal/cache"
	"github.com/metricdeck/insights/internal/clock"
	"github.com/metricdeck/insights/internal/config"
	obsmetrics "github.com/metricdeck/insights/internal/observability/metrics"
	"github.com/metricdeck/insights/internal/usage/domain"
	"github.com/metricdeck/insights/pkg/jsonx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const metricsDomain = "usage"

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

	memo *cache.Memoizer[flatTables]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:     p.Log.Named("usage.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
		memo:    cache.NewMemoizer[flatTables](p.Cfg.FlattenCacheMaxEntries, p.Cfg.FlattenCacheTTL),
	}
}

// flatTables is the memoized, purely input-derived part of a report. The
// report stamp (ID, generated-at) is added per call so cached results stay
// content-addressed.
type flatTables struct {
	summary     []domain.SummaryRow
	chat        []domain.ChatRow
	completions []domain.CompletionRow
}

func (s *Service) Flatten(ctx context.Context, raw []byte) (*domain.Tables, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tables, hit, err := s.memo.Do(raw, func() (flatTables, error) {
		records, err := decodeRecords(raw)
		if err != nil {
			return flatTables{}, err
		}
		return flattenRecords(records)
	})
	s.metrics.CacheResult(metricsDomain, hit)
	if err != nil {
		s.metrics.FlattenError(metricsDomain, errorKind(err))
		s.log.Warn("usage flatten failed", zap.Error(err))
		return nil, err
	}

	if !hit {
		s.metrics.ReportFlattened(metricsDomain)
		s.metrics.RowsProduced(metricsDomain, "summary", len(tables.summary))
		s.metrics.RowsProduced(metricsDomain, "chat", len(tables.chat))
		s.metrics.RowsProduced(metricsDomain, "completions", len(tables.completions))
	}

	return &domain.Tables{
		ReportID:    s.genID.Generate(),
		GeneratedAt: s.clock.Now(),
		Summary:     tables.summary,
		Chat:        tables.chat,
		Completions: tables.completions,
	}, nil
}

func decodeRecords(raw []byte) ([]domain.Record, error) {
	var records []domain.Record
	if err := jsonx.Decode(raw, &records); err != nil {
		switch {
		case errors.Is(err, jsonx.ErrSyntax):
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidShape, err)
		}
	}
	return records, nil
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
