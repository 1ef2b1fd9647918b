// Package orchestrator implements the context builder: it loads a snapshot,
// runs the independent context-analysis vectors concurrently, generates
// candidate recommendations per location/type pair, merges everything into
// one report and projects it down to the caller's tier.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/facilityiq/facilityiq-ai/internal/analysis"
	"github.com/facilityiq/facilityiq-ai/internal/cache"
	"github.com/facilityiq/facilityiq-ai/internal/config"
	"github.com/facilityiq/facilityiq-ai/internal/estimator"
	"github.com/facilityiq/facilityiq-ai/internal/insight"
	"github.com/facilityiq/facilityiq-ai/internal/metrics"
	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/recommend"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
	"github.com/facilityiq/facilityiq-ai/internal/tier"
	"github.com/facilityiq/facilityiq-ai/pkg/types"
)

// Builder orchestrates one analysis cycle.
type Builder struct {
	loader     snapshot.Loader
	history    snapshot.HistoryProvider
	baselines  snapshot.BaselineProvider
	escalation estimator.EscalationEstimator
	cfg        *config.Config
	logger     *zap.Logger
	histCache  *cache.Cache
}

// New creates a context builder. The history cache is optional; pass nil to
// query the history provider directly.
func New(
	loader snapshot.Loader,
	history snapshot.HistoryProvider,
	baselines snapshot.BaselineProvider,
	escalation estimator.EscalationEstimator,
	cfg *config.Config,
	logger *zap.Logger,
) *Builder {
	b := &Builder{
		loader:     loader,
		history:    history,
		baselines:  baselines,
		escalation: escalation,
		cfg:        cfg,
		logger:     logger,
	}
	if cfg.Cache.Enabled {
		b.histCache = cache.New(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxEntries)
	}
	return b
}

// BuildReport runs a full analysis cycle and projects the result for a tier.
func (b *Builder) BuildReport(ctx context.Context, t tier.Tier) (types.AnalysisReport, error) {
	caps, err := tier.Capabilities(t)
	if err != nil {
		return types.AnalysisReport{}, err
	}

	snap, err := b.loader.LoadSnapshot(ctx)
	if err != nil {
		return types.AnalysisReport{}, fmt.Errorf("loading snapshot: %w", err)
	}
	metrics.SnapshotEntities.WithLabelValues("employees").Set(float64(len(snap.Employees())))
	metrics.SnapshotEntities.WithLabelValues("locations").Set(float64(len(snap.Locations())))
	metrics.SnapshotEntities.WithLabelValues("work_orders").Set(float64(len(snap.WorkOrders())))
	metrics.SnapshotEntities.WithLabelValues("alerts").Set(float64(len(snap.Alerts())))

	report := b.analyze(ctx, snap)

	recs, impacts, err := b.recommendAll(ctx, snap)
	if err != nil {
		return types.AnalysisReport{}, err
	}
	report.Recommendations = recs
	report.Impacts = impacts

	summary := insight.Summarize(recs)
	report.Summary = &summary

	b.logger.Info("analysis cycle complete",
		zap.Int("work_orders", len(snap.WorkOrders())),
		zap.Int("conflicts", len(report.Conflicts)),
		zap.Int("recommendations", len(recs)),
		zap.String("tier", string(t)),
	)
	return tier.Project(report, caps), nil
}

// analyze runs the context-analysis vectors. They have no data dependency on
// each other and run concurrently over the shared read-only snapshot.
func (b *Builder) analyze(ctx context.Context, snap *snapshot.Snapshot) types.AnalysisReport {
	analyzer := analysis.NewAnalyzer(snap,
		analysis.WithWorkdayHours(b.cfg.Analysis.WorkdayHours),
		analysis.WithImbalanceThreshold(b.cfg.Analysis.ImbalanceThreshold),
		analysis.WithTravelCosts(b.cfg.Analysis.BuildingTravelMinutes, b.cfg.Analysis.FloorTravelMinutes),
	)
	orders := snap.WorkOrders()

	var report types.AnalysisReport
	var wg sync.WaitGroup
	run := func(vector string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			fn()
			metrics.AnalysisDuration.WithLabelValues(vector).Observe(time.Since(start).Seconds())
			metrics.AnalysesTotal.WithLabelValues(vector, "ok").Inc()
		}()
	}

	run("workload", func() {
		w := analyzer.AnalyzeWorkload(ctx, orders)
		report.Workload = &w
	})
	run("conflicts", func() {
		report.Conflicts = analyzer.DetectConflicts(ctx, orders)
		for _, c := range report.Conflicts {
			metrics.ConflictsDetected.WithLabelValues(string(c.Type)).Inc()
		}
	})
	run("alerts", func() {
		a := analyzer.AnalyzeAlertImpact(ctx, orders)
		report.AlertImpact = &a
	})
	run("skills", func() {
		report.Skills = analyzer.AnalyzeSkillMatching(ctx, orders)
	})
	run("cost", func() {
		c := analyzer.AnalyzeCostEfficiency(ctx, orders)
		report.Cost = &c
	})
	run("location", func() {
		l := analyzer.AnalyzeLocationEfficiency(ctx, orders)
		report.Location = &l
	})
	run("performance", func() {
		p := analyzer.AnalyzePerformance(ctx, orders)
		report.Performance = &p
	})
	run("predictive", func() {
		report.Predictive = analyzer.PredictInsights(ctx, orders)
	})
	wg.Wait()
	return report
}

// recommendAll generates candidate recommendations for every candidate
// location/type pair and estimates their business impact.
func (b *Builder) recommendAll(ctx context.Context, snap *snapshot.Snapshot) ([]models.TaskRecommendation, map[string]recommend.BusinessImpact, error) {
	history := b.history
	if b.histCache != nil {
		history = &cachingHistory{inner: b.history, cache: b.histCache}
	}
	analyzer := recommend.NewAnalyzer(snap, history, b.baselines, b.escalation,
		recommend.WithLookbackDays(b.cfg.Analysis.LookbackDays),
		recommend.WithVarianceThreshold(b.cfg.Analysis.VarianceThreshold),
		recommend.WithTriggerThreshold(b.cfg.Analysis.TriggerThreshold),
	)

	var recs []models.TaskRecommendation
	impacts := make(map[string]recommend.BusinessImpact)
	for _, pair := range candidatePairs(snap) {
		generated, err := analyzer.Generate(ctx, pair.locationID, pair.workOrderType)
		if err != nil {
			return nil, nil, fmt.Errorf("generating recommendations for %s/%s: %w",
				pair.locationID, pair.workOrderType, err)
		}
		for _, rec := range generated {
			metrics.RecommendationsTotal.WithLabelValues(string(rec.Source), string(rec.Priority)).Inc()

			degradation := 0.0
			if rec.Source == models.SourceMetricDriven {
				d, err := analyzer.AnalyzeDegradation(ctx, pair.locationID, pair.workOrderType)
				if err != nil {
					return nil, nil, err
				}
				degradation = d.DegradationScore
			}
			impact, err := analyzer.EstimateImpact(ctx, rec, degradation)
			if err != nil {
				b.logger.Warn("skipping impact estimate", zap.String("recommendation", rec.ID), zap.Error(err))
				continue
			}
			impacts[rec.ID] = impact
			recs = append(recs, rec)
		}
	}
	return recs, impacts, nil
}

type pair struct {
	locationID    string
	workOrderType string
}

// candidatePairs derives the location/type pairs worth analyzing: every pair
// seen on current work orders, plus an inspection pass for alerting
// locations with no scheduled work.
func candidatePairs(snap *snapshot.Snapshot) []pair {
	seen := make(map[pair]struct{})
	var pairs []pair
	add := func(p pair) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}

	for _, w := range snap.WorkOrders() {
		add(pair{locationID: w.LocationID, workOrderType: w.Type})
	}
	for _, a := range snap.ActiveAlerts() {
		if len(snap.WorkOrdersForLocation(a.LocationID)) == 0 {
			add(pair{locationID: a.LocationID, workOrderType: "inspection"})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].locationID != pairs[j].locationID {
			return pairs[i].locationID < pairs[j].locationID
		}
		return pairs[i].workOrderType < pairs[j].workOrderType
	})
	return pairs
}

// cachingHistory memoizes completion-history queries for the cache TTL.
type cachingHistory struct {
	inner snapshot.HistoryProvider
	cache *cache.Cache
}

func (c *cachingHistory) CompletionHistory(ctx context.Context, locationID, workOrderType string, lookback time.Duration) ([]models.CompletionRecord, error) {
	key := fmt.Sprintf("%s|%s|%d", locationID, workOrderType, int64(lookback.Seconds()))
	if v, ok := c.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return v.([]models.CompletionRecord), nil
	}
	metrics.CacheMisses.Inc()
	records, err := c.inner.CompletionHistory(ctx, locationID, workOrderType, lookback)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, records)
	return records, nil
}
