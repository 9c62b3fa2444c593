package dashboard

import (
	"net/http"
	"time"

	"github.com/jekabolt/storefront-insights/internal/analytics"
	"github.com/jekabolt/storefront-insights/internal/dto"
)

// Analytics computes the aggregate stats for the requested date range.
// The range token defaults to "all"; amount and status filters are
// accepted too so the numbers can mirror a filtered order view.
func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	f, err := orderFilterFromQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	snap := s.snaps.Current()
	now := s.nowFn()
	all := scopeOrders(r, snap.Orders)
	filtered := analytics.FilterOrders(all, f, now)

	stats := analytics.Aggregate(filtered, snap.Products, f.Range, all, now)
	respondJSON(w, dto.ConvertAggregateStats(&stats))
}

type heatmapResponse struct {
	Days []dto.HeatmapDayResponse `json:"days"`
}

// Heatmap returns the gap-free daily activity grid for the last year.
func (s *Server) Heatmap(w http.ResponseWriter, r *http.Request) {
	orders := scopeOrders(r, s.snaps.Current().Orders)
	grid := analytics.BuildHeatmap(orders, s.nowFn(), analytics.DefaultHeatmapSpanDays)
	respondJSON(w, heatmapResponse{Days: dto.ConvertHeatmap(grid)})
}

type trendResponse struct {
	Buckets []dto.TrendBucketResponse `json:"buckets"`
}

// Trend returns the revenue series for the requested range: 24 hourly
// buckets for "today", one bucket per day otherwise.
func (s *Server) Trend(w http.ResponseWriter, r *http.Request) {
	f, err := orderFilterFromQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	now := s.nowFn()
	orders := scopeOrders(r, s.snaps.Current().Orders)
	filtered := analytics.FilterOrders(orders, f, now)
	rng := analytics.ResolveRange(f.Range, now, f.Custom)

	buckets := analytics.BuildTrend(filtered, f.Range, rng, now)
	respondJSON(w, trendResponse{Buckets: dto.ConvertTrend(buckets)})
}

type refreshResponse struct {
	RefreshedAt time.Time `json:"refreshedAt"`
	Products    int       `json:"products"`
	Orders      int       `json:"orders"`
}

// Refresh forces an immediate snapshot fetch instead of waiting for the
// next poll tick.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := s.snaps.Refresh(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	snap := s.snaps.Current()
	respondJSON(w, refreshResponse{
		RefreshedAt: snap.FetchedAt,
		Products:    len(snap.Products),
		Orders:      len(snap.Orders),
	})
}
