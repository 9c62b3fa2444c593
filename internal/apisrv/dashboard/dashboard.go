// Package dashboard exposes the analytics API over the in-memory
// snapshot: catalog and order views, aggregate stats, the activity
// heatmap and the revenue trend. Handlers never touch the upstream
// shop directly; they read whatever the snapshot store currently holds.
package dashboard

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jekabolt/storefront-insights/internal/apisrv/auth"
	"github.com/jekabolt/storefront-insights/internal/entity"
	"github.com/jekabolt/storefront-insights/internal/snapshot"
)

type Server struct {
	snaps *snapshot.Store
	nowFn func() time.Time
}

func New(snaps *snapshot.Store) *Server {
	return &Server{
		snaps: snaps,
		nowFn: time.Now,
	}
}

// scopeOrders narrows the order book for customer tokens, which only
// ever see their own orders. Admin tokens see everything.
func scopeOrders(r *http.Request, orders []entity.Order) []entity.Order {
	if auth.TokenRole(r) != auth.RoleCustomer {
		return orders
	}
	email := strings.ToLower(auth.TokenSubject(r))
	own := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if strings.ToLower(o.CustomerEmail) == email {
			own = append(own, o)
		}
	}
	return own
}

func orderFilterFromQuery(q url.Values) (entity.OrderFilter, error) {
	f := entity.OrderFilter{
		Search: q.Get("search"),
		Range:  entity.RangeAll,
	}

	if status := strings.ToUpper(strings.TrimSpace(q.Get("status"))); status != "" {
		if status != "ALL" && !entity.IsValidOrderStatus(status) {
			return f, fmt.Errorf("unknown status %q", q.Get("status"))
		}
		f.Status = status
	}

	if token := strings.ToLower(strings.TrimSpace(q.Get("dateFilter"))); token != "" {
		if !entity.IsValidRangeToken(token) {
			return f, fmt.Errorf("unknown dateFilter %q", q.Get("dateFilter"))
		}
		f.Range = entity.RangeToken(token)
	}
	if f.Range == entity.RangeCustom {
		custom, err := customRangeFromQuery(q)
		if err != nil {
			return f, err
		}
		f.Custom = custom
	}

	if bucket := strings.ToUpper(strings.TrimSpace(q.Get("amountFilter"))); bucket != "" {
		if !entity.IsValidAmountBucket(bucket) {
			return f, fmt.Errorf("unknown amountFilter %q", q.Get("amountFilter"))
		}
		f.Amount = entity.AmountBucket(bucket)
	}
	return f, nil
}

func customRangeFromQuery(q url.Values) (*entity.TimeRange, error) {
	var tr entity.TimeRange
	if raw := q.Get("startDate"); raw != "" {
		from, _, err := parseBound(raw)
		if err != nil {
			return nil, fmt.Errorf("bad startDate %q", raw)
		}
		tr.From = from
	}
	if raw := q.Get("endDate"); raw != "" {
		to, dateOnly, err := parseBound(raw)
		if err != nil {
			return nil, fmt.Errorf("bad endDate %q", raw)
		}
		if dateOnly {
			// A bare end date means the whole of that day.
			to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		tr.To = to
	}
	return &tr, nil
}

func parseBound(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err = time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, err
}

func sortSpecFromQuery(q url.Values, valid func(string) bool, def entity.SortSpec) (entity.SortSpec, error) {
	spec := def
	if field := strings.TrimSpace(q.Get("sortBy")); field != "" {
		if !valid(field) {
			return spec, fmt.Errorf("unknown sortBy %q", field)
		}
		spec.Field = entity.SortField(field)
	}
	switch strings.ToLower(strings.TrimSpace(q.Get("sortOrder"))) {
	case "":
	case "asc":
		spec.Order = entity.Ascending
	case "desc":
		spec.Order = entity.Descending
	default:
		return spec, fmt.Errorf("unknown sortOrder %q", q.Get("sortOrder"))
	}
	return spec, nil
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("write response failed", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
