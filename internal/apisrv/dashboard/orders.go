package dashboard

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jekabolt/storefront-insights/internal/analytics"
	"github.com/jekabolt/storefront-insights/internal/dto"
	"github.com/jekabolt/storefront-insights/internal/entity"
)

type ordersResponse struct {
	Orders []dto.OrderResponse `json:"orders"`
	Total  int                 `json:"total"`
}

// Orders lists orders with the full filter set: text search, status,
// date range (including custom bounds), amount bucket and sorting.
// Defaults to newest first. Customer tokens only see their own orders.
func (s *Server) Orders(w http.ResponseWriter, r *http.Request) {
	filtered, err := s.filteredOrders(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, ordersResponse{
		Orders: dto.ConvertOrders(filtered),
		Total:  len(filtered),
	})
}

// ExportOrders streams the current filtered order view as CSV. The same
// query parameters as Orders apply, so what you see is what you export.
func (s *Server) ExportOrders(w http.ResponseWriter, r *http.Request) {
	filtered, err := s.filteredOrders(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.csv", uuid.New().String())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"Order ID", "Customer Name", "Email", "Status",
		"Total Amount", "Order Date", "Shipping Address", "Items",
	})
	for i := range filtered {
		o := &filtered[i]
		date := ""
		if !o.OrderDate.IsZero() {
			date = o.OrderDate.UTC().Format(time.RFC3339)
		}
		_ = cw.Write([]string{
			strconv.Itoa(o.ID),
			o.CustomerName,
			o.CustomerEmail,
			o.Status.Label(),
			o.TotalAmountDecimal().StringFixed(2),
			date,
			o.ShippingAddress,
			strconv.Itoa(len(o.Items)),
		})
	}
	cw.Flush()
}

func (s *Server) filteredOrders(r *http.Request) ([]entity.Order, error) {
	q := r.URL.Query()

	f, err := orderFilterFromQuery(q)
	if err != nil {
		return nil, err
	}
	spec, err := sortSpecFromQuery(q, entity.IsValidOrderSortField, entity.SortSpec{
		Field: entity.SortByOrderDate,
		Order: entity.Descending,
	})
	if err != nil {
		return nil, err
	}

	orders := scopeOrders(r, s.snaps.Current().Orders)
	filtered := analytics.FilterOrders(orders, f, s.nowFn())
	return analytics.SortOrders(filtered, spec), nil
}
