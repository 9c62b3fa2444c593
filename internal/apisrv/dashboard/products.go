package dashboard

import (
	"net/http"

	"github.com/jekabolt/storefront-insights/internal/analytics"
	"github.com/jekabolt/storefront-insights/internal/dto"
	"github.com/jekabolt/storefront-insights/internal/entity"
)

type productsResponse struct {
	Products []dto.ProductResponse `json:"products"`
	Total    int                   `json:"total"`
}

// Products lists the catalog with text search, category prefix filter
// and sorting. Defaults to name ascending.
func (s *Server) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := entity.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	spec, err := sortSpecFromQuery(q, entity.IsValidProductSortField, entity.SortSpec{
		Field: entity.SortByName,
		Order: entity.Ascending,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	filtered := analytics.FilterProducts(s.snaps.Current().Products, f)
	sorted := analytics.SortProducts(filtered, spec)

	respondJSON(w, productsResponse{
		Products: dto.ConvertProducts(sorted),
		Total:    len(sorted),
	})
}
