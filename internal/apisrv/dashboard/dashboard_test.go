package dashboard

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jekabolt/storefront-insights/internal/apisrv/auth"
	"github.com/jekabolt/storefront-insights/internal/dto"
	"github.com/jekabolt/storefront-insights/internal/entity"
	"github.com/jekabolt/storefront-insights/internal/snapshot"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type stubFetcher struct {
	snap *entity.Snapshot
	fail bool
}

func (f *stubFetcher) FetchSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	if f.fail {
		return nil, fmt.Errorf("upstream down")
	}
	return f.snap, nil
}

func testSnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		Products: []entity.Product{
			{ID: 1, Name: "Wireless Mouse", Category: "Electronics", Price: decimal.NewFromFloat(49.99), StockQuantity: 5},
			{ID: 2, Name: "Desk Lamp", Category: "Home", Price: decimal.NewFromInt(30), StockQuantity: 50},
			{ID: 3, Name: "Adapter", Category: "Home Electronics", Price: decimal.NewFromInt(15), StockQuantity: 2},
		},
		Orders: []entity.Order{
			{
				ID: 1, CustomerName: "Alice", CustomerEmail: "alice@example.com",
				OrderDate: testNow.Add(-2 * time.Hour), Status: entity.Pending,
				TotalAmount: decimal.NewFromInt(120),
			},
			{
				ID: 2, CustomerName: "Bob", CustomerEmail: "bob@example.com",
				OrderDate: testNow.AddDate(0, 0, -3), Status: entity.Shipped,
				TotalAmount: decimal.NewFromInt(750),
			},
			{
				ID: 3, CustomerName: "Alice", CustomerEmail: "alice@example.com",
				OrderDate: testNow.AddDate(0, 0, -30), Status: entity.Delivered,
				TotalAmount: decimal.NewFromInt(1600),
			},
		},
		FetchedAt: testNow,
	}
}

func newTestDashboard(t *testing.T, f *stubFetcher) *Server {
	t.Helper()
	store := snapshot.New(&snapshot.Config{}, f)
	require.NoError(t, store.Refresh(context.Background()))

	s := New(store)
	s.nowFn = func() time.Time { return testNow }
	return s
}

func get(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestProducts(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Products, "/api/products")
	require.Equal(t, http.StatusOK, w.Code)

	var resp productsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 3, resp.Total)
	// Default ordering is by name ascending.
	assert.Equal(t, "Adapter", resp.Products[0].Name)
}

func TestProductsCategoryPrefix(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Products, "/api/products?category=elec")
	require.Equal(t, http.StatusOK, w.Code)

	var resp productsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Wireless Mouse", resp.Products[0].Name)
}

func TestProductsBadSortField(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Products, "/api/products?sortBy=weight")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrdersDefaultNewestFirst(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Orders, "/api/orders")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ordersResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Orders[0].ID)
	assert.Equal(t, 3, resp.Orders[2].ID)
}

func TestOrdersFilters(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Orders, "/api/orders?status=SHIPPED&dateFilter=week&amountFilter=MEDIUM")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ordersResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 2, resp.Orders[0].ID)
	assert.Equal(t, "Shipped", resp.Orders[0].StatusLabel)
}

func TestOrdersCustomRange(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Orders, "/api/orders?dateFilter=custom&startDate=2024-05-10&endDate=2024-05-20")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ordersResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 3, resp.Orders[0].ID)
}

func TestOrdersBadParams(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	for _, target := range []string{
		"/api/orders?status=BOGUS",
		"/api/orders?dateFilter=fortnight",
		"/api/orders?amountFilter=HUGE",
		"/api/orders?sortBy=weight",
		"/api/orders?sortOrder=sideways",
		"/api/orders?dateFilter=custom&startDate=yesterday",
	} {
		w := get(s.Orders, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestOrdersCustomerScoped(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	authSrv, err := auth.New(&auth.Config{
		JWTSecret:                "test-secret",
		AdminPassword:            "pw",
		PasswordHasherIterations: 1000,
	})
	require.NoError(t, err)

	token, err := authSrv.MintToken("alice@example.com", auth.RoleCustomer)
	require.NoError(t, err)

	protected := authSrv.WithAuth(http.HandlerFunc(s.Orders))
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ordersResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 2, resp.Total)
	for _, o := range resp.Orders {
		assert.Equal(t, "alice@example.com", o.CustomerEmail)
	}
}

func TestExportOrdersCSV(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.ExportOrders, "/api/orders/export?status=PENDING")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders-")

	rows, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one pending order
	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "120.00", rows[1][4])
}

func TestAnalytics(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Analytics, "/api/analytics")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AggregateStatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "2470", resp.TotalRevenue.String())
	assert.Equal(t, 3, resp.TotalOrders)
	assert.Equal(t, 2, resp.TotalCustomers)
	assert.Equal(t, 3, resp.TotalProducts)
	// Products with stock below the threshold, scarcest first.
	require.Len(t, resp.LowStockProducts, 2)
	assert.Equal(t, "Adapter", resp.LowStockProducts[0].Name)
}

func TestAnalyticsRangeFilter(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Analytics, "/api/analytics?dateFilter=week")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AggregateStatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "870", resp.TotalRevenue.String())
	assert.Equal(t, 2, resp.TotalOrders)
}

func TestHeatmap(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Heatmap, "/api/analytics/heatmap")
	require.Equal(t, http.StatusOK, w.Code)

	var resp heatmapResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Days, 365)
	assert.Equal(t, testNow.Format("2006-01-02"), resp.Days[364].Date)
}

func TestTrendToday(t *testing.T) {
	s := newTestDashboard(t, &stubFetcher{snap: testSnapshot()})

	w := get(s.Trend, "/api/analytics/trend?dateFilter=today")
	require.Equal(t, http.StatusOK, w.Code)

	var resp trendResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Buckets, 24)
	assert.Equal(t, "10:00", resp.Buckets[10].Label)
	assert.Equal(t, 1, resp.Buckets[10].Orders)
}

func TestRefresh(t *testing.T) {
	f := &stubFetcher{snap: testSnapshot()}
	s := newTestDashboard(t, f)

	w := httptest.NewRecorder()
	s.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp refreshResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Products)
	assert.Equal(t, 3, resp.Orders)

	f.fail = true
	w = httptest.NewRecorder()
	s.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
