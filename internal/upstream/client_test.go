package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productsBody = `[{"id":1,"name":"Mouse","category":"Electronics","price":"49.99","stockQuantity":10}]`
	ordersBody   = `{"data":[{"id":5,"customerName":"Alice","customerEmail":"alice@example.com","orderDate":"2024-06-01T10:00:00Z","status":"pending","totalAmount":120}]}`
)

func upstreamStub(t *testing.T, productsStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/api/products"):
			w.WriteHeader(productsStatus)
			_, _ = w.Write([]byte(productsBody))
		case strings.HasSuffix(r.URL.Path, "/api/orders"):
			_, _ = w.Write([]byte(ordersBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFetchSnapshot(t *testing.T) {
	server := upstreamStub(t, http.StatusOK)
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL, Timeout: time.Second})

	snap, err := cli.FetchSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Products, 1)
	assert.Equal(t, "Mouse", snap.Products[0].Name)
	assert.Equal(t, "49.99", snap.Products[0].Price.String())

	// The orders endpoint wraps its payload in a data envelope.
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "alice@example.com", snap.Orders[0].CustomerEmail)
	assert.Equal(t, "120", snap.Orders[0].TotalAmount.String())
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestFetchSnapshotAllOrNothing(t *testing.T) {
	server := upstreamStub(t, http.StatusInternalServerError)
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL, Timeout: time.Second})

	snap, err := cli.FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.Contains(t, err.Error(), "products")
}

func TestFetchSnapshotAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/api/products") {
			gotAuth = r.Header.Get("Authorization")
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cli := New(&Config{BaseURL: server.URL, AuthToken: "secret-token", Timeout: time.Second})

	_, err := cli.FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestDecodeListEnvelopeAndBareArray(t *testing.T) {
	var out []int

	require.NoError(t, decodeList([]byte(`[1,2,3]`), &out))
	assert.Equal(t, []int{1, 2, 3}, out)

	out = nil
	require.NoError(t, decodeList([]byte(`{"data":[4,5]}`), &out))
	assert.Equal(t, []int{4, 5}, out)

	assert.Error(t, decodeList([]byte(`not json`), &out))
}
