package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productJSON = `{
	"id": 1,
	"title": "Fjallraven Backpack",
	"price": 109.95,
	"description": "Fits 15 inch laptops",
	"category": "men's clothing",
	"image": "https://example.com/1.jpg",
	"rating": {"rate": 3.9, "count": 120}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestProducts(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte("[" + productJSON + "]"))
	})

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Fjallraven Backpack", products[0].Title)
	assert.Equal(t, "109.95", products[0].Price.StringFixed(2))
	assert.Equal(t, 3.9, products[0].Rating.Rate)
}

func TestProductByID(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/1", r.URL.Path)
		w.Write([]byte(productJSON))
	})

	product, err := client.Product(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "men's clothing", product.Category)
}

func TestCategories(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Write([]byte(`["electronics","jewelery"]`))
	})

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery"}, categories)
}

func TestProductsByCategoryEscapesPath(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/men's clothing", r.URL.Path)
		w.Write([]byte("[" + productJSON + "]"))
	})

	products, err := client.ProductsByCategory(context.Background(), "men's clothing")
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestServerErrorPropagates(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Products(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestMalformedBodyPropagates(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Products(context.Background())
	require.Error(t, err)
}

func TestUnreachableHost(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond)

	_, err := client.Products(context.Background())
	require.Error(t, err)
}
