package router

import (
	"net/http"
	"testing"

	"campusmart/internal/delivery/http/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()

	e := echo.New()
	r := NewRouter(RouterParams{AuthMiddleware: &middleware.AuthMiddleware{}})
	r.RegisterRoutes(e)

	routes := make(map[string]bool)
	for _, route := range e.Routes() {
		routes[route.Method+" "+route.Path] = true
	}

	return routes
}

func TestRegisterRoutes_PublicSurface(t *testing.T) {
	routes := registeredRoutes(t)

	expected := []string{
		http.MethodPost + " /api/auth/user",
		http.MethodGet + " /api/auth/me",
		http.MethodGet + " /api/users/:id",
		http.MethodGet + " /api/shops",
		http.MethodPost + " /api/shops",
		http.MethodGet + " /api/shops/:id",
		http.MethodPatch + " /api/shops/:id",
		http.MethodGet + " /api/products",
		http.MethodGet + " /api/products/featured",
		http.MethodGet + " /api/products/:id",
		http.MethodGet + " /api/products/:id/reviews",
		http.MethodPost + " /api/orders",
		http.MethodGet + " /api/orders",
		http.MethodPatch + " /api/orders/:id/status",
		http.MethodGet + " /api/shop/orders",
		http.MethodGet + " /api/shop/stats",
		http.MethodGet + " /api/admin/stats",
		http.MethodGet + " /api/admin/shops/pending",
		http.MethodPost + " /api/reviews",
		http.MethodGet + " /api/payments/qr",
		http.MethodGet + " /health",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "missing route: %s", route)
	}
}

func TestRegisterRoutes_NoLegacyPaths(t *testing.T) {
	routes := registeredRoutes(t)

	for _, route := range []string{
		http.MethodPost + " /api/checkout",
		http.MethodPost + " /api/auth/sync",
		http.MethodGet + " /api/stats/shop",
		http.MethodGet + " /api/stats/admin",
		http.MethodGet + " /api/shops/pending",
	} {
		assert.False(t, routes[route], "unexpected route: %s", route)
	}
}
