package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name     string
		url      string
		expected Pagination
	}{
		{"Defaults", "/", Pagination{Limit: 20, Offset: 0}},
		{"Explicit", "/?limit=50&offset=10", Pagination{Limit: 50, Offset: 10}},
		{"Clamped limit", "/?limit=5000", Pagination{Limit: 100, Offset: 0}},
		{"Negative values", "/?limit=-1&offset=-5", Pagination{Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, _ := app.Test(req)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expected, got)
		})
	}
}
