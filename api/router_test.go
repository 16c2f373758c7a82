package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-agents/api/i"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})
}

func TestRouterHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen []string
	router := NewRouter(Config{
		BaseURL:     "/api",
		Controllers: []i.Controller{pingController{}},
		Middlewares: []gin.HandlerFunc{func(ctx *gin.Context) {
			seen = append(seen, ctx.FullPath())
			ctx.Next()
		}},
	})
	handler := router.Handler()

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "versioned route", path: "/api/v1/ping", status: http.StatusOK},
		{name: "missing version", path: "/api/ping", status: http.StatusNotFound},
		{name: "unknown route", path: "/api/v1/pong", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}

	assert.Equal(t, []string{"/api/v1/ping"}, seen)
}
