package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "skrytki/internal/http"
	"skrytki/platform/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeConfig struct {
	origins  []string
	allowAll bool
	rate     float64
	burst    int
}

func (c fakeConfig) GetHTTPAddr() string         { return ":0" }
func (c fakeConfig) GetCORSAllowAll() bool       { return c.allowAll }
func (c fakeConfig) GetCORSOrigins() []string    { return c.origins }
func (c fakeConfig) GetSearchRateLimit() float64 { return c.rate }
func (c fakeConfig) GetSearchRateBurst() int     { return c.burst }

type fakeHealth struct{ err error }

func (h fakeHealth) Ping(context.Context) error { return h.err }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.GET("/search", ctx.SearchRateLimiter.RateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndReadiness(t *testing.T) {
	app := &apphttp.App{
		Config: fakeConfig{allowAll: true},
		Logger: logger.Discard(),
		Health: fakeHealth{err: errors.New("db down")},
	}
	engine := New(app)

	if rec := serve(engine, httptest.NewRequest(http.MethodGet, "/api/health", nil)); rec.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", rec.Code)
	}
	if rec := serve(engine, httptest.NewRequest(http.MethodGet, "/api/ready", nil)); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected ready 503 while the database is down, got %d", rec.Code)
	}

	app.Health = fakeHealth{}
	engine = New(app)
	if rec := serve(engine, httptest.NewRequest(http.MethodGet, "/api/ready", nil)); rec.Code != http.StatusOK {
		t.Fatalf("expected ready 200, got %d", rec.Code)
	}
}

func TestModulesAreMountedWithRateLimit(t *testing.T) {
	engine := New(&apphttp.App{
		Config:  fakeConfig{allowAll: true, rate: 1, burst: 1},
		Logger:  logger.Discard(),
		Modules: []apphttp.Module{pingModule{}},
	})

	first := serve(engine, httptest.NewRequest(http.MethodGet, "/search", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected module route to answer 200, got %d", first.Code)
	}
	if first.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if first.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}

	second := serve(engine, httptest.NewRequest(http.MethodGet, "/search", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", second.Code)
	}
}

func TestCORSAllowList(t *testing.T) {
	engine := New(&apphttp.App{
		Config:  fakeConfig{origins: []string{"https://skrytki.example.pl"}},
		Logger:  logger.Discard(),
		Modules: []apphttp.Module{pingModule{}},
	})

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.Header.Set("Origin", "https://skrytki.example.pl")
	rec := serve(engine, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://skrytki.example.pl" {
		t.Fatalf("expected allowed origin to be echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/search", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = serve(engine, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected foreign origin to be rejected, got %d", rec.Code)
	}
}
