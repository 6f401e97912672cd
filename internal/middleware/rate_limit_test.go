package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"weather-agent/internal/middleware"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func setupRouter(requestsPerMin int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	m := middleware.New(&mockLogger{}, requestsPerMin)
	r.Use(m.RateLimit())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit(t *testing.T) {
	t.Run("throttles a noisy client", func(t *testing.T) {
		// 60/min = 1/s with burst 7; a burst of 20 must trip the limit.
		r := setupRouter(60)

		var limited int
		for i := 0; i < 20; i++ {
			if get(r, "10.0.0.1:1234") == http.StatusTooManyRequests {
				limited++
			}
		}
		if limited == 0 {
			t.Error("expected some requests to be rate limited")
		}
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		r := setupRouter(60)

		for i := 0; i < 20; i++ {
			get(r, "10.0.0.1:1234")
		}
		if code := get(r, "10.0.0.2:1234"); code != http.StatusOK {
			t.Errorf("fresh client should not be limited, got %d", code)
		}
	})

	t.Run("concurrent first requests share one bucket", func(t *testing.T) {
		// 6/min gives burst 1 with negligible refill; if concurrent
		// first requests from one client each created their own
		// limiter, more than one would be admitted.
		r := setupRouter(6)

		var wg sync.WaitGroup
		var allowed int64
		for i := 0; i < 30; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if get(r, "10.0.0.9:1234") == http.StatusOK {
					atomic.AddInt64(&allowed, 1)
				}
			}()
		}
		wg.Wait()

		if allowed != 1 {
			t.Errorf("expected exactly 1 admitted request, got %d", allowed)
		}
	})

	t.Run("disabled when not configured", func(t *testing.T) {
		r := setupRouter(0)

		for i := 0; i < 50; i++ {
			if code := get(r, "10.0.0.1:1234"); code != http.StatusOK {
				t.Fatalf("expected 200 with limiting disabled, got %d", code)
			}
		}
	})
}
