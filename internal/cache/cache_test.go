package cache

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func newCachedApp(t *testing.T) (*fiber.App, *Service, *miniredis.Miniredis, *int) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewService(client, 20*time.Second)
	hits := 0
	app := fiber.New()
	app.Get("/posts", svc.Middleware(), func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"render": hits})
	})
	return app, svc, s, &hits
}

func get(t *testing.T, app *fiber.App, url string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func TestMiddlewareServesCachedBody(t *testing.T) {
	app, _, _, hits := newCachedApp(t)

	first := get(t, app, "/posts")
	second := get(t, app, "/posts")
	if first != second {
		t.Fatalf("expected cached body, got %q then %q", first, second)
	}
	if *hits != 1 {
		t.Fatalf("expected one render, got %d", *hits)
	}
}

func TestMiddlewareKeyIncludesQuery(t *testing.T) {
	app, _, _, hits := newCachedApp(t)

	get(t, app, "/posts?page=1")
	get(t, app, "/posts?page=2")
	if *hits != 2 {
		t.Fatalf("pages should cache separately, got %d renders", *hits)
	}

	get(t, app, "/posts?page=2")
	if *hits != 2 {
		t.Fatalf("second read of page 2 should be cached")
	}
}

func TestMiddlewareExpiresWithTTL(t *testing.T) {
	app, _, mr, hits := newCachedApp(t)

	get(t, app, "/posts")
	mr.FastForward(21 * time.Second)
	get(t, app, "/posts")
	if *hits != 2 {
		t.Fatalf("expected re-render after ttl, got %d", *hits)
	}
}

// A deleted post stays visible through the cache until the window closes or
// the cache is cleared; this mirrors the production staleness tolerance.
func TestStalenessSurvivesMutationUntilClear(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := NewService(client, 20*time.Second)
	posts := []string{"doomed-post"}
	app := fiber.New()
	app.Get("/posts", svc.Middleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": posts})
	})

	before := get(t, app, "/posts")
	if before == "" || !strings.Contains(before, "doomed-post") {
		t.Fatalf("expected post in listing: %q", before)
	}

	// "delete" the post; the cached rendering must not notice
	posts = nil
	stale := get(t, app, "/posts")
	if !strings.Contains(stale, "doomed-post") {
		t.Fatalf("expected stale listing to still show the post: %q", stale)
	}

	cleared, err := svc.Clear(context.Background())
	if err != nil || cleared != 1 {
		t.Fatalf("clear: %v (%d keys)", err, cleared)
	}

	fresh := get(t, app, "/posts")
	if strings.Contains(fresh, "doomed-post") {
		t.Fatalf("expected post gone after clear: %q", fresh)
	}
}

func TestClearEmpty(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := NewService(client, time.Second)
	cleared, err := svc.Clear(context.Background())
	if err != nil || cleared != 0 {
		t.Fatalf("expected no-op clear, got %d %v", cleared, err)
	}
}

func TestClearOnlyTouchesPageKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mr.Set("unrelated", "keep-me")
	mr.Set(keyPrefix+"/posts", "cached")

	svc := NewService(client, time.Second)
	cleared, err := svc.Clear(context.Background())
	if err != nil || cleared != 1 {
		t.Fatalf("clear: %v (%d keys)", err, cleared)
	}
	if _, err := mr.Get("unrelated"); err != nil {
		t.Fatalf("unrelated key should survive")
	}
}

func TestNilRedisDisablesCache(t *testing.T) {
	svc := NewService(nil, time.Second)
	hits := 0
	app := fiber.New()
	app.Get("/posts", svc.Middleware(), func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"render": hits})
	})

	get(t, app, "/posts")
	get(t, app, "/posts")
	if hits != 2 {
		t.Fatalf("expected passthrough without redis, got %d", hits)
	}

	cleared, err := svc.Clear(context.Background())
	if err != nil || cleared != 0 {
		t.Fatalf("expected no-op clear without redis")
	}
}

func TestMiddlewareSkipsErrorResponses(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := NewService(client, time.Second)
	app := fiber.New()
	app.Get("/posts", svc.Middleware(), func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected error status")
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("error responses must not be cached")
	}
}

func TestClearHandler(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mr.Set(keyPrefix+"/posts", "cached")

	svc := NewService(client, time.Second)
	app := fiber.New()
	RegisterRoutes(app.Group("/cache"), svc, func(c *fiber.Ctx) error { return c.Next() })

	req := httptest.NewRequest(http.MethodPost, "/cache/clear", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"cleared":1`) {
		t.Fatalf("unexpected body: %s", body)
	}
}
