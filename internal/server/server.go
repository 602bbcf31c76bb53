package server

import (
	"backend-quillhub/internal/auth"
	"backend-quillhub/internal/cache"
	"backend-quillhub/internal/config"
	"backend-quillhub/internal/follow"
	"backend-quillhub/internal/group"
	"backend-quillhub/internal/post"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Cache *cache.Service
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Cache: cache.NewService(redisClient, cfg.PageCacheTTL),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	requireJWT := auth.RequireJWT(s.Cfg.JWTSecret)
	optionalJWT := auth.OptionalJWT(s.Cfg.JWTSecret)

	followSvc := follow.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	group.RegisterRoutes(s.App.Group("/groups"), group.NewService(s.DB), requireJWT)
	post.RegisterRoutes(s.App, post.NewService(s.DB), followSvc, s.Cache.Middleware(), requireJWT, optionalJWT)
	follow.RegisterRoutes(s.App, followSvc, requireJWT)
	cache.RegisterRoutes(s.App.Group("/cache"), s.Cache, requireJWT)

	// Registered last so it only catches paths no route claimed.
	s.App.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "page not found"})
	})
}
