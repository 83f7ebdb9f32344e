package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/agendalivre/salon-scheduler/internal/cache"
	"github.com/agendalivre/salon-scheduler/internal/config"
	dbpkg "github.com/agendalivre/salon-scheduler/internal/db"
	"github.com/agendalivre/salon-scheduler/internal/extsync"
	"github.com/agendalivre/salon-scheduler/internal/logger"
	"github.com/agendalivre/salon-scheduler/internal/middleware"
	"github.com/agendalivre/salon-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.AppEnv)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	slotCache := newSlotCache(cfg, log)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// collaborators are registered by the host deployment; none by default
	routes.RegisterRoutes(r, db, log, slotCache, []extsync.Collaborator{})

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// newSlotCache connects to redis when configured; the engine runs fine
// without it, the read path just always hits the database.
func newSlotCache(cfg *config.Config, log *zap.Logger) *cache.SlotCache {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, slot cache disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, slot cache disabled", zap.Error(err))
		return nil
	}

	return cache.NewSlotCache(client, cfg.SlotCacheTTL, log)
}
