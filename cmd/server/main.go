package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/bookledger/library-api/internal/cache"
	"github.com/bookledger/library-api/internal/config"
	"github.com/bookledger/library-api/internal/db"
	docs "github.com/bookledger/library-api/internal/docs"
	"github.com/bookledger/library-api/internal/handler"
	"github.com/bookledger/library-api/internal/log"
	"github.com/bookledger/library-api/internal/repository"
)

// @title           Library API
// @version         1.0
// @description     CRUD service for a book library: authors, books and the readers borrowing them.
// @BasePath        /v1
func main() {
	cfg := config.Load()
	log.Init(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	database := db.ConnectWithRetry(cfg)
	if err := db.Migrate(database); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	store := cache.NewRedisStore(cfg.RedisAddr())
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		log.Warn("cache unreachable at startup, reads fall through to the database", zap.Error(err))
	}
	cancel()

	docs.SwaggerInfo.BasePath = "/v1"

	r := gin.New()
	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})
	r.Use(gin.Recovery())
	r.Use(handler.RequestID())
	r.Use(handler.RequestLogger())
	r.Use(handler.CORS())
	r.Use(handler.RateLimit(2, 4))

	health := handler.NewHealthHandler(database, store)
	health.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	handler.NewAuthorHandler(repository.NewGormAuthorRepository(database), store).RegisterRoutes(v1)
	handler.NewBookHandler(repository.NewGormBookRepository(database), store).RegisterRoutes(v1)
	handler.NewReaderHandler(repository.NewGormReaderRepository(database), store).RegisterRoutes(v1)

	log.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
