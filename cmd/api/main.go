package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/address-classifier/app/config"
	"github.com/address-classifier/app/controllers"
	"github.com/address-classifier/app/services"
	"github.com/address-classifier/internal/gazetteer"
	"github.com/address-classifier/internal/matcher"
	"github.com/address-classifier/internal/normalizer"
	"github.com/address-classifier/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	configPath := envString("CONFIG_PATH", "config/classifier.yaml")
	if err := config.Load(configPath); err != nil {
		log.Printf("Warning: cannot read config file %s: %v, dùng mặc định", configPath, err)
	}

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Address Classifier Service",
		zap.String("gazetteer", config.C.GazetteerPath),
		zap.String("cache_backend", config.C.Cache.Backend))

	// 3. Load gazetteer và build engine
	tn := normalizer.NewTextNormalizer()
	gaz, err := gazetteer.Load(config.C.GazetteerPath, tn, logger)
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}

	engine, err := matcher.New(gaz, tn, config.C.Matcher, logger)
	if err != nil {
		logger.Fatal("Failed to build classifier engine", zap.Error(err))
	}

	// 4. MongoDB (optional): review queue + persistent cache
	var mongoDB *mongo.Database
	if config.C.Mongo.URI != "" {
		mongoDB = initMongoDB(logger)
		defer func() {
			if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}()
	}

	// 5. Cache service theo backend cấu hình
	cacheService := initCacheService(gaz.Version, mongoDB, logger)
	if cacheService != nil {
		defer cacheService.Close()
	}

	// 6. Review service (cần MongoDB)
	var reviewService *services.ReviewService
	if mongoDB != nil && config.C.Review.Enabled {
		reviewService = services.NewReviewService(mongoDB, config.C.Review.Collection, logger)
	}

	// 7. Services và controllers
	classifyService := services.NewClassifyService(engine, tn, cacheService, reviewService, config.C.Review.Threshold, logger)
	adminService := services.NewAdminService(gaz, cacheService, reviewService, logger)

	addressController := controllers.NewAddressController(classifyService, logger)
	adminController := controllers.NewAdminController(adminService, reviewService, logger)

	// 8. Gin router
	if config.C.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, addressController, adminController)

	// 9. HTTP server với graceful shutdown
	srv := &http.Server{
		Addr:    ":" + config.C.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", config.C.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

// initCacheService chọn backend cache theo config.
// memory: LRU in-process. redis: chia sẻ giữa các instance.
// hybrid: Redis L1 + MongoDB L2, cần cả hai kết nối.
func initCacheService(gazetteerVersion string, mongoDB *mongo.Database, logger *zap.Logger) services.ICacheService {
	cfg := config.C.Cache
	ttl := time.Duration(cfg.TTLHours) * time.Hour

	switch cfg.Backend {
	case "redis":
		redisCache, err := services.NewRedisCacheService(cfg.RedisURL, cfg.KeyPrefix, ttl, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		return redisCache

	case "hybrid":
		if mongoDB == nil {
			logger.Fatal("Hybrid cache cần MongoDB, thiếu mongo.uri trong config")
		}
		redisCache, err := services.NewRedisCacheService(cfg.RedisURL, cfg.KeyPrefix, ttl, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		mongoCache, err := services.NewMongoCacheService(mongoDB, cfg.MemorySize, gazetteerVersion, logger)
		if err != nil {
			logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
		}
		hybrid := services.NewHybridCacheService(redisCache, mongoCache, logger)

		if err := hybrid.WarmUpFromMongoDB(context.Background(), cfg.MemorySize/2); err != nil {
			logger.Warn("Failed to warm up cache", zap.Error(err))
		}
		return hybrid

	default:
		return services.NewMemoryCacheService(cfg.MemorySize, ttl)
	}
}

// initLogger khởi tạo structured logger theo APP_ENV
func initLogger() *zap.Logger {
	env := envString("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// initMongoDB khởi tạo kết nối MongoDB
func initMongoDB(logger *zap.Logger) *mongo.Database {
	uri := config.C.Mongo.URI

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	dbName := config.C.Mongo.Database
	if dbName == "" {
		dbName = "address_classifier"
	}

	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return client.Database(dbName)
}

// envString đọc env qua viper để còn override được từ file env sau này
func envString(key, defaultValue string) string {
	viper.AutomaticEnv()
	if v := viper.GetString(key); v != "" {
		return v
	}
	return defaultValue
}
