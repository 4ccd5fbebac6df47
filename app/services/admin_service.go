package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/address-classifier/app/models"
	"github.com/address-classifier/internal/gazetteer"
	"go.uber.org/zap"
)

// AdminService thống kê và thao tác vận hành: cache invalidation, system
// stats. reviewService có thể nil khi chạy không có MongoDB.
type AdminService struct {
	gaz           *gazetteer.Gazetteer
	cacheService  ICacheService
	reviewService *ReviewService
	logger        *zap.Logger
	startTime     time.Time
}

// SystemStats thống kê hệ thống
type SystemStats struct {
	CacheHitRate     float64                `json:"cache_hit_rate"`
	TotalCached      int64                  `json:"total_cached"`
	ReviewQueueSize  int64                  `json:"review_queue_size"`
	GazetteerVersion string                 `json:"gazetteer_version"`
	Provinces        int                    `json:"provinces"`
	Districts        int                    `json:"districts"`
	Wards            int                    `json:"wards"`
	Uptime           string                 `json:"uptime"`
	MemoryUsage      map[string]interface{} `json:"memory_usage"`
}

// NewAdminService tạo mới AdminService
func NewAdminService(gaz *gazetteer.Gazetteer, cacheService ICacheService, reviewService *ReviewService, logger *zap.Logger) *AdminService {
	return &AdminService{
		gaz:           gaz,
		cacheService:  cacheService,
		reviewService: reviewService,
		logger:        logger,
		startTime:     time.Now(),
	}
}

// GetSystemStats lấy thống kê hệ thống
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	stats := &SystemStats{
		GazetteerVersion: as.gaz.Version,
		Provinces:        len(as.gaz.Provinces),
		Districts:        len(as.gaz.Districts),
		Wards:            len(as.gaz.Wards),
		Uptime:           time.Since(as.startTime).Round(time.Second).String(),
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.MemoryUsage = map[string]interface{}{
		"alloc_mb":       bToMb(m.Alloc),
		"total_alloc_mb": bToMb(m.TotalAlloc),
		"sys_mb":         bToMb(m.Sys),
		"num_gc":         m.NumGC,
	}

	if as.cacheService != nil {
		cacheStats, err := as.cacheService.GetStats(ctx)
		if err != nil {
			as.logger.Warn("Không lấy được cache stats", zap.Error(err))
		} else {
			stats.CacheHitRate = cacheStats.HitRate
			stats.TotalCached = cacheStats.TotalItems
		}
	}

	if as.reviewService != nil {
		pending, err := as.reviewService.CountByStatus(ctx, models.ReviewStatusPending)
		if err != nil {
			as.logger.Warn("Không đếm được review queue", zap.Error(err))
		} else {
			stats.ReviewQueueSize = pending
		}
	}

	return stats, nil
}

// InvalidateCache xóa cache cho version hiện tại
func (as *AdminService) InvalidateCache(ctx context.Context) error {
	if as.cacheService == nil {
		return fmt.Errorf("không có cache service")
	}
	return as.cacheService.InvalidateByGazetteerVersion(ctx, as.gaz.Version)
}

// Helper functions
func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
