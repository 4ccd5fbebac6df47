package services

import (
	"context"
	"time"

	"github.com/address-classifier/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService interface định nghĩa các method cần thiết cho cache kết quả
// phân loại. Key là input đã chuẩn hóa kèm gazetteer version.
type ICacheService interface {
	// Get lấy kết quả phân loại từ cache
	Get(ctx context.Context, key string) (*models.ClassificationResult, bool, error)

	// Set lưu kết quả phân loại vào cache
	Set(ctx context.Context, key string, result *models.ClassificationResult) error

	// Delete xóa một entry khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// InvalidateByGazetteerVersion invalidate cache khi gazetteer đổi version
	InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists kiểm tra key có tồn tại không
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL lấy TTL còn lại của key
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}
