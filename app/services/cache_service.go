package services

import (
	"context"
	"sync"
	"time"

	"github.com/address-classifier/app/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCacheService cache in-memory cho single-instance deployment.
// LRU có TTL, eviction tự động, không cần cleanup worker.
type MemoryCacheService struct {
	cache *expirable.LRU[string, models.ClassificationResult]
	ttl   time.Duration

	mu     sync.Mutex
	hits   int64
	misses int64
}

// NewMemoryCacheService tạo mới MemoryCacheService với size và TTL cố định.
func NewMemoryCacheService(size int, ttl time.Duration) *MemoryCacheService {
	return &MemoryCacheService{
		cache: expirable.NewLRU[string, models.ClassificationResult](size, nil, ttl),
		ttl:   ttl,
	}
}

// Get lấy kết quả từ cache. Trả về bản copy để caller sửa thoải mái.
func (cs *MemoryCacheService) Get(ctx context.Context, key string) (*models.ClassificationResult, bool, error) {
	if v, ok := cs.cache.Get(key); ok {
		cs.mu.Lock()
		cs.hits++
		cs.mu.Unlock()
		cp := v
		return &cp, true, nil
	}
	cs.mu.Lock()
	cs.misses++
	cs.mu.Unlock()
	return nil, false, nil
}

// Set lưu kết quả vào cache
func (cs *MemoryCacheService) Set(ctx context.Context, key string, result *models.ClassificationResult) error {
	cs.cache.Add(key, *result)
	return nil
}

// Delete xóa entry khỏi cache
func (cs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	cs.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (cs *MemoryCacheService) Clear(ctx context.Context) error {
	cs.cache.Purge()
	cs.mu.Lock()
	cs.hits, cs.misses = 0, 0
	cs.mu.Unlock()
	return nil
}

// InvalidateByGazetteerVersion với cache in-memory thì clear hết là đủ:
// key có chứa version nên entry cũ sẽ không bao giờ được hỏi lại, clear chỉ
// để lấy lại bộ nhớ.
func (cs *MemoryCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	return cs.Clear(ctx)
}

// GetStats lấy thống kê cache
func (cs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	cs.mu.Lock()
	hits, misses := cs.hits, cs.misses
	cs.mu.Unlock()

	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.cache.Len()),
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (cs *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return cs.cache.Contains(key), nil
}

// GetTTL expirable LRU không expose deadline từng entry, trả TTL cấu hình.
func (cs *MemoryCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	if !cs.cache.Contains(key) {
		return 0, nil
	}
	return cs.ttl, nil
}

// Close không cần làm gì cho in-memory cache
func (cs *MemoryCacheService) Close() error {
	return nil
}
