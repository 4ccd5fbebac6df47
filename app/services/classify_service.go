package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/address-classifier/app/models"
	"github.com/address-classifier/app/requests"
	"github.com/address-classifier/internal/matcher"
	"github.com/address-classifier/internal/normalizer"
	"go.uber.org/zap"
)

// batchWorkers số goroutine xử lý song song một batch job
const batchWorkers = 8

// ClassifyService bọc engine phân loại: cache service phía trước, review
// queue phía sau cho kết quả confidence thấp, và batch job chạy nền.
// cacheService và reviewService đều có thể nil (chạy trần engine).
type ClassifyService struct {
	engine          *matcher.Classifier
	tn              *normalizer.TextNormalizer
	cacheService    ICacheService
	reviewService   *ReviewService
	reviewThreshold float64
	logger          *zap.Logger
	startTime       time.Time

	mu         sync.RWMutex
	jobs       map[string]*JobStatus
	jobResults map[string][]*models.ClassificationResult
}

// JobStatus trạng thái của một batch job
type JobStatus struct {
	JobID     string
	Status    string
	Progress  float64
	Processed int
	Total     int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClassifyService tạo mới ClassifyService
func NewClassifyService(engine *matcher.Classifier, tn *normalizer.TextNormalizer, cacheService ICacheService, reviewService *ReviewService, reviewThreshold float64, logger *zap.Logger) *ClassifyService {
	return &ClassifyService{
		engine:          engine,
		tn:              tn,
		cacheService:    cacheService,
		reviewService:   reviewService,
		reviewThreshold: reviewThreshold,
		logger:          logger,
		startTime:       time.Now(),
		jobs:            make(map[string]*JobStatus),
		jobResults:      make(map[string][]*models.ClassificationResult),
	}
}

// cacheKey key cache ở tầng service: gazetteer version + input đã chuẩn hóa.
// Đổi gazetteer là đổi key, entry cũ tự thành rác không bao giờ được đọc.
func (cs *ClassifyService) cacheKey(normalized string) string {
	return cs.engine.GazetteerVersion() + ":" + normalized
}

// Classify phân loại một địa chỉ. Trả thêm cờ cache hit cho response.
// Engine không bao giờ lỗi; error ở đây chỉ đến từ tầng cache và đã được
// nuốt thành miss, nên thực tế luôn trả kết quả.
func (cs *ClassifyService) Classify(ctx context.Context, rawAddress string, options requests.ClassifyOptions) (*models.ClassificationResult, bool, error) {
	nt := cs.tn.Normalize(rawAddress)
	if nt.IsEmpty() {
		return models.EmptyResult(""), false, nil
	}
	key := cs.cacheKey(nt.Joined())

	if options.UseCache && cs.cacheService != nil {
		if cached, found, err := cs.cacheService.Get(ctx, key); err != nil {
			cs.logger.Warn("Lỗi đọc cache service, coi như miss", zap.Error(err))
		} else if found {
			return cached, true, nil
		}
	}

	result := cs.engine.Classify(rawAddress)

	if options.UseCache && cs.cacheService != nil {
		if err := cs.cacheService.Set(ctx, key, result); err != nil {
			cs.logger.Warn("Lỗi ghi cache service", zap.Error(err))
		}
	}

	cs.maybeEnqueueReview(rawAddress, result, options)
	return result, false, nil
}

// maybeEnqueueReview đẩy kết quả dưới ngưỡng vào review queue, ngoài đường
// nóng của request.
func (cs *ClassifyService) maybeEnqueueReview(rawAddress string, result *models.ClassificationResult, options requests.ClassifyOptions) {
	if cs.reviewService == nil {
		return
	}
	threshold := options.MinConfidence
	if threshold <= 0 {
		threshold = cs.reviewThreshold
	}
	if threshold <= 0 || result.Confidence >= threshold {
		return
	}

	version := cs.engine.GazetteerVersion()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cs.reviewService.Enqueue(ctx, rawAddress, version, result); err != nil {
			cs.logger.Warn("Lỗi đẩy vào review queue", zap.Error(err))
		}
	}()
}

// EstimateBatchProcessingTime ước tính thời gian xử lý batch (giây).
// Engine in-memory, mỗi địa chỉ cỡ vài ms kể cả trường hợp rơi xuống tier 3.
func (cs *ClassifyService) EstimateBatchProcessingTime(addressCount int) int {
	estimatedMs := addressCount * 5 / batchWorkers
	if estimatedMs < 1000 {
		return 1
	}
	return estimatedMs / 1000
}

// ProcessBatchJob xử lý một batch job trong background với worker pool,
// kết quả giữ đúng thứ tự input.
func (cs *ClassifyService) ProcessBatchJob(jobID string, addresses []string, options requests.ClassifyOptions) {
	cs.mu.Lock()
	cs.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "running",
		Total:     len(addresses),
		Message:   "Đang xử lý...",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	cs.mu.Unlock()

	results := make([]*models.ClassificationResult, len(addresses))

	type item struct {
		idx  int
		addr string
	}
	work := make(chan item)
	var wg sync.WaitGroup
	var processed int
	var progressMu sync.Mutex

	for w := 0; w < batchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range work {
				result, _, err := cs.Classify(context.Background(), it.addr, options)
				if err != nil {
					result = models.EmptyResult("")
				}
				results[it.idx] = result

				progressMu.Lock()
				processed++
				done := processed
				progressMu.Unlock()

				cs.mu.Lock()
				if job, exists := cs.jobs[jobID]; exists {
					job.Processed = done
					job.Progress = float64(done) / float64(len(addresses))
					job.UpdatedAt = time.Now()
				}
				cs.mu.Unlock()
			}
		}()
	}

	for i, addr := range addresses {
		work <- item{idx: i, addr: addr}
	}
	close(work)
	wg.Wait()

	cs.mu.Lock()
	cs.jobResults[jobID] = results
	if job, exists := cs.jobs[jobID]; exists {
		job.Status = "done"
		job.Message = "Hoàn thành xử lý"
		job.UpdatedAt = time.Now()
	}
	cs.mu.Unlock()

	cs.logger.Info("Batch job completed",
		zap.String("job_id", jobID),
		zap.Int("total_addresses", len(addresses)))
}

// GetJobStatus lấy trạng thái job
func (cs *ClassifyService) GetJobStatus(jobID string) (*JobStatus, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	job, exists := cs.jobs[jobID]
	if !exists {
		return nil, errors.New("job không tồn tại")
	}
	return job, nil
}

// GetJobResults lấy kết quả job
func (cs *ClassifyService) GetJobResults(jobID string) ([]*models.ClassificationResult, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	results, exists := cs.jobResults[jobID]
	if !exists {
		return nil, errors.New("kết quả job không tồn tại")
	}
	return results, nil
}

// GazetteerVersion phiên bản gazetteer engine đang phục vụ
func (cs *ClassifyService) GazetteerVersion() string {
	return cs.engine.GazetteerVersion()
}

// GetStartTime thời gian khởi động service
func (cs *ClassifyService) GetStartTime() time.Time {
	return cs.startTime
}
