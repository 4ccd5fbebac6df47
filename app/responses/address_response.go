package responses

import (
	"github.com/address-classifier/app/models"
)

// ClassifyResponse response phân loại một địa chỉ
type ClassifyResponse struct {
	GazetteerVersion string                      `json:"gazetteer_version"`  // Phiên bản gazetteer
	Result           models.ClassificationResult `json:"result"`             // Kết quả phân loại
	ProcessingTimeMs int64                       `json:"processing_time_ms"` // Thời gian xử lý (ms)
	CacheHit         bool                        `json:"cache_hit"`          // Có hit cache không
}

// BatchClassifyResponse response phân loại hàng loạt
type BatchClassifyResponse struct {
	JobID            string `json:"job_id"`            // ID của job
	EstimatedSeconds int    `json:"estimated_seconds"` // Thời gian ước tính (giây)
	TotalAddresses   int    `json:"total_addresses"`   // Tổng số địa chỉ
	Message          string `json:"message"`           // Thông báo
}

// JobStatusResponse response trạng thái job
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`    // ID của job
	Status    string  `json:"status"`    // Trạng thái job
	Progress  float64 `json:"progress"`  // Tiến độ (0.0 - 1.0)
	Processed int     `json:"processed"` // Số địa chỉ đã xử lý
	Total     int     `json:"total"`     // Tổng số địa chỉ
	Message   string  `json:"message"`   // Thông báo
}

// JobResultsResponse response kết quả job
type JobResultsResponse struct {
	JobID   string                        `json:"job_id"`  // ID của job
	Total   int                           `json:"total"`   // Tổng số kết quả
	Results []models.ClassificationResult `json:"results"` // Kết quả phân loại
}

// JobStatus constants
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// ReviewListResponse response danh sách review
type ReviewListResponse struct {
	Reviews []models.ReviewRecord `json:"reviews"` // Danh sách review
	Total   int64                 `json:"total"`   // Tổng số review
	Pending int64                 `json:"pending"` // Số review đang chờ
	Limit   int                   `json:"limit"`   // Giới hạn số lượng
	Offset  int                   `json:"offset"`  // Offset
}

// ReviewActionResponse response thao tác review
type ReviewActionResponse struct {
	Success   bool   `json:"success"`    // Thao tác có thành công không
	ReviewID  string `json:"review_id"`  // ID của review
	Action    string `json:"action"`     // Hành động thực hiện
	Message   string `json:"message"`    // Thông báo
	UpdatedAt string `json:"updated_at"` // Thời gian cập nhật
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`                // Mã lỗi
	Message   string      `json:"message"`              // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"`    // Chi tiết lỗi
	RequestID string      `json:"request_id,omitempty"` // ID của request
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success bool        `json:"success"`        // Có thành công không
	Message string      `json:"message"`        // Thông báo
	Data    interface{} `json:"data,omitempty"` // Dữ liệu
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status           string            `json:"status"`            // Trạng thái sức khỏe
	GazetteerVersion string            `json:"gazetteer_version"` // Phiên bản gazetteer đang phục vụ
	Uptime           string            `json:"uptime"`            // Thời gian hoạt động
	Services         map[string]string `json:"services"`          // Trạng thái các service
}

// SystemStatsResponse response thống kê hệ thống
type SystemStatsResponse struct {
	CacheHitRate     float64        `json:"cache_hit_rate"`    // Tỷ lệ hit cache
	TotalCached      int64          `json:"total_cached"`      // Số entry trong cache
	ReviewQueueSize  int64          `json:"review_queue_size"` // Số review đang chờ
	GazetteerVersion string         `json:"gazetteer_version"` // Phiên bản gazetteer
	SystemInfo       SystemInfo     `json:"system_info"`       // Thông tin hệ thống
	GazetteerStats   GazetteerStats `json:"gazetteer_stats"`   // Thống kê gazetteer
}

// SystemInfo thông tin hệ thống
type SystemInfo struct {
	Uptime      string                 `json:"uptime"`       // Thời gian hoạt động
	MemoryUsage map[string]interface{} `json:"memory_usage"` // Sử dụng memory
}

// GazetteerStats số đơn vị hành chính theo cấp
type GazetteerStats struct {
	Provinces int `json:"provinces"` // Số tỉnh/thành phố
	Districts int `json:"districts"` // Số quận/huyện
	Wards     int `json:"wards"`     // Số phường/xã
}
