package requests

import "github.com/address-classifier/app/models"

// ClassifyRequest request phân loại một địa chỉ OCR
type ClassifyRequest struct {
	Address string          `json:"address" binding:"required"` // Chuỗi địa chỉ thô từ OCR
	Options ClassifyOptions `json:"options,omitempty"`          // Tùy chọn phân loại
}

// ClassifyOptions tùy chọn phân loại
type ClassifyOptions struct {
	UseCache      bool    `json:"use_cache,omitempty"`      // Có dùng cache service không
	MinConfidence float64 `json:"min_confidence,omitempty"` // Dưới ngưỡng này thì đẩy vào review queue
}

// BatchClassifyRequest request phân loại hàng loạt địa chỉ
type BatchClassifyRequest struct {
	Addresses []string        `json:"addresses" binding:"required,min=1,max=20000"` // Danh sách địa chỉ (tối đa 20k)
	Options   ClassifyOptions `json:"options,omitempty"`                            // Tùy chọn phân loại
}

// ReviewApproveRequest request phê duyệt review
type ReviewApproveRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"` // ID người review
}

// ReviewCorrectRequest request chỉnh sửa review
type ReviewCorrectRequest struct {
	ManualResult models.ClassificationResult `json:"manual_result" binding:"required"` // Kết quả người sửa
	ReviewerID   string                      `json:"reviewer_id" binding:"required"`   // ID người review
}
