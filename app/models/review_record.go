package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review status constants
const (
	ReviewStatusPending  = "pending"
	ReviewStatusResolved = "resolved"
	ReviewStatusSkipped  = "skipped"
)

// ReviewRecord một kết quả phân loại confidence thấp chờ người duyệt.
// Lưu ở MongoDB, không tham gia vào đường nóng của classify.
type ReviewRecord struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty" json:"id,omitempty"`
	RawInput         string                `bson:"raw_input" json:"raw_input"`
	NormalizedInput  string                `bson:"normalized_input" json:"normalized_input"`
	Result           *ClassificationResult `bson:"result" json:"result"`
	GazetteerVersion string                `bson:"gazetteer_version" json:"gazetteer_version"`
	ReviewStatus     string                `bson:"review_status" json:"review_status"`
	ReviewedBy       string                `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	CreatedAt        time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time             `bson:"updated_at" json:"updated_at"`
}
