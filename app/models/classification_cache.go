package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassificationCache một entry cache persistent trong MongoDB.
// Key logic là fingerprint của input đã chuẩn hóa, unique index.
type ClassificationCache struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	RawFingerprint   string               `bson:"raw_fingerprint" json:"raw_fingerprint"`
	RawInput         string               `bson:"raw_input" json:"raw_input"`
	NormalizedInput  string               `bson:"normalized_input" json:"normalized_input"`
	Result           ClassificationResult `bson:"result" json:"result"`
	Confidence       float64              `bson:"confidence" json:"confidence"`
	Method           string               `bson:"method" json:"method"`
	GazetteerVersion string               `bson:"gazetteer_version" json:"gazetteer_version"`
	CreatedAt        time.Time            `bson:"created_at" json:"created_at"`
	LastAccessed     time.Time            `bson:"last_accessed" json:"last_accessed"`
	AccessCount      int64                `bson:"access_count" json:"access_count"`
}
