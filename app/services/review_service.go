package services

import (
	"context"
	"fmt"
	"time"

	"github.com/address-classifier/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReviewService quản lý hàng đợi review cho các kết quả confidence thấp.
// Ghi vào MongoDB ngoài đường nóng của classify.
type ReviewService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewReviewService tạo mới ReviewService
func NewReviewService(db *mongo.Database, collectionName string, logger *zap.Logger) *ReviewService {
	if collectionName == "" {
		collectionName = "classification_review"
	}
	collection := db.Collection(collectionName)

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "review_status", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "created_at", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Không thể tạo indexes cho review collection", zap.Error(err))
	}

	return &ReviewService{collection: collection, logger: logger}
}

// Enqueue đẩy một kết quả vào hàng đợi review
func (rs *ReviewService) Enqueue(ctx context.Context, rawInput, gazetteerVersion string, result *models.ClassificationResult) error {
	record := models.ReviewRecord{
		RawInput:         rawInput,
		NormalizedInput:  result.NormalizedInput,
		Result:           result,
		GazetteerVersion: gazetteerVersion,
		ReviewStatus:     models.ReviewStatusPending,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if _, err := rs.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("lỗi enqueue review: %w", err)
	}

	rs.logger.Debug("Đã đẩy vào review queue",
		zap.String("raw_input", rawInput),
		zap.Float64("confidence", result.Confidence))
	return nil
}

// ListPending danh sách review đang chờ, mới nhất trước
func (rs *ReviewService) ListPending(ctx context.Context, limit, offset int) ([]models.ReviewRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := rs.collection.Find(ctx, bson.M{"review_status": models.ReviewStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi query review queue: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ReviewRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("lỗi decode review records: %w", err)
	}
	return records, nil
}

// Approve đánh dấu một review là đã duyệt, giữ nguyên kết quả máy
func (rs *ReviewService) Approve(ctx context.Context, id string, reviewerID string) error {
	return rs.resolve(ctx, id, reviewerID, nil)
}

// Correct ghi đè kết quả máy bằng kết quả người sửa rồi đóng review
func (rs *ReviewService) Correct(ctx context.Context, id string, reviewerID string, corrected *models.ClassificationResult) error {
	if corrected == nil {
		return fmt.Errorf("thiếu kết quả chỉnh sửa")
	}
	return rs.resolve(ctx, id, reviewerID, corrected)
}

func (rs *ReviewService) resolve(ctx context.Context, id, reviewerID string, corrected *models.ClassificationResult) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("review id không hợp lệ: %w", err)
	}

	set := bson.M{
		"review_status": models.ReviewStatusResolved,
		"reviewed_by":   reviewerID,
		"updated_at":    time.Now(),
	}
	if corrected != nil {
		set["result"] = corrected
	}

	result, err := rs.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("lỗi update review: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("không tìm thấy review %s", id)
	}

	rs.logger.Info("Đã resolve review",
		zap.String("review_id", id),
		zap.String("reviewer", reviewerID),
		zap.Bool("corrected", corrected != nil))
	return nil
}

// CountByStatus đếm review theo trạng thái
func (rs *ReviewService) CountByStatus(ctx context.Context, status string) (int64, error) {
	return rs.collection.CountDocuments(ctx, bson.M{"review_status": status})
}

// Count tổng số review
func (rs *ReviewService) Count(ctx context.Context) (int64, error) {
	return rs.collection.CountDocuments(ctx, bson.M{})
}
