package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/address-classifier/app/models"
	"github.com/address-classifier/app/requests"
	"github.com/address-classifier/app/responses"
	"github.com/address-classifier/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController controller cho thao tác vận hành: stats, cache, review queue
type AdminController struct {
	adminService  *services.AdminService
	reviewService *services.ReviewService
	logger        *zap.Logger
}

// NewAdminController tạo mới AdminController. reviewService nil khi chạy
// không có MongoDB, các endpoint review sẽ trả 503.
func NewAdminController(adminService *services.AdminService, reviewService *services.ReviewService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService:  adminService,
		reviewService: reviewService,
		logger:        logger,
	}
}

// GetStats thống kê hệ thống
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "STATS_ERROR",
			Message: "Lỗi lấy thống kê: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SystemStatsResponse{
		CacheHitRate:     stats.CacheHitRate,
		TotalCached:      stats.TotalCached,
		ReviewQueueSize:  stats.ReviewQueueSize,
		GazetteerVersion: stats.GazetteerVersion,
		SystemInfo: responses.SystemInfo{
			Uptime:      stats.Uptime,
			MemoryUsage: stats.MemoryUsage,
		},
		GazetteerStats: responses.GazetteerStats{
			Provinces: stats.Provinces,
			Districts: stats.Districts,
			Wards:     stats.Wards,
		},
	})
}

// InvalidateCache xóa cache của gazetteer version hiện tại
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if err := ac.adminService.InvalidateCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_INVALIDATE_ERROR",
			Message: "Lỗi invalidate cache: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Đã invalidate cache",
	})
}

// ListReviews danh sách review đang chờ
func (ac *AdminController) ListReviews(c *gin.Context) {
	if !ac.requireReview(c) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, err := ac.reviewService.ListPending(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "REVIEW_LIST_ERROR",
			Message: "Lỗi lấy danh sách review: " + err.Error(),
		})
		return
	}

	total, _ := ac.reviewService.Count(c.Request.Context())
	pending, _ := ac.reviewService.CountByStatus(c.Request.Context(), models.ReviewStatusPending)

	c.JSON(http.StatusOK, responses.ReviewListResponse{
		Reviews: reviews,
		Total:   total,
		Pending: pending,
		Limit:   limit,
		Offset:  offset,
	})
}

// ApproveReview phê duyệt một review, giữ nguyên kết quả máy
func (ac *AdminController) ApproveReview(c *gin.Context) {
	if !ac.requireReview(c) {
		return
	}

	var req requests.ReviewApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	reviewID := c.Param("reviewID")
	if err := ac.reviewService.Approve(c.Request.Context(), reviewID, req.ReviewerID); err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "REVIEW_APPROVE_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ReviewActionResponse{
		Success:   true,
		ReviewID:  reviewID,
		Action:    "approve",
		Message:   "Đã phê duyệt review",
		UpdatedAt: time.Now().Format(time.RFC3339),
	})
}

// CorrectReview ghi đè kết quả máy bằng kết quả người sửa
func (ac *AdminController) CorrectReview(c *gin.Context) {
	if !ac.requireReview(c) {
		return
	}

	var req requests.ReviewCorrectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	reviewID := c.Param("reviewID")
	if err := ac.reviewService.Correct(c.Request.Context(), reviewID, req.ReviewerID, &req.ManualResult); err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "REVIEW_CORRECT_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ReviewActionResponse{
		Success:   true,
		ReviewID:  reviewID,
		Action:    "correct",
		Message:   "Đã chỉnh sửa review",
		UpdatedAt: time.Now().Format(time.RFC3339),
	})
}

func (ac *AdminController) requireReview(c *gin.Context) bool {
	if ac.reviewService == nil {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "REVIEW_UNAVAILABLE",
			Message: "Review queue chưa được cấu hình (thiếu MongoDB)",
		})
		return false
	}
	return true
}
