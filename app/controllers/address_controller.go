package controllers

import (
	"net/http"
	"time"

	"github.com/address-classifier/app/models"
	"github.com/address-classifier/app/requests"
	"github.com/address-classifier/app/responses"
	"github.com/address-classifier/app/services"
	"github.com/address-classifier/helpers/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddressController controller xử lý các request phân loại địa chỉ
type AddressController struct {
	classifyService *services.ClassifyService
	logger          *zap.Logger
}

// NewAddressController tạo mới AddressController
func NewAddressController(classifyService *services.ClassifyService, logger *zap.Logger) *AddressController {
	return &AddressController{
		classifyService: classifyService,
		logger:          logger,
	}
}

// Classify phân loại một địa chỉ đơn lẻ
func (ac *AddressController) Classify(c *gin.Context) {
	var req requests.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	result, cacheHit, err := ac.classifyService.Classify(c.Request.Context(), req.Address, req.Options)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CLASSIFY_ERROR",
			Message: "Lỗi phân loại địa chỉ: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ClassifyResponse{
		GazetteerVersion: ac.classifyService.GazetteerVersion(),
		Result:           *result,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// BatchClassify phân loại hàng loạt địa chỉ qua background job
func (ac *AddressController) BatchClassify(c *gin.Context) {
	var req requests.BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	jobID := utils.GenerateUUID()
	estimatedTime := ac.classifyService.EstimateBatchProcessingTime(len(req.Addresses))

	go ac.classifyService.ProcessBatchJob(jobID, req.Addresses, req.Options)

	c.JSON(http.StatusAccepted, responses.BatchClassifyResponse{
		JobID:            jobID,
		EstimatedSeconds: estimatedTime,
		TotalAddresses:   len(req.Addresses),
		Message:          "Job đã được tạo và đang xử lý",
	})
}

// GetJobStatus lấy trạng thái job
func (ac *AddressController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")

	status, err := ac.classifyService.GetJobStatus(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "JOB_NOT_FOUND",
			Message: "Không tìm thấy job: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     jobID,
		Status:    status.Status,
		Progress:  status.Progress,
		Processed: status.Processed,
		Total:     status.Total,
		Message:   status.Message,
	})
}

// GetJobResults lấy kết quả job
func (ac *AddressController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")

	results, err := ac.classifyService.GetJobResults(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "RESULTS_NOT_FOUND",
			Message: "Không tìm thấy kết quả job: " + err.Error(),
		})
		return
	}

	resp := responses.JobResultsResponse{
		JobID:   jobID,
		Total:   len(results),
		Results: make([]models.ClassificationResult, 0, len(results)),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, *r)
	}
	c.JSON(http.StatusOK, resp)
}

// HealthCheck kiểm tra sức khỏe service
func (ac *AddressController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:           "healthy",
		GazetteerVersion: ac.classifyService.GazetteerVersion(),
		Uptime:           time.Since(ac.classifyService.GetStartTime()).Round(time.Second).String(),
		Services: map[string]string{
			"classifier": "up",
		},
	})
}
