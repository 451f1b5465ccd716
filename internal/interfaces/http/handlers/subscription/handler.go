// Package subscription exposes the subscription lifecycle over HTTP.
package subscription

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/novastream-inc/novastream/internal/application/subscription/usecases"
	"github.com/novastream-inc/novastream/internal/shared/id"
	"github.com/novastream-inc/novastream/internal/shared/logger"
	"github.com/novastream-inc/novastream/internal/shared/utils"
)

// Handler handles subscription HTTP requests
type Handler struct {
	createUseCase         *usecases.CreateSubscriptionUseCase
	getUseCase            *usecases.GetSubscriptionUseCase
	updateUseCase         *usecases.UpdateSubscriptionUseCase
	cancelUseCase         *usecases.CancelSubscriptionUseCase
	listUserUseCase       *usecases.ListUserSubscriptionsUseCase
	listByDurationUseCase *usecases.ListSubscriptionsByDurationUseCase
	listPlansUseCase      *usecases.ListPlansUseCase
	logger                logger.Interface
}

// NewHandler creates a new subscription handler
func NewHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	updateUC *usecases.UpdateSubscriptionUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	listUserUC *usecases.ListUserSubscriptionsUseCase,
	listByDurationUC *usecases.ListSubscriptionsByDurationUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUseCase:         createUC,
		getUseCase:            getUC,
		updateUseCase:         updateUC,
		cancelUseCase:         cancelUC,
		listUserUseCase:       listUserUC,
		listByDurationUseCase: listByDurationUC,
		listPlansUseCase:      listPlansUC,
		logger:                logger,
	}
}

// CreateSubscriptionRequest represents the request to create a subscription.
// The monthly price is client-supplied to support promotional pricing; the
// plan tier only fixes the feature bundle.
type CreateSubscriptionRequest struct {
	UserName     string  `json:"userName" validate:"required,min=1,max=100"`
	PlanName     string  `json:"planName" validate:"required,oneof=Basic Standard Premium"`
	MonthlyPrice float64 `json:"monthlyPrice" validate:"gte=0"`
	Duration     int     `json:"duration" validate:"required,gte=1"`
}

// UpdateSubscriptionRequest represents a partial subscription update. The
// duration field is the number of months to add to the current end date;
// zero or negative values mean no extension and are not an error.
type UpdateSubscriptionRequest struct {
	PlanName     *string  `json:"planName" validate:"omitempty,oneof=Basic Standard Premium"`
	MonthlyPrice *float64 `json:"monthlyPrice" validate:"omitempty,gte=0"`
	Duration     *int     `json:"duration"`
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid or missing subscription data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateSubscriptionCommand{
		UserName:     req.UserName,
		PlanName:     req.PlanName,
		MonthlyPrice: req.MonthlyPrice,
		Duration:     req.Duration,
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

func (h *Handler) GetSubscription(c *gin.Context) {
	sid := c.Param("id")
	if !id.HasPrefix(sid, id.PrefixSubscription) {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid subscription ID format, expected sub_xxxxx")
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) UpdateSubscription(c *gin.Context) {
	sid := c.Param("id")
	if !id.HasPrefix(sid, id.PrefixSubscription) {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid subscription ID format, expected sub_xxxxx")
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update subscription", "error", err, "subscription_id", sid)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid or missing subscription data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdateSubscriptionCommand{
		SubscriptionID: sid,
		PlanName:       req.PlanName,
		MonthlyPrice:   req.MonthlyPrice,
		Duration:       req.Duration,
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated successfully", result)
}

func (h *Handler) CancelSubscription(c *gin.Context) {
	sid := c.Param("id")
	if !id.HasPrefix(sid, id.PrefixSubscription) {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid subscription ID format, expected sub_xxxxx")
		return
	}

	result, err := h.cancelUseCase.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{SubscriptionID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", result)
}

// ListSubscriptions dispatches on query parameters: ?userName= returns a
// user's history, ?duration= returns the fixed-term cohort. Exactly one
// filter must be present.
func (h *Handler) ListSubscriptions(c *gin.Context) {
	userName := c.Query("userName")
	durationStr := c.Query("duration")

	switch {
	case userName != "" && durationStr != "":
		utils.ErrorResponse(c, http.StatusBadRequest, "userName and duration filters are mutually exclusive")
	case userName != "":
		result, err := h.listUserUseCase.Execute(c.Request.Context(), userName)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "", result)
	case durationStr != "":
		months, err := strconv.Atoi(durationStr)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "duration must be an integer number of months")
			return
		}
		result, err := h.listByDurationUseCase.Execute(c.Request.Context(), months)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "", result)
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "userName or duration query parameter is required")
	}
}

func (h *Handler) ListPlans(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.listPlansUseCase.Execute())
}
