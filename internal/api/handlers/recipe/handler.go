package recipe

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"recipe-finder/internal/api/middleware"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	service *recipeService.Service
	debug   bool
}

// NewHandler 創建新的食譜處理程序，debug 模式會在錯誤響應中帶出原始錯誤
func NewHandler(service *recipeService.Service, debug bool) *Handler {
	return &Handler{
		service: service,
		debug:   debug,
	}
}

// HandleCuisines 列出料理類別
func (h *Handler) HandleCuisines(c *gin.Context) {
	requestID := getRequestID(c)

	cuisines, empty, err := h.service.Cuisines(c.Request.Context())
	if err != nil {
		h.respondError(c, requestID, "cuisines", err)
		return
	}

	c.JSON(http.StatusOK, recipeService.CuisinesResult{
		Cuisines: cuisines,
		Empty:    empty,
	})
}

// HandleIngredients 列出料理類別的食材
func (h *Handler) HandleIngredients(c *gin.Context) {
	requestID := getRequestID(c)
	cuisine := strings.TrimSpace(c.Param("cuisine"))

	ingredients, err := h.service.Ingredients(c.Request.Context(), cuisine)
	if err != nil {
		h.respondError(c, requestID, "ingredients", err)
		return
	}

	c.JSON(http.StatusOK, recipeService.IngredientsResult{
		Cuisine:     cuisine,
		Ingredients: ingredients,
	})
}

// HandleSearch 依食材做全文檢索
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := getRequestID(c)

	var req recipeService.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, requestID, "search", common.NewValidationError("invalid request format: "+err.Error()))
		return
	}

	result, err := h.service.Search(c.Request.Context(), req.Ingredients)
	if err != nil {
		h.respondError(c, requestID, "search", err)
		return
	}

	middleware.RecordOutcome("search", outcomeOf(result.Empty))
	common.LogInfo("檢索完成",
		zap.String("request_id", requestID),
		zap.String("expression", result.Expression),
		zap.Int("candidates", len(result.Candidates)),
	)
	c.JSON(http.StatusOK, result)
}

// HandleRecommend 完整推薦流程
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := getRequestID(c)

	common.LogInfo("開始處理食譜推薦請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req recipeService.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, requestID, "recommend", common.NewValidationError("invalid request format: "+err.Error()))
		return
	}

	rec, err := h.service.Recommend(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, requestID, "recommend", err)
		return
	}

	middleware.RecordOutcome("recommend", outcomeOf(rec.Empty))
	c.JSON(http.StatusOK, rec)
}

// respondError 依錯誤種類轉換為 HTTP 響應
func (h *Handler) respondError(c *gin.Context, requestID, endpoint string, err error) {
	var (
		upstream *recipeService.UpstreamError
		apiErr   *common.CustomError
	)
	switch {
	case common.IsValidationError(err):
		apiErr = common.ErrInvalidRequest.WithErr(err)
	case errors.Is(err, context.DeadlineExceeded):
		apiErr = common.ErrGatewayTimeout.WithErr(err)
	case errors.As(err, &upstream):
		apiErr = common.ErrUpstreamFailure.WithErr(err)
	default:
		apiErr = common.AsCustomError(err)
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("request_id", requestID),
		zap.String("endpoint", endpoint),
		zap.String("code", apiErr.Code),
	}
	if apiErr.Status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求無效", fields...)
	}

	middleware.RecordOutcome(endpoint, apiErr.Code)
	_ = c.Error(err)

	resp := apiErr.Response(h.debug)
	if apiErr.Status < http.StatusInternalServerError {
		// 驗證錯誤的訊息對使用者有用
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(apiErr.Status, resp)
}

// getRequestID 取得請求 ID，沒有時產生一個
func getRequestID(c *gin.Context) string {
	requestID := requestid.Get(c)
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

func outcomeOf(empty *recipeService.EmptyState) string {
	if empty == nil {
		return "ok"
	}
	return string(empty.Reason)
}
