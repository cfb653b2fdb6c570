package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matchpoint-club/field-schedule-sync/internal/config"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/in"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/services/schedule_sync_service"
)

type ScheduleSyncController struct {
	useCase in.ScheduleSyncUseCase
	cfg     *config.Config
}

func NewScheduleSyncController(useCase in.ScheduleSyncUseCase, cfg *config.Config) *ScheduleSyncController {
	return &ScheduleSyncController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *ScheduleSyncController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.PUT("/fields/:fieldId/schedule", c.syncSchedule)
		api.GET("/fields/:fieldId/schedule", c.currentSchedule)
	}
}

func (c *ScheduleSyncController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

type CopyScheduleRequest struct {
	From domain.Weekday   `json:"from" binding:"required"`
	To   []domain.Weekday `json:"to" binding:"required,min=1"`
}

type SyncScheduleRequest struct {
	Mode domain.GenerationMode `json:"mode" binding:"required"`
	Days []domain.WeekdayRule  `json:"days" binding:"required,min=1,max=7"`
	// Копирование окон одного дня на другие применяется к снимку правил
	// до запуска синхронизации
	Copy *CopyScheduleRequest `json:"copy"`
}

func (c *ScheduleSyncController) syncSchedule(ctx *gin.Context) {
	fieldID, err := strconv.ParseInt(ctx.Param("fieldId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field ID format"})
		return
	}

	var req SyncScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Mode.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be \"fresh\" or \"resync\""})
		return
	}

	rules := req.Days
	if req.Copy != nil {
		rules = domain.CopyRule(rules, req.Copy.From, req.Copy.To)
	}

	report, err := c.useCase.SyncSchedule(ctx.Request.Context(), fieldID, rules, req.Mode)
	if err != nil {
		var validationErr *schedule_sync_service.RulesValidationError
		if errors.As(err, &validationErr) {
			days := make([]gin.H, 0, len(validationErr.Errors))
			for _, ruleErr := range validationErr.Errors {
				days = append(days, gin.H{
					"day":    ruleErr.Weekday,
					"reason": ruleErr.Reason,
				})
			}
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid weekday rules",
				"days":  days,
			})
			return
		}

		if errors.Is(err, schedule_sync_service.ErrFetchFailed) {
			// Мутаций не было, запрос можно безопасно повторить
			ctx.JSON(http.StatusBadGateway, gin.H{
				"error":     "Could not load current schedule, please retry",
				"retryable": true,
			})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"report": report,
	}
	if report.HasItemFailures() {
		response["warning"] = "Some slots may need manual review"
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *ScheduleSyncController) currentSchedule(ctx *gin.Context) {
	fieldID, err := strconv.ParseInt(ctx.Param("fieldId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field ID format"})
		return
	}

	rules, err := c.useCase.CurrentSchedule(ctx.Request.Context(), fieldID)
	if err != nil {
		if errors.Is(err, schedule_sync_service.ErrFetchFailed) {
			ctx.JSON(http.StatusBadGateway, gin.H{
				"error":     "Could not load current schedule, please retry",
				"retryable": true,
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"fieldId": fieldID,
		"days":    rules,
	})
}

func (c *ScheduleSyncController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
