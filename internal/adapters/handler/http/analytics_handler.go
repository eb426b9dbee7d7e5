package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-insights/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-insights/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
)

const defaultImpactWindowDays = 7

type AnalyticsHandler struct {
	svc *services.AnalyticsService
	now func() time.Time
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc: svc,
		now: time.Now,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/analytics")
	{
		group.GET("/heatmap", h.GetHeatmap)
		group.GET("/streaks", h.GetStreaks)
		group.GET("/trends", h.GetTrends)
		group.GET("/series/:id/impact", h.GetImpact)
		group.GET("/intensity", h.GetIntensity)
	}
}

type heatmapQuery struct {
	Year            int      `form:"year"`
	SeriesIDs       []string `form:"series_id"`
	IncludeInactive bool     `form:"include_inactive"`
}

type trendsQuery struct {
	AsOf       string `form:"as_of"`
	RecentDays int    `form:"recent_days"`
	PriorDays  int    `form:"prior_days"`
}

type impactQuery struct {
	AsOf        string  `form:"as_of"`
	WindowDays  int     `form:"window_days"`
	PerUnitCost float64 `form:"per_unit_cost"`
}

type IntensityResponse struct {
	Rate      float64          `json:"rate"`
	Intensity domain.Intensity `json:"intensity"`
}

// GetHeatmap godoc
// @Summary Yearly completion heatmap
// @Description Aggregates the selected completion series over every day of the year
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param year query int false "Calendar year, defaults to the current one"
// @Param series_id query []string false "Series to include, defaults to every active completion series" collectionFormat(multi)
// @Param include_inactive query bool false "Include paused series in the default selection"
// @Success 200 {object} domain.Heatmap
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/heatmap [get]
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var q heatmapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}
	if q.Year == 0 {
		q.Year = h.now().Year()
	}

	heatmap, err := h.svc.GetHeatmap(c.Request.Context(), services.HeatmapInput{
		UserID:          userID,
		Year:            q.Year,
		SeriesIDs:       q.SeriesIDs,
		IncludeInactive: q.IncludeInactive,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, heatmap)
}

// GetStreaks godoc
// @Summary Current and longest streaks
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param as_of query string false "Reference day (YYYY-MM-DD), defaults to today"
// @Success 200 {array} domain.StreakResult
// @Failure 400 {object} ErrorResponse
// @Router /analytics/streaks [get]
func (h *AnalyticsHandler) GetStreaks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	asOf, err := h.parseAsOf(c.Query("as_of"))
	if err != nil {
		handleError(c, err)
		return
	}

	streaks, err := h.svc.GetStreaks(c.Request.Context(), services.StreaksInput{UserID: userID, AsOf: asOf})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, streaks)
}

// GetTrends godoc
// @Summary Reduction trends of count series
// @Description Compares the average of the most recent records with the records right before them
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param as_of query string false "Reference day (YYYY-MM-DD), defaults to today"
// @Param recent_days query int false "Recent window size in records" default(7)
// @Param prior_days query int false "Prior window size in records" default(7)
// @Success 200 {array} domain.TrendResult
// @Failure 400 {object} ErrorResponse
// @Router /analytics/trends [get]
func (h *AnalyticsHandler) GetTrends(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var q trendsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}

	asOf, err := h.parseAsOf(q.AsOf)
	if err != nil {
		handleError(c, err)
		return
	}

	input := services.TrendsInput{
		UserID:           userID,
		AsOf:             asOf,
		RecentWindowDays: analytics.DefaultWindowDays,
		PriorWindowDays:  analytics.DefaultWindowDays,
	}
	if c.Query("recent_days") != "" {
		input.RecentWindowDays = q.RecentDays
	}
	if c.Query("prior_days") != "" {
		input.PriorWindowDays = q.PriorDays
	}

	trends, err := h.svc.GetTrends(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

// GetImpact godoc
// @Summary Monthly and yearly projection of a count series
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param id path string true "Series ID"
// @Param as_of query string false "Reference day (YYYY-MM-DD), defaults to today"
// @Param window_days query int false "Trailing window in days" default(7)
// @Param per_unit_cost query number false "Cost of one occurrence"
// @Success 200 {object} domain.ImpactProjection
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/series/{id}/impact [get]
func (h *AnalyticsHandler) GetImpact(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var q impactQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}

	asOf, err := h.parseAsOf(q.AsOf)
	if err != nil {
		handleError(c, err)
		return
	}

	windowDays := defaultImpactWindowDays
	if c.Query("window_days") != "" {
		windowDays = q.WindowDays
	}

	projection, err := h.svc.GetImpact(c.Request.Context(), services.ImpactInput{
		UserID:      userID,
		SeriesID:    c.Param("id"),
		AsOf:        asOf,
		WindowDays:  windowDays,
		PerUnitCost: q.PerUnitCost,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection)
}

// GetIntensity godoc
// @Summary Intensity bucket of a completion rate
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param rate query number true "Completion rate between 0 and 100"
// @Success 200 {object} IntensityResponse
// @Failure 400 {object} ErrorResponse
// @Router /analytics/intensity [get]
func (h *AnalyticsHandler) GetIntensity(c *gin.Context) {
	rate, err := strconv.ParseFloat(c.Query("rate"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "rate must be a number"})
		return
	}

	c.JSON(http.StatusOK, IntensityResponse{Rate: rate, Intensity: analytics.Classify(rate)})
}

// parseAsOf resolves the reference day. Today is only ever read here, at the edge.
func (h *AnalyticsHandler) parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return domain.DayOf(h.now()), nil
	}
	return domain.ParseDate(raw)
}
