// Package httpapi exposes the load profile service to browsers as a small
// JSON API. Every handler delegates to the gRPC service implementation so
// validation and error semantics match the gRPC surface.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tejusbharadwaj/gridcast/internal/models"
	pb "github.com/tejusbharadwaj/gridcast/proto"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GranularityOption is one entry of the view-selection control.
type GranularityOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type profileQuery struct {
	Start       time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End         time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Granularity string    `form:"granularity"`
	Seed        *int64    `form:"seed"`
}

type forecastQuery struct {
	Horizon float64 `form:"horizon"`
}

// Options configures the router.
type Options struct {
	RateLimit      float64
	RateLimitBurst int
	Gatherer       prometheus.Gatherer
}

// Handler serves the gateway endpoints.
type Handler struct {
	svc pb.LoadProfileServiceServer
}

// NewRouter builds the gin router for svc.
func NewRouter(svc pb.LoadProfileServiceServer, logger *logrus.Logger, opts Options) *gin.Engine {
	h := &Handler{svc: svc}

	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(RequestID())
	router.Use(Logger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	if opts.RateLimit > 0 {
		v1.Use(RateLimit(opts.RateLimit, opts.RateLimitBurst))
	}
	v1.GET("/granularities", h.Granularities)
	v1.GET("/profile", h.Profile)
	v1.GET("/forecast", h.ForecastNow)
	v1.POST("/forecast", h.Forecast)
	v1.GET("/live", h.Live)
	v1.POST("/predict", h.Predict)

	return router
}

// Granularities handles GET /api/v1/granularities
func (h *Handler) Granularities(c *gin.Context) {
	options := make([]GranularityOption, 0, len(models.Granularities))
	for _, g := range models.Granularities {
		options = append(options, GranularityOption{Value: string(g), Label: g.Label()})
	}
	c.JSON(http.StatusOK, options)
}

// Profile handles GET /api/v1/profile
func (h *Handler) Profile(c *gin.Context) {
	var q profileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if q.Granularity == "" {
		q.Granularity = string(models.GranularityFine)
	}

	resp, err := h.svc.GetProfile(c.Request.Context(), &pb.ProfileRequest{
		Start:       q.Start,
		End:         q.End,
		Granularity: q.Granularity,
		Seed:        q.Seed,
	})
	if err != nil {
		abortWithStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForecastNow handles GET /api/v1/forecast
func (h *Handler) ForecastNow(c *gin.Context) {
	var q forecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.svc.Forecast(c.Request.Context(), &pb.ForecastRequest{HorizonHours: q.Horizon})
	if err != nil {
		abortWithStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Forecast handles POST /api/v1/forecast
func (h *Handler) Forecast(c *gin.Context) {
	var req pb.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.svc.Forecast(c.Request.Context(), &req)
	if err != nil {
		abortWithStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live handles GET /api/v1/live
func (h *Handler) Live(c *gin.Context) {
	resp, err := h.svc.GetLiveView(c.Request.Context(), &pb.LiveViewRequest{})
	if err != nil {
		abortWithStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Predict handles POST /api/v1/predict
func (h *Handler) Predict(c *gin.Context) {
	var req pb.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.svc.Predict(c.Request.Context(), &req)
	if err != nil {
		abortWithStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prediction": resp.Prediction})
}

// abortWithStatus maps a gRPC status error onto the HTTP error envelope.
func abortWithStatus(c *gin.Context, err error) {
	st := status.Convert(err)
	switch st.Code() {
	case codes.InvalidArgument:
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", st.Message())
	case codes.ResourceExhausted:
		abortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", st.Message())
	case codes.Unavailable:
		abortWithError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", st.Message())
	default:
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", st.Message())
	}
}

func abortWithError(c *gin.Context, httpStatus int, code, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}
