package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Brownie44l1/agricare-api/internal/apperr"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type RouterOptions struct {
	CORSOrigins    []string
	MaxUploadBytes int64
	MaxBodyBytes   int64
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	router := gin.New()
	router.Use(
		requestID(),
		gin.Logger(),
		gin.CustomRecovery(recoverJSON),
		cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders: []string{"Content-Disposition", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/labels", h.Labels)
	router.POST("/analyze_image", limitBodySize(opts.MaxUploadBytes), h.AnalyzeImage)
	router.POST("/generate_pdf", limitBodySize(opts.MaxBodyBytes), h.GeneratePDF)

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the id assigned by the request-id middleware.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDHeader)
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.ContentLength > maxBytes {
			writeError(c, apperr.New(apperr.TooLarge, "Request body too large"))
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func recoverJSON(c *gin.Context, recovered any) {
	log.Printf("[%s] panic: %v", RequestID(c), recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": fmt.Sprintf("An internal server error occurred: %v", recovered),
	})
}
