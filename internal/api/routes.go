package api

import (
	"github.com/gin-gonic/gin"

	"github.com/youruser/adforge/internal/config"
)

// NewRouter builds the engine with middleware and all routes.
func NewRouter(cfg config.Config, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(), CORS(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", root)
	r.GET("/health", health)
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/generate-ad-from-url", h.generateAdFromURL)
		api.POST("/generate-motion-effect", h.generateMotionEffect)
		api.POST("/creatives", h.generateCreatives)
		api.GET("/qr", qrHandler)
	}
}
