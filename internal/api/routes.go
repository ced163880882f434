package api

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.Engine, staticDir string) {
	if staticDir != "" {
		r.Static("/static", staticDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/models/status", h.modelStatus)
		api.GET("/qr", h.qr)
		api.POST("/render", h.render)
		if h.local != nil {
			api.POST("/generate", h.generate)
		}
		if h.pool != nil {
			api.GET("/placeholder-images", h.listPlaceholders)
			api.POST("/placeholder-images", h.uploadPlaceholder)
		}

		s := api.Group("/sessions")
		s.POST("", h.createSession)
		s.GET("/:id", h.withSession(h.getSession))
		s.DELETE("/:id", h.deleteSession)
		s.PATCH("/:id/card", h.withSession(h.updateField))
		s.POST("/:id/attacks", h.withSession(h.addAttack))
		s.PATCH("/:id/attacks/:index", h.withSession(h.updateAttack))
		s.DELETE("/:id/attacks/:index", h.withSession(h.removeAttack))
		s.POST("/:id/upload", h.withSession(h.upload))
		s.POST("/:id/generate", h.withSession(h.generateForSession))
		s.GET("/:id/export", h.withSession(h.exportSession))
		s.GET("/:id/qr", h.withSession(h.sessionQR))
	}
}
