package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	router.Use(timeoutMiddleware(cfg.Server.RequestTimeout))

	// Handlers
	projectHandler := NewProjectHandler(services, log)
	skillHandler := NewSkillHandler(services, log)
	blogHandler := NewBlogHandler(services, log)
	uploadHandler := NewUploadHandler(services, cfg, log)
	feedHandler := NewFeedHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	admin := adminAuthMiddleware(&cfg.Auth, log)

	// Health check
	router.GET("/health", healthCheck(services))
	router.GET("/metrics", metricsHandler(services))

	// Syndication
	router.GET("/feed.xml", feedHandler.RSS)
	router.GET("/feed.atom", feedHandler.Atom)
	router.GET("/sitemap.xml", feedHandler.Sitemap)

	// Uploaded images
	if cfg.Upload.Dir != "" {
		router.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)
	}

	api := router.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.POST("", admin, projectHandler.Create)
			projects.PUT("/:id", admin, projectHandler.Update)
			projects.PATCH("/:id", admin, projectHandler.Update)
			projects.DELETE("/:id", admin, projectHandler.Delete)
			projects.POST("/:id/publish", admin, projectHandler.Publish)
			projects.POST("/:id/unpublish", admin, projectHandler.Unpublish)
		}

		skills := api.Group("/skills")
		{
			skills.GET("", skillHandler.List)
			skills.GET("/:id", skillHandler.Get)
			skills.POST("", admin, skillHandler.Create)
			skills.PUT("/:id", admin, skillHandler.Update)
			skills.PATCH("/:id", admin, skillHandler.Update)
			skills.DELETE("/:id", admin, skillHandler.Delete)
		}

		blogs := api.Group("/blogs")
		{
			blogs.GET("", blogHandler.List)
			blogs.GET("/:id", blogHandler.Get)
			blogs.GET("/:id/html", blogHandler.HTML)
			blogs.POST("", admin, blogHandler.Create)
			blogs.PUT("/:id", admin, blogHandler.Update)
			blogs.PATCH("/:id", admin, blogHandler.Update)
			blogs.DELETE("/:id", admin, blogHandler.Delete)
			blogs.POST("/:id/publish", admin, blogHandler.Publish)
			blogs.POST("/:id/unpublish", admin, blogHandler.Unpublish)
		}

		api.POST("/upload", admin, uploadHandler.Upload)
		api.GET("/admin/export", admin, exportHandler.StreamExport)
	}

	return router
}

// healthCheck returns the health status, 503 when the store is unreachable
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if services.Ping != nil {
			if err := services.Ping(c.Request.Context()); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "portfolio-api",
		})
	}
}

// metricsHandler returns collection sizes
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectsCount, _ := services.Export.GetCount(ctx, service.CollectionProjects)
		skillsCount, _ := services.Export.GetCount(ctx, service.CollectionSkills)
		blogsCount, _ := services.Export.GetCount(ctx, service.CollectionBlogs)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				service.CollectionProjects: projectsCount,
				service.CollectionSkills:   skillsCount,
				service.CollectionBlogs:    blogsCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
