package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Import endpoints
	if cfg.Importer != nil {
		importController := NewImportController(cfg.Importer, cfg.TaskQueue, cfg.AuditReader, cfg.MaxUploadBytes, cfg.DefaultAddedBy)
		router.POST("/api/import/:entity", importController.Import)
		router.POST("/api/import/:entity/async", importController.ImportAsync)
		router.GET("/api/imports", importController.ListImports)
		router.GET("/api/imports/:batchId", importController.GetImport)
	}

	// Listing endpoints
	records := NewRecordsController(cfg.Members, cfg.Projects, cfg.Events)
	if cfg.Members != nil {
		router.GET("/api/members", records.ListMembers)
	}
	if cfg.Projects != nil {
		router.GET("/api/projects", records.ListProjects)
	}
	if cfg.Events != nil {
		router.GET("/api/events", records.ListEvents)
	}

	// Task status endpoint
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
	}

	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	return router
}
