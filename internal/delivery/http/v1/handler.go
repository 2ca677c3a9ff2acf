package v1

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-store/internal/services"
)

type Handler interface {
	HandleRequestID(c *gin.Context)
	HandleAccessLog(c *gin.Context)
	HandleMetrics(c *gin.Context)

	HandleIndex(c *gin.Context)
	HandleHealth(c *gin.Context)
	HandleReady(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetTasksByStatus(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger       zerolog.Logger
	tasks        services.TaskService
	indexTmpl    *template.Template
	readyTimeout time.Duration
}

// New builds the handler. readyTimeout bounds the store ping behind /readyz.
func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	readyTimeout time.Duration,
) Handler {
	return &handlerImpl{
		logger:       logger,
		tasks:        taskService,
		indexTmpl:    mustParseIndexTemplate(),
		readyTimeout: readyTimeout,
	}
}

// RegisterRoutes mounts the page, probe and task API routes on router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/", h.HandleIndex)
	router.GET("/healthz", h.HandleHealth)
	router.GET("/readyz", h.HandleReady)

	tasksRouter := router.Group("/api/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
	tasksRouter.GET("/status/:status", h.HandleGetTasksByStatus)
}
