package app

import (
	"net/http"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/dto"
	"taskmanager/internal/handlers"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repo"
	"taskmanager/internal/service"
	"taskmanager/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Stores is the set of repositories one storage backend provides.
type Stores struct {
	Users      repo.UserRepo
	Categories repo.CategoryRepo
	Tags       repo.TagRepo
	Tasks      repo.TaskRepo
	Subtasks   repo.SubtaskRepo
}

// Deps are the backends the router is built on. BcryptCost <= 0 means the
// bcrypt default.
type Deps struct {
	Stores     Stores
	Redis      *redis.Client
	Logger     *logrus.Logger
	BcryptCost int
}

// NewRouter builds the engine with middleware and all routes.
func NewRouter(cfg config.Config, d Deps) *gin.Engine {
	dto.RegisterValidators()
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	origins := utils.SplitCSV(cfg.HTTP.CORSAllowOrigins)
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	Setup(r, cfg, d)
	return r
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, d Deps) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group(cfg.HTTP.BasePath)

	tokens := auth.NewTokenStore(d.Redis)
	userSvc := service.NewUserService(d.Stores.Users, d.BcryptCost)
	authHandler := handlers.NewAuthHandler(tokens, userSvc)
	api.GET("/simple-test/", handlers.SimpleTest)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireToken(tokens, userSvc))
	protected.GET("/test-auth/", authHandler.TestAuth)
	protected.DELETE("/account/", authHandler.DeleteAccount)

	registerCategoryRoutes(protected, handlers.NewCategoryHandler(service.NewCategoryService(d.Stores.Categories)))
	registerTagRoutes(protected, handlers.NewTagHandler(service.NewTagService(d.Stores.Tags)))
	taskSvc := service.NewTaskService(d.Stores.Tasks, d.Stores.Categories, d.Stores.Tags)
	registerTaskRoutes(protected, handlers.NewTaskHandler(taskSvc))
	registerSubtaskRoutes(protected, handlers.NewSubtaskHandler(service.NewSubtaskService(d.Stores.Subtasks)))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Task Manager API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"openapi": "/swagger-doc.json",
			"health":  "/health",
			"metrics": "/metrics",
			"api":     cfg.HTTP.BasePath,
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "API docs are not available."})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/register/", h.Register)
	api.POST("/login/", h.Login)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler) {
	api.GET("/categories/", h.List)
	api.POST("/categories/", h.Create)
	api.GET("/categories/:id/", h.GetByID)
	api.PUT("/categories/:id/", h.Replace)
	api.PATCH("/categories/:id/", h.Patch)
	api.DELETE("/categories/:id/", h.Delete)
}

func registerTagRoutes(api *gin.RouterGroup, h *handlers.TagHandler) {
	api.GET("/tags/", h.List)
	api.POST("/tags/", h.Create)
	api.GET("/tags/:id/", h.GetByID)
	api.PUT("/tags/:id/", h.Replace)
	api.PATCH("/tags/:id/", h.Patch)
	api.DELETE("/tags/:id/", h.Delete)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/tasks/", h.List)
	api.POST("/tasks/", h.Create)
	api.GET("/tasks/:id/", h.GetByID)
	api.PUT("/tasks/:id/", h.Replace)
	api.PATCH("/tasks/:id/", h.Patch)
	api.DELETE("/tasks/:id/", h.Delete)
}

func registerSubtaskRoutes(api *gin.RouterGroup, h *handlers.SubtaskHandler) {
	api.GET("/subtasks/", h.List)
	api.POST("/subtasks/", h.Create)
	api.GET("/subtasks/:id/", h.GetByID)
	api.PUT("/subtasks/:id/", h.Replace)
	api.PATCH("/subtasks/:id/", h.Patch)
	api.DELETE("/subtasks/:id/", h.Delete)
}
