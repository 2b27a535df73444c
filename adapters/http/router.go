package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/hireboard/internal/domain/user"
	"github.com/khoahotran/hireboard/pkg/auth"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type Handlers struct {
	Auth       *AuthHandler
	Company    *CompanyHandler
	Experience *ExperienceHandler
	Health     *HealthHandler
	Job        *JobHandler
	Skill      *SkillHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig, h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", HeaderRequestID}
	corsConfig.ExposeHeaders = []string{HeaderRequestID}
	router.Use(cors.New(corsConfig))

	router.Use(TimeoutMiddleware(cfg.RequestTimeout))
	router.Use(ErrorMiddleware(log))

	authMiddleware := AuthMiddleware(jwtSvc, log)
	employerOnly := RequireRole(user.RoleEmployer, user.RoleAdmin)

	api := router.Group("/api")
	{
		api.GET("/health", h.Health.Health)
		api.GET("/health/db", h.Health.CheckDB)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
		}

		companies := api.Group("/companies")
		{
			companies.POST("", h.Company.CreateCompany)
			companies.GET("", h.Company.ListCompanies)
			companies.GET("/:id", h.Company.GetCompany)
			companies.POST("/:id/logo", authMiddleware, employerOnly, h.Company.UploadLogo)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", h.Job.ListPublicJobs)
			jobs.GET("/:id", h.Job.GetPublicJob)
			jobs.POST("", authMiddleware, employerOnly, h.Job.CreateJob)
		}

		api.GET("/skills", h.Skill.ListSkills)

		me := api.Group("/me")
		me.Use(authMiddleware)
		{
			me.GET("/experiences", h.Experience.ListMyExperiences)
			me.PUT("/experiences", h.Experience.UpdateMyExperiences)
		}
	}

	return router
}
