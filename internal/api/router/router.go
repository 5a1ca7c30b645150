package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/config"
	"github.com/jyjuk/backend-internship/internal/api/handler"
	"github.com/jyjuk/backend-internship/internal/api/middleware"
	"github.com/jyjuk/backend-internship/pkg/jwt"
	"github.com/jyjuk/backend-internship/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
//
// 路由直接挂在根路径上（无 /api/v1 前缀），与前端既有调用保持一致。
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 认证模块（无需认证）──
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// ── WebSocket 通知推送（Token 经 query 参数校验）──
	r.GET("/ws/notifications", h.WS.Notifications)

	// ── 需要认证的路由 ──
	authorized := r.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.Me)

		// 公司模块
		companies := authorized.Group("/companies")
		{
			companies.POST("", h.Company.Create)
			companies.GET("/:id", h.Company.Get)
			companies.POST("/:id/members", h.Company.AddMember)
			companies.GET("/:id/members", h.Company.ListMembers)
		}

		// 测验模块
		quizzes := authorized.Group("/quizzes")
		{
			quizzes.POST("", h.Quiz.Create)
			quizzes.GET("/:id", h.Quiz.Get)
			quizzes.POST("/:id/attempts", h.Quiz.SubmitAttempt)
		}

		// 通知模块
		notifications := authorized.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
			notifications.PUT("/mark-all-read", h.Notification.MarkAllRead)
		}

		// 定时任务模块
		authorized.POST("/scheduler/trigger-quiz-reminder", h.Scheduler.TriggerQuizReminder)

		// 导出模块
		export := authorized.Group("/export")
		{
			export.GET("/quiz-results", h.Export.ExportQuizResults)
		}
	}

	return r
}
