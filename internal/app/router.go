package app

import (
	"levelup_backend/internal/config"
	"levelup_backend/internal/middleware"
	"levelup_backend/internal/model"
	"levelup_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.Health)

	// 公共路由(无需登录)
	router.POST("/api/register", c.auth.Register)
	router.POST("/api/login", c.auth.Login)

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.Profile)
		authGroup.GET("/enrollments", c.user.MyEnrollments)
		authGroup.GET("/leaderboard", c.user.Leaderboard)

		// 课程目录与进度
		authGroup.GET("/courses", c.course.ListCourses)
		authGroup.GET("/courses/:id", c.course.GetCourse)
		authGroup.POST("/courses/:id/enroll", c.course.Enroll)
		authGroup.GET("/courses/:id/progress", c.course.GetProgress)
		authGroup.GET("/courses/:id/lessons/:lessonId", c.course.GetLesson)
		authGroup.GET("/courses/:id/lessons/:lessonId/content", c.course.GetLessonContent)
		authGroup.POST("/courses/:id/lessons/:lessonId/complete", c.progress.CompleteLesson)
		authGroup.GET("/progress/stats", c.progress.GetStats)

		// 作业提交与互评
		authGroup.POST("/courses/:id/lessons/:lessonId/submissions", c.submission.Submit)
		authGroup.GET("/courses/:id/lessons/:lessonId/submissions", c.submission.ListForLesson)
		authGroup.GET("/courses/:id/lessons/:lessonId/submissions/peer-queue", c.submission.PeerQueue)
		authGroup.POST("/submissions/:id/reviews", c.submission.SubmitPeerReview)
		authGroup.GET("/submissions/:id/reviews", c.submission.ListReviews)

		// 求助请求
		authGroup.POST("/courses/:id/lessons/:lessonId/review-requests", c.review.SubmitRequest)
		authGroup.GET("/courses/:id/lessons/:lessonId/review-requests", c.review.ListByLesson)
		authGroup.POST("/review-requests/:id/reviews", c.review.SubmitFeedback)
		authGroup.POST("/review-requests/:id/resolve", c.review.Resolve)

		// 奖励与证书
		authGroup.GET("/rewards/claims", c.rewards.ListClaims)
		authGroup.POST("/rewards/claims/:level", c.rewards.ClaimTokens)
		authGroup.GET("/rewards/claims/:level/can-claim", c.rewards.CanClaim)
		authGroup.GET("/certificates", c.certificate.ListCertificates)
		authGroup.GET("/certificates/claimed", c.certificate.ListClaimed)
		authGroup.POST("/certificates/:id/claim", c.certificate.Claim)

		// 通知
		authGroup.GET("/notifications", c.notification.List)
		authGroup.POST("/notifications/:id/read", c.notification.MarkRead)
	}

	// 管理员接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.POST("/courses", c.admin.CreateCourse)
		adminGroup.POST("/certificates", c.admin.CreateCertificate)
	}
}
