package routes

import (
	"TaskNestGo/controllers"
	"TaskNestGo/middleware"
	"TaskNestGo/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册路由
func RegisterRoutes(r *gin.Engine, auth *services.AuthService, authController *controllers.AuthController, taskController *controllers.TaskController) {
	// 公开路由（无需认证）
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		// 登出是幂等的，无会话时同样返回成功
		public.POST("/logout", authController.Logout)
	}

	// 需要认证的路由
	private := r.Group("/api")
	private.Use(middleware.AuthMiddleware(auth)) // 应用认证中间件
	{
		private.GET("/user", authController.GetUser)
		private.GET("/tasks", taskController.ListTasks)
		private.POST("/tasks", taskController.CreateTask)
		private.PATCH("/tasks/:id", taskController.UpdateTask)
		private.DELETE("/tasks/:id", taskController.DeleteTask)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
