package api

import (
	"Murmur/internal/api/middleware"
	"Murmur/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS & Metrics
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		userGroup := apiGroup.Group("/users")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.GET("", group.UserHandler.SearchUser)
			userGroup.GET("/:user_id", group.UserHandler.GetUser)
			userGroup.DELETE("/:user_id", group.UserHandler.DeleteUser)
			userGroup.GET("/:user_id/following", group.UserHandler.GetFollowing)
			userGroup.POST("/:user_id/follow/:target_id", group.UserHandler.Follow)
		}

		// 同一位置的路径参数统一叫 id，/create 下是用户 id，其余是帖子 id
		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/:id", group.PostHandler.GetPost)
			postGroup.GET("/:id/likes", group.PostHandler.GetLikeCount)
			postGroup.POST("/:id/create", group.PostHandler.CreatePost)
			postGroup.POST("/:id/like/:user_id", group.LikeHandler.LikePostByPost)
		}

		likeGroup := apiGroup.Group("/likes")
		{
			likeGroup.POST("/:user_id/like/:post_id", group.LikeHandler.LikePost)
			likeGroup.DELETE("/:user_id/unlike/:post_id", group.LikeHandler.UnlikePost)
		}
	}

	return r
}
