package routes

import (
	"pairdiary/api/handlers"
	"pairdiary/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", middleware.RequireAuth(), handlers.Logout)
		auth.GET("/me", middleware.RequireAuth(), handlers.Me)
	}

	pairs := router.Group("/pairs", middleware.RequireAuth())
	{
		pairs.POST("/create", handlers.CreatePair)
		pairs.POST("/join", handlers.JoinPair)
		pairs.GET("", handlers.ListPairs)
		pairs.GET("/:id", handlers.GetPair)
		pairs.DELETE("/:id", handlers.DeletePair)
	}

	diaries := router.Group("/diaries", middleware.RequireAuth())
	{
		diaries.GET("/:pairId", handlers.ListDiaries)
		diaries.GET("/:pairId/drafts", handlers.ListDrafts)
		diaries.GET("/:pairId/calendar/:year/:month", handlers.DiaryCalendar)
		diaries.GET("/:pairId/:diaryId", handlers.GetDiary)
		diaries.POST("/:pairId", handlers.CreateDiary)
		diaries.PUT("/:pairId/:diaryId", handlers.UpdateDiary)
		diaries.DELETE("/:pairId/:diaryId", handlers.DeleteDiary)
	}

	public := router.Group("/public-diaries")
	{
		public.GET("/:accountId", handlers.ListPublicDiaries)
		public.GET("/:accountId/:diaryId", middleware.OptionalAuth(), handlers.GetPublicDiary)
		public.GET("", middleware.RequireAuth(), handlers.ListOwnPublicDiaries)
		public.POST("", middleware.RequireAuth(), handlers.CreatePublicDiary)
		public.PUT("/:diaryId", middleware.RequireAuth(), handlers.UpdatePublicDiary)
		public.DELETE("/:diaryId", middleware.RequireAuth(), handlers.DeletePublicDiary)
	}

	friends := router.Group("/friends", middleware.RequireAuth())
	{
		friends.GET("", handlers.ListFriends)
		friends.GET("/requests", handlers.ListFriendRequests)
		friends.GET("/search/:accountId", handlers.SearchUser)
		friends.POST("/request", handlers.SendFriendRequest)
		friends.POST("/accept/:friendshipId", handlers.AcceptFriendRequest)
		friends.POST("/reject/:friendshipId", handlers.RejectFriendRequest)
		friends.DELETE("/:friendshipId", handlers.RemoveFriend)
	}
}
