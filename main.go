package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/PrayNoel/controllers"
	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/metrics"
	"github.com/PrayNoel/middlewares"
	"github.com/PrayNoel/services"
)

const sessionName = "pray-noel-session"

func bootstrap() {
	initializers.LoadEnv()
	initializers.InitLogger()

	db := initializers.ConnectDB()
	if err := initializers.RunMigrations(db); err != nil {
		initializers.Log.WithError(err).Fatal("failed to run migrations")
	}

	if err := services.EnsureAdmin(context.Background(), initializers.Config.BootstrapAdminEmail); err != nil {
		initializers.Log.WithError(err).Error("failed to promote bootstrap admin")
	}

	services.InitPushNotificationService()
	services.InitEmailService()
}

func newSessionStore(secret string) sessions.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   gin.Mode() == gin.ReleaseMode,
	})
	return store
}

func setupRouter(store sessions.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.Metrics)
	router.Use(sessions.Sessions(sessionName, store))

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/ping", middlewares.RateLimitMiddleware("ping", 2, 2, getKey), controllers.Ping)

	authLimit := middlewares.RateLimitMiddleware("auth", 2, 5, getKey)
	router.POST("/auth/register", authLimit, controllers.Register)
	router.POST("/auth/login", authLimit, controllers.Login)
	router.POST("/auth/logout", controllers.Logout)

	public := router.Group("/")
	public.Use(middlewares.OptionalAuth)
	public.Use(middlewares.RateLimitMiddleware("public", 20, 40, getKey))
	{
		public.GET("/", controllers.GetHome)
		public.GET("/community-impact", controllers.GetCommunityImpact)
		public.GET("/advent", controllers.GetAdvent)
		public.GET("/christmas-eve", controllers.GetChristmasEve)
		public.GET("/prayer-tree", controllers.GetPrayerTree)

		public.GET("/prayers/feed", controllers.GetFeed)
		public.GET("/prayers/answered", controllers.GetAnsweredRequests)
		public.GET("/prayers/view/:id", controllers.ViewPrayerRequest)
	}

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware("user", 10, 20, getKey))
	{
		// user routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)

		// prayer request routes
		auth.POST("/prayers/create", controllers.CreatePrayerRequest)
		auth.POST("/prayers/pray/:id", controllers.PrayForRequest)
		auth.POST("/prayers/pray-note/:id", controllers.PrayWithNote)
		auth.POST("/prayers/encourage/:id", controllers.EncourageRequest)
		auth.POST("/prayers/mark-answered/:id", controllers.MarkPrayerAnswered)
		auth.POST("/prayers/report/:id", controllers.ReportPrayerRequest)
		auth.DELETE("/prayers/:id", controllers.DeletePrayerRequest)
		auth.GET("/prayers/my-requests", controllers.GetMyRequests)
		auth.GET("/prayers/my-prayers", controllers.GetMyPrayers)

		// circle routes
		auth.POST("/circles", controllers.CreateCircle)
		auth.GET("/circles", controllers.GetMyCircles)
		auth.POST("/circles/join", controllers.JoinCircle)
		auth.GET("/circles/:id", controllers.GetCircle)
		auth.POST("/circles/:id/requests/:request_id", controllers.ShareRequestToCircle)

		//admin only routes
		admin := auth.Group("/admin")
		admin.Use(middlewares.CheckAdmin)
		{
			admin.GET("/dashboard", controllers.GetAdminDashboard)
			admin.GET("/reports", controllers.GetReports)
			admin.POST("/report/:id/review", controllers.ReviewReport)
			admin.GET("/requests", controllers.GetAdminRequests)
			admin.POST("/request/:id/toggle-public", controllers.TogglePublic)
			admin.GET("/featured-prayer", controllers.GetFeaturedPrayers)
			admin.POST("/featured-prayer", controllers.SetFeaturedPrayer)
			admin.GET("/users", controllers.GetUsers)
			admin.POST("/user/:id/toggle-admin", controllers.ToggleAdmin)
		}
	}

	return router
}

func main() {
	bootstrap()

	router := setupRouter(newSessionStore(initializers.Config.SecretKey))

	initializers.Log.WithField("port", initializers.Config.Port).Info("starting server")
	if err := router.Run(":" + initializers.Config.Port); err != nil {
		initializers.Log.WithError(err).Fatal("server stopped")
	}
}
