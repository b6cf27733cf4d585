package api

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/auth"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Users         *service.UserService
	Videos        *service.VideoService
	Comments      *service.CommentService
	Tweets        *service.TweetService
	Likes         *service.LikeService
	Playlists     *service.PlaylistService
	Subscriptions *service.SubscriptionService
	Reads         *service.ReadModel
}

type RouterConfig struct {
	// CORSOrigins lists allowed browser origins. Empty allows any origin.
	CORSOrigins    []string
	SecureCookies  bool
	MaxUploadBytes int64
	HealthChecks   map[string]HealthCheck
}

// NewRouter builds the engine with every /api/v1 route registered.
func NewRouter(svc Services, tokens *auth.TokenIssuer, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Error(c, logger, apperr.Internal("Something went wrong", fmt.Errorf("panic: %v", recovered)))
	}))
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	var (
		authH         = NewAuthHandler(svc.Users, tokens, cfg.SecureCookies, logger)
		userH         = NewUserHandler(svc.Users, svc.Reads, logger)
		videoH        = NewVideoHandler(svc.Videos, logger)
		commentH      = NewCommentHandler(svc.Comments, svc.Reads, logger)
		likeH         = NewLikeHandler(svc.Likes, logger)
		playlistH     = NewPlaylistHandler(svc.Playlists, logger)
		subscriptionH = NewSubscriptionHandler(svc.Subscriptions, logger)
		tweetH        = NewTweetHandler(svc.Tweets, logger)
		dashboardH    = NewDashboardHandler(svc.Reads, svc.Videos, logger)
		healthH       = NewHealthHandler(cfg.HealthChecks, logger)
	)

	requireAuth := middleware.RequireAuth(tokens, logger)
	optionalAuth := middleware.OptionalAuth(tokens)
	limitBody := middleware.LimitBody(cfg.MaxUploadBytes)

	v1 := r.Group("/api/v1")
	v1.GET("/healthcheck", healthH.Check)

	users := v1.Group("/users")
	users.POST("/register", limitBody, authH.Register)
	users.POST("/login", authH.Login)
	users.POST("/refresh-token", authH.RefreshToken)
	users.GET("/c/:username", optionalAuth, userH.ChannelProfile)
	{
		me := users.Group("", requireAuth)
		me.POST("/logout", authH.Logout)
		me.POST("/change-password", userH.ChangePassword)
		me.GET("/current-user", userH.CurrentUser)
		me.PATCH("/update-account", userH.UpdateAccount)
		me.PATCH("/avatar", limitBody, userH.UpdateAvatar)
		me.PATCH("/cover-image", limitBody, userH.UpdateCoverImage)
		me.GET("/history", userH.WatchHistory)
	}

	videos := v1.Group("/videos")
	videos.GET("", optionalAuth, videoH.List)
	videos.GET("/:videoId", optionalAuth, videoH.Get)
	videos.POST("/view/:videoId", optionalAuth, videoH.IncrementView)
	videos.POST("", requireAuth, limitBody, videoH.Publish)
	videos.PATCH("/:videoId", requireAuth, limitBody, videoH.Update)
	videos.DELETE("/:videoId", requireAuth, videoH.Delete)
	videos.PATCH("/toggle/publish/:videoId", requireAuth, videoH.TogglePublish)

	comments := v1.Group("/comments")
	comments.GET("/:videoId", optionalAuth, commentH.List)
	comments.POST("/:videoId", requireAuth, commentH.Add)
	comments.PATCH("/c/:commentId", requireAuth, commentH.Update)
	comments.DELETE("/c/:commentId", requireAuth, commentH.Delete)

	likes := v1.Group("/likes", requireAuth)
	likes.POST("/toggle/v/:videoId", likeH.Toggle(models.LikeTargetVideo, "videoId"))
	likes.POST("/toggle/c/:commentId", likeH.Toggle(models.LikeTargetComment, "commentId"))
	likes.POST("/toggle/t/:tweetId", likeH.Toggle(models.LikeTargetTweet, "tweetId"))
	likes.GET("/videos", likeH.LikedVideos)

	playlists := v1.Group("/playlist", requireAuth)
	playlists.POST("", playlistH.Create)
	playlists.GET("/user/:userId", playlistH.UserPlaylists)
	playlists.GET("/:playlistId", playlistH.Get)
	playlists.PATCH("/:playlistId", playlistH.Update)
	playlists.DELETE("/:playlistId", playlistH.Delete)
	playlists.PATCH("/add/:videoId/:playlistId", playlistH.AddVideo)
	playlists.PATCH("/remove/:videoId/:playlistId", playlistH.RemoveVideo)

	subscriptions := v1.Group("/subscriptions", requireAuth)
	subscriptions.POST("/c/:channelId", subscriptionH.Toggle)
	subscriptions.GET("/c/:channelId", subscriptionH.Subscribers)
	subscriptions.GET("/u/:subscriberId", subscriptionH.SubscribedChannels)

	tweets := v1.Group("/tweets", requireAuth)
	tweets.POST("", tweetH.Create)
	tweets.GET("/user/:userId", tweetH.UserTweets)
	tweets.PATCH("/:tweetId", tweetH.Update)
	tweets.DELETE("/:tweetId", tweetH.Delete)

	dashboard := v1.Group("/dashboard", requireAuth)
	dashboard.GET("/stats", dashboardH.Stats)
	dashboard.GET("/videos", dashboardH.Videos)

	return r
}

// corsConfig allows credentials, so "any origin" is expressed by echoing
// the request origin back rather than with a literal "*".
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
