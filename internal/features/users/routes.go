package users

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mptsix/todaydiary/internal/config"
	"github.com/mptsix/todaydiary/internal/pkg/cloudinary"
	"github.com/mptsix/todaydiary/internal/pkg/logger"
	"github.com/mptsix/todaydiary/internal/pkg/ratelimit"
	"github.com/mptsix/todaydiary/internal/pkg/token"
)

// RegisterRoutes wires the user endpoints. Registration and login are rate
// limited by client IP; everything else requires a resolved token.
func RegisterRoutes(router *gin.RouterGroup, repo *Repository, tokens *token.Provider, cfg *config.Config, auth gin.HandlerFunc) {
	media, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "todaydiary")
	if err != nil {
		logger.Warn("cloudinary not configured, profile picture uploads disabled: %v", err)
		media = nil
	}

	service := NewService(repo, tokens, media)
	handler := NewHandler(service)

	if cfg.AppEnv == "development" && cfg.DemoUserPassword != "" {
		if err := service.EnsureDemoUser(context.Background(), cfg.DemoUserID, cfg.DemoUserPassword); err != nil {
			logger.Warn("failed to register demo user: %v", err)
		}
	}

	credentialLimiter := ratelimit.New(10, time.Minute)
	credentialLimiter.StartCleanup(5 * time.Minute)
	limited := ratelimit.Middleware(credentialLimiter)

	router.POST("/user", limited, handler.Register)
	router.POST("/login", limited, handler.Login)

	user := router.Group("/user")
	user.Use(auth)
	{
		user.PUT("", handler.ChangePassword)
		user.DELETE("", handler.RemoveAccount)
		user.GET("/sealed", handler.GetSealed)
		user.GET("/follow", handler.GetFollowing)
		user.POST("/follow/:id", handler.Follow)
		user.DELETE("/follow/:id", handler.Unfollow)
		user.POST("/picture", handler.UploadProfilePicture)
		user.GET("/:name", handler.SearchByName)
	}
}
