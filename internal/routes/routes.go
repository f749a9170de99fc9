package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mptsix/todaydiary/internal/config"
	"github.com/mptsix/todaydiary/internal/features/journals"
	"github.com/mptsix/todaydiary/internal/features/users"
	"github.com/mptsix/todaydiary/internal/pkg/token"
)

// SetupRoutes wires every feature under /api/v1. Journal entries are
// embedded in user documents, so the users repository backs both features.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api/v1")

	tokens := token.NewProvider(cfg.JWTSecret, cfg.JWTExpireHours)
	usersRepo := users.NewRepository(db)
	auth := users.NewAuthMiddleware(usersRepo, tokens)

	users.RegisterRoutes(api, usersRepo, tokens, cfg, auth)
	journals.RegisterRoutes(api, usersRepo, auth)
}
