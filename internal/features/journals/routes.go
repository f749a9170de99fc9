package journals

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the journal endpoints. The auth middleware and the
// backing store are created by the caller: journal entries live inside user
// documents, so the store is the users repository.
func RegisterRoutes(router *gin.RouterGroup, store Store, auth gin.HandlerFunc) {
	handler := NewHandler(NewService(store))

	journal := router.Group("/journal")
	journal.Use(auth)
	{
		journal.POST("", handler.Register)
		journal.PUT("", handler.Edit)
		journal.GET("/:time", handler.Get)
		journal.POST("/picture", handler.AttachPicture)
	}
}
