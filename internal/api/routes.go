package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, corsOrigins []string) {
	router.Use(gin.Recovery(), RequestLogger(handler.logger), CORS(corsOrigins))

	api := router.Group("/api")
	{
		api.GET("/data", handler.GetData)
		api.POST("/data", handler.SaveData)
		api.POST("/upload", handler.Upload)

		api.GET("/projects", handler.GetProjects)
		api.POST("/projects", handler.CreateProject)
		api.GET("/projects/:id", handler.GetProject)
		api.PUT("/projects/:id", handler.UpdateProject)
		api.DELETE("/projects/:id", handler.DeleteProject)

		api.POST("/booking", handler.CreateBooking)
		api.GET("/bookings", handler.ListBookings)
		api.GET("/health", handler.Health)
	}

	router.Static("/uploads", handler.media.Dir())
}
