// Package routes maps URLs onto controllers.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yudha/sipkl/internal/app/controllers"
	"github.com/yudha/sipkl/internal/middleware"
	"github.com/yudha/sipkl/internal/pkg/auth"
)

// SetupRouter configures all application routes. Everything except login
// sits behind the bearer-token middleware, stored documents included.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	pklController *controllers.PKLController,
	jurnalController *controllers.JurnalController,
	fileController *controllers.FileController,
	jwtService *auth.JWTService,
) {
	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", authController.Login)

	authenticated := v1.Group("")
	authenticated.Use(middleware.Authentication(jwtService))

	pkl := authenticated.Group("/pkl")
	{
		pkl.GET("", pklController.List)
		pkl.GET("/create-data", pklController.GetCreateData)
		pkl.POST("", pklController.Create)
		pkl.GET("/:id", pklController.GetDetail)
		pkl.PUT("/:id", pklController.Update)
		pkl.PATCH("/:id/status", pklController.UpdateStatus)
		pkl.POST("/:id/mulai-finalisasi", pklController.StartFinalization)
		pkl.POST("/:id/finalisasi", pklController.Finalize)
		pkl.GET("/:id/timeline", pklController.ListTimeline)
		pkl.GET("/:id/jurnal", jurnalController.List)
		pkl.POST("/:id/jurnal", jurnalController.Create)
	}

	jurnal := authenticated.Group("/jurnal")
	{
		jurnal.GET("/:id", jurnalController.GetDetail)
		jurnal.PUT("/:id", jurnalController.Update)
		jurnal.PATCH("/:id/status", jurnalController.UpdateStatus)
		jurnal.GET("/:id/timeline", jurnalController.ListTimeline)
	}

	authenticated.GET("/files/*path", fileController.Serve)
}
