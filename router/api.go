package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sakyarasadi/tourguideBackend/controller"
)

func addBasicRouter(engine *gin.Engine) {
	engine.GET("/health", controller.Health)
	engine.GET("/health/detailed", controller.HealthDetailed)
}

func addApiRouter(engine *gin.Engine) {

	api := engine.Group("/api")
	{
		// chatbot
		api.GET("/bot", controller.GetBotInfo)
		api.POST("/bot", controller.ProcessMessage)
		api.POST("/bot/clear-session", controller.ClearSession)
		api.GET("/bot/history", controller.GetSessionHistory)

		// one free-text entry point for both roles
		api.POST("/smart-router", controller.SmartRoute)

		// tourist operations
		tourist := api.Group("/tourist")
		{
			tourist.GET("/requests", controller.GetTourRequests)
			tourist.POST("/requests", controller.CreateTourRequest)
			tourist.GET("/requests/:request_id", controller.GetTourRequest)
			tourist.PUT("/requests/:request_id", controller.UpdateTourRequest)
			tourist.DELETE("/requests/:request_id", controller.CancelTourRequest)

			tourist.GET("/bookings", controller.GetTouristBookings)
			tourist.GET("/applications", controller.GetTouristApplications)
			tourist.POST("/applications/:application_id/accept", controller.AcceptApplication)
			tourist.POST("/ai-assist", controller.TouristAIAssist)
		}

		// guide operations
		guide := api.Group("/guide")
		{
			guide.GET("/requests", controller.GetAvailableRequests)
			guide.POST("/requests", controller.GetAvailableRequests)
			guide.GET("/requests/:request_id", controller.GetAvailableRequest)

			guide.POST("/applications", controller.SubmitApplication)
			guide.GET("/applications", controller.GetMyApplications)
			guide.GET("/applications/:application_id", controller.GetApplicationDetails)
			guide.PUT("/applications/:application_id", controller.UpdateApplication)
			guide.DELETE("/applications/:application_id", controller.WithdrawApplication)

			guide.GET("/bookings", controller.GetGuideBookings)
			guide.GET("/bookings/:booking_id", controller.GetGuideBooking)
			guide.POST("/ai-assist", controller.GuideAIAssist)
		}
	}
}
