package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/controllers"
	"github.com/yigit/counselordesk/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	importController *controllers.ImportController,
	talkController *controllers.TalkController,
	dormController *controllers.DormController,
	developmentController *controllers.DevelopmentController,
	counselorController *controllers.CounselorController,
	overviewController *controllers.OverviewController,
	syncHandler *websocket.Handler,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Roster
	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/picker", studentController.PickStudents)

		// Static segments take precedence over :id
		students.POST("/import", importController.ImportStudents)
		students.POST("/import/preview", importController.PreviewImport)
		students.GET("/import/template", importController.DownloadTemplate)

		students.GET("/:id", studentController.GetStudent)
		students.PATCH("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.POST("/:id/tags/toggle", studentController.ToggleTag)
		students.PUT("/:id/tags", studentController.SetTags)
		students.POST("/:id/events", studentController.AppendEvent)
	}

	// Counseling
	talks := v1.Group("/talks")
	{
		talks.GET("", talkController.ListStudentsWithTalks)
		talks.POST("", talkController.RecordTalk)
		talks.GET("/students/:id", talkController.TalksForStudent)
	}

	// Dormitories
	dorms := v1.Group("/dorms")
	{
		dorms.GET("", dormController.Board)
		dorms.GET("/:dormId/latest", dormController.Latest)
		dorms.GET("/:dormId/history", dormController.History)
		dorms.POST("/:dormId/inspections", dormController.RecordInspection)
	}

	// Development board
	v1.GET("/honors", developmentController.ListHonors)
	v1.POST("/honors", developmentController.RecordHonor)
	v1.GET("/stories", developmentController.ListStories)
	v1.POST("/stories", developmentController.RecordStory)

	// Overview
	v1.GET("/dashboard", overviewController.Dashboard)
	v1.GET("/facets", overviewController.Facets)

	// Counselor profile
	v1.GET("/counselor", counselorController.GetProfile)
	v1.PUT("/counselor", counselorController.UpdateProfile)

	// Sync indicator and change feed
	sync := v1.Group("/sync")
	{
		sync.GET("/status", syncHandler.HandleStatus)
		sync.GET("/changes", syncHandler.HandleChanges)
		sync.GET("/ws", syncHandler.HandleConnection)
	}
}
