package routes

import (
	"github.com/gin-gonic/gin"

	"libtool/app"
	"libtool/cache"
	"libtool/controllers"
	"libtool/db"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.NewSrv(
		db.NewRepo(a.DB),
		cache.NewStatsStore(a.RDB, a.Config.StatsCacheTTL),
	)
	bookCtl := controllers.NewBookController(s)
	readerCtl := controllers.NewReaderController(s)
	issueCtl := controllers.NewIssueController(s)
	reportCtl := controllers.NewReportController(s)

	api := r.Group("/api")

	books := api.Group("/books")
	{
		books.GET("", bookCtl.ListBooks)
		books.POST("", bookCtl.CreateBook)
		books.GET("/:id", bookCtl.GetBook)
		books.PUT("/:id", bookCtl.UpdateBook)
		books.DELETE("/:id", bookCtl.DeleteBook)
	}

	readers := api.Group("/readers")
	{
		readers.GET("", readerCtl.ListReaders)
		readers.POST("", readerCtl.CreateReader)
		readers.GET("/:id", readerCtl.GetReader)
		readers.PUT("/:id", readerCtl.UpdateReader)
		readers.DELETE("/:id", readerCtl.DeleteReader)
	}

	issues := api.Group("/issues")
	{
		issues.GET("", issueCtl.ListIssues)
		issues.POST("", issueCtl.IssueBook)
		issues.POST("/check-overdue", issueCtl.CheckOverdue)
		issues.POST("/:id/return", issueCtl.ReturnBook)
		issues.POST("/:id/mark-overdue", issueCtl.MarkOverdue)
	}

	api.GET("/reports/stats", reportCtl.Stats)
	api.GET("/health", reportCtl.Health)
}
