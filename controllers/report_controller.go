package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

func (rc *ReportController) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	if rc.Cache != nil {
		if cached, err := rc.Cache.Get(ctx); err != nil {
			log.Printf("stats cache get: %v", err)
		} else if cached != nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	report, err := rc.Repo.Stats(ctx)
	if err != nil {
		writeErr(c, err)
		return
	}
	if rc.Cache != nil {
		if err := rc.Cache.Set(ctx, report); err != nil {
			log.Printf("stats cache set: %v", err)
		}
	}
	c.JSON(http.StatusOK, report)
}

func (rc *ReportController) Health(c *gin.Context) {
	n, err := rc.Repo.CountBooks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"database":   "connected",
		"booksCount": n,
	})
}
