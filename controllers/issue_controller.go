package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libtool/db"
)

type IssueController struct{ *Srv }

func NewIssueController(s *Srv) *IssueController { return &IssueController{Srv: s} }

type issueRequest struct {
	BookID            string `json:"bookId" binding:"required"`
	ReaderID          string `json:"readerId" binding:"required"`
	PlannedReturnDate string `json:"plannedReturnDate" binding:"required"` // YYYY-MM-DD
}

func (ic *IssueController) ListIssues(c *gin.Context) {
	issues, err := ic.Repo.ListIssues(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

func (ic *IssueController) IssueBook(c *gin.Context) {
	var in issueRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	planned, err := time.Parse(time.DateOnly, in.PlannedReturnDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plannedReturnDate must be YYYY-MM-DD"})
		return
	}

	issue, err := ic.Repo.IssueBook(c.Request.Context(), db.IssueBookInput{
		BookID:            in.BookID,
		ReaderID:          in.ReaderID,
		PlannedReturnDate: planned,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	ic.invalidateStats(c)
	c.JSON(http.StatusCreated, issue)
}

func (ic *IssueController) ReturnBook(c *gin.Context) {
	ok, err := ic.Repo.ReturnBook(c.Request.Context(), c.Param("id"), db.Today())
	if err != nil {
		writeErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "issue not found or already returned"})
		return
	}
	ic.invalidateStats(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CheckOverdue is the manual trigger for the overdue sweep; the same sweep
// runs at startup and on the periodic ticker.
func (ic *IssueController) CheckOverdue(c *gin.Context) {
	n, err := ic.Repo.SweepOverdue(c.Request.Context(), db.Today())
	if err != nil {
		writeErr(c, err)
		return
	}
	if n > 0 {
		ic.invalidateStats(c)
	}
	c.JSON(http.StatusOK, gin.H{"updatedCount": n})
}

func (ic *IssueController) MarkOverdue(c *gin.Context) {
	ok, err := ic.Repo.MarkOverdue(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "issue not found or not currently issued"})
		return
	}
	ic.invalidateStats(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
