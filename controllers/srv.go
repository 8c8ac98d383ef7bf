package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"libtool/cache"
	"libtool/db"
)

// Srv carries the dependencies shared by every controller.
type Srv struct {
	Repo  *db.Repo
	Cache *cache.StatsStore
}

func NewSrv(repo *db.Repo, stats *cache.StatsStore) *Srv {
	return &Srv{Repo: repo, Cache: stats}
}

// invalidateStats drops the cached report after a successful write. Cache
// trouble is logged, never surfaced to the client.
func (s *Srv) invalidateStats(c *gin.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(c.Request.Context()); err != nil {
		log.Printf("stats cache invalidate: %v", err)
	}
}

// writeErr maps repo errors onto HTTP statuses.
func writeErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, db.ErrBookUnavailable), errors.Is(err, db.ErrHasOpenIssues):
		status = http.StatusConflict
	case errors.Is(err, db.ErrReaderNotEligible):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrInvalidInput), errors.Is(err, db.ErrInvalidReturnDate):
		status = http.StatusBadRequest
	case errors.Is(err, db.ErrConsistencyFault):
		// inventory may have drifted; keep the distinct message visible
		log.Printf("CONSISTENCY FAULT: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
