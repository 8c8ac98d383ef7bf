package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libtool/db"
)

type ReaderController struct{ *Srv }

func NewReaderController(s *Srv) *ReaderController { return &ReaderController{Srv: s} }

type readerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Status   string `json:"status"` // update only; ignored on create
}

func (rc *ReaderController) ListReaders(c *gin.Context) {
	readers, err := rc.Repo.ListReaders(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, readers)
}

func (rc *ReaderController) GetReader(c *gin.Context) {
	reader, err := rc.Repo.FindReaderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reader)
}

func (rc *ReaderController) CreateReader(c *gin.Context) {
	var in readerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reader, err := rc.Repo.CreateReader(c.Request.Context(), db.CreateReaderInput{
		FullName: in.FullName,
		Phone:    in.Phone,
		Email:    in.Email,
		Address:  in.Address,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	rc.invalidateStats(c)
	c.JSON(http.StatusCreated, reader)
}

func (rc *ReaderController) UpdateReader(c *gin.Context) {
	var in readerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reader, err := rc.Repo.UpdateReader(c.Request.Context(), c.Param("id"), db.UpdateReaderInput{
		FullName: in.FullName,
		Phone:    in.Phone,
		Email:    in.Email,
		Address:  in.Address,
		Status:   in.Status,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	rc.invalidateStats(c)
	c.JSON(http.StatusOK, reader)
}

func (rc *ReaderController) DeleteReader(c *gin.Context) {
	ok, err := rc.Repo.DeleteReader(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "reader not found"})
		return
	}
	rc.invalidateStats(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
