package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libtool/db"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

type bookRequest struct {
	Name   string `json:"name" binding:"required"`
	Author string `json:"author" binding:"required"`
	Genre  string `json:"genre"`
	Count  *int   `json:"count"` // nil means one copy
}

func (bc *BookController) ListBooks(c *gin.Context) {
	books, err := bc.Repo.ListBooks(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (bc *BookController) GetBook(c *gin.Context) {
	book, err := bc.Repo.FindBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var in bookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count := 1
	if in.Count != nil {
		count = *in.Count
	}
	book, err := bc.Repo.CreateBook(c.Request.Context(), db.CreateBookInput{
		Name:   in.Name,
		Author: in.Author,
		Genre:  in.Genre,
		Count:  count,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	bc.invalidateStats(c)
	c.JSON(http.StatusCreated, book)
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	var in bookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count := 1
	if in.Count != nil {
		count = *in.Count
	}
	book, err := bc.Repo.UpdateBook(c.Request.Context(), c.Param("id"), db.UpdateBookInput{
		Name:   in.Name,
		Author: in.Author,
		Genre:  in.Genre,
		Count:  count,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	bc.invalidateStats(c)
	c.JSON(http.StatusOK, book)
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	ok, err := bc.Repo.DeleteBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	bc.invalidateStats(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
