package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/middleware"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
	"github.com/yudha/sipkl/internal/pkg/filestorage"
)

// FileController serves stored documents. Authentication applies like
// everywhere else; traversal is defused by the storage resolver.
type FileController struct {
	storage *filestorage.LocalStorage
}

// NewFileController creates a new FileController.
func NewFileController(storage *filestorage.LocalStorage) *FileController {
	return &FileController{storage: storage}
}

// Serve streams the blob behind a logical path like /pkl/{name}.
func (ctl *FileController) Serve(c *gin.Context) {
	logical := c.Param("path")
	if !ctl.storage.Exists(logical) {
		middleware.HandleAPIError(c, apperrors.NewNotFound(messages.FileNotFound))
		return
	}
	c.File(ctl.storage.Resolve(logical))
}
