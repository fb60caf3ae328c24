// Package controllers translates HTTP requests into service calls and
// service results into the response envelope.
package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appauth "github.com/yudha/sipkl/internal/app/auth"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/middleware"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
)

// identity pulls the authenticated caller off the context, aborting with
// 401 when the auth middleware did not run.
func identity(c *gin.Context) (appauth.Identity, bool) {
	ident, ok := appauth.FromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewUnauthorized(messages.AuthFailUnauthorized))
	}
	return ident, ok
}

// pathID parses a uuid path parameter, aborting with 400 on garbage.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.DataNotFound))
		return uuid.Nil, false
	}
	return id, true
}

// formFile reads one optional multipart file part into memory. An absent
// part returns (nil, nil).
func formFile(c *gin.Context, field string) (*dto.FileUpload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &dto.FileUpload{Filename: header.Filename, Data: data}, nil
}

// formFiles reads every multipart file under one field name.
func formFiles(c *gin.Context, field string) ([]dto.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	uploads := make([]dto.FileUpload, 0, len(form.File[field]))
	for _, header := range form.File[field] {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, dto.FileUpload{Filename: header.Filename, Data: data})
	}
	return uploads, nil
}
