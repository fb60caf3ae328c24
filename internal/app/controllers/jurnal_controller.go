package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/app/services"
	"github.com/yudha/sipkl/internal/middleware"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
)

// JurnalController handles the journal endpoints.
type JurnalController struct {
	jurnalService services.JurnalService
}

// NewJurnalController creates a new JurnalController.
func NewJurnalController(jurnalService services.JurnalService) *JurnalController {
	return &JurnalController{jurnalService: jurnalService}
}

// List returns one page of a PKL's journals.
func (ctl *JurnalController) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	pklID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.JurnalListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.DataNotFound))
		return
	}

	page, err := ctl.jurnalService.List(c.Request.Context(), ident, pklID, q)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.JurnalSuccessList, page))
}

// GetDetail returns one journal.
func (ctl *JurnalController) GetDetail(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := ctl.jurnalService.GetDetail(c.Request.Context(), ident, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.JurnalSuccessDetail, item))
}

// ListTimeline returns one page of a journal's audit trail.
func (ctl *JurnalController) ListTimeline(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.DataNotFound))
		return
	}

	page, err := ctl.jurnalService.ListTimeline(c.Request.Context(), ident, id, q)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.JurnalSuccessTimeline, page))
}

// Create files a journal against a PKL.
func (ctl *JurnalController) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	pklID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.JurnalCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.JurnalFailCreateGeneric))
		return
	}
	attachments, err := formFiles(c, "attachments")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.FileInvalidPayload))
		return
	}

	item, err := ctl.jurnalService.Create(c.Request.Context(), ident, pklID, req, attachments)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCreated(messages.JurnalSuccessCreate, item))
}

// Update resubmits a rejected journal.
func (ctl *JurnalController) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.JurnalUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.JurnalFailUpdateGeneric))
		return
	}
	attachments, err := formFiles(c, "attachments")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.FileInvalidPayload))
		return
	}

	item, err := ctl.jurnalService.Update(c.Request.Context(), ident, id, req, attachments)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.JurnalSuccessUpdate, item))
}

// UpdateStatus applies a review decision.
func (ctl *JurnalController) UpdateStatus(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.JurnalUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.JurnalFailInvalidTransition))
		return
	}

	if err := ctl.jurnalService.UpdateStatus(c.Request.Context(), ident, id, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.JurnalSuccessUpdateStatus, nil))
}
