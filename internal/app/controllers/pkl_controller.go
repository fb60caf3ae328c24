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

// PKLController handles the internship workflow endpoints.
type PKLController struct {
	pklService services.PKLService
}

// NewPKLController creates a new PKLController.
func NewPKLController(pklService services.PKLService) *PKLController {
	return &PKLController{pklService: pklService}
}

// List returns one page of the PKL listing.
func (ctl *PKLController) List(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	var q dto.PKLListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.DataNotFound))
		return
	}

	page, err := ctl.pklService.List(c.Request.Context(), ident, q)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessList, page))
}

// GetDetail returns one PKL.
func (ctl *PKLController) GetDetail(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := ctl.pklService.GetDetail(c.Request.Context(), ident, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessDetail, detail))
}

// ListTimeline returns one page of a PKL's audit trail.
func (ctl *PKLController) ListTimeline(c *gin.Context) {
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

	page, err := ctl.pklService.ListTimeline(c.Request.Context(), ident, id, q)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessTimeline, page))
}

// GetCreateData returns the data backing the submission form.
func (ctl *PKLController) GetCreateData(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	data, err := ctl.pklService.GetCreateData(c.Request.Context(), ident)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessGetCreateData, data))
}

// readCreateFiles pulls the three document slots off a multipart request.
func readCreateFiles(c *gin.Context) (dto.PKLCreateFiles, error) {
	var files dto.PKLCreateFiles
	var err error
	if files.DokumenDiterima, err = formFile(c, "dokumenDiterima"); err != nil {
		return files, err
	}
	if files.DokumenMentor, err = formFile(c, "dokumenMentor"); err != nil {
		return files, err
	}
	files.DokumenPimpinan, err = formFile(c, "dokumenPimpinan")
	return files, err
}

// Create submits a new PKL.
func (ctl *PKLController) Create(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	var req dto.PKLCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.PKLFailCreateGeneric))
		return
	}
	files, err := readCreateFiles(c)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.FileInvalidPayload))
		return
	}

	detail, err := ctl.pklService.Create(c.Request.Context(), ident, req, files)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCreated(messages.PKLSuccessCreate, detail))
}

// Update resubmits a rejected PKL.
func (ctl *PKLController) Update(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PKLUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.PKLFailUpdateGeneric))
		return
	}
	files, err := readCreateFiles(c)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.FileInvalidPayload))
		return
	}

	detail, err := ctl.pklService.Update(c.Request.Context(), ident, id, req, files)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessUpdate, detail))
}

// UpdateStatus applies a verification decision.
func (ctl *PKLController) UpdateStatus(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PKLUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.PKLFailInvalidTransition))
		return
	}

	if err := ctl.pklService.UpdateStatus(c.Request.Context(), ident, id, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessUpdateStatus, nil))
}

// StartFinalization moves an accepted PKL into finalization.
func (ctl *PKLController) StartFinalization(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctl.pklService.StartFinalization(c.Request.Context(), ident, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessUpdateStatus, nil))
}

// Finalize submits the finalization documents.
func (ctl *PKLController) Finalize(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var files dto.PKLFinalizeFiles
	var err error
	if files.DokumenSelesai, err = formFile(c, "dokumenSelesai"); err == nil {
		if files.DokumenLaporan, err = formFile(c, "dokumenLaporan"); err == nil {
			files.DokumenPenilaian, err = formFile(c, "dokumenPenilaian")
		}
	}
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequest(messages.FileInvalidPayload))
		return
	}

	if err := ctl.pklService.Finalize(c.Request.Context(), ident, id, files); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccess(messages.PKLSuccessFinalize, nil))
}
