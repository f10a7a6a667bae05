package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matterdesk/internal/csvexport"
	"matterdesk/internal/service"
)

// MatterHandler handles legal matter endpoints.
type MatterHandler struct {
	matterService service.MatterService
}

// NewMatterHandler creates a new MatterHandler.
func NewMatterHandler(matterService service.MatterService) *MatterHandler {
	return &MatterHandler{matterService: matterService}
}

// Create handles POST /api/v1/matters
// @Summary Create a legal matter
// @Tags matters
// @Accept json
// @Produce json
// @Param request body CreateMatterRequest true "Matter details"
// @Success 201 {object} Response{data=domain.LegalMatter} "Matter created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Lawyer not found"
// @Router /matters [post]
func (h *MatterHandler) Create(c *gin.Context) {
	var input service.CreateMatterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	matter, err := h.matterService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, matter)
}

// List handles GET /api/v1/matters
// @Summary List legal matters
// @Tags matters
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.LegalMatter,meta=PagMeta} "List of matters"
// @Router /matters [get]
func (h *MatterHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	matters, total, err := h.matterService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, matters, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Total handles GET /api/v1/matters/total
// @Summary Count legal matters
// @Tags matters
// @Produce json
// @Success 200 {object} Response{data=CountResponse} "Total"
// @Router /matters/total [get]
func (h *MatterHandler) Total(c *gin.Context) {
	total, err := h.matterService.Count(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CountResponse{Total: total})
}

// GetByID handles GET /api/v1/matters/:id
// @Summary Get a legal matter
// @Tags matters
// @Produce json
// @Param id path string true "Matter ID"
// @Success 200 {object} Response{data=domain.LegalMatter} "Matter"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /matters/{id} [get]
func (h *MatterHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	matter, err := h.matterService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matter)
}

// Update handles PUT /api/v1/matters/:id
// @Summary Update a legal matter
// @Description Fields left out of the body are unchanged.
// @Tags matters
// @Accept json
// @Produce json
// @Param id path string true "Matter ID"
// @Param request body CreateMatterRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.LegalMatter} "Updated matter"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /matters/{id} [put]
func (h *MatterHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input service.UpdateMatterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	matter, err := h.matterService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matter)
}

// Delete handles DELETE /api/v1/matters/:id
// @Summary Delete a legal matter
// @Tags matters
// @Param id path string true "Matter ID"
// @Success 200 {object} Response "Deleted"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /matters/{id} [delete]
func (h *MatterHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.matterService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "matter deleted"})
}

// ListByLawyer handles GET /api/v1/matters/by-lawyer/:lawyerId
// @Summary List matters of a lawyer
// @Tags matters
// @Produce json
// @Param lawyerId path string true "Lawyer ID"
// @Success 200 {object} Response{data=[]domain.LegalMatter} "Matters"
// @Failure 404 {object} ErrorResponseBody "Lawyer not found"
// @Router /matters/by-lawyer/{lawyerId} [get]
func (h *MatterHandler) ListByLawyer(c *gin.Context) {
	lawyerID, ok := parseID(c, "lawyerId")
	if !ok {
		return
	}

	matters, err := h.matterService.ListByLawyer(c.Request.Context(), lawyerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matters)
}

// AssignLawyer handles PUT /api/v1/matters/:id/lawyer
// @Summary Assign a lawyer to a matter
// @Tags matters
// @Accept json
// @Produce json
// @Param id path string true "Matter ID"
// @Param request body AssignLawyerRequest true "Lawyer"
// @Success 200 {object} Response{data=domain.LegalMatter} "Updated matter"
// @Failure 404 {object} ErrorResponseBody "Matter or lawyer not found"
// @Router /matters/{id}/lawyer [put]
func (h *MatterHandler) AssignLawyer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		LawyerID uuid.UUID `json:"lawyer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	matter, err := h.matterService.AssignLawyer(c.Request.Context(), id, input.LawyerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matter)
}

// UnassignLawyer handles DELETE /api/v1/matters/:id/lawyer
// @Summary Remove the lawyer of a matter
// @Tags matters
// @Produce json
// @Param id path string true "Matter ID"
// @Success 200 {object} Response{data=domain.LegalMatter} "Updated matter"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /matters/{id}/lawyer [delete]
func (h *MatterHandler) UnassignLawyer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	matter, err := h.matterService.UnassignLawyer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matter)
}

// CreateFromExtraction handles POST /api/v1/matters/from-extraction/:id
// @Summary Create a matter from an extraction
// @Description Map the fields of a stored extraction onto a new legal matter.
// @Tags matters
// @Produce json
// @Param id path string true "Extraction ID"
// @Success 201 {object} Response{data=domain.LegalMatter} "Matter created"
// @Failure 404 {object} ErrorResponseBody "Extraction not found"
// @Router /matters/from-extraction/{id} [post]
func (h *MatterHandler) CreateFromExtraction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	matter, err := h.matterService.CreateFromExtraction(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, matter)
}

// ExportCSV handles GET /api/v1/matters/export
// @Summary Export legal matters as CSV
// @Tags matters
// @Produce text/csv
// @Success 200 {file} file "CSV file"
// @Router /matters/export [get]
func (h *MatterHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.matterService.ExportCSV(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("legal_matters", "csv", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
