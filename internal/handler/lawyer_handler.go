package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"matterdesk/internal/service"
)

// LawyerHandler handles lawyer endpoints.
type LawyerHandler struct {
	lawyerService service.LawyerService
}

// NewLawyerHandler creates a new LawyerHandler.
func NewLawyerHandler(lawyerService service.LawyerService) *LawyerHandler {
	return &LawyerHandler{lawyerService: lawyerService}
}

// Create handles POST /api/v1/lawyers
// @Summary Create a lawyer
// @Tags lawyers
// @Accept json
// @Produce json
// @Param request body CreateLawyerRequest true "Lawyer details"
// @Success 201 {object} Response{data=domain.Lawyer} "Lawyer created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Router /lawyers [post]
func (h *LawyerHandler) Create(c *gin.Context) {
	var input service.CreateLawyerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	lawyer, err := h.lawyerService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, lawyer)
}

// List handles GET /api/v1/lawyers
// @Summary List lawyers
// @Tags lawyers
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Lawyer,meta=PagMeta} "List of lawyers"
// @Router /lawyers [get]
func (h *LawyerHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	lawyers, total, err := h.lawyerService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, lawyers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/lawyers/:id
// @Summary Get a lawyer
// @Tags lawyers
// @Produce json
// @Param id path string true "Lawyer ID"
// @Success 200 {object} Response{data=domain.Lawyer} "Lawyer"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /lawyers/{id} [get]
func (h *LawyerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	lawyer, err := h.lawyerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lawyer)
}

// Update handles PUT /api/v1/lawyers/:id
// @Summary Update a lawyer
// @Tags lawyers
// @Accept json
// @Produce json
// @Param id path string true "Lawyer ID"
// @Param request body UpdateLawyerRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Lawyer} "Updated lawyer"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /lawyers/{id} [put]
func (h *LawyerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input service.UpdateLawyerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	lawyer, err := h.lawyerService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lawyer)
}

// Delete handles DELETE /api/v1/lawyers/:id
// @Summary Delete a lawyer
// @Description Matters assigned to the lawyer become unassigned.
// @Tags lawyers
// @Param id path string true "Lawyer ID"
// @Success 200 {object} Response "Deleted"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /lawyers/{id} [delete]
func (h *LawyerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.lawyerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "lawyer deleted"})
}

// Matters handles GET /api/v1/lawyers/:id/matters
// @Summary List a lawyer's matters
// @Tags lawyers
// @Produce json
// @Param id path string true "Lawyer ID"
// @Success 200 {object} Response{data=[]domain.LegalMatter} "Matters"
// @Failure 404 {object} ErrorResponseBody "Lawyer not found"
// @Router /lawyers/{id}/matters [get]
func (h *LawyerHandler) Matters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	matters, err := h.lawyerService.Matters(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matters)
}

// AssignMatters handles POST /api/v1/lawyers/:id/matters
// @Summary Assign matters to a lawyer
// @Description Assigns every listed matter in one transaction; fails if any matter is missing.
// @Tags lawyers
// @Accept json
// @Produce json
// @Param id path string true "Lawyer ID"
// @Param request body AssignMattersRequest true "Matter IDs"
// @Success 200 {object} Response{data=[]domain.LegalMatter} "Matters of the lawyer"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Lawyer or matter not found"
// @Router /lawyers/{id}/matters [post]
func (h *LawyerHandler) AssignMatters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		MatterIDs []uuid.UUID `json:"matter_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	matters, err := h.lawyerService.AssignMatters(c.Request.Context(), id, input.MatterIDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, matters)
}
