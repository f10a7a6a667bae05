package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"matterdesk/internal/csvexport"
	"matterdesk/internal/document"
	"matterdesk/internal/domain"
	"matterdesk/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ContractHandler handles contract extraction endpoints.
type ContractHandler struct {
	contractService service.ContractService
	maxUploadBytes  int64
}

// NewContractHandler creates a new ContractHandler. Uploads larger than
// maxUploadBytes are rejected before they are read; zero disables the check.
func NewContractHandler(contractService service.ContractService, maxUploadBytes int64) *ContractHandler {
	return &ContractHandler{contractService: contractService, maxUploadBytes: maxUploadBytes}
}

// DocumentResponse is the text of a contract document.
type DocumentResponse struct {
	TotalPages          int             `json:"total_pages" example:"3"`
	TotalCharacterCount int             `json:"total_character_count" example:"10432"`
	Pages               []document.Page `json:"pages"`
}

// GetDefault handles GET /api/v1/contracts/default
// @Summary Get the default contract text
// @Description Download the configured sample contract and return its page-indexed text.
// @Tags contracts
// @Produce json
// @Success 200 {object} Response{data=DocumentResponse} "Contract text"
// @Failure 404 {object} ErrorResponseBody "Default contract not found"
// @Failure 422 {object} ErrorResponseBody "Contract unreadable"
// @Router /contracts/default [get]
func (h *ContractHandler) GetDefault(c *gin.Context) {
	doc, err := h.contractService.RetrieveDefault(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DocumentResponse{
		TotalPages:          doc.TotalPages(),
		TotalCharacterCount: doc.TotalCharacterCount(),
		Pages:               doc.Pages(),
	})
}

// ExtractDefault handles GET /api/v1/contracts/extract
// @Summary Extract the default contract
// @Description Run field extraction over the configured sample contract and store the result.
// @Tags contracts
// @Produce json
// @Success 200 {object} Response{data=service.ExtractionOutput} "Extraction"
// @Failure 404 {object} ErrorResponseBody "Default contract not found"
// @Failure 503 {object} ErrorResponseBody "Language model unavailable"
// @Router /contracts/extract [get]
func (h *ContractHandler) ExtractDefault(c *gin.Context) {
	out, err := h.contractService.ExtractDefault(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// ExtractText handles POST /api/v1/contracts/extract-text
// @Summary Extract pasted contract text
// @Tags contracts
// @Accept json
// @Produce json
// @Param request body ExtractTextRequest true "Contract text"
// @Success 201 {object} Response{data=service.ExtractionOutput} "Extraction"
// @Failure 400 {object} ErrorResponseBody "Empty text"
// @Failure 503 {object} ErrorResponseBody "Language model unavailable"
// @Router /contracts/extract-text [post]
func (h *ContractHandler) ExtractText(c *gin.Context) {
	var input service.ExtractTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.contractService.ExtractFromText(c.Request.Context(), input.Text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, out)
}

// ExtractFile handles POST /api/v1/contracts/extract-file
// @Summary Extract an uploaded contract
// @Description Upload a PDF or TXT contract and run field extraction over it.
// @Tags contracts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Contract file (pdf, txt)"
// @Success 201 {object} Response{data=service.ExtractionOutput} "Extraction"
// @Failure 400 {object} ErrorResponseBody "Missing, empty or unsupported file"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Contract unreadable"
// @Router /contracts/extract-file [post]
func (h *ContractHandler) ExtractFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "file could not be read")
		return
	}

	out, err := h.contractService.ExtractFromFile(c.Request.Context(), header.Filename, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, out)
}

// ListExtractions handles GET /api/v1/extractions
// @Summary List extractions
// @Description List stored extractions, newest first. Results are omitted; fetch one by ID for its fields.
// @Tags extractions
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ContractExtraction,meta=PagMeta} "Extractions"
// @Router /extractions [get]
func (h *ContractHandler) ListExtractions(c *gin.Context) {
	offset, limit := parsePagination(c)

	items, total, err := h.contractService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetExtraction handles GET /api/v1/extractions/:id
// @Summary Get an extraction
// @Tags extractions
// @Produce json
// @Param id path string true "Extraction ID"
// @Success 200 {object} Response{data=service.ExtractionOutput} "Extraction"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /extractions/{id} [get]
func (h *ContractHandler) GetExtraction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	out, err := h.contractService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// DeleteExtraction handles DELETE /api/v1/extractions/:id
// @Summary Delete an extraction
// @Tags extractions
// @Param id path string true "Extraction ID"
// @Success 200 {object} Response "Deleted"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /extractions/{id} [delete]
func (h *ContractHandler) DeleteExtraction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "extraction deleted"})
}

// ExportExtraction handles GET /api/v1/extractions/:id/export
// @Summary Export an extraction as XLSX
// @Tags extractions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Extraction ID"
// @Success 200 {file} file "Workbook"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /extractions/{id}/export [get]
func (h *ContractHandler) ExportExtraction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var buf bytes.Buffer
	rec, err := h.contractService.Export(c.Request.Context(), id, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("extraction_"+rec.Source, "xlsx", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Ask handles POST /api/v1/extractions/:id/ask
// @Summary Ask a question about a contract
// @Description Send a free-form question with the stored contract text to the chat model.
// @Tags extractions
// @Accept json
// @Produce json
// @Param id path string true "Extraction ID"
// @Param request body AskRequest true "Question"
// @Success 200 {object} Response{data=service.AskOutput} "Answer"
// @Failure 400 {object} ErrorResponseBody "Empty question"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Failure 503 {object} ErrorResponseBody "Language model unavailable"
// @Router /extractions/{id}/ask [post]
func (h *ContractHandler) Ask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input service.AskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.contractService.Ask(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}
