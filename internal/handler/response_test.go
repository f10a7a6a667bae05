package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"matterdesk/internal/document"
	"matterdesk/internal/domain"
	"matterdesk/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrLawyerNotFound, http.StatusNotFound, "LAWYER_NOT_FOUND"},
		{domain.ErrMatterNotFound, http.StatusNotFound, "MATTER_NOT_FOUND"},
		{domain.ErrExtractionNotFound, http.StatusNotFound, "EXTRACTION_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidLawyer, http.StatusBadRequest, "INVALID_LAWYER"},
		{domain.ErrInvalidMatter, http.StatusBadRequest, "INVALID_MATTER"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrEmptyFile, http.StatusBadRequest, "EMPTY_FILE"},
		{document.ErrEmptyInput, http.StatusBadRequest, "EMPTY_FILE"},
		{domain.ErrEmptyContractText, http.StatusBadRequest, "EMPTY_CONTRACT_TEXT"},
		{domain.ErrEmptyQuestion, http.StatusBadRequest, "EMPTY_QUESTION"},
		{domain.ErrContractUnreadable, http.StatusUnprocessableEntity, "CONTRACT_UNREADABLE"},
		{document.ErrParseFailure, http.StatusUnprocessableEntity, "CONTRACT_UNREADABLE"},
		{domain.ErrNoContractText, http.StatusUnprocessableEntity, "NO_CONTRACT_TEXT"},
		{document.ErrNoText, http.StatusUnprocessableEntity, "NO_CONTRACT_TEXT"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{domain.ErrLLMModelNotFound, http.StatusBadGateway, "LLM_MODEL_NOT_FOUND"},
		{domain.ErrLLMTimeout, http.StatusGatewayTimeout, "LLM_TIMEOUT"},
		{domain.ErrLLMUnavailable, http.StatusServiceUnavailable, "LLM_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("failed to extract contract information: %w", domain.ErrLLMTimeout)

	status, code, _ := handler.MapDomainError(err)

	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, "LLM_TIMEOUT", code)
}

func TestHandleError_WritesEnvelope(t *testing.T) {
	w, c := newTestContext(http.MethodGet, "/api/v1/matters/x", nil)

	handler.HandleError(c, domain.ErrMatterNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "MATTER_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "legal matter not found", resp.Error.Message)
}
