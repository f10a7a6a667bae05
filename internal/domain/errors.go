package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrLawyerNotFound      = errors.New("lawyer not found")
	ErrMatterNotFound      = errors.New("legal matter not found")
	ErrExtractionNotFound  = errors.New("contract extraction not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile           = errors.New("contract file is empty")
	ErrEmptyContractText   = errors.New("contract text is empty")
	ErrContractUnreadable  = errors.New("contract could not be read")
	ErrNoContractText      = errors.New("no text could be extracted from the contract")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidMatter       = errors.New("legal matter is invalid")
	ErrInvalidLawyer       = errors.New("lawyer is invalid")
	ErrEmptyQuestion       = errors.New("question is empty")
	ErrLLMUnavailable      = errors.New("language model service unavailable")
	ErrLLMModelNotFound    = errors.New("language model not found")
	ErrLLMTimeout          = errors.New("language model request timed out")
)
