package handler

import (
	"github.com/google/uuid"

	"matterdesk/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ExtractTextRequest represents the extract-text request body.
type ExtractTextRequest struct {
	Text string `json:"text" binding:"required" example:"This Services Agreement is entered into as of January 1, 2024 by Acme Corp and Beta LLC..."`
}

// AskRequest represents a question about an extracted contract.
type AskRequest struct {
	Question string `json:"question" binding:"required" example:"What is the notice period for termination?"`
}

// CreateLawyerRequest represents the create lawyer request body.
type CreateLawyerRequest struct {
	FirstName   string `json:"first_name" binding:"required" example:"Jane"`
	LastName    string `json:"last_name" binding:"required" example:"Doe"`
	CompanyName string `json:"company_name" example:"Doe & Partners LLP"`
}

// UpdateLawyerRequest represents the update lawyer request body.
type UpdateLawyerRequest struct {
	FirstName   *string `json:"first_name" example:"Jane"`
	LastName    *string `json:"last_name" example:"Doe"`
	CompanyName *string `json:"company_name" example:"Doe & Partners LLP"`
}

// AssignMattersRequest represents the assign matters request body.
type AssignMattersRequest struct {
	MatterIDs []uuid.UUID `json:"matter_ids" binding:"required,min=1"`
}

// AssignLawyerRequest represents the assign lawyer request body.
type AssignLawyerRequest struct {
	LawyerID uuid.UUID `json:"lawyer_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// CreateMatterRequest represents the create legal matter request body.
type CreateMatterRequest struct {
	MatterName     string              `json:"matter_name" binding:"required" example:"Services Agreement - Acme Corp & Beta LLC"`
	ContractType   string              `json:"contract_type" example:"Services Agreement"`
	Parties        string              `json:"parties" example:"Acme Corp; Beta LLC"`
	EffectiveDate  string              `json:"effective_date" example:"2024-01-01T00:00:00Z"`
	ExpirationDate string              `json:"expiration_date" example:"2026-12-31T00:00:00Z"`
	GoverningLaw   string              `json:"governing_law" example:"State of Delaware"`
	ContractValue  string              `json:"contract_value" example:"125000.00"`
	Currency       string              `json:"currency" example:"USD"`
	Status         domain.MatterStatus `json:"status" example:"Active"`
	Description    string              `json:"description" example:"Master services engagement"`
	LawyerID       *uuid.UUID          `json:"lawyer_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
	Models []domain.LLMModel `json:"models,omitempty"`
}

// CountResponse represents a total count response.
type CountResponse struct {
	Total int `json:"total" example:"42"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
