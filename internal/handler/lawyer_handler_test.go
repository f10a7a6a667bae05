package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matterdesk/internal/domain"
	"matterdesk/internal/handler"
	"matterdesk/internal/service"
	"matterdesk/mocks"
)

func newLawyerHandler() (*handler.LawyerHandler, *mocks.MockLawyerService) {
	mockSvc := new(mocks.MockLawyerService)
	h := handler.NewLawyerHandler(mockSvc)
	return h, mockSvc
}

func TestLawyerHandler_Create_Success(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	input := service.CreateLawyerInput{FirstName: "Jane", LastName: "Doe", CompanyName: "Doe & Partners LLP"}
	expected := &domain.Lawyer{ID: uuid.New(), FirstName: "Jane", LastName: "Doe", CompanyName: "Doe & Partners LLP"}
	mockSvc.On("Create", mock.Anything, input).Return(expected, nil)

	w, c := newTestContext(http.MethodPost, "/api/v1/lawyers", input)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got domain.Lawyer
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	assert.Equal(t, expected.ID, got.ID)
	mockSvc.AssertExpectations(t)
}

func TestLawyerHandler_Create_MissingLastName(t *testing.T) {
	h, mockSvc := newLawyerHandler()

	w, c := newTestContext(http.MethodPost, "/api/v1/lawyers", map[string]string{"first_name": "Jane"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLawyerHandler_List(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	lawyers := []domain.Lawyer{{ID: uuid.New(), FirstName: "Jane", LastName: "Doe"}}
	mockSvc.On("List", mock.Anything, 0, 50).Return(lawyers, 1, nil)

	w, c := newTestContext(http.MethodGet, "/api/v1/lawyers?limit=50", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 50, resp.Meta.Limit)
}

func TestLawyerHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrLawyerNotFound)

	w, c := newTestContext(http.MethodGet, "/api/v1/lawyers/"+id.String(), nil)
	withParam(c, "id", id.String())
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LAWYER_NOT_FOUND", errorCode(t, w))
}

func TestLawyerHandler_Update(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()
	expected := &domain.Lawyer{ID: id, FirstName: "Janet", LastName: "Doe"}
	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateLawyerInput) bool {
		return in.FirstName != nil && *in.FirstName == "Janet" && in.LastName == nil
	})).Return(expected, nil)

	w, c := newTestContext(http.MethodPut, "/api/v1/lawyers/"+id.String(), map[string]string{"first_name": "Janet"})
	withParam(c, "id", id.String())
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestLawyerHandler_Update_Invalid(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()
	mockSvc.On("Update", mock.Anything, id, mock.Anything).Return(nil, domain.ErrInvalidLawyer)

	w, c := newTestContext(http.MethodPut, "/api/v1/lawyers/"+id.String(), map[string]string{"first_name": " "})
	withParam(c, "id", id.String())
	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_LAWYER", errorCode(t, w))
}

func TestLawyerHandler_Delete(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	w, c := newTestContext(http.MethodDelete, "/api/v1/lawyers/"+id.String(), nil)
	withParam(c, "id", id.String())
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestLawyerHandler_Matters(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()
	mockSvc.On("Matters", mock.Anything, id).Return([]domain.LegalMatter{{ID: uuid.New(), MatterName: "NDA", LawyerID: &id}}, nil)

	w, c := newTestContext(http.MethodGet, "/matters", nil)
	withParam(c, "id", id.String())
	h.Matters(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []domain.LegalMatter
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "NDA", got[0].MatterName)
}

func TestLawyerHandler_AssignMatters(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()
	matterIDs := []uuid.UUID{uuid.New(), uuid.New()}
	mockSvc.On("AssignMatters", mock.Anything, id, matterIDs).Return([]domain.LegalMatter{
		{ID: matterIDs[0], LawyerID: &id},
		{ID: matterIDs[1], LawyerID: &id},
	}, nil)

	w, c := newTestContext(http.MethodPost, "/matters", map[string]interface{}{"matter_ids": matterIDs})
	withParam(c, "id", id.String())
	h.AssignMatters(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestLawyerHandler_AssignMatters_EmptyList(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()

	w, c := newTestContext(http.MethodPost, "/matters", map[string]interface{}{"matter_ids": []string{}})
	withParam(c, "id", id.String())
	h.AssignMatters(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "AssignMatters", mock.Anything, mock.Anything, mock.Anything)
}

func TestLawyerHandler_AssignMatters_UnknownMatter(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	id := uuid.New()
	mockSvc.On("AssignMatters", mock.Anything, id, mock.Anything).Return(nil, domain.ErrMatterNotFound)

	w, c := newTestContext(http.MethodPost, "/matters", map[string]interface{}{"matter_ids": []uuid.UUID{uuid.New()}})
	withParam(c, "id", id.String())
	h.AssignMatters(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLawyerHandler_List_ServiceError(t *testing.T) {
	h, mockSvc := newLawyerHandler()
	mockSvc.On("List", mock.Anything, 0, 20).Return(nil, 0, errors.New("db down"))

	w, c := newTestContext(http.MethodGet, "/api/v1/lawyers", nil)
	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
