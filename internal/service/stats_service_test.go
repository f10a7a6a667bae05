package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"matterdesk/internal/domain"
	"matterdesk/internal/service"
	"matterdesk/mocks"
)

func TestStatsService_GetStats(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo)

	expected := &domain.Stats{TotalMatters: 5, MattersActive: 3, MattersExpired: 2, TotalLawyers: 2, TotalExtractions: 7}
	repo.On("GetStats", mock.Anything).Return(expected, nil)

	stats, err := svc.GetStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, stats)
	repo.AssertExpectations(t)
}

func TestStatsService_GetStats_Error(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo)

	repo.On("GetStats", mock.Anything).Return(nil, errors.New("db down"))

	stats, err := svc.GetStats(context.Background())

	assert.Nil(t, stats)
	assert.Error(t, err)
}
