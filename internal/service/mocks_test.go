package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockScoreRepo struct {
	mock.Mock
}

func (m *mockScoreRepo) Increment(ctx context.Context, ownerID, field string) error {
	args := m.Called(ctx, ownerID, field)
	return args.Error(0)
}

func (m *mockScoreRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Score, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(*entity.Score), args.Error(1)
}
