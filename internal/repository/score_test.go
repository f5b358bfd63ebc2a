package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
)

func TestScoreRepository_GetByOwner(t *testing.T) {
	t.Run("UnknownOwner", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		// When: GetByOwner is called for an owner without games
		score, err := scoreRepo.GetByOwner(ctx, "nobody")

		// Then: an empty score board is returned
		require.NoError(t, err)
		assert.Equal(t, &entity.Score{}, score)
	})

	t.Run("AfterIncrements", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		// Given: two wins and one draw
		require.NoError(t, scoreRepo.Increment(ctx, "owner", entity.ScoreFieldPlayer1))
		require.NoError(t, scoreRepo.Increment(ctx, "owner", entity.ScoreFieldPlayer1))
		require.NoError(t, scoreRepo.Increment(ctx, "owner", entity.ScoreFieldDraws))

		// When: GetByOwner is called
		score, err := scoreRepo.GetByOwner(ctx, "owner")

		// Then: the counters add up and other owners are untouched
		require.NoError(t, err)
		assert.Equal(t, &entity.Score{Player1: 2, Draws: 1}, score)

		other, err := scoreRepo.GetByOwner(ctx, "other")
		require.NoError(t, err)
		assert.Equal(t, &entity.Score{}, other)
	})
}
