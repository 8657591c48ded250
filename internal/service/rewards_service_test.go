package service

import (
	"testing"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsForLevelThresholds(t *testing.T) {
	assert.Equal(t, 0, PointsForLevel(1))
	assert.Equal(t, 500, PointsForLevel(2))
	assert.Equal(t, 1500, PointsForLevel(3))
	assert.Equal(t, 3000, PointsForLevel(4))
	assert.Equal(t, 5000, PointsForLevel(5))
}

func TestLevelForPoints(t *testing.T) {
	assert.Equal(t, 1, LevelForPoints(0))
	assert.Equal(t, 1, LevelForPoints(499))
	assert.Equal(t, 2, LevelForPoints(500))
	assert.Equal(t, 2, LevelForPoints(1499))
	assert.Equal(t, 3, LevelForPoints(1500))
	assert.Equal(t, 5, LevelForPoints(5000))
}

func TestTokensForLevelTable(t *testing.T) {
	assert.Equal(t, 10, TokensForLevel(1))
	assert.Equal(t, 50, TokensForLevel(2))
	assert.Equal(t, 70, TokensForLevel(3))
	assert.Equal(t, 100, TokensForLevel(4))
	assert.Equal(t, 400, TokensForLevel(10))
	// 表外等级回落到默认值
	assert.Equal(t, 10, TokensForLevel(11))
}

func TestAddPointsRecalculatesLevel(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	updated, err := env.Rewards.AddPoints(user.ID, 600)
	require.NoError(t, err)
	assert.Equal(t, 600, updated.TotalPoints)
	assert.Equal(t, 2, updated.CurrentLevel)
}

func TestClaimTokensOncePerLevel(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	claim, err := env.Rewards.ClaimTokens(user.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, claim.TokensClaimed)
	assert.Equal(t, model.TokenClaimPending, claim.Status)
	require.NotNil(t, claim.ClaimedAt)

	// 重复领取返回已有记录
	dup, err := env.Rewards.ClaimTokens(user.ID, 1)
	assert.ErrorIs(t, err, util.ErrAlreadyClaimed)
	require.NotNil(t, dup)
	assert.Equal(t, claim.ID, dup.ID)

	claims, err := env.Rewards.ListClaims(user.ID)
	require.NoError(t, err)
	assert.Len(t, claims, 1)
}

func TestClaimTokensRequiresLevel(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	_, err := env.Rewards.ClaimTokens(user.ID, 2)
	assert.ErrorIs(t, err, util.ErrLevelNotReached)

	_, err = env.Rewards.AddPoints(user.ID, 500)
	require.NoError(t, err)

	claim, err := env.Rewards.ClaimTokens(user.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 50, claim.TokensClaimed)
}

func TestCanClaim(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	ok, err := env.Rewards.CanClaim(user.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.Rewards.CanClaim(user.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.Rewards.ClaimTokens(user.ID, 1)
	require.NoError(t, err)

	ok, err = env.Rewards.CanClaim(user.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSpendCoins(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	require.NoError(t, env.Rewards.AddCoins(user.ID, 30))
	require.NoError(t, env.Rewards.SpendCoins(user.ID, 20))

	err := env.Rewards.SpendCoins(user.ID, 20)
	assert.ErrorIs(t, err, util.ErrInsufficientCoins)

	user2, err := env.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, user2.Coins)
}
