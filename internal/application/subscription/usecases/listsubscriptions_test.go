package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
	"github.com/novastream-inc/novastream/internal/shared/errors"
)

func TestGetSubscriptionUseCase_Execute(t *testing.T) {
	now := time.Now().UTC()
	sub := reconstructTestSubscription(t, 1, "sub_alice0000001", "alice", vo.PlanStandard, 15.49, 3, now, now.AddDate(0, 3, 0), vo.StatusActive)

	repo := newMemSubscriptionRepository()
	repo.Add(sub)
	uc := NewGetSubscriptionUseCase(repo, newTestLogger())

	result, err := uc.Execute(context.Background(), "sub_alice0000001")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "alice", result.UserName)
	assert.Equal(t, "Standard", result.PlanName)

	missing, err := uc.Execute(context.Background(), "sub_missing00001")
	require.Error(t, err)
	assert.Nil(t, missing)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListUserSubscriptionsUseCase_Execute(t *testing.T) {
	now := time.Now().UTC()
	older := reconstructTestSubscription(t, 1, "sub_alice0000001", "alice", vo.PlanBasic, 6.99, 1, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), vo.StatusExpired)
	newer := reconstructTestSubscription(t, 2, "sub_alice0000002", "alice", vo.PlanPremium, 22.99, 6, now, now.AddDate(0, 6, 0), vo.StatusActive)
	other := reconstructTestSubscription(t, 3, "sub_bob00000001x", "bob", vo.PlanBasic, 6.99, 1, now, now.AddDate(0, 1, 0), vo.StatusActive)

	repo := newMemSubscriptionRepository()
	repo.Add(older)
	repo.Add(newer)
	repo.Add(other)
	uc := NewListUserSubscriptionsUseCase(repo, newTestLogger())

	result, err := uc.Execute(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Most recently created first; other users' records excluded.
	assert.Equal(t, "sub_alice0000002", result[0].ID)
	assert.Equal(t, "sub_alice0000001", result[1].ID)
}

func TestListUserSubscriptionsUseCase_Execute_EmptyResult(t *testing.T) {
	repo := newMemSubscriptionRepository()
	uc := NewListUserSubscriptionsUseCase(repo, newTestLogger())

	result, err := uc.Execute(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result, "empty result must serialize as [], not null")
}

func TestListUserSubscriptionsUseCase_Execute_MissingUserName(t *testing.T) {
	repo := newMemSubscriptionRepository()
	uc := NewListUserSubscriptionsUseCase(repo, newTestLogger())

	for _, userName := range []string{"", "   "} {
		result, err := uc.Execute(context.Background(), userName)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.IsValidationError(err))
	}
}

func TestListSubscriptionsByDurationUseCase_Execute(t *testing.T) {
	now := time.Now().UTC()
	sixA := reconstructTestSubscription(t, 1, "sub_alice0000001", "alice", vo.PlanPremium, 22.99, 6, now.AddDate(0, -1, 0), now.AddDate(0, 5, 0), vo.StatusActive)
	three := reconstructTestSubscription(t, 2, "sub_bob00000001x", "bob", vo.PlanStandard, 15.49, 3, now, now.AddDate(0, 3, 0), vo.StatusActive)
	sixB := reconstructTestSubscription(t, 3, "sub_carol0000001", "carol", vo.PlanBasic, 6.99, 6, now, now.AddDate(0, 6, 0), vo.StatusActive)

	repo := newMemSubscriptionRepository()
	repo.Add(sixA)
	repo.Add(three)
	repo.Add(sixB)
	uc := NewListSubscriptionsByDurationUseCase(repo, newTestLogger())

	result, err := uc.Execute(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "sub_carol0000001", result[0].ID)
	assert.Equal(t, "sub_alice0000001", result[1].ID)

	for _, d := range result {
		assert.Equal(t, 6, d.Duration)
	}
}

func TestListSubscriptionsByDurationUseCase_Execute_InvalidDuration(t *testing.T) {
	repo := newMemSubscriptionRepository()
	uc := NewListSubscriptionsByDurationUseCase(repo, newTestLogger())

	for _, months := range []int{0, -1} {
		result, err := uc.Execute(context.Background(), months)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.IsValidationError(err))
	}
}

func TestListSubscriptionsByDurationUseCase_Execute_StorageFailure(t *testing.T) {
	repo := newMemSubscriptionRepository()
	repo.SetGetError(stderrors.New("connection refused"))
	uc := NewListSubscriptionsByDurationUseCase(repo, newTestLogger())

	result, err := uc.Execute(context.Background(), 6)
	require.Error(t, err)
	assert.Nil(t, result)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnavailable, appErr.Type)
}

func TestListPlansUseCase_Execute(t *testing.T) {
	uc := NewListPlansUseCase()

	plans := uc.Execute()
	require.Len(t, plans, 3)

	assert.Equal(t, "Basic", plans[0].Name)
	assert.InDelta(t, 6.99, plans[0].MonthlyPrice, 0.001)
	assert.Equal(t, "Good", plans[0].VideoQuality)
	assert.Equal(t, 1, plans[0].ScreensAllowed)

	assert.Equal(t, "Standard", plans[1].Name)
	assert.InDelta(t, 15.49, plans[1].MonthlyPrice, 0.001)
	assert.Equal(t, "Better", plans[1].VideoQuality)
	assert.Equal(t, 2, plans[1].ScreensAllowed)

	assert.Equal(t, "Premium", plans[2].Name)
	assert.InDelta(t, 22.99, plans[2].MonthlyPrice, 0.001)
	assert.Equal(t, "Best", plans[2].VideoQuality)
	assert.Equal(t, 4, plans[2].ScreensAllowed)
}
