package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"propaudit/internal/ledger/models"
	"propaudit/internal/ledger/ports/mocks"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/sentinel"
	"propaudit/pkg/requestcontext"
)

func noopRelease(context.Context) error { return nil }

func newMockedService(t *testing.T, opts ...Option) (*Service, *mocks.MockStore, *mocks.MockLocker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	locker := mocks.NewMockLocker(ctrl)
	svc, err := New(store, append([]Option{WithLocker(locker), WithRetry(2, time.Millisecond)}, opts...)...)
	require.NoError(t, err)
	return svc, store, locker
}

func credits(userID id.UserID, total, used int) *models.UserCredits {
	return &models.UserCredits{UserID: userID, TotalCredits: total, UsedCredits: used, CreditsPerProperty: 1}
}

func TestAddProperty_RetriesLostRace(t *testing.T) {
	svc, store, locker := newMockedService(t)
	userID := id.UserID(uuid.New())

	locker.EXPECT().Acquire(gomock.Any(), userID.String()).Return(noopRelease, nil).Times(2)
	store.EXPECT().GetCredits(gomock.Any(), userID).Return(credits(userID, 5, 0), nil).Times(2)
	gomock.InOrder(
		store.EXPECT().DebitAndInsert(gomock.Any(), userID, 1, gomock.Any()).
			Return(nil, sentinel.ErrConflict),
		store.EXPECT().DebitAndInsert(gomock.Any(), userID, 1, gomock.Any()).
			Return(credits(userID, 5, 1), nil),
	)

	property, err := svc.AddProperty(context.Background(), userID, sampleDetails())
	require.NoError(t, err)
	assert.Equal(t, userID, property.UserID)
}

func TestAddProperty_ExhaustedRetriesAreUnavailable(t *testing.T) {
	svc, store, locker := newMockedService(t)
	userID := id.UserID(uuid.New())

	locker.EXPECT().Acquire(gomock.Any(), userID.String()).Return(nil, sentinel.ErrConflict).Times(3)
	store.EXPECT().DebitAndInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.AddProperty(context.Background(), userID, sampleDetails())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestAddProperty_StoreRejectsDebit(t *testing.T) {
	svc, store, locker := newMockedService(t)
	userID := id.UserID(uuid.New())

	// The pre-check passes but another replica spent the credits first.
	locker.EXPECT().Acquire(gomock.Any(), userID.String()).Return(noopRelease, nil)
	store.EXPECT().GetCredits(gomock.Any(), userID).Return(credits(userID, 5, 4), nil)
	store.EXPECT().DebitAndInsert(gomock.Any(), userID, 1, gomock.Any()).Return(nil, sentinel.ErrInsufficientBalance)

	_, err := svc.AddProperty(context.Background(), userID, sampleDetails())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientCredits))
}

func TestAddProperty_InternalErrorsAreWrapped(t *testing.T) {
	svc, store, locker := newMockedService(t)
	userID := id.UserID(uuid.New())

	locker.EXPECT().Acquire(gomock.Any(), userID.String()).Return(noopRelease, nil)
	store.EXPECT().GetCredits(gomock.Any(), userID).Return(nil, errors.New("connection reset"))

	_, err := svc.AddProperty(context.Background(), userID, sampleDetails())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestAddProperty_ReleasesLock(t *testing.T) {
	svc, store, locker := newMockedService(t)
	userID := id.UserID(uuid.New())

	released := false
	locker.EXPECT().Acquire(gomock.Any(), userID.String()).Return(func(context.Context) error {
		released = true
		return nil
	}, nil)
	store.EXPECT().GetCredits(gomock.Any(), userID).Return(credits(userID, 1, 1), nil)

	_, err := svc.AddProperty(context.Background(), userID, sampleDetails())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientCredits))
	assert.True(t, released)
}

func TestGrantCredits_LogsFailedLockRelease(t *testing.T) {
	var logs bytes.Buffer
	svc, store, locker := newMockedService(t, WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	userID := id.UserID(uuid.New())
	admin := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleAdmin}

	locker.EXPECT().Acquire(gomock.Any(), userID.String()).Return(func(context.Context) error {
		return errors.New("lock expired")
	}, nil)
	store.EXPECT().GetCredits(gomock.Any(), userID).Return(credits(userID, 5, 5), nil)
	store.EXPECT().GrantCredits(gomock.Any(), userID, 3, gomock.Any()).Return(credits(userID, 8, 5), nil)

	got, err := svc.GrantCredits(context.Background(), admin, userID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, got.TotalCredits)
	assert.Contains(t, logs.String(), "failed to release ledger lock")
	assert.Contains(t, logs.String(), "lock expired")
}
