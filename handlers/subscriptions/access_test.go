package subscriptions

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"quanta-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

const (
	testCreatorID    = "11111111-1111-1111-1111-111111111111"
	testSubscriberID = "22222222-2222-2222-2222-222222222222"
)

func subscriptionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "content_creator_id", "subscriber_id", "type", "status",
		"amount", "currency", "expires_at", "last_renewed_at", "created_at", "updated_at",
	})
}

func TestEvaluateAccess_FreeContent(t *testing.T) {
	result := EvaluateAccess("", false, testCreatorID)

	assert.True(t, result.HasAccess)
	assert.False(t, result.IsPremium)
	assert.Empty(t, result.Reason)
}

func TestEvaluateAccess_AnonymousPremium(t *testing.T) {
	result := EvaluateAccess("", true, testCreatorID)

	assert.False(t, result.HasAccess)
	assert.True(t, result.IsPremium)
	assert.Equal(t, "Authentication required for premium content", result.Reason)
}

func TestEvaluateAccess_OwnerSeesOwnContent(t *testing.T) {
	result := EvaluateAccess(testCreatorID, true, testCreatorID)

	assert.True(t, result.HasAccess)
	assert.True(t, result.IsPremium)
}

func TestEvaluateAccess_PaidSubscriber(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE subscriber_id = \$1 AND content_creator_id = \$2 ORDER BY created_at DESC`).
		WithArgs(testSubscriberID, testCreatorID).
		WillReturnRows(subscriptionRows().AddRow(
			"33333333-3333-3333-3333-333333333333", testCreatorID, testSubscriberID,
			"ONE_TIME", "ACTIVE", 9.99, "USD", nil, nil, time.Now(), time.Now()))

	result := EvaluateAccess(testSubscriberID, true, testCreatorID)

	assert.True(t, result.HasAccess)
	assert.True(t, result.IsPremium)
}

func TestEvaluateAccess_ExpiredSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expired := time.Now().Add(-48 * time.Hour)
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE subscriber_id = \$1 AND content_creator_id = \$2 ORDER BY created_at DESC`).
		WithArgs(testSubscriberID, testCreatorID).
		WillReturnRows(subscriptionRows().AddRow(
			"33333333-3333-3333-3333-333333333333", testCreatorID, testSubscriberID,
			"MONTHLY", "ACTIVE", 9.99, "USD", expired, nil, time.Now(), time.Now()))

	result := EvaluateAccess(testSubscriberID, true, testCreatorID)

	assert.False(t, result.HasAccess)
	assert.Equal(t, "An active subscription to this creator is required", result.Reason)
}

func TestEvaluateAccess_FollowerWithoutSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	// a zero-amount follow row never unlocks premium content
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE subscriber_id = \$1 AND content_creator_id = \$2 ORDER BY created_at DESC`).
		WithArgs(testSubscriberID, testCreatorID).
		WillReturnRows(subscriptionRows().AddRow(
			"33333333-3333-3333-3333-333333333333", testCreatorID, testSubscriberID,
			"ONE_TIME", "ACTIVE", 0, "USD", nil, nil, time.Now(), time.Now()))

	result := EvaluateAccess(testSubscriberID, true, testCreatorID)

	assert.False(t, result.HasAccess)
	assert.True(t, result.IsPremium)
}

func TestResolveStatus_NoRows(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE subscriber_id = \$1 AND content_creator_id = \$2 ORDER BY created_at DESC`).
		WithArgs(testSubscriberID, testCreatorID).
		WillReturnRows(subscriptionRows())

	status, err := ResolveStatus(testSubscriberID, testCreatorID)

	assert.NoError(t, err)
	assert.False(t, status.IsFollowing)
	assert.False(t, status.IsPaidSubscriber)
	assert.Nil(t, status.Subscription)
}

func TestResolveStatus_FollowingAndPaid(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	future := time.Now().Add(15 * 24 * time.Hour)
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE subscriber_id = \$1 AND content_creator_id = \$2 ORDER BY created_at DESC`).
		WithArgs(testSubscriberID, testCreatorID).
		WillReturnRows(subscriptionRows().
			AddRow("44444444-4444-4444-4444-444444444444", testCreatorID, testSubscriberID,
				"MONTHLY", "ACTIVE", 4.99, "USD", future, nil, time.Now(), time.Now()).
			AddRow("33333333-3333-3333-3333-333333333333", testCreatorID, testSubscriberID,
				"ONE_TIME", "ACTIVE", 0, "USD", nil, nil, time.Now().Add(-time.Hour), time.Now()))

	status, err := ResolveStatus(testSubscriberID, testCreatorID)

	assert.NoError(t, err)
	assert.True(t, status.IsFollowing)
	assert.True(t, status.IsPaidSubscriber)
	if assert.NotNil(t, status.Subscription) {
		assert.Equal(t, 4.99, status.Subscription.Amount)
	}
}
