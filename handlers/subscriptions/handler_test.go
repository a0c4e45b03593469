package subscriptions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quanta-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func followRouter(userID string) *gin.Engine {
	r := testutils.SetupTestRouter()
	authed := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", userID)
			handler(c)
		}
	}
	r.POST("/subscriptions/follow", authed(Follow))
	r.POST("/subscriptions/unfollow", authed(Unfollow))
	r.DELETE("/subscriptions/:subscriptionId", authed(CancelSubscription))
	return r
}

func creatorBody(t *testing.T) *bytes.Buffer {
	raw, err := json.Marshal(map[string]string{"creatorId": testCreatorID})
	assert.NoError(t, err)
	return bytes.NewBuffer(raw)
}

func TestFollow_CreatesZeroAmountRow(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testCreatorID, creatorWallet, "creator", "", false, 9.99, "USD", "MONTHLY", time.Now(), time.Now()))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE content_creator_id = \$1 AND subscriber_id = \$2 AND amount = 0(.*)`).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("33333333-3333-3333-3333-333333333333"))
	mock.ExpectCommit()

	// the creator gets a new-follower notification
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testSubscriberID, subscriberWallet, "sub", "", false, 0, "USD", "MONTHLY", time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("77777777-7777-7777-7777-777777777777"))
	mock.ExpectCommit()

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/follow", creatorBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	followRouter(testSubscriberID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, float64(0), respBody["amount"])
	assert.Equal(t, "ACTIVE", respBody["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollow_AlreadyFollowing(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testCreatorID, creatorWallet, "creator", "", false, 9.99, "USD", "MONTHLY", time.Now(), time.Now()))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE content_creator_id = \$1 AND subscriber_id = \$2 AND amount = 0(.*)`).
		WillReturnRows(subscriptionRows().AddRow(
			"33333333-3333-3333-3333-333333333333", testCreatorID, testSubscriberID,
			"ONE_TIME", "ACTIVE", 0, "USD", nil, nil, time.Now(), time.Now()))

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/follow", creatorBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	followRouter(testSubscriberID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollow_AfterCanceledPaidSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testCreatorID, creatorWallet, "creator", "", false, 9.99, "USD", "MONTHLY", time.Now(), time.Now()))

	// a CANCELED paid row exists for the pair, but the follow check only
	// looks at zero-amount rows and finds none
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE content_creator_id = \$1 AND subscriber_id = \$2 AND amount = 0(.*)`).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("44444444-4444-4444-4444-444444444444"))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testSubscriberID, subscriberWallet, "sub", "", false, 0, "USD", "MONTHLY", time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("77777777-7777-7777-7777-777777777777"))
	mock.ExpectCommit()

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/follow", creatorBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	followRouter(testSubscriberID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfollow_NotFollowing(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testCreatorID, creatorWallet, "creator", "", false, 9.99, "USD", "MONTHLY", time.Now(), time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "subscriptions" WHERE content_creator_id = \$1 AND subscriber_id = \$2 AND amount = 0`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/unfollow", creatorBody(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	followRouter(testSubscriberID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelSubscription_NotOwner(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	subscriptionID := "33333333-3333-3333-3333-333333333333"
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE id = \$1(.*)`).
		WillReturnRows(subscriptionRows().AddRow(
			subscriptionID, testCreatorID, "someone-else",
			"MONTHLY", "ACTIVE", 9.99, "USD", time.Now().Add(24*time.Hour), nil, time.Now(), time.Now()))

	req, _ := http.NewRequest(http.MethodDelete, "/subscriptions/"+subscriptionID, nil)
	resp := httptest.NewRecorder()
	followRouter(testSubscriberID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelSubscription_InvalidID(t *testing.T) {
	req, _ := http.NewRequest(http.MethodDelete, "/subscriptions/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	followRouter(testSubscriberID).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
