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

const (
	creatorWallet    = "xion1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqq"
	subscriberWallet = "xion1zzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "wallet_address", "user_name", "email", "is_admin",
		"subscription_price", "subscription_currency", "subscription_type",
		"created_at", "updated_at",
	})
}

func paymentRouter(userID string, wallet string) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/create-payment", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("wallet", wallet)
		CreatePayment(c)
	})
	return r
}

func createPaymentBody(t *testing.T, overrides map[string]interface{}) *bytes.Buffer {
	body := map[string]interface{}{
		"creatorWallet":    creatorWallet,
		"subscriberWallet": subscriberWallet,
		"type":             "MONTHLY",
		"amount":           9.99,
		"currency":         "USD",
		"tokenType":        "USDC",
	}
	for k, v := range overrides {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	assert.NoError(t, err)
	return bytes.NewBuffer(raw)
}

func TestCreatePayment_SelfSubscription(t *testing.T) {
	r := paymentRouter(testSubscriberID, subscriberWallet)

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/create-payment",
		createPaymentBody(t, map[string]interface{}{"creatorWallet": subscriberWallet}))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "You cannot subscribe to yourself", respBody["error"])
}

func TestCreatePayment_WalletMismatch(t *testing.T) {
	r := paymentRouter(testSubscriberID, "xion1someotherwalletaaaaaaaaaaaaaaa")

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/create-payment", createPaymentBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestCreatePayment_InvalidAmount(t *testing.T) {
	r := paymentRouter(testSubscriberID, subscriberWallet)

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/create-payment",
		createPaymentBody(t, map[string]interface{}{"amount": 0}))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreatePayment_UnsupportedToken(t *testing.T) {
	r := paymentRouter(testSubscriberID, subscriberWallet)

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/create-payment",
		createPaymentBody(t, map[string]interface{}{"tokenType": "DOGE"}))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreatePayment_AlreadySubscribed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE wallet_address = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testSubscriberID, subscriberWallet, "sub", "", false, 0, "USD", "MONTHLY", time.Now(), time.Now()))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE wallet_address = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testCreatorID, creatorWallet, "creator", "", false, 9.99, "USD", "MONTHLY", time.Now(), time.Now()))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE content_creator_id = \$1 AND subscriber_id = \$2 AND status = \$3 AND amount > 0(.*)`).
		WillReturnRows(subscriptionRows().AddRow(
			"33333333-3333-3333-3333-333333333333", testCreatorID, testSubscriberID,
			"MONTHLY", "ACTIVE", 9.99, "USD", time.Now().Add(24*time.Hour), nil, time.Now(), time.Now()))

	r := paymentRouter(testSubscriberID, subscriberWallet)

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/create-payment", createPaymentBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_Success(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/combined/", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"reference":    "novy_ref_123",
			"redirect_url": "https://pay.novypay.com/novy_ref_123",
		})
	}))
	defer gateway.Close()
	t.Setenv("NOVYPAY_API_KEY", "test-key")
	t.Setenv("NOVYPAY_API_URL", gateway.URL)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE wallet_address = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testSubscriberID, subscriberWallet, "sub", "", false, 0, "USD", "MONTHLY", time.Now(), time.Now()))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE wallet_address = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testCreatorID, creatorWallet, "creator", "", false, 9.99, "USD", "MONTHLY", time.Now(), time.Now()))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE content_creator_id = \$1 AND subscriber_id = \$2 AND status = \$3 AND amount > 0(.*)`).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("55555555-5555-5555-5555-555555555555"))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscription_payments" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("66666666-6666-6666-6666-666666666666"))
	mock.ExpectCommit()

	r := paymentRouter(testSubscriberID, subscriberWallet)

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/create-payment", createPaymentBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "success", respBody["status"])
	assert.Equal(t, "novy_ref_123", respBody["reference"])
	assert.Equal(t, "https://pay.novypay.com/novy_ref_123", respBody["redirectUrl"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_GatewayFailureRollsBack(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"session rejected"}`, http.StatusBadGateway)
	}))
	defer gateway.Close()
	t.Setenv("NOVYPAY_API_KEY", "test-key")
	t.Setenv("NOVYPAY_API_URL", gateway.URL)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE wallet_address = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testSubscriberID, subscriberWallet, "sub", "", false, 0, "USD", "MONTHLY", time.Now(), time.Now()))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE wallet_address = \$1(.*)`).
		WillReturnRows(userRows().AddRow(
			testCreatorID, creatorWallet, "creator", "", false, 9.99, "USD", "MONTHLY", time.Now(), time.Now()))

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE content_creator_id = \$1 AND subscriber_id = \$2 AND status = \$3 AND amount > 0(.*)`).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("55555555-5555-5555-5555-555555555555"))
	mock.ExpectCommit()

	// pending row is removed when the gateway refuses the session
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "subscriptions" WHERE "subscriptions"\."id" = \$1`).
		WithArgs("55555555-5555-5555-5555-555555555555").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// the subscriber still gets a failure notification
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("77777777-7777-7777-7777-777777777777"))
	mock.ExpectCommit()

	r := paymentRouter(testSubscriberID, subscriberWallet)

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/create-payment", createPaymentBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Payment gateway error", respBody["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
