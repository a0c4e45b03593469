package comment

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"quanta-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
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
	videoID  = "123e4567-e89b-12d3-a456-426614174000"
	authorID = "22222222-2222-2222-2222-222222222222"
	parentID = "33333333-3333-3333-3333-333333333333"
	replyID  = "44444444-4444-4444-4444-444444444444"
)

func commentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "content_id", "content_type", "user_id", "parent_id", "content", "created_at",
	})
}

func commentRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/content/:contentType/:contentId/comments", func(c *gin.Context) {
		c.Set("user_id", authorID)
		CreateComment(c)
	})
	r.GET("/content/:contentType/:contentId/comments", GetComments)
	return r
}

func TestCreateComment_OnVideo(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "videos" WHERE id = \$1 AND (.*)"videos"\."deleted_at" IS NULL(.*)`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("11111111-1111-1111-1111-111111111111"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "content_comments" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(parentID))
	mock.ExpectCommit()

	raw, _ := json.Marshal(map[string]string{"content": "Great video"})
	req, _ := http.NewRequest(http.MethodPost, "/content/video/"+videoID+"/comments", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	commentRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Great video", respBody["content"])
}

func TestCreateComment_ParentOnOtherContent(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "videos" WHERE id = \$1 AND (.*)"videos"\."deleted_at" IS NULL(.*)`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("11111111-1111-1111-1111-111111111111"))

	// the parent belongs to an article, not this video
	mock.ExpectQuery(`SELECT (.+) FROM "content_comments" WHERE id = \$1(.*)`).
		WillReturnRows(commentRows().AddRow(
			parentID, "999e4567-e89b-12d3-a456-426614174000", "article", authorID, nil, "First", time.Now()))

	raw, _ := json.Marshal(map[string]string{"content": "Reply", "parentId": parentID})
	req, _ := http.NewRequest(http.MethodPost, "/content/video/"+videoID+"/comments", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	commentRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetComments_Threaded(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "content_comments" WHERE content_id = \$1 AND content_type = \$2 ORDER BY created_at DESC`).
		WithArgs(videoID, "video").
		WillReturnRows(commentRows().
			AddRow(replyID, videoID, "video", authorID, parentID, "A reply", time.Now()).
			AddRow(parentID, videoID, "video", authorID, nil, "Top level", time.Now().Add(-time.Hour)))

	req, _ := http.NewRequest(http.MethodGet, "/content/video/"+videoID+"/comments", nil)
	resp := httptest.NewRecorder()
	commentRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var threads []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &threads)
	if !assert.Len(t, threads, 1) {
		return
	}
	assert.Equal(t, "Top level", threads[0]["content"])

	replies, ok := threads[0]["replies"].([]interface{})
	if assert.True(t, ok) {
		assert.Len(t, replies, 1)
	}
}

func TestGetComments_InvalidContentType(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/content/story/"+videoID+"/comments", nil)
	resp := httptest.NewRecorder()
	commentRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
