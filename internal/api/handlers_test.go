package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatkit/mockdesk/internal/config"
	"github.com/goatkit/mockdesk/internal/core"
	"github.com/goatkit/mockdesk/internal/store"
	"github.com/goatkit/mockdesk/internal/triggers"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:               8999,
		DefaultAdminID:     111,
		DefaultAdminName:   "Default Admin",
		DefaultAdminEmail:  "admin@example.com",
		JobStatusURLPrefix: "/mock.zendesk.com",
		StateFile:          filepath.Join(t.TempDir(), "state.json"),
	}
	st, err := store.Open(cfg.StateFile, store.Seed{
		AdminID:    cfg.DefaultAdminID,
		AdminName:  cfg.DefaultAdminName,
		AdminEmail: cfg.DefaultAdminEmail,
	})
	require.NoError(t, err)

	engine := gin.New()
	NewRouter(cfg, st, core.NewService(cfg, triggers.NewRunner())).RegisterRoutes(engine)
	return engine
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

// submitAndFetchJob posts a batch mutation, asserts the queued envelope, then
// follows the rendered URL to the completed job, the way real clients do.
func submitAndFetchJob(t *testing.T, router *gin.Engine, path, payload string) map[string]any {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, path, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	queued := decodeBody(t, w)["job_status"].(map[string]any)
	assert.Equal(t, "queued", queued["status"])
	assert.Nil(t, queued["total"])
	assert.Nil(t, queued["progress"])
	assert.Nil(t, queued["message"])

	url, _ := queued["url"].(string)
	require.True(t, strings.HasPrefix(url, "/mock.zendesk.com/api/v2/job_statuses/"), url)
	require.True(t, strings.HasSuffix(url, ".json"), url)

	w = doRequest(t, router, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	completed := decodeBody(t, w)["job_status"].(map[string]any)
	assert.Equal(t, "completed", completed["status"])
	assert.NotNil(t, completed["total"])
	assert.NotNil(t, completed["progress"])
	assert.NotEmpty(t, completed["message"])
	return completed
}

func TestUsersCreateManyEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("creates users through the job contract", func(t *testing.T) {
		completed := submitAndFetchJob(t, router, "/api/v2/users/create_many",
			`{"users":[{"name":"utest1","email":"utest1@a.com"},{"name":"utest2","email":"utest2@a.com"}]}`)

		results := completed["results"].([]any)
		require.Len(t, results, 2)
		first := results[0].(map[string]any)
		assert.Equal(t, float64(0), first["index"])
		assert.Greater(t, first["id"].(float64), float64(0))
	})

	t.Run("json suffix alias", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v2/users/create_many.json",
			`{"users":[{"name":"alias","email":"alias@a.com"}]}`)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("duplicate email is rejected and nothing is committed", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v2/users/create_many",
			`{"users":[{"name":"other","email":"utest1@a.com"}]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "zd:duplicate_email", errorCode(t, w))

		w = doRequest(t, router, http.MethodGet, "/api/v2/users/search?query=email:utest1@a.com", "")
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v2/users/create_many", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUsersSearchEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("finds the seeded admin", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/users/search?query=email:admin@example.com", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
		users := body["users"].([]any)
		require.Len(t, users, 1)
		assert.Equal(t, float64(111), users[0].(map[string]any)["id"])
	})

	t.Run("empty result for unknown email", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/users/search?query=email:ghost@a.com", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), decodeBody(t, w)["count"])
	})

	t.Run("only email queries are supported", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/users/search?query=name:bob", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

		w = doRequest(t, router, http.MethodGet, "/api/v2/users/search", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestUsersShowManyEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("returns known users", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/users/show_many?ids=111", "")
		require.Equal(t, http.StatusOK, w.Code)
		users := decodeBody(t, w)["users"].([]any)
		require.Len(t, users, 1)
	})

	t.Run("unknown user id fails loudly", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/users/show_many?ids=111,999999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing ids parameter", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/users/show_many", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestTicketsImportEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("import with comment shorthand", func(t *testing.T) {
		completed := submitAndFetchJob(t, router, "/api/v2/imports/tickets/create_many",
			`{"tickets":[{"subject":"ticket1","comment":"hello"}]}`)

		results := completed["results"].([]any)
		require.Len(t, results, 1)
		first := results[0].(map[string]any)
		assert.Equal(t, "not yet implemented", first["account_id"])
		assert.Equal(t, true, first["success"])

		ticketID := int64(first["id"].(float64))
		w := doRequest(t, router, http.MethodGet,
			"/api/v2/tickets/"+jsonNumber(ticketID)+"/comments", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
		assert.Equal(t, false, body["otherPagesRemain"])
		comments := body["comments"].([]any)
		assert.Equal(t, "hello", comments[0].(map[string]any)["body"])
	})

	t.Run("unsupported field answers 405", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v2/imports/tickets/create_many",
			`{"tickets":[{"brand_id":1}]}`)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "zd:not_implemented", errorCode(t, w))
	})

	t.Run("inline requester creates the user", func(t *testing.T) {
		submitAndFetchJob(t, router, "/api/v2/imports/tickets/create_many",
			`{"tickets":[{"subject":"inline","requester":{"name":"Inline","email":"inline@a.com"}}]}`)

		w := doRequest(t, router, http.MethodGet, "/api/v2/users/search?query=email:inline@a.com", "")
		assert.Equal(t, float64(1), decodeBody(t, w)["count"])
	})
}

func TestTicketsUpdateEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	completed := submitAndFetchJob(t, router, "/api/v2/imports/tickets/create_many",
		`{"tickets":[{"subject":"seed","tags":["keep"]}]}`)
	ticketID := jsonNumber(int64(completed["results"].([]any)[0].(map[string]any)["id"].(float64)))

	t.Run("update reports per-item results", func(t *testing.T) {
		completed := submitAndFetchJob(t, router, "/api/v2/tickets/update_many.json",
			`{"tickets":[{"id":`+ticketID+`,"status":"pending","additional_tags":["extra"]}]}`)
		first := completed["results"].([]any)[0].(map[string]any)
		assert.Equal(t, "update", first["action"])
		assert.Equal(t, "Updated", first["status"])
		assert.Equal(t, true, first["success"])

		w := doRequest(t, router, http.MethodGet, "/api/v2/tickets/show_many?ids="+ticketID, "")
		ticket := decodeBody(t, w)["tickets"].([]any)[0].(map[string]any)
		assert.Equal(t, "pending", ticket["status"])
		assert.Equal(t, []any{"extra", "keep"}, ticket["tags"])
	})

	t.Run("closed ticket rejects updates", func(t *testing.T) {
		submitAndFetchJob(t, router, "/api/v2/tickets/update_many",
			`{"tickets":[{"id":`+ticketID+`,"status":"closed"}]}`)

		w := doRequest(t, router, http.MethodPost, "/api/v2/tickets/update_many",
			`{"tickets":[{"id":`+ticketID+`,"subject":"nope"}]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "zd:ticket_closed", errorCode(t, w))
	})
}

func TestTicketsShowManyEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	submitAndFetchJob(t, router, "/api/v2/imports/tickets/create_many",
		`{"tickets":[{"subject":"a"}]}`)

	t.Run("missing tickets are skipped", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/tickets/show_many?ids=5001,424242", "")
		require.Equal(t, http.StatusOK, w.Code)
		tickets := decodeBody(t, w)["tickets"].([]any)
		assert.Len(t, tickets, 1)
	})
}

func TestAdminResetEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	submitAndFetchJob(t, router, "/api/v2/users/create_many",
		`{"users":[{"name":"keepme","email":"keepme@a.com"}]}`)
	submitAndFetchJob(t, router, "/api/v2/imports/tickets/create_many",
		`{"tickets":[{"subject":"gone","comment":"bye"}]}`)

	t.Run("delete_all_tickets keeps users", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/delete_all_tickets", "{}")
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, router, http.MethodGet, "/api/v2/tickets/show_many?ids=5001", "")
		assert.Empty(t, decodeBody(t, w)["tickets"])

		w = doRequest(t, router, http.MethodGet, "/api/v2/users/search?query=email:keepme@a.com", "")
		assert.Equal(t, float64(1), decodeBody(t, w)["count"])
	})

	t.Run("delete_all reseeds the admin only", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/delete_all", "{}")
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, router, http.MethodGet, "/api/v2/users/search?query=email:keepme@a.com", "")
		assert.Equal(t, float64(0), decodeBody(t, w)["count"])

		w = doRequest(t, router, http.MethodGet, "/api/v2/users/show_many?ids=111", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJobStatusEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("unknown job id", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/v2/job_statuses/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("reachable without the url prefix too", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v2/users/create_many",
			`{"users":[{"name":"j","email":"j@a.com"}]}`)
		require.Equal(t, http.StatusOK, w.Code)
		queued := decodeBody(t, w)["job_status"].(map[string]any)
		id := queued["id"].(string)

		w = doRequest(t, router, http.MethodGet, "/api/v2/job_statuses/"+id+".json", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, router, http.MethodGet, "/api/v2/job_statuses/"+id, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func jsonNumber(id int64) string {
	return strconv.FormatInt(id, 10)
}
