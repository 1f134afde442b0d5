package ui

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"loadboard/adapters/api"
	"loadboard/app"
	"loadboard/internal/cache"
	"loadboard/internal/dataset"
	"loadboard/internal/testkit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var scheduleRows = [][]string{
	{"Course Title", "Code", "Days", "Start Time", "Minutes", "Hall", "Instructor"},
	{"Calculus I", "MATH201", "M", "09:00", "75", "Valikhanov 101", "Smith, John"},
	{"Accounting", "ACC1101", "T", "10:30", "50", "Dostyk 202", "Anna Lee"},
	{"Contracts", "LAW3301", "Tues", "12:00", "50", "Dostyk 202", "Omar Nur"},
}

func uploadStorage(dir string) *dataset.LocalFileStorage {
	cfg := dataset.DefaultStorageConfig()
	cfg.BasePath = dir
	return dataset.NewLocalFileStorage(cfg)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := app.NewDashboardService(cache.New(2), uploadStorage(t.TempDir()), app.DashboardConfig{MaxUploadBytes: 1 << 20})
	s, err := NewServer(svc, api.NewRouter(svc), 1<<20)
	require.NoError(t, err)
	return s
}

func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func upload(t *testing.T, s *Server) {
	t.Helper()
	data, err := testkit.RowsToCSV(scheduleRows)
	require.NoError(t, err)
	rec := serve(s, uploadRequest(t, "fall.csv", data))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestIndexWithoutDataShowsUploadForm(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No schedule loaded")
	assert.Contains(t, body, `action="/upload"`)
	assert.Contains(t, body, "Reading the dashboard")
	assert.NotContains(t, body, "Unique courses")
}

func TestUploadThenDashboard(t *testing.T) {
	s := newTestServer(t)
	upload(t, s)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Unique courses")
	assert.Contains(t, body, "Valikhanov 101")
	assert.Contains(t, body, "Mon 09:00-10:00 (1 sessions)")
	assert.Contains(t, body, "1 rows were skipped")
	assert.Contains(t, body, "/api/charts/instructors.png")
	assert.Contains(t, body, "Columns not found in the source")
	assert.NotContains(t, body, "No sessions match")
}

func TestIndexFallbackNotice(t *testing.T) {
	s := newTestServer(t)
	upload(t, s)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/?hall=Nowhere", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No sessions match the current filters")
}

func TestIndexCarriesFilterIntoLinks(t *testing.T) {
	s := newTestServer(t)
	upload(t, s)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/?day=T&hour_lo=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "/api/export.csv?day=Tue")
	assert.Contains(t, body, `value="Tue" checked`)
}

func TestIndexInvalidFilter(t *testing.T) {
	s := newTestServer(t)
	upload(t, s)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/?day=Funday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing all sessions")
}

func TestUploadRejectsUnsupportedFile(t *testing.T) {
	for _, name := range []string{"notes.pdf", "legacy.xls"} {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t)

			rec := serve(s, uploadRequest(t, name, []byte("%PDF")))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "unsupported file type")
			assert.Contains(t, body, "No schedule loaded")
			assert.Contains(t, body, `accept=".xlsx,.csv"`)
		})
	}
}

func TestUploadWithoutFile(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	rec := serve(s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIAndStaticAreMounted(t *testing.T) {
	s := newTestServer(t)
	upload(t, s)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":true`)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/export.csv?instructor=Anna+Lee", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Accounting")
	assert.NotContains(t, rec.Body.String(), "Calculus")

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/static/dashboard.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenderMarkdown(t *testing.T) {
	out := string(renderMarkdown([]byte("**bold** [x](https://example.com)")))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, `target="_blank"`)
}
