package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residence/server/internal/content"
	"residence/server/internal/filestore"
	"residence/server/internal/leads"
	"residence/server/internal/media"
	"residence/server/internal/models"
)

type testServer struct {
	router     *gin.Engine
	uploadsDir string
	bookings   *filestore.BookingLog
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	bookings := filestore.NewBookingLog(filepath.Join(dir, "bookings.json"))

	handler := NewHandler(
		filestore.NewContentFile(filepath.Join(dir, "data.json")),
		media.NewService(uploads, "/uploads", logger),
		leads.NewService(bookings, nil, logger),
		logger,
	)

	router := gin.New()
	SetupRoutes(router, handler, []string{"*"})
	return &testServer{router: router, uploadsDir: uploads, bookings: bookings}
}

func (s *testServer) do(method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

func TestGetData_EmptyObjectBeforeFirstSave(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/data", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestSaveData_RoundTrip(t *testing.T) {
	s := newTestServer(t)
	data, err := json.Marshal(content.Defaults())
	require.NoError(t, err)

	w := s.do(http.MethodPost, "/api/data", data, "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/data", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got models.AllData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, content.Defaults(), got)
}

func TestSaveData_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{`{"projects":`, `[1,2]`, `null`, `"text"`, ``} {
		w := s.do(http.MethodPost, "/api/data", []byte(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := s.do(http.MethodGet, "/api/data", nil, "")
	assert.JSONEq(t, `{}`, w.Body.String(), "rejected snapshots are not stored")
}

const siteSnapshot = `{
	"projects": [{"id": "p1", "name": "Северный", "apartmentsLeft": 12, "plans": [{"id": "a", "rooms": "2", "badge": "hit"}]}],
	"homeContent": {"heroTitle": "Дом", "heroVideo": "/video/hero.mp4"},
	"projectFilters": {"rooms": ["studio", "1", "2"]},
	"promotions": [{"title": "Скидка 5%", "until": "2026-12-31"}]
}`

func TestSaveData_KeepsFieldsItDoesNotModel(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/data", []byte(siteSnapshot), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/data", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, siteSnapshot, w.Body.String())
}

func TestProjectsCRUD_KeepsFieldsItDoesNotModel(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/data", []byte(siteSnapshot), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/projects/p1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"apartmentsLeft"`)

	w = s.do(http.MethodPut, "/api/projects/p1", []byte(`{"name":"Северный-2","apartmentsLeft":9,"totalFloors":"25"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/projects", []byte(`{"name":"Речной","apartmentsLeft":40}`), "application/json")
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/api/data", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.JSONEq(t, `{"heroTitle": "Дом", "heroVideo": "/video/hero.mp4"}`, string(doc["homeContent"]))
	assert.JSONEq(t, `{"rooms": ["studio", "1", "2"]}`, string(doc["projectFilters"]))
	assert.Contains(t, string(doc["promotions"]), "Скидка 5%")

	var projects []map[string]interface{}
	require.NoError(t, json.Unmarshal(doc["projects"], &projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "p1", projects[0]["id"])
	assert.Equal(t, float64(9), projects[0]["apartmentsLeft"])
	assert.Equal(t, "25", projects[0]["totalFloors"])
	assert.Equal(t, float64(40), projects[1]["apartmentsLeft"])
	assert.NotEmpty(t, projects[1]["id"])
}

func TestProjectsCRUD_RejectsNonObject(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/projects", []byte(`["not","a","project"]`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		wantStatus  int
		wantError   string
	}{
		{"png", "plan.png", "image/png", png, http.StatusOK, ""},
		{"sniffed png", "plan.png", "", png, http.StatusOK, ""},
		{"text file", "notes.txt", "text/plain", []byte("hello"), http.StatusBadRequest, "unsupported format"},
		{"too large", "big.png", "image/png", append(png, make([]byte, media.MaxUploadSize)...), http.StatusBadRequest, "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			body, ct := multipartBody(t, "image", tt.filename, tt.contentType, tt.data)

			w := s.do(http.MethodPost, "/api/upload", body, ct)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Contains(t, resp["error"], tt.wantError)
				entries, _ := os.ReadDir(s.uploadsDir)
				assert.Empty(t, entries, "nothing is stored on rejection")
				return
			}

			assert.True(t, strings.HasPrefix(resp["url"], "/uploads/"))
			assert.True(t, strings.HasSuffix(resp["url"], ".png"))

			served := s.do(http.MethodGet, resp["url"], nil, "")
			assert.Equal(t, http.StatusOK, served.Code)
		})
	}
}

func TestUpload_ServedAsImageWhateverTheFilename(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, "image", "evil.html", "image/png", []byte("<script>alert(document.cookie)</script>"))

	w := s.do(http.MethodPost, "/api/upload", body, ct)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ".png", filepath.Ext(resp["url"]))

	served := s.do(http.MethodGet, resp["url"], nil, "")
	require.Equal(t, http.StatusOK, served.Code)
	assert.NotContains(t, served.Header().Get("Content-Type"), "text/html")
}

func TestUpload_MissingField(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, "file", "plan.png", "image/png", []byte("x"))
	w := s.do(http.MethodPost, "/api/upload", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooking(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/booking", []byte(`{"name":"  ","phone":"+7 900"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list, err := s.bookings.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "rejected booking is not recorded")

	w = s.do(http.MethodPost, "/api/booking", []byte(`{"name":"Иван","phone":"+7 900","projectName":"ЖК «Северный»","rooms":2}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK        bool   `json:"ok"`
		BookingID string `json:"bookingId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.BookingID)

	w = s.do(http.MethodGet, "/api/bookings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, resp.BookingID, bookings[0].ID)
	assert.Equal(t, "2", bookings[0].Rooms.String())
}

func TestBooking_LooselyTypedFields(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		expect func(t *testing.T, b models.Booking)
	}{
		{
			name: "rooms and floor as strings",
			body: `{"name":"Ivan","phone":"+7 900","rooms":"2","floor":"5"}`,
			expect: func(t *testing.T, b models.Booking) {
				assert.Equal(t, "2", b.Rooms.String())
				assert.Equal(t, "5", b.Floor.String())
			},
		},
		{
			name: "numeric price",
			body: `{"name":"Ivan","phone":"+7 900","price":5000000}`,
			expect: func(t *testing.T, b models.Booking) {
				assert.Equal(t, "5000000", b.Price.String())
			},
		},
		{
			name: "studio label",
			body: `{"name":"Ivan","phone":"+7 900","rooms":"studio","area":"26,4"}`,
			expect: func(t *testing.T, b models.Booking) {
				assert.Equal(t, "studio", b.Rooms.String())
				assert.Equal(t, "26,4", b.Area.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.do(http.MethodPost, "/api/booking", []byte(tt.body), "application/json")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			list, err := s.bookings.List(context.Background())
			require.NoError(t, err)
			require.Len(t, list, 1)
			tt.expect(t, list[0])

			w = s.do(http.MethodGet, "/api/bookings", nil, "")
			require.Equal(t, http.StatusOK, w.Code)
			var served []models.Booking
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &served))
			require.Len(t, served, 1)
			tt.expect(t, served[0])
		})
	}
}

func TestProjectsCRUD(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/projects/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/projects", []byte(`{"name":"Тест","slug":"test"}`), "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = s.do(http.MethodPut, "/api/projects/"+created.ID, []byte(`{"name":"Новое имя","slug":"test"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/projects/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Новое имя")

	w = s.do(http.MethodPut, "/api/projects/missing", []byte(`{"name":"x"}`), "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/api/projects/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = s.do(http.MethodDelete, "/api/projects/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["time"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/data", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
