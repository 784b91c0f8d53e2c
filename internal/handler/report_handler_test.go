package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"testreport/internal/domain"
	"testreport/internal/handler"
	"testreport/internal/service"
	"testreport/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newReportRouter(svc service.ReportService) *gin.Engine {
	h := handler.NewReportHandler(svc)
	r := gin.New()
	r.POST("/reports", h.Upload)
	r.GET("/reports", h.List)
	r.GET("/reports/:id", h.GetByID)
	r.GET("/reports/:id/failures", h.ListFailures)
	r.GET("/reports/:id/export", h.Export)
	r.GET("/reports/:id/file", h.GetFileURL)
	r.DELETE("/reports/:id", h.Delete)
	return r
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func multipartPDFBody(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 içerik"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestReportHandler_Upload(t *testing.T) {
	svc := new(mocks.MockReportService)
	svc.On("Upload", mock.Anything, mock.Anything).
		Return(&service.ReportDetail{Report: &domain.Report{Filename: "rapor.pdf"}}, nil)

	body, contentType := multipartPDFBody(t, "file", "rapor.pdf")
	req := httptest.NewRequest(http.MethodPost, "/reports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
}

func TestReportHandler_Upload_MissingFile(t *testing.T) {
	svc := new(mocks.MockReportService)

	body, contentType := multipartPDFBody(t, "document", "rapor.pdf")
	req := httptest.NewRequest(http.MethodPost, "/reports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestReportHandler_Upload_UnsupportedType(t *testing.T) {
	svc := new(mocks.MockReportService)
	svc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartPDFBody(t, "file", "rapor.docx")
	req := httptest.NewRequest(http.MethodPost, "/reports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestReportHandler_List_DefaultsSort(t *testing.T) {
	svc := new(mocks.MockReportService)
	svc.On("List", mock.Anything, "date", "desc").Return([]domain.Report{{Filename: "rapor.pdf"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReportHandler_GetByID_InvalidID(t *testing.T) {
	svc := new(mocks.MockReportService)

	req := httptest.NewRequest(http.MethodGet, "/reports/not-a-uuid", nil)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
}

func TestReportHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockReportService)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/reports/"+id.String(), nil)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestReportHandler_Export(t *testing.T) {
	svc := new(mocks.MockReportService)
	id := uuid.New()
	svc.On("Export", mock.Anything, id).Return(&service.ExportFile{
		Filename:    "rapor_analiz.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("workbook-bytes"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/"+id.String()+"/export", nil)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="rapor_analiz.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "workbook-bytes", w.Body.String())
}

func TestReportHandler_GetFileURL(t *testing.T) {
	svc := new(mocks.MockReportService)
	id := uuid.New()
	svc.On("GetFileURL", mock.Anything, id).Return("https://s3/presigned/rapor.pdf", nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/"+id.String()+"/file", nil)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), "https://s3/presigned/rapor.pdf")
}

func TestReportHandler_GetFileURL_NotFound(t *testing.T) {
	svc := new(mocks.MockReportService)
	id := uuid.New()
	svc.On("GetFileURL", mock.Anything, id).Return("", domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/reports/"+id.String()+"/file", nil)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandler_Delete(t *testing.T) {
	svc := new(mocks.MockReportService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/reports/"+id.String(), nil)
	w := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
