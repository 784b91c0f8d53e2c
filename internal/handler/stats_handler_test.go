package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"testreport/internal/domain"
	"testreport/internal/handler"
	"testreport/mocks"
)

func TestStatsHandler_GetStats(t *testing.T) {
	svc := new(mocks.MockStatsService)
	svc.On("GetStats", mock.Anything).
		Return(&domain.Stats{TotalReports: 2, TotalTests: 20, PassedTests: 18, FailedTests: 2}, nil)

	r := gin.New()
	r.GET("/stats", handler.NewStatsHandler(svc).GetStats)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_reports":2`)
	assert.Contains(t, w.Body.String(), `"failed_tests":2`)
}

func TestStatsHandler_GetStats_Error(t *testing.T) {
	svc := new(mocks.MockStatsService)
	svc.On("GetStats", mock.Anything).Return(nil, assert.AnError)

	r := gin.New()
	r.GET("/stats", handler.NewStatsHandler(svc).GetStats)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
}
