package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhikao/datakit/internal/checker"
	"github.com/zhikao/datakit/internal/config"
	"github.com/zhikao/datakit/internal/excel"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load("")
	require.NoError(t, err)

	ref := &checker.RefData{
		Schools:     checker.NewRefSet([]string{"清华大学"}),
		MajorCombos: checker.NewRefSet([]string{"计算机科学与技术本科"}),
	}
	return NewHandlers(cfg, ref)
}

func newTestRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/ready", h.Ready)
	api.POST("/reconcile/score", h.ReconcileScore)
	return r
}

func TestHealth(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReady(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string `json:"status"`
		RefData struct {
			SchoolsAvailable bool `json:"schools_available"`
			SchoolsCount     int  `json:"schools_count"`
		} `json:"refdata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.True(t, body.RefData.SchoolsAvailable)
	assert.Equal(t, 1, body.RefData.SchoolsCount)
}

// keyColumns 比对组合键的八个字段
var keyColumns = []string{"年份", "省份", "学校", "科类", "批次", "专业", "层次", "专业组代码"}

func planBytes(t *testing.T, rows ...[]string) []byte {
	t.Helper()
	table := excel.NewTable(keyColumns)
	for _, r := range rows {
		table.AppendValues(r)
	}
	data, err := excel.TableBytes(table, nil)
	require.NoError(t, err)
	return data
}

func referenceBytes(t *testing.T, rows ...[]string) []byte {
	t.Helper()
	table := excel.NewTable(keyColumns)
	for _, r := range rows {
		table.AppendValues(r)
	}
	// 库中导出模板说明和年份占前两行，表头在第三行
	data, err := excel.WriteImportTemplate(table, &excel.TemplateOptions{Year: "2025"})
	require.NoError(t, err)
	return data
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for field, data := range files {
		fw, err := w.CreateFormFile(field, field+".xlsx")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestReconcileScore(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	matched := []string{"2025", "北京", "清华大学", "物理类", "本科批", "计算机科学与技术", "本科", "01"}
	missing := []string{"2025", "上海", "复旦大学", "物理类", "本科批", "法学", "本科", "02"}

	body, contentType := multipartBody(t, map[string][]byte{
		"plan":      planBytes(t, matched, missing),
		"reference": referenceBytes(t, matched),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile/score", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Stats struct {
			Total     int    `json:"total"`
			Matched   int    `json:"matched"`
			Unmatched int    `json:"unmatched"`
			MatchRate string `json:"match_rate"`
		} `json:"stats"`
		Provinces []string `json:"provinces"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.Matched)
	assert.Equal(t, 1, resp.Stats.Unmatched)
	assert.Equal(t, "50.00%", resp.Stats.MatchRate)
	assert.Equal(t, []string{"上海", "北京"}, resp.Provinces)
}

func TestReconcileScoreMissingUpload(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	body, contentType := multipartBody(t, map[string][]byte{
		"plan": planBytes(t),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile/score", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reference")
}
