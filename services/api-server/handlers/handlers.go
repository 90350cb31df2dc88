// Package handlers 实现api-server的HTTP处理器
package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zhikao/datakit/internal/checker"
	"github.com/zhikao/datakit/internal/config"
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
	"github.com/zhikao/datakit/internal/pipeline"
	"github.com/zhikao/datakit/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers API处理器
type Handlers struct {
	cfg       *config.Config
	ref       *checker.RefData
	processor *pipeline.Processor
	fetcher   *report.Fetcher
	tasks     *TaskStore
}

// NewHandlers 创建处理器
func NewHandlers(cfg *config.Config, ref *checker.RefData) *Handlers {
	return &Handlers{
		cfg:       cfg,
		ref:       ref,
		processor: pipeline.New(ref),
		fetcher:   report.NewFetcher(cfg.Report.FetchTimeout),
		tasks:     NewTaskStore(),
	}
}

// Health 健康检查
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "api-server",
	})
}

// Ready 就绪检查，参照数据可以缺失，只降级相应检查功能
func (h *Handlers) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
		"refdata": gin.H{
			"schools_available": h.ref.Schools.Available(),
			"schools_count":     h.ref.Schools.Size(),
			"majors_available":  h.ref.MajorCombos.Available(),
			"majors_count":      h.ref.MajorCombos.Size(),
		},
	})
}

// readUpload 从multipart表单字段读取一张表
func (h *Handlers) readUpload(c *gin.Context, field string, opts *excel.ReadOptions) (*excel.Table, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, model.NewInputFormatError(field, fmt.Sprintf("缺少上传文件字段 %s", field))
	}
	if fh.Size > h.cfg.APIServer.MaxUploadSize {
		return nil, model.NewInputFormatError(fh.Filename, "上传文件超过大小限制")
	}
	return readTableFromFile(fh, opts)
}

func readTableFromFile(fh *multipart.FileHeader, opts *excel.ReadOptions) (*excel.Table, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileReadError, fh.Filename, "打开", "读取上传文件失败", err)
	}
	defer f.Close()

	return excel.ReadTableFrom(f, opts)
}

// abortWithError 把内部错误映射成HTTP响应，
// 输入类错误原样给调用方，其他归为500
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsErrorType(err, model.ErrCodeMissingColumns),
		model.IsErrorType(err, model.ErrCodeInvalidInput),
		model.IsErrorType(err, model.ErrCodeEmptyResult),
		model.IsErrorType(err, model.ErrCodeFileReadError):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// sendWorkbook 以附件形式返回xlsx字节流
func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
