package handlers

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xuri/excelize/v2"

	"github.com/zhikao/datakit/internal/aggregate"
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
	"github.com/zhikao/datakit/internal/pipeline"
	"github.com/zhikao/datakit/internal/report"
	"github.com/zhikao/datakit/internal/segment"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CheckRemarks 备注检查：启动后台任务逐块处理，
// 立即返回任务ID，进度走WebSocket，结果按任务ID下载。
func (h *Handlers) CheckRemarks(c *gin.Context) {
	table, err := h.readUpload(c, "file", templateReadOptions)
	if err != nil {
		abortWithError(c, err)
		return
	}

	task := h.tasks.Create()
	taskID, status := task.ID, task.Status
	go h.runRemarkCheck(taskID, table)

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": taskID,
		"status":  status,
	})
}

func (h *Handlers) runRemarkCheck(taskID string, table *excel.Table) {
	opts := &pipeline.Options{
		ChunkSize: h.cfg.Process.ChunkSize,
		Workers:   h.cfg.Process.Workers,
		Progress: func(done, total int) {
			h.tasks.UpdateProgress(taskID, done, total)
		},
	}

	out, err := h.processor.ProcessRemarks(context.Background(), table, opts)
	if err != nil {
		log.Printf("备注检查任务失败: task=%s err=%v", taskID, err)
		h.tasks.Fail(taskID, err)
		return
	}

	data, err := excel.TableBytes(out, &excel.WriteOptions{
		TextColumns: []string{"专业组代码", "专业代码", "招生代码"},
	})
	if err != nil {
		h.tasks.Fail(taskID, err)
		return
	}
	h.tasks.Complete(taskID, data, "备注检查结果.xlsx")
}

// GetTask 查询任务状态
func (h *Handlers) GetTask(c *gin.Context) {
	task, ok := h.tasks.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// TaskProgress WebSocket进度推送，任务结束后连接关闭
func (h *Handlers) TaskProgress(c *gin.Context) {
	events, ok := h.tasks.Subscribe(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for event := range events {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// DownloadTaskResult 下载任务结果
func (h *Handlers) DownloadTaskResult(c *gin.Context) {
	data, filename, ok := h.tasks.Result(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务结果不存在"})
		return
	}
	sendWorkbook(c, filename, data)
}

// ExtractOrdinary 普通类院校分提取
func (h *Handlers) ExtractOrdinary(c *gin.Context) {
	h.runExtract(c, aggregate.ExtractOrdinary, aggregate.OrdinaryTextColumns)
}

// ExtractArts 艺体类院校分提取
func (h *Handlers) ExtractArts(c *gin.Context) {
	h.runExtract(c, aggregate.ExtractArts, aggregate.ArtsTextColumns)
}

func (h *Handlers) runExtract(c *gin.Context, extract func(*excel.Table) (*excel.Table, error), textColumns []string) {
	table, err := h.readUpload(c, "file", templateReadOptions)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := extract(table)
	if err != nil {
		abortWithError(c, err)
		return
	}

	data, err := excel.TableBytes(result, &excel.WriteOptions{TextColumns: textColumns})
	if err != nil {
		abortWithError(c, err)
		return
	}
	sendWorkbook(c, "院校分.xlsx", data)
}

// RepairSegmentation 一分一段校验修复
func (h *Handlers) RepairSegmentation(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, model.NewInputFormatError("file", "缺少上传文件字段 file"))
		return
	}

	src, err := fh.Open()
	if err != nil {
		abortWithError(c, model.NewFileError(model.ErrCodeFileReadError, fh.Filename, "打开", "读取上传文件失败", err))
		return
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		abortWithError(c, model.NewFileError(model.ErrCodeFileReadError, fh.Filename, "解析", "读取文件错误", err))
		return
	}
	defer f.Close()

	if err := segment.RepairWorkbook(f); err != nil {
		abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		abortWithError(c, model.NewFileError(model.ErrCodeFileWrite, fh.Filename, "编码", "编码Excel失败", err))
		return
	}
	sendWorkbook(c, "一分一段_校验结果.xlsx", buf.Bytes())
}

// BuildReportPDF 抓取就业质量报告页面图片并合成PDF
func (h *Handlers) BuildReportPDF(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := os.MkdirAll(h.cfg.Report.OutputDir, 0o755); err != nil {
		abortWithError(c, model.NewFileError(model.ErrCodeFileWrite, h.cfg.Report.OutputDir, "创建目录", "创建输出目录失败", err))
		return
	}
	workDir, err := os.MkdirTemp(h.cfg.Report.OutputDir, "report-*")
	if err != nil {
		abortWithError(c, model.NewFileError(model.ErrCodeFileWrite, h.cfg.Report.OutputDir, "创建目录", "创建工作目录失败", err))
		return
	}
	defer os.RemoveAll(workDir)

	images, err := h.fetcher.FetchImages(c.Request.Context(), req.URL, workDir)
	if err != nil {
		abortWithError(c, err)
		return
	}

	pdfPath := filepath.Join(workDir, "report.pdf")
	ok, err := report.BuildPDF(images, pdfPath)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "页面中没有可用图片"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report.pdf"`)
	c.File(pdfPath)
}
