package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhikao/datakit/internal/convert"
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
	"github.com/zhikao/datakit/internal/reconcile"
)

// templateReadOptions 库中导出模板的表头在第三行
var templateReadOptions = &excel.ReadOptions{HeaderRow: 2}

// reconcileResponse 比对结果响应
type reconcileResponse struct {
	Stats     reconcile.Stats          `json:"stats"`
	Provinces []string                 `json:"provinces"`
	Batches   []string                 `json:"batches"`
	Results   []*model.ReconcileResult `json:"results"`
}

// ReconcileScore 招生计划 vs 专业分比对
func (h *Handlers) ReconcileScore(c *gin.Context) {
	h.runReconcile(c, reconcile.ComparePlanVsScore)
}

// ReconcileCollege 招生计划 vs 院校分比对
func (h *Handlers) ReconcileCollege(c *gin.Context) {
	h.runReconcile(c, reconcile.ComparePlanVsCollege)
}

func (h *Handlers) runReconcile(c *gin.Context, compare func(plan, ref *excel.Table) []*model.ReconcileResult) {
	plan, err := h.readUpload(c, "plan", nil)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ref, err := h.readUpload(c, "reference", templateReadOptions)
	if err != nil {
		abortWithError(c, err)
		return
	}

	results := compare(plan, ref)
	results = reconcile.Filter(results, filterOptions(c))

	c.JSON(http.StatusOK, reconcileResponse{
		Stats:     reconcile.ComputeStats(results),
		Provinces: reconcile.UniqueProvinces(results),
		Batches:   reconcile.UniqueBatches(results),
		Results:   results,
	})
}

func filterOptions(c *gin.Context) reconcile.FilterOptions {
	return reconcile.FilterOptions{
		Provinces:     c.QueryArray("province"),
		Batches:       c.QueryArray("batch"),
		OnlyUnmatched: c.Query("only_unmatched") == "true",
	}
}

// ExportReconcile 比对结果导出为xlsx
func (h *Handlers) ExportReconcile(c *gin.Context) {
	plan, err := h.readUpload(c, "plan", nil)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ref, err := h.readUpload(c, "reference", templateReadOptions)
	if err != nil {
		abortWithError(c, err)
		return
	}

	compare := reconcile.ComparePlanVsScore
	if c.Query("mode") == "college" {
		compare = reconcile.ComparePlanVsCollege
	}
	results := reconcile.Filter(compare(plan, ref), filterOptions(c))

	data, err := excel.TableBytes(reconcile.ResultsTable(results), &excel.WriteOptions{
		SheetName:   "比对结果",
		StyleHeader: true,
		ColumnWidth: 12,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	sendWorkbook(c, "比对结果.xlsx", data)
}

// ConvertUnmatched 未匹配计划行转专业分导入模板
func (h *Handlers) ConvertUnmatched(c *gin.Context) {
	plan, err := h.readUpload(c, "plan", nil)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ref, err := h.readUpload(c, "reference", templateReadOptions)
	if err != nil {
		abortWithError(c, err)
		return
	}

	unmatched := reconcile.Unmatched(reconcile.ComparePlanVsScore(plan, ref))
	rows := convert.ToCanonicalRows(unmatched, plan)

	data, err := convert.ExportTemplate(rows, c.PostForm("year"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	sendWorkbook(c, "未匹配数据_专业分模板.xlsx", data)
}

// MatchGroupCodes 专业组代码匹配
func (h *Handlers) MatchGroupCodes(c *gin.Context) {
	base, err := h.readUpload(c, "base", nil)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ref, err := h.readUpload(c, "reference", nil)
	if err != nil {
		abortWithError(c, err)
		return
	}

	out, err := reconcile.MatchGroupCodes(base, ref)
	if err != nil {
		abortWithError(c, err)
		return
	}

	data, err := excel.TableBytes(out, &excel.WriteOptions{
		TextColumns: []string{"专业组代码"},
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	sendWorkbook(c, "专业组代码匹配结果.xlsx", data)
}
