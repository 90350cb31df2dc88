package reconcile

import (
	"fmt"
	"log"
	"sort"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
)

// AuxField 附加描述字段：不参与组合键，仅随结果携带展示。
// Name是展示名，Column是来源列（两者多数相同，个别列名做了缩写）。
type AuxField struct {
	Name   string
	Column string
}

// planScoreAuxFields 计划vs专业分比对携带的附加字段
var planScoreAuxFields = []AuxField{
	{Name: "招生人数", Column: "招生人数"},
	{Name: "学费", Column: "学费"},
	{Name: "学制", Column: "学制"},
	{Name: "专业代码", Column: "专业代码"},
	{Name: "招生代码", Column: "招生代码"},
	{Name: "数据来源", Column: "数据来源"},
	{Name: "备注", Column: "备注"},
	{Name: "招生类型", Column: "招生类型"},
	{Name: "专业组选科要求", Column: "专业组选科要求"},
	{Name: "专业选科要求", Column: "专业选科要求(新高考专业省份)"},
}

// planCollegeAuxFields 计划vs院校分比对携带的附加字段。
// 专业、层次不在6字段键里，所以这里补进展示信息。
var planCollegeAuxFields = []AuxField{
	{Name: "专业", Column: "专业"},
	{Name: "层次", Column: "层次"},
	{Name: "招生人数", Column: "招生人数"},
	{Name: "学费", Column: "学费"},
	{Name: "学制", Column: "学制"},
	{Name: "专业代码", Column: "专业代码"},
	{Name: "招生代码", Column: "招生代码"},
	{Name: "数据来源", Column: "数据来源"},
	{Name: "备注", Column: "备注"},
	{Name: "招生类型", Column: "招生类型"},
}

// ComparePlanVsScore 招生计划表与专业分表按8字段键比对
func ComparePlanVsScore(plan, score *excel.Table) []*model.ReconcileResult {
	return compare(plan, score, PlanScoreKeyFields, planScoreAuxFields)
}

// ComparePlanVsCollege 招生计划表与院校分表按6字段键比对
func ComparePlanVsCollege(plan, college *excel.Table) []*model.ReconcileResult {
	return compare(plan, college, PlanCollegeKeyFields, planCollegeAuxFields)
}

// compare 集合比对：参照表的键入set，逐行查询基准表，O(n+m)。
// 结果顺序与基准表行序一致。
func compare(base, ref *excel.Table, keyFields []string, auxFields []AuxField) []*model.ReconcileResult {
	refKeys := make(map[string]struct{}, ref.Len())
	for _, row := range ref.Rows {
		refKeys[BuildKey(row, keyFields)] = struct{}{}
	}

	results := make([]*model.ReconcileResult, 0, base.Len())
	for i, row := range base.Rows {
		key := BuildKey(row, keyFields)
		_, exists := refKeys[key]

		r := &model.ReconcileResult{
			Index:         i + 1,
			OriginalIndex: i,
			Exists:        exists,
		}
		for _, f := range keyFields {
			r.KeyFields = append(r.KeyFields, model.Field{Name: f, Value: row.TrimValue(f)})
		}
		for _, af := range auxFields {
			r.OtherInfo = append(r.OtherInfo, model.Field{Name: af.Name, Value: row.TrimValue(af.Column)})
		}
		results = append(results, r)
	}

	log.Printf("比对完成：基准表 %d 行，参照表 %d 行，参照键 %d 个", base.Len(), ref.Len(), len(refKeys))
	return results
}

// Stats 比对结果统计
type Stats struct {
	Total     int    `json:"total"`
	Matched   int    `json:"matched"`
	Unmatched int    `json:"unmatched"`
	MatchRate string `json:"match_rate"`
}

// ComputeStats 汇总匹配统计，空输入的匹配率固定为"0.00%"
func ComputeStats(results []*model.ReconcileResult) Stats {
	s := Stats{Total: len(results)}
	for _, r := range results {
		if r.Exists {
			s.Matched++
		} else {
			s.Unmatched++
		}
	}
	if s.Total == 0 {
		s.MatchRate = "0.00%"
	} else {
		s.MatchRate = fmt.Sprintf("%.2f%%", float64(s.Matched)/float64(s.Total)*100)
	}
	return s
}

// Unmatched 筛出未匹配行
func Unmatched(results []*model.ReconcileResult) []*model.ReconcileResult {
	var out []*model.ReconcileResult
	for _, r := range results {
		if !r.Exists {
			out = append(out, r)
		}
	}
	return out
}

// UniqueProvinces 去重排序后的省份列表，供筛选控件使用
func UniqueProvinces(results []*model.ReconcileResult) []string {
	return uniqueKeyValues(results, "省份")
}

// UniqueBatches 去重排序后的批次列表
func UniqueBatches(results []*model.ReconcileResult) []string {
	return uniqueKeyValues(results, "批次")
}

func uniqueKeyValues(results []*model.ReconcileResult, field string) []string {
	seen := make(map[string]struct{})
	for _, r := range results {
		v := r.KeyField(field)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// FilterOptions 结果筛选条件，零值表示不过滤
type FilterOptions struct {
	Provinces     []string
	Batches       []string
	OnlyUnmatched bool
}

// Filter 按省份、批次、匹配状态筛选结果
func Filter(results []*model.ReconcileResult, opts FilterOptions) []*model.ReconcileResult {
	provinces := toSet(opts.Provinces)
	batches := toSet(opts.Batches)

	var out []*model.ReconcileResult
	for _, r := range results {
		if opts.OnlyUnmatched && r.Exists {
			continue
		}
		if len(provinces) > 0 {
			if _, ok := provinces[r.KeyField("省份")]; !ok {
				continue
			}
		}
		if len(batches) > 0 {
			if _, ok := batches[r.KeyField("批次")]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ResultsTable 把比对结果摊平成可导出的表格：
// 序号、匹配状态、键字段、附加字段，列序固定。
func ResultsTable(results []*model.ReconcileResult) *excel.Table {
	columns := []string{"序号", "匹配状态"}
	if len(results) > 0 {
		for _, f := range results[0].KeyFields {
			columns = append(columns, f.Name)
		}
		for _, f := range results[0].OtherInfo {
			columns = append(columns, f.Name)
		}
	}

	t := excel.NewTable(columns)
	for _, r := range results {
		values := []string{fmt.Sprintf("%d", r.Index), r.StatusText()}
		for _, f := range r.KeyFields {
			values = append(values, f.Value)
		}
		for _, f := range r.OtherInfo {
			values = append(values, f.Value)
		}
		t.AppendValues(values)
	}
	return t
}
