package aggregate

import (
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
)

// OrdinaryColumns 普通类模板的必需列
var OrdinaryColumns = []string{
	"学校名称", "省份", "招生专业", "专业方向（选填）", "专业备注（选填）", "一级层次", "招生科类", "招生批次",
	"招生类型（选填）", "最高分", "最低分", "平均分", "最低分位次（选填）", "招生人数（选填）", "数据来源",
	"专业组代码", "首选科目", "选科要求", "次选科目", "专业代码", "招生代码", "录取人数（选填）",
}

// OrdinaryTextColumns 导出时保持文本格式的列
var OrdinaryTextColumns = []string{
	"专业组代码", "专业代码", "招生代码", "最高分", "最低分", "平均分", "最低分位次（选填）",
	"招生人数（选填）",
}

// ordinaryDropColumns 提取结果中剔除的明细列
var ordinaryDropColumns = map[string]bool{
	"招生专业":     true,
	"专业方向（选填）": true,
	"专业备注（选填）": true,
	"选科要求":     true,
	"次选科目":     true,
}

// ordinaryGroupFields 普通类分组字段（专业组代码视数据情况追加）
var ordinaryGroupFields = []string{"学校名称", "省份", "一级层次", "招生科类", "招生批次", "招生类型（选填）"}

// ExtractOrdinary 普通类院校分提取：校验模板列，展开首选科目缩写，
// 按分组取最低分代表行并回填组内最高分、招生/录取人数合计，
// 最后剔除专业明细列。
func ExtractOrdinary(t *excel.Table) (*excel.Table, error) {
	if missing := t.MissingColumns(OrdinaryColumns); len(missing) > 0 {
		return nil, model.NewMissingColumnsError("", missing)
	}

	work := t.Slice(0, t.Len())
	normalizeFirstSubject(work)

	groupFields := ordinaryGroupFields
	if HasGroupCode(work) {
		groupFields = append(append([]string{}, groupFields...), "专业组代码")
	}

	result, err := ExtractRepresentatives(work, Options{
		GroupFields: groupFields,
		ScoreField:  "最低分",
		MaxField:    "最高分",
		SumFields:   []string{"招生人数（选填）", "录取人数（选填）"},
	})
	if err != nil {
		return nil, err
	}
	if result.Len() == 0 {
		return nil, model.NewEmptyResultError("院校分提取", "筛选结果为空。")
	}

	var keep []string
	for _, c := range OrdinaryColumns {
		if !ordinaryDropColumns[c] {
			keep = append(keep, c)
		}
	}
	return result.Select(keep), nil
}

// ArtsColumns 艺体类模板的必需列
var ArtsColumns = []string{
	"学校名称", "省份", "专业", "专业方向（选填）", "专业备注（选填）", "专业层次",
	"专业类别", "是否校考", "招生类别", "招生批次", "最低分", "最低分位次（选填）",
	"专业组代码", "首选科目", "选科要求", "次选科目", "招生代码", "校统考分",
	"校文化分", "专业代码", "数据来源",
}

// ArtsTextColumns 艺体类导出时保持文本格式的列
var ArtsTextColumns = []string{
	"专业组代码", "专业代码", "招生代码", "最低分", "最低分位次（选填）",
	"校统考分", "校文化分",
}

// artsGroupFields 艺体类分组字段
var artsGroupFields = []string{"学校名称", "省份", "专业方向（选填）", "专业层次", "专业类别", "招生类别", "招生批次"}

// ExtractArts 艺体类院校分提取：只取代表行，不回填最高分和人数合计，
// 结果保留全部模板列。
func ExtractArts(t *excel.Table) (*excel.Table, error) {
	if missing := t.MissingColumns(ArtsColumns); len(missing) > 0 {
		return nil, model.NewMissingColumnsError("", missing)
	}

	work := t.Slice(0, t.Len())
	normalizeFirstSubject(work)

	groupFields := artsGroupFields
	if HasGroupCode(work) {
		groupFields = append(append([]string{}, groupFields...), "专业组代码")
	}

	result, err := ExtractRepresentatives(work, Options{
		GroupFields: groupFields,
		ScoreField:  "最低分",
	})
	if err != nil {
		return nil, err
	}
	if result.Len() == 0 {
		return nil, model.NewEmptyResultError("院校分提取", "筛选结果为空。")
	}
	return result.Select(ArtsColumns), nil
}
