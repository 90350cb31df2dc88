// Package reconcile 实现两份表格数据之间的组合键比对
package reconcile

import (
	"strings"

	"github.com/zhikao/datakit/internal/excel"
)

// KeyDelimiter 组合键分隔符
const KeyDelimiter = "|"

// PlanScoreKeyFields 招生计划 vs 专业分的组合键字段（8字段，顺序即键）
var PlanScoreKeyFields = []string{"年份", "省份", "学校", "科类", "批次", "专业", "层次", "专业组代码"}

// PlanCollegeKeyFields 招生计划 vs 院校分的组合键字段（6字段）
var PlanCollegeKeyFields = []string{"年份", "省份", "学校", "科类", "批次", "专业组代码"}

// BuildKey 生成组合键：按fields顺序取值、trim后用"|"连接。
// 缺列按空串处理；行本身缺失时返回等长的空段兜底键，
// 让这行在比对中安静落空，而不是让整批运行中止。
func BuildKey(row *excel.Row, fields []string) string {
	if row == nil {
		return FallbackKey(fields)
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = row.TrimValue(f)
	}
	return strings.Join(parts, KeyDelimiter)
}

// FallbackKey 兜底键：len(fields)个空段
func FallbackKey(fields []string) string {
	return strings.Join(make([]string, len(fields)), KeyDelimiter)
}
