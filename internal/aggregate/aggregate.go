// Package aggregate 实现院校分提取：按分组取最低分代表行，
// 并把组内最高分、人数合计回填到代表行上
package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
)

// keySep 分组键内部分隔符，取不会出现在单元格里的控制字符
const keySep = "\x00"

// Options 通用分组提取参数
type Options struct {
	// GroupFields 分组字段，按值元组分组（顺序只影响展示）
	GroupFields []string
	// ScoreField 选代表行的依据列，不可解析的行整体不参与分组
	ScoreField string
	// MaxField 回填组内最大值的列，空串表示不回填
	MaxField string
	// SumFields 回填组内合计的列
	SumFields []string
}

// group 单个分组的聚合状态
type group struct {
	repIndex int // 最低分所在行（同分取先出现的）
	repScore float64
	maxScore float64
	hasMax   bool
	sums     []float64
}

// ExtractRepresentatives 把表按分组字段切分，各组取ScoreField最小的
// 行作为代表行，回填组内MaxField最大值和SumFields合计。
// 分组结果按键元组排序输出，保证同样输入产出同样顺序。
func ExtractRepresentatives(t *excel.Table, opts Options) (*excel.Table, error) {
	required := append([]string{}, opts.GroupFields...)
	required = append(required, opts.ScoreField)
	if missing := t.MissingColumns(required); len(missing) > 0 {
		return nil, model.NewMissingColumnsError("", missing)
	}

	groups := make(map[string]*group)
	var keys []string

	for i, row := range t.Rows {
		score, ok := row.Float(opts.ScoreField)
		if !ok {
			continue
		}

		parts := make([]string, len(opts.GroupFields))
		for j, f := range opts.GroupFields {
			parts[j] = row.Value(f)
		}
		key := strings.Join(parts, keySep)

		g, exists := groups[key]
		if !exists {
			g = &group{repIndex: i, repScore: score, sums: make([]float64, len(opts.SumFields))}
			groups[key] = g
			keys = append(keys, key)
		} else if score < g.repScore {
			g.repIndex = i
			g.repScore = score
		}

		if opts.MaxField != "" {
			if v, ok := row.Float(opts.MaxField); ok && (!g.hasMax || v > g.maxScore) {
				g.maxScore = v
				g.hasMax = true
			}
		}
		for j, f := range opts.SumFields {
			if v, ok := row.Float(f); ok {
				g.sums[j] += v
			}
		}
	}

	if len(groups) == 0 {
		return nil, model.NewEmptyResultError("分组提取", "数据处理后为空。")
	}

	sort.Strings(keys)

	out := excel.NewTable(t.Columns)
	for _, key := range keys {
		g := groups[key]
		rep := t.Rows[g.repIndex].Clone()

		if opts.MaxField != "" {
			if g.hasMax {
				rep.Set(opts.MaxField, formatNumber(g.maxScore))
			} else {
				rep.Set(opts.MaxField, "")
			}
		}
		for j, f := range opts.SumFields {
			rep.Set(f, formatNumber(g.sums[j]))
		}
		out.AppendRow(rep)
	}
	return out, nil
}

// formatNumber 整数值不带小数位，其余保留最短十进制表示
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HasGroupCode 专业组代码列存在且至少有一个非空值时，
// 分组字段追加该列
func HasGroupCode(t *excel.Table) bool {
	if !t.HasColumn("专业组代码") {
		return false
	}
	for _, row := range t.Rows {
		if row.TrimValue("专业组代码") != "" {
			return true
		}
	}
	return false
}

// normalizeFirstSubject 首选科目缩写展开：历→历史、物→物理
func normalizeFirstSubject(t *excel.Table) {
	if !t.HasColumn("首选科目") {
		return
	}
	for _, row := range t.Rows {
		switch row.TrimValue("首选科目") {
		case "历":
			row.Set("首选科目", "历史")
		case "物":
			row.Set("首选科目", "物理")
		default:
			row.Set("首选科目", row.TrimValue("首选科目"))
		}
	}
}
