// Package segment 实现一分一段表的校验与修复：
// 补断点、自动补人数、累计人数自愈校验、分数差校验
package segment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 校验结论文案
const (
	VerdictOK        = "√"
	VerdictGapFilled = "补断点"
)

// ExpectedYear 数据年份要求
const ExpectedYear = 2025

// Row 一行分数段数据（对应表格第8行起的A、B、C、E、F列）
type Row struct {
	Score      string // 分数段标签，如"695-750"或"694"
	Count      string // 本段人数
	Total      string // 累计人数
	CountCheck string // 累计人数校验结果
	ScoreCheck string // 分数校验结果
	Inserted   bool   // 修复时插入的行，导出需要高亮
}

// Sheet 一分一段表的内存形态
type Sheet struct {
	Year      string // B2
	YearCheck string // G2，修复时填写
	Region    string // B3
	Rows      []*Row
}

// Repair 原地修复整张表：年份校验、锚点行特殊处理、
// 分数断点补齐，最后逐行校验并自动补人数。
func (s *Sheet) Repair() {
	s.checkYear()
	suffix := regionSuffix(s.Region)
	s.repairAnchor(suffix)
	s.fillScoreGaps()
	s.verify()
}

// checkYear 校验数据年份
func (s *Sheet) checkYear() {
	if v, err := strconv.Atoi(strings.TrimSpace(s.Year)); err == nil && v == ExpectedYear {
		s.YearCheck = VerdictOK
		return
	}
	s.YearCheck = fmt.Sprintf("× 应为%d，当前为：%s", ExpectedYear, s.Year)
}

// regionSuffix 分数段上限后缀按地区满分确定
func regionSuffix(region string) string {
	switch strings.TrimSpace(region) {
	case "上海":
		return "-660"
	case "海南":
		return "-900"
	default:
		return "-750"
	}
}

// repairAnchor 锚点行（第一条数据）特殊处理：
// 人数缺失时直接取累计人数；人数与累计不一致时在前面插入
// 一条补断点行，分数取锚点分数+1并带满分后缀，人数为差额。
// 未发生插入时给锚点行的分数标签补上满分后缀。
func (s *Sheet) repairAnchor(suffix string) {
	if len(s.Rows) == 0 {
		return
	}
	anchor := s.Rows[0]
	scoreInt, scoreOK := parseScoreInt(anchor.Score)

	inserted := false
	if anchor.Total != "" {
		if anchor.Count == "" {
			anchor.Count = anchor.Total
		} else if count, ok1 := parseNumber(anchor.Count); ok1 {
			if total, ok2 := parseNumber(anchor.Total); ok2 && count != total && scoreOK {
				gap := formatNumber(total - count)
				s.insertRow(0, &Row{
					Score:      fmt.Sprintf("%d%s", scoreInt+1, suffix),
					Count:      gap,
					Total:      gap,
					CountCheck: VerdictGapFilled,
					ScoreCheck: VerdictGapFilled,
					Inserted:   true,
				})
				inserted = true
			}
		}
	}

	if !inserted && scoreOK {
		anchor.Score = fmt.Sprintf("%d%s", scoreInt, suffix)
	}
}

// fillScoreGaps 相邻行分数差超过1时逐个插入缺失分数行：
// 人数0，累计照抄上一行，两个校验列都标补断点。
func (s *Sheet) fillScoreGaps() {
	i := 0
	for i < len(s.Rows)-1 {
		curr, ok1 := parseScoreLabel(s.Rows[i].Score)
		next, ok2 := parseScoreLabel(s.Rows[i+1].Score)
		if !ok1 || !ok2 {
			i++
			continue
		}
		if curr-next > 1 {
			s.insertRow(i+1, &Row{
				Score:      strconv.Itoa(curr - 1),
				Count:      "0",
				Total:      s.Rows[i].Total,
				CountCheck: VerdictGapFilled,
				ScoreCheck: VerdictGapFilled,
				Inserted:   true,
			})
		} else {
			i++
		}
	}
}

// verify 从锚点行向后逐行校验。
// 累计人数：锚点行无条件采信并作为基准；之后每行期望值为
// 基准+本段人数，相符打√并用本行累计更新基准，不符时标注
// 期望值并把期望值（而不是表内值）作为新基准向后自愈。
// 分数差：相邻行左端点必须恰好差1，偏差标注差值，
// 非数字标注无法校验。补断点行的结论不被覆盖。
func (s *Sheet) verify() {
	var baseline float64
	baselineOK := false

	for i, r := range s.Rows {
		// 自动补人数
		if r.Count == "" && r.Total != "" {
			if i == 0 {
				r.Count = r.Total
			} else if prevTotal, ok := parseNumber(s.Rows[i-1].Total); ok {
				if total, ok := parseNumber(r.Total); ok {
					r.Count = formatNumber(total - prevTotal)
				}
			}
		}

		count, countOK := parseNumber(r.Count)
		total, totalOK := parseNumber(r.Total)

		if i == 0 {
			if r.CountCheck != VerdictGapFilled {
				r.CountCheck = VerdictOK
			}
			baseline, baselineOK = total, totalOK
		} else if countOK && totalOK && baselineOK {
			expected := baseline + count
			if expected == total {
				if r.CountCheck != VerdictGapFilled {
					r.CountCheck = VerdictOK
				}
				baseline = total
			} else {
				if r.CountCheck != VerdictGapFilled {
					r.CountCheck = fmt.Sprintf("× 应为%s", formatNumber(expected))
				}
				baseline = expected
			}
		}

		s.verifyScoreDiff(i, r)
	}
}

// verifyScoreDiff 与上一行的分数差校验，锚点行没有上一行，
// 按非数字处理
func (s *Sheet) verifyScoreDiff(i int, r *Row) {
	if r.ScoreCheck == VerdictGapFilled {
		return
	}

	var prevScore string
	if i > 0 {
		prevScore = s.Rows[i-1].Score
	}

	curr, ok1 := parseScoreFloat(r.Score)
	prev, ok2 := parseScoreFloat(prevScore)
	if !ok1 || !ok2 {
		r.ScoreCheck = "× 分数非数字，无法校验"
		return
	}

	diff := prev - curr
	if diff == 1 {
		r.ScoreCheck = VerdictOK
	} else {
		r.ScoreCheck = fmt.Sprintf("× 差值%s", formatDiff(diff))
	}
}

// insertRow 在i处插入一行
func (s *Sheet) insertRow(i int, r *Row) {
	s.Rows = append(s.Rows, nil)
	copy(s.Rows[i+1:], s.Rows[i:])
	s.Rows[i] = r
}

// scoreLeft 分数段标签的左端点文本，"695-750"取"695"
func scoreLeft(label string) string {
	return strings.TrimSpace(strings.SplitN(label, "-", 2)[0])
}

// parseScoreInt 容忍小数写法的分数解析（"695.0"视为695）
func parseScoreInt(label string) (int, bool) {
	v, err := strconv.ParseFloat(scoreLeft(label), 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// parseScoreLabel 严格整数解析，补断点循环只处理规范标签
func parseScoreLabel(label string) (int, bool) {
	v, err := strconv.Atoi(scoreLeft(label))
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseScoreFloat(label string) (float64, bool) {
	v, err := strconv.ParseFloat(scoreLeft(label), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatNumber 整数值不带小数位
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDiff 分数差固定带小数位（差值1.0以外都要展示出来）
func formatDiff(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
