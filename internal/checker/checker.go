package checker

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/normalizer"
)

// MatchStatus 检查结论
type MatchStatus string

// 检查结论常量（直接用于结果列展示）
const (
	StatusMatched     MatchStatus = "匹配"
	StatusNotMatched  MatchStatus = "不匹配"
	StatusEmptyName   MatchStatus = "学校名称为空"
	StatusMissingData MatchStatus = "数据缺失"
	StatusUnavailable MatchStatus = "不可用"
)

// 分数列名
const (
	ColMaxScore = "最高分"
	ColAvgScore = "平均分"
	ColMinScore = "最低分"
)

// Checker 一致性检查器，持有注入的参照数据
type Checker struct {
	ref *RefData
}

// NewChecker 创建检查器
func NewChecker(ref *RefData) *Checker {
	if ref == nil {
		ref = &RefData{Schools: UnavailableRefSet(), MajorCombos: UnavailableRefSet()}
	}
	return &Checker{ref: ref}
}

// CheckSchoolName 检查学校名称是否在有效学校集合内
func (c *Checker) CheckSchoolName(name string) MatchStatus {
	if strings.TrimSpace(name) == "" {
		return StatusEmptyName
	}
	if !c.ref.Schools.Available() {
		return StatusUnavailable
	}
	if c.ref.Schools.Contains(strings.TrimSpace(name)) {
		return StatusMatched
	}
	return StatusNotMatched
}

// CheckMajorCombo 检查「招生专业+一级层次」组合是否有效。
// 组合键为两个字段trim后直接拼接。
func (c *Checker) CheckMajorCombo(major, level string, majorPresent, levelPresent bool) MatchStatus {
	if !majorPresent || !levelPresent {
		return StatusMissingData
	}
	if !c.ref.MajorCombos.Available() {
		return StatusUnavailable
	}
	combo := strings.TrimSpace(major) + strings.TrimSpace(level)
	if c.ref.MajorCombos.Contains(combo) {
		return StatusMatched
	}
	return StatusNotMatched
}

// CheckScoreConsistency 检查分数一致性：最高分 >= 平均分 >= 最低分。
// 缺失的分数视为不存在（不是0），每对违例单独报告；
// 任一分数无法解析时只报一条格式错误。
func CheckScoreConsistency(row *excel.Row) string {
	maxScore, err := parseScore(row, ColMaxScore)
	if err != nil {
		return fmt.Sprintf("分数格式错误: %v", err)
	}
	avgScore, err := parseScore(row, ColAvgScore)
	if err != nil {
		return fmt.Sprintf("分数格式错误: %v", err)
	}
	minScore, err := parseScore(row, ColMinScore)
	if err != nil {
		return fmt.Sprintf("分数格式错误: %v", err)
	}

	var issues []string

	if maxScore != nil && avgScore != nil && *maxScore < *avgScore {
		issues = append(issues, fmt.Sprintf("最高分(%s) < 平均分(%s)", formatScore(*maxScore), formatScore(*avgScore)))
	}
	if maxScore != nil && minScore != nil && *maxScore < *minScore {
		issues = append(issues, fmt.Sprintf("最高分(%s) < 最低分(%s)", formatScore(*maxScore), formatScore(*minScore)))
	}
	if avgScore != nil && minScore != nil && *avgScore < *minScore {
		issues = append(issues, fmt.Sprintf("平均分(%s) < 最低分(%s)", formatScore(*avgScore), formatScore(*minScore)))
	}

	return normalizer.JoinIssues(issues)
}

// parseScore 解析分数列：缺失返回nil，非数字返回错误
func parseScore(row *excel.Row, col string) (*float64, error) {
	raw, ok := row.Get(col)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("无法解析分数'%s'", raw)
	}
	return &v, nil
}

// formatScore 分数展示格式：整数值保留一位小数（90 -> "90.0"），
// 其余按最短形式输出，与历史校验结果的展示口径一致。
func formatScore(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
