// Package normalizer 实现备注文本的规范化与修复
//
// 修复流程固定：括号归一 → 外层标点清理 → 括号配平 → 嵌套合并 →
// 空括号清理 → 重复括号去重 → 标点简化 → 错别字修正。
// 同一输入永远得到同一输出和同一问题列表。
package normalizer

import (
	"fmt"
	"regexp"
	"strings"
)

// NoProblem 问题列表为空时的展示文本
const NoProblem = "无问题"

const (
	openBracket  = '（'
	closeBracket = '）'
)

// punctSet 清理空括号内容时剥除的标点集合
const punctSet = "，、,;；:：。！？.!? "

// Normalizer 备注修复器。无内部状态，可并发使用。
type Normalizer struct {
	reOuterPunct  *regexp.Regexp
	reExcessPunct *regexp.Regexp
	reSpan        *regexp.Regexp
	reNested      *regexp.Regexp
}

// New 创建修复器
func New() *Normalizer {
	return &Normalizer{
		reOuterPunct:  regexp.MustCompile(`^[，、。！？；,;.!? ]+|[，、。！？；,;.!? ]+$`),
		reExcessPunct: regexp.MustCompile(`[，、。！？；,;.!? ]+`),
		reSpan:        regexp.MustCompile(`（(.*?)）`),
		reNested:      regexp.MustCompile(`（（(.*?)））`),
	}
}

// NormalizeBrackets 把各种括号变体统一为中文圆括号
var bracketReplacer = strings.NewReplacer(
	"{", "（", "[", "（", "【", "（",
	"}", "）", "]", "）", "】", "）",
	"<", "（", "《", "（",
	">", "）", "》", "）",
)

// NormalizeBrackets 统一括号变体
func (n *Normalizer) NormalizeBrackets(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	return bracketReplacer.Replace(strings.TrimSpace(text))
}

// CleanOuterPunctuation 清理括号外的首尾标点，括号内的内容原样保留
func (n *Normalizer) CleanOuterPunctuation(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	text = strings.TrimSpace(text)
	text = n.reOuterPunct.ReplaceAllString(text, "")

	// 按括号段切分，仅清理段外部分
	var b strings.Builder
	last := 0
	for _, loc := range n.reSpan.FindAllStringIndex(text, -1) {
		b.WriteString(n.reOuterPunct.ReplaceAllString(text[last:loc[0]], ""))
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(n.reOuterPunct.ReplaceAllString(text[last:], ""))
	return b.String()
}

// AnalyzeAndFix 修复一条备注文本，返回修复结果和问题描述列表。
// 空白输入原样返回；白名单字面值（校区名等）不做修复。
func (n *Normalizer) AnalyzeAndFix(text string) (string, []string) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	text = n.NormalizeBrackets(text)
	text = n.CleanOuterPunctuation(text)

	if _, ok := whitelist[text]; ok {
		return text, nil
	}

	var issues []string

	// ========== 括号成对修正 ==========
	runes := []rune(text)
	var stack []int
	var unmatchedRight []int

	for i, ch := range runes {
		switch ch {
		case openBracket:
			stack = append(stack, i)
		case closeBracket:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			} else {
				unmatchedRight = append(unmatchedRight, i)
			}
		}
	}

	for i := len(unmatchedRight) - 1; i >= 0; i-- {
		pos := unmatchedRight[i]
		runes = append(runes[:pos], runes[pos+1:]...)
		issues = append(issues, "删除多余右括号1个")
	}

	if len(stack) > 0 {
		for range stack {
			runes = append(runes, closeBracket)
		}
		issues = append(issues, fmt.Sprintf("补充缺失右括号%d个", len(stack)))
	}

	text = string(runes)

	// ========== 嵌套修正 ==========
	nestedCount := 0
	text = n.reNested.ReplaceAllStringFunc(text, func(m string) string {
		nestedCount++
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "（（"), "））")
		return "（" + inner + "）"
	})
	if nestedCount > 0 {
		issues = append(issues, fmt.Sprintf("修复嵌套括号%d处", nestedCount))
	}

	// ========== 清理空括号或纯标点括号 ==========
	text = n.reSpan.ReplaceAllStringFunc(text, func(m string) string {
		content := spanContent(m)
		content = strings.Trim(content, punctSet)
		if content == "" {
			issues = append(issues, "删除空括号或仅含标点括号")
			return ""
		}
		return "（" + content + "）"
	})

	// ========== 去重 ==========
	seen := make(map[string]struct{})
	text = n.reSpan.ReplaceAllStringFunc(text, func(m string) string {
		content := spanContent(m)
		if _, dup := seen[content]; dup {
			issues = append(issues, fmt.Sprintf("重复括号内容：'%s'", content))
			return ""
		}
		seen[content] = struct{}{}
		return "（" + content + "）"
	})

	// ========== 多余标点简化 ==========
	text = n.reExcessPunct.ReplaceAllStringFunc(text, func(m string) string {
		return string([]rune(m)[0])
	})

	// ========== 错别字修正 ==========
	for _, pair := range typoTable {
		if strings.Contains(text, pair.Typo) {
			text = strings.ReplaceAll(text, pair.Typo, pair.Correction)
			issues = append(issues, fmt.Sprintf("错别字：'%s'→'%s'", pair.Typo, pair.Correction))
		}
	}

	return text, issues
}

// spanContent 取「（...）」匹配串的内部内容
func spanContent(m string) string {
	m = strings.TrimPrefix(m, "（")
	return strings.TrimSuffix(m, "）")
}

// JoinIssues 将问题列表转为展示文本：全角分号连接，空列表为「无问题」
func JoinIssues(issues []string) string {
	if len(issues) == 0 {
		return NoProblem
	}
	return strings.Join(issues, "；")
}

// remark清洗用的正则，模糊匹配前统一口径
var (
	reRemarkBrackets   = regexp.MustCompile(`[()（）]`)
	reRemarkSeparators = regexp.MustCompile(`[;；、,:：]`)
	reRemarkSpaces     = regexp.MustCompile(`\s+`)
)

// CleanRemark 为模糊匹配清洗备注：转小写、去括号符号（保留内容）、
// 分隔符归一为空格、合并空白。
func CleanRemark(text string) string {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = reRemarkBrackets.ReplaceAllString(cleaned, "")
	cleaned = reRemarkSeparators.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(reRemarkSpaces.ReplaceAllString(cleaned, " "))
	return cleaned
}
