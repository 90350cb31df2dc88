package reconcile

import (
	"strings"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
	"github.com/zhikao/datakit/internal/normalizer"
)

// SimilarityThreshold Jaccard相似度接受阈值
const SimilarityThreshold = 0.5

const (
	remarkColumn      = "专业备注（选填）"
	remarkCleanColumn = "专业备注（选填）_清洗"
	combinedKeyColumn = "组合键"
	groupCodeColumn   = "专业组代码"
)

// groupMatchKeyFields 专业组代码匹配的组合键字段（备注不参与键）
var groupMatchKeyFields = []string{
	"学校名称", "省份", "招生专业", "一级层次", "招生科类", "招生批次", "招生类型（选填）",
}

// groupRenameMapping 参照表(B表)列名归一到A表口径
var groupRenameMapping = []struct{ From, To string }{
	{"学校", "学校名称"},
	{"层次", "一级层次"},
	{"科类", "招生科类"},
	{"批次", "招生批次"},
	{"招生类型", "招生类型（选填）"},
	{"专业", "招生专业"},
	{"备注", "专业备注（选填）"},
}

// groupCandidate 同一组合键下的一条参照记录
type groupCandidate struct {
	remark string // 清洗后的备注
	code   string
}

// MatchGroupCodes 为A表补全专业组代码：B表先按口径改列名，
// 两表按7字段键对齐；同键唯一候选直接取码，多候选走备注模糊匹配。
// 返回的表在A表基础上追加清洗备注、组合键和专业组代码三列。
func MatchGroupCodes(a, b *excel.Table) (*excel.Table, error) {
	out := a.Slice(0, a.Len())

	ref := b.Slice(0, b.Len())
	for _, m := range groupRenameMapping {
		ref.RenameColumn(m.From, m.To)
	}

	required := append(append([]string{}, groupMatchKeyFields...), remarkColumn)
	if missing := out.MissingColumns(required); len(missing) > 0 {
		return nil, model.NewMissingColumnsError("基准表", missing)
	}
	if missing := ref.MissingColumns(append(required, groupCodeColumn)); len(missing) > 0 {
		return nil, model.NewMissingColumnsError("参照表", missing)
	}

	// 组合键 → 候选记录列表，保持参照表行序
	refIndex := make(map[string][]groupCandidate, ref.Len())
	for _, row := range ref.Rows {
		key := BuildKey(row, groupMatchKeyFields)
		refIndex[key] = append(refIndex[key], groupCandidate{
			remark: normalizer.CleanRemark(row.Value(remarkColumn)),
			code:   row.TrimValue(groupCodeColumn),
		})
	}

	out.AddColumn(remarkCleanColumn)
	out.AddColumn(combinedKeyColumn)
	out.AddColumn(groupCodeColumn)

	for _, row := range out.Rows {
		key := BuildKey(row, groupMatchKeyFields)
		remark := normalizer.CleanRemark(row.Value(remarkColumn))
		row.Set(remarkCleanColumn, remark)
		row.Set(combinedKeyColumn, key)

		code, ok := resolveGroupCode(remark, refIndex[key])
		if ok {
			row.Set(groupCodeColumn, code)
		}
	}
	return out, nil
}

// resolveGroupCode 按候选数分派：无候选落空，唯一候选直取，多候选模糊匹配
func resolveGroupCode(remark string, candidates []groupCandidate) (string, bool) {
	switch len(candidates) {
	case 0:
		return "", false
	case 1:
		return candidates[0].code, true
	default:
		return fuzzyMatch(remark, candidates)
	}
}

// fuzzyMatch 多候选时按备注挑选：
// A备注为空优先取备注同为空的候选，否则退回第一个；
// 非空时依次尝试关键词全包含、子串包含、Jaccard相似度（≥阈值取最高）。
func fuzzyMatch(remark string, candidates []groupCandidate) (string, bool) {
	if remark == "" {
		for _, c := range candidates {
			if c.remark == "" {
				return c.code, true
			}
		}
		return candidates[0].code, true
	}

	keywords := strings.Fields(remark)
	var best *groupCandidate
	maxSimilarity := 0.0

	for i := range candidates {
		c := &candidates[i]

		if len(keywords) > 0 && containsAll(c.remark, keywords) {
			return c.code, true
		}
		if strings.Contains(c.remark, remark) {
			return c.code, true
		}

		similarity := jaccard(keywords, strings.Fields(c.remark))
		if similarity > maxSimilarity && similarity >= SimilarityThreshold {
			maxSimilarity = similarity
			best = c
		}
	}

	if best != nil {
		return best.code, true
	}
	return "", false
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// jaccard 词集合的交并比
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, w := range a {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, w := range b {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
