// Package convert 把未匹配的招生计划行转换成专业分导入模板格式
package convert

import (
	"log"
	"strings"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
)

// CanonicalHeaders 专业分导入模板的表头，列序固定
var CanonicalHeaders = []string{
	"学校名称", "省份", "招生专业", "专业方向（选填）", "专业备注（选填）",
	"一级层次", "招生科类", "招生批次", "招生类型（选填）", "最高分",
	"最低分", "平均分", "最低分位次（选填）", "招生人数（选填）",
	"数据来源", "专业组代码", "首选科目", "选科要求", "次选科目",
	"专业代码", "招生代码", "最低分数区间低", "最低分数区间高",
	"最低分数区间位次低", "最低分数区间位次高", "录取人数（选填）",
}

// TextColumns 导出时保持文本格式的列
var TextColumns = []string{"专业组代码", "专业代码", "招生代码"}

// InstructionsText 模板第一行的填写说明
const InstructionsText = "1.省份：必须填写各省份简称，例如：北京、内蒙古，不能带有市、省、自治区、空格、特殊字符等 " +
	"2.科类：浙江、上海限定\"综合、艺术类、体育类\"，内蒙古限定\"文科、理科、蒙授文科、蒙授理科、艺术类、艺术文、艺术理、体育类、体育文、体育理、蒙授艺术、蒙授体育\"，其他省份限定\"文科、理科、艺术类、艺术文、艺术理、体育类、体育文、体育理\" " +
	"3.批次：河北、内蒙古等省份限定本科提前批、本科一批、本科二批等。详见说明。 " +
	"4.招生人数：仅能填写数字 " +
	"5.最高分、最低分、平均分：仅能填写数字，保留小数后两位 " +
	"6.一级层次：限定\"本科、专科（高职）\" " +
	"7.最低分位次：仅能填写数字 " +
	"8.数据来源：必须限定——官方考试院、大红本数据、学校官网、销售、抓取、圣达信、优志愿、学业桥 " +
	"9.选科要求：不限科目专业组;多门选考;单科、多科均需选考 " +
	"10.选科科目必须是科目的简写（物、化、生、历、地、政、技）"

// 选科要求的三种归类
const (
	RequirementUnrestricted = "不限科目专业组"
	RequirementMultiChoice  = "多门选考"
	RequirementAllRequired  = "单科、多科均需选考"
)

// subjectAlphabet 七科简写，顺序决定次选科目取哪一科
var subjectAlphabet = []string{"物", "化", "生", "历", "地", "政", "技"}

// GetFirstSubject 从招生科类的第一个字提取首选科目，
// 不在表内的字原样返回
func GetFirstSubject(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	first := string([]rune(category)[0])
	switch first {
	case "物", "历", "文", "理", "综":
		return first
	}
	return first
}

// ConvertLevel 层次归一：按固定优先级做子串匹配，先命中先赢，
// 都不命中时原样保留
func ConvertLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	rules := []struct{ keyword, value string }{
		{"本科", "本科"},
		{"undergraduate", "本科"},
		{"专科", "专科（高职）"},
		{"vocational", "专科（高职）"},
		{"高职", "专科（高职）"},
		{"职高", "专科（高职）"},
	}
	for _, r := range rules {
		if strings.Contains(normalized, r.keyword) {
			return r.value
		}
	}
	return level
}

// ExtractRequiredSubjects 从选科要求文本里按七科表顺序提取出现的科目，
// 返回顺序是科目表顺序而不是文本出现顺序
func ExtractRequiredSubjects(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var found []string
	for _, s := range subjectAlphabet {
		if strings.Contains(text, s) {
			found = append(found, s)
		}
	}
	return found
}

// ConvertSelectionRequirement 选科要求三分类，按固定优先级判定：
// 必选 > 不限 > 多门/或，默认多门选考
func ConvertSelectionRequirement(groupRequirement string) string {
	req := strings.TrimSpace(groupRequirement)
	if req == "" || strings.EqualFold(req, "nan") {
		return RequirementUnrestricted
	}
	if strings.Contains(req, "必选") {
		return RequirementAllRequired
	}
	if strings.Contains(req, "不限") {
		return RequirementUnrestricted
	}
	if strings.Contains(req, "多门") || strings.Contains(req, "或") {
		return RequirementMultiChoice
	}
	return RequirementMultiChoice
}

// ToCanonicalRows 把未匹配结果对应的原始计划行逐条转换成模板行。
// 单行失败只记录日志并跳过，整批转换不会因一行中止。
func ToCanonicalRows(unmatched []*model.ReconcileResult, plan *excel.Table) *excel.Table {
	out := excel.NewTable(CanonicalHeaders)

	for _, item := range unmatched {
		row, err := toCanonicalRow(item, plan)
		if err != nil {
			log.Printf("转换数据失败 (索引 %d): %v", item.OriginalIndex, err)
			continue
		}
		out.AppendRow(row)
	}
	return out
}

// toCanonicalRow 单行字段映射，分数类字段留空
func toCanonicalRow(item *model.ReconcileResult, plan *excel.Table) (*excel.Row, error) {
	if item.OriginalIndex < 0 || item.OriginalIndex >= plan.Len() {
		return nil, model.NewRowError(item.OriginalIndex, "", "原始行索引越界", nil)
	}
	raw := plan.Rows[item.OriginalIndex]

	groupReq := raw.Value("专业组选科要求")
	required := ExtractRequiredSubjects(groupReq)
	secondSubject := ""
	if len(required) > 0 {
		secondSubject = required[0]
	}

	row := excel.NewRow()
	row.Set("学校名称", raw.Value("学校"))
	row.Set("省份", raw.Value("省份"))
	row.Set("招生专业", raw.Value("专业"))
	row.Set("专业方向（选填）", "")
	row.Set("专业备注（选填）", raw.Value("备注"))
	row.Set("一级层次", ConvertLevel(raw.Value("层次")))
	row.Set("招生科类", raw.Value("科类"))
	row.Set("招生批次", raw.Value("批次"))
	row.Set("招生类型（选填）", raw.Value("招生类型"))
	row.Set("最高分", "")
	row.Set("最低分", "")
	row.Set("平均分", "")
	row.Set("最低分位次（选填）", "")
	row.Set("招生人数（选填）", raw.Value("招生人数"))
	row.Set("数据来源", raw.Value("数据来源"))
	row.Set("专业组代码", raw.Value("专业组代码"))
	row.Set("首选科目", GetFirstSubject(raw.Value("科类")))
	row.Set("选科要求", ConvertSelectionRequirement(groupReq))
	row.Set("次选科目", secondSubject)
	row.Set("专业代码", raw.Value("专业代码"))
	row.Set("招生代码", raw.Value("招生代码"))
	row.Set("最低分数区间低", "")
	row.Set("最低分数区间高", "")
	row.Set("最低分数区间位次低", "")
	row.Set("最低分数区间位次高", "")
	row.Set("录取人数（选填）", "")
	return row, nil
}

// ExportTemplate 按导入模板框架导出转换结果：
// 第1行说明、第2行招生年份、第3行表头、第4行起数据。
func ExportTemplate(rows *excel.Table, admissionYear string) ([]byte, error) {
	return excel.WriteImportTemplate(rows, &excel.TemplateOptions{
		Instructions: InstructionsText,
		Year:         admissionYear,
		TextColumns:  TextColumns,
	})
}
