package convert

import (
	"strings"
	"testing"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
)

func TestGetFirstSubject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"物理类", "物"},
		{"历史类", "历"},
		{"文科", "文"},
		{"理科", "理"},
		{"综合", "综"},
		{"艺术类", "艺"}, // 不在表内时取原字
		{"  物理类  ", "物"},
		{"", ""},
	}
	for _, c := range cases {
		if got := GetFirstSubject(c.in); got != c.want {
			t.Errorf("GetFirstSubject(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestConvertLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"本科", "本科"},
		{"Undergraduate", "本科"},
		{"专科", "专科（高职）"},
		{"高职（专科）", "专科（高职）"}, // 本科不含，专科规则先命中
		{"Vocational", "专科（高职）"},
		{"职高", "专科（高职）"},
		{"研究生", "研究生"},
	}
	for _, c := range cases {
		if got := ConvertLevel(c.in); got != c.want {
			t.Errorf("ConvertLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractRequiredSubjects(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"物化生（3科必选）", []string{"物", "化", "生"}},
		{"物理、化学、生物", []string{"物", "化", "生"}},
		// 返回顺序按七科表，不按文本出现顺序
		{"生物和物理", []string{"物", "生"}},
		{"历史地理政治", []string{"历", "地", "政"}},
		{"不限", nil},
		{"", nil},
	}
	for _, c := range cases {
		got := ExtractRequiredSubjects(c.in)
		if len(got) != len(c.want) {
			t.Errorf("ExtractRequiredSubjects(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("ExtractRequiredSubjects(%q) = %v, want %v", c.in, got, c.want)
				break
			}
		}
	}
}

func TestConvertSelectionRequirement(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", RequirementUnrestricted},
		{"nan", RequirementUnrestricted},
		{"物理化学生（3科必选）", RequirementAllRequired},
		// 必选优先于不限
		{"不限，物理必选", RequirementAllRequired},
		{"不限科目", RequirementUnrestricted},
		{"多门科目任选", RequirementMultiChoice},
		{"物理或历史", RequirementMultiChoice},
		{"物理化学", RequirementMultiChoice},
	}
	for _, c := range cases {
		if got := ConvertSelectionRequirement(c.in); got != c.want {
			t.Errorf("ConvertSelectionRequirement(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func planColumns() []string {
	return []string{
		"学校", "省份", "专业", "备注", "层次", "科类", "批次", "招生类型",
		"招生人数", "数据来源", "专业组代码", "专业代码", "招生代码",
		"专业组选科要求", "专业选科要求(新高考专业省份)",
	}
}

func TestToCanonicalRows(t *testing.T) {
	plan := excel.NewTable(planColumns())
	plan.AppendValues([]string{
		"清华大学", "北京", "计算机科学与技术", "宏福校区", "本科", "物理类", "本科一批", "普通类",
		"30", "官方考试院", "01", "080901", "1001",
		"物理化学生（3科必选）", "",
	})

	unmatched := []*model.ReconcileResult{{Index: 1, OriginalIndex: 0, Exists: false}}
	out := ToCanonicalRows(unmatched, plan)

	if out.Len() != 1 {
		t.Fatalf("结果行数 = %d, want 1", out.Len())
	}
	row := out.Rows[0]

	checks := map[string]string{
		"学校名称":     "清华大学",
		"招生专业":     "计算机科学与技术",
		"专业备注（选填）": "宏福校区",
		"一级层次":     "本科",
		"首选科目":     "物",
		"选科要求":     "单科、多科均需选考",
		"次选科目":     "物",
		"专业组代码":    "01",
		"最高分":      "",
		"最低分":      "",
		"录取人数（选填）": "",
	}
	for col, want := range checks {
		if got := row.Value(col); got != want {
			t.Errorf("%s = %q, want %q", col, got, want)
		}
	}

	if len(out.Columns) != len(CanonicalHeaders) {
		t.Errorf("列数 = %d, want %d", len(out.Columns), len(CanonicalHeaders))
	}
}

func TestToCanonicalRowsSkipsBadIndex(t *testing.T) {
	plan := excel.NewTable(planColumns())
	plan.AppendValues([]string{
		"清华大学", "北京", "计算机科学与技术", "", "本科", "物理类", "本科一批", "普通类",
		"30", "官方考试院", "01", "080901", "1001", "不限", "",
	})

	unmatched := []*model.ReconcileResult{
		{Index: 1, OriginalIndex: 5, Exists: false}, // 越界，应跳过
		{Index: 2, OriginalIndex: 0, Exists: false},
	}
	out := ToCanonicalRows(unmatched, plan)

	if out.Len() != 1 {
		t.Errorf("越界行应跳过，结果行数 = %d, want 1", out.Len())
	}
	if got := out.Rows[0].Value("选科要求"); got != RequirementUnrestricted {
		t.Errorf("选科要求 = %q", got)
	}
}

func TestInstructionsText(t *testing.T) {
	for _, fragment := range []string{
		"1.省份：必须填写各省份简称",
		"9.选科要求：不限科目专业组;多门选考;单科、多科均需选考",
		"10.选科科目必须是科目的简写（物、化、生、历、地、政、技）",
	} {
		if !strings.Contains(InstructionsText, fragment) {
			t.Errorf("说明文本缺少片段: %s", fragment)
		}
	}
}
