package aggregate

import (
	"testing"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
)

func makeTable(columns []string, rows ...[]string) *excel.Table {
	t := excel.NewTable(columns)
	for _, r := range rows {
		t.AppendValues(r)
	}
	return t
}

func TestExtractRepresentatives(t *testing.T) {
	table := makeTable(
		[]string{"学校", "最低分", "最高分", "人数"},
		[]string{"甲", "600", "640", "10"},
		[]string{"甲", "590", "630", "5"},
		[]string{"乙", "610", "620", "8"},
		[]string{"甲", "605", "650", "3"},
	)

	out, err := ExtractRepresentatives(table, Options{
		GroupFields: []string{"学校"},
		ScoreField:  "最低分",
		MaxField:    "最高分",
		SumFields:   []string{"人数"},
	})
	if err != nil {
		t.Fatalf("ExtractRepresentatives() error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("组数 = %d, want 2", out.Len())
	}

	// 码点排序："乙"(U+4E59)在"甲"(U+7532)之前
	first := out.Rows[0]
	if first.Value("学校") != "乙" || first.Value("人数") != "8" {
		t.Errorf("乙组代表行错误: 学校=%q 人数=%q", first.Value("学校"), first.Value("人数"))
	}

	second := out.Rows[1]
	if second.Value("学校") != "甲" || second.Value("最低分") != "590" {
		t.Errorf("甲组代表行错误: 最低分=%q", second.Value("最低分"))
	}
	if second.Value("最高分") != "650" {
		t.Errorf("甲组最高分回填 = %q, want 650", second.Value("最高分"))
	}
	if second.Value("人数") != "18" {
		t.Errorf("甲组人数合计 = %q, want 18", second.Value("人数"))
	}
}

func TestExtractRepresentativesTieFirstWins(t *testing.T) {
	table := makeTable(
		[]string{"学校", "最低分", "备注"},
		[]string{"甲", "600", "先出现"},
		[]string{"甲", "600", "后出现"},
	)

	out, err := ExtractRepresentatives(table, Options{
		GroupFields: []string{"学校"},
		ScoreField:  "最低分",
	})
	if err != nil {
		t.Fatalf("ExtractRepresentatives() error: %v", err)
	}
	if got := out.Rows[0].Value("备注"); got != "先出现" {
		t.Errorf("同分应取先出现的行，got %q", got)
	}
}

func TestExtractRepresentativesSkipsUnparseable(t *testing.T) {
	table := makeTable(
		[]string{"学校", "最低分"},
		[]string{"甲", "待定"},
		[]string{"甲", "600"},
		[]string{"乙", ""},
	)

	out, err := ExtractRepresentatives(table, Options{
		GroupFields: []string{"学校"},
		ScoreField:  "最低分",
	})
	if err != nil {
		t.Fatalf("ExtractRepresentatives() error: %v", err)
	}
	// 乙组没有可解析分数，不应出现在结果里
	if out.Len() != 1 || out.Rows[0].Value("学校") != "甲" {
		t.Errorf("不可解析分数的行应整体排除，got %d 行", out.Len())
	}
}

func TestExtractRepresentativesErrors(t *testing.T) {
	table := makeTable([]string{"学校"})
	_, err := ExtractRepresentatives(table, Options{GroupFields: []string{"学校"}, ScoreField: "最低分"})
	if !model.IsErrorType(err, model.ErrCodeMissingColumns) {
		t.Errorf("缺列应返回MissingColumns错误，got %v", err)
	}

	empty := makeTable([]string{"学校", "最低分"}, []string{"甲", "无"})
	_, err = ExtractRepresentatives(empty, Options{GroupFields: []string{"学校"}, ScoreField: "最低分"})
	if !model.IsErrorType(err, model.ErrCodeEmptyResult) {
		t.Errorf("过滤后为空应返回EmptyResult错误，got %v", err)
	}
}

func ordinaryRow(school, province, minScore, maxScore, enroll, admitted, groupCode, firstSubject string) []string {
	return []string{
		school, province, "计算机科学与技术", "", "", "本科", "物理类", "本科批",
		"普通类", maxScore, minScore, "", "", enroll, "人工采集",
		groupCode, firstSubject, "物理必选", "物理", "080901", "1001", admitted,
	}
}

func TestExtractOrdinary(t *testing.T) {
	table := makeTable(OrdinaryColumns,
		ordinaryRow("清华大学", "北京", "680", "695", "10", "10", "01", "物"),
		ordinaryRow("清华大学", "北京", "675", "690", "5", "5", "01", "物"),
		ordinaryRow("北京大学", "北京", "678", "688", "8", "8", "02", "历"),
	)

	out, err := ExtractOrdinary(table)
	if err != nil {
		t.Fatalf("ExtractOrdinary() error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("结果行数 = %d, want 2", out.Len())
	}

	for _, dropped := range []string{"招生专业", "专业方向（选填）", "专业备注（选填）", "选科要求", "次选科目"} {
		if out.HasColumn(dropped) {
			t.Errorf("结果不应包含列 %q", dropped)
		}
	}

	var tsinghua *excel.Row
	for _, row := range out.Rows {
		if row.Value("学校名称") == "清华大学" {
			tsinghua = row
		}
	}
	if tsinghua == nil {
		t.Fatal("缺少清华大学代表行")
	}
	if tsinghua.Value("最低分") != "675" {
		t.Errorf("代表行最低分 = %q, want 675", tsinghua.Value("最低分"))
	}
	if tsinghua.Value("最高分") != "695" {
		t.Errorf("组内最高分 = %q, want 695", tsinghua.Value("最高分"))
	}
	if tsinghua.Value("招生人数（选填）") != "15" || tsinghua.Value("录取人数（选填）") != "15" {
		t.Errorf("人数合计错误: 招生=%q 录取=%q",
			tsinghua.Value("招生人数（选填）"), tsinghua.Value("录取人数（选填）"))
	}
	if tsinghua.Value("首选科目") != "物理" {
		t.Errorf("首选科目应展开为物理，got %q", tsinghua.Value("首选科目"))
	}
}

func TestExtractOrdinaryMissingColumns(t *testing.T) {
	table := makeTable([]string{"学校名称", "省份"})
	_, err := ExtractOrdinary(table)
	if !model.IsErrorType(err, model.ErrCodeMissingColumns) {
		t.Fatalf("缺列应返回MissingColumns错误，got %v", err)
	}
}

func TestExtractOrdinaryWithoutGroupCode(t *testing.T) {
	// 专业组代码全空时分组不含该列，两行并为一组
	table := makeTable(OrdinaryColumns,
		ordinaryRow("清华大学", "北京", "680", "695", "10", "10", "", "物理"),
		ordinaryRow("清华大学", "北京", "675", "690", "5", "5", "", "物理"),
	)

	out, err := ExtractOrdinary(table)
	if err != nil {
		t.Fatalf("ExtractOrdinary() error: %v", err)
	}
	if out.Len() != 1 {
		t.Errorf("无专业组代码时应并组，got %d 行", out.Len())
	}
}

func artsRow(school, direction, minScore string) []string {
	return []string{
		school, "北京", "音乐表演", direction, "", "本科",
		"音乐类", "否", "艺术类", "本科批", minScore, "",
		"", "", "", "", "1001", "240",
		"450", "130201", "人工采集",
	}
}

func TestExtractArts(t *testing.T) {
	table := makeTable(ArtsColumns,
		artsRow("中央音乐学院", "声乐", "530"),
		artsRow("中央音乐学院", "声乐", "520"),
		artsRow("中央音乐学院", "器乐", "540"),
	)

	out, err := ExtractArts(table)
	if err != nil {
		t.Fatalf("ExtractArts() error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("结果行数 = %d, want 2", out.Len())
	}
	// 艺体类保留全部模板列
	if len(out.Columns) != len(ArtsColumns) {
		t.Errorf("艺体类结果列数 = %d, want %d", len(out.Columns), len(ArtsColumns))
	}

	for _, row := range out.Rows {
		if row.Value("专业方向（选填）") == "声乐" && row.Value("最低分") != "520" {
			t.Errorf("声乐组代表行最低分 = %q, want 520", row.Value("最低分"))
		}
	}
}
