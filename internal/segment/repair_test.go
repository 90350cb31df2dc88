package segment

import "testing"

func newSheet(year, region string, rows ...[3]string) *Sheet {
	s := &Sheet{Year: year, Region: region}
	for _, r := range rows {
		s.Rows = append(s.Rows, &Row{Score: r[0], Count: r[1], Total: r[2]})
	}
	return s
}

func TestCheckYear(t *testing.T) {
	s := newSheet("2025", "北京")
	s.checkYear()
	if s.YearCheck != "√" {
		t.Errorf("YearCheck = %q, want √", s.YearCheck)
	}

	s = newSheet("2024", "北京")
	s.checkYear()
	if s.YearCheck != "× 应为2025，当前为：2024" {
		t.Errorf("YearCheck = %q", s.YearCheck)
	}
}

func TestRegionSuffix(t *testing.T) {
	cases := []struct {
		region string
		want   string
	}{
		{"北京", "-750"},
		{"上海", "-660"},
		{"海南", "-900"},
		{"", "-750"},
	}
	for _, c := range cases {
		if got := regionSuffix(c.region); got != c.want {
			t.Errorf("regionSuffix(%q) = %q, want %q", c.region, got, c.want)
		}
	}
}

func TestRepairAnchorSuffix(t *testing.T) {
	s := newSheet("2025", "北京", [3]string{"695", "5", "5"})
	s.Repair()
	if got := s.Rows[0].Score; got != "695-750" {
		t.Errorf("锚点行分数 = %q, want 695-750", got)
	}
	if got := s.Rows[0].CountCheck; got != "√" {
		t.Errorf("锚点行累计校验 = %q, want √", got)
	}
	// 锚点行没有上一行可比
	if got := s.Rows[0].ScoreCheck; got != "× 分数非数字，无法校验" {
		t.Errorf("锚点行分数校验 = %q", got)
	}
}

func TestRepairAnchorMissingCount(t *testing.T) {
	s := newSheet("2025", "北京", [3]string{"695", "", "5"})
	s.Repair()
	if got := s.Rows[0].Count; got != "5" {
		t.Errorf("锚点行人数应取累计人数，got %q", got)
	}
}

func TestRepairAnchorInsertsShortfallRow(t *testing.T) {
	s := newSheet("2025", "上海", [3]string{"570", "3", "5"})
	s.Repair()

	if len(s.Rows) != 2 {
		t.Fatalf("行数 = %d, want 2", len(s.Rows))
	}
	ins := s.Rows[0]
	if ins.Score != "571-660" {
		t.Errorf("插入行分数 = %q, want 571-660", ins.Score)
	}
	if ins.Count != "2" || ins.Total != "2" {
		t.Errorf("插入行人数 = %q/%q, want 2/2", ins.Count, ins.Total)
	}
	if ins.CountCheck != "补断点" || ins.ScoreCheck != "补断点" || !ins.Inserted {
		t.Errorf("插入行标记不完整: %+v", ins)
	}
	// 发生插入时原锚点行不加后缀
	if got := s.Rows[1].Score; got != "570" {
		t.Errorf("原锚点行分数 = %q, want 570", got)
	}
}

func TestRepairFillsScoreGapAndSelfHeals(t *testing.T) {
	s := newSheet("2025", "北京",
		[3]string{"700", "5", "5"},
		[3]string{"698", "2", "9"},
	)
	s.Repair()

	if len(s.Rows) != 3 {
		t.Fatalf("行数 = %d, want 3", len(s.Rows))
	}

	gap := s.Rows[1]
	if gap.Score != "699" || gap.Count != "0" || gap.Total != "5" {
		t.Errorf("补断点行 = %q/%q/%q, want 699/0/5", gap.Score, gap.Count, gap.Total)
	}
	if gap.CountCheck != "补断点" || gap.ScoreCheck != "补断点" {
		t.Errorf("补断点行结论 = %q/%q", gap.CountCheck, gap.ScoreCheck)
	}

	// 期望累计 = 5 + 2 = 7 ≠ 9，标注期望值并以期望值为新基准
	last := s.Rows[2]
	if last.CountCheck != "× 应为7" {
		t.Errorf("累计校验 = %q, want × 应为7", last.CountCheck)
	}
	if last.ScoreCheck != "√" {
		t.Errorf("分数差校验 = %q, want √", last.ScoreCheck)
	}
}

func TestRepairBaselineSelfHealsForward(t *testing.T) {
	// 第二行累计错误后，第三行应以修正后的基准继续校验
	s := newSheet("2025", "北京",
		[3]string{"700", "5", "5"},
		[3]string{"699", "2", "9"},
		[3]string{"698", "3", "10"},
	)
	s.Repair()

	if got := s.Rows[1].CountCheck; got != "× 应为7" {
		t.Errorf("第二行累计校验 = %q", got)
	}
	// 基准被修正为7，第三行期望 7+3=10，正确
	if got := s.Rows[2].CountCheck; got != "√" {
		t.Errorf("第三行累计校验 = %q, want √", got)
	}
}

func TestRepairAutoFillsCount(t *testing.T) {
	s := newSheet("2025", "北京",
		[3]string{"700", "5", "5"},
		[3]string{"699", "", "8"},
	)
	s.Repair()

	if got := s.Rows[1].Count; got != "3" {
		t.Errorf("自动补人数 = %q, want 3", got)
	}
	if got := s.Rows[1].CountCheck; got != "√" {
		t.Errorf("补出的人数应校验通过，got %q", got)
	}
}

func TestRepairScoreDiffVerdicts(t *testing.T) {
	s := newSheet("2025", "北京",
		[3]string{"700", "5", "5"},
		[3]string{"699", "1", "6"},
		[3]string{"六百九十八", "1", "7"},
	)
	s.Repair()

	if got := s.Rows[1].ScoreCheck; got != "√" {
		t.Errorf("差1应打√，got %q", got)
	}
	if got := s.Rows[2].ScoreCheck; got != "× 分数非数字，无法校验" {
		t.Errorf("非数字分数校验 = %q", got)
	}
}

func TestRepairScoreDiffValue(t *testing.T) {
	// 小数写法的标签不参与补断点，但差值校验按数值报偏差
	s := newSheet("2025", "北京",
		[3]string{"700", "5", "5"},
		[3]string{"698.0", "2", "7"},
	)
	s.Repair()

	if len(s.Rows) != 2 {
		t.Fatalf("小数标签不应触发补断点，行数 = %d", len(s.Rows))
	}
	if got := s.Rows[1].ScoreCheck; got != "× 差值2.0" {
		t.Errorf("差值校验 = %q, want × 差值2.0", got)
	}
}

func TestRepairNonNumericScore(t *testing.T) {
	// 非数字行自己无法校验，也会隔断下一行的差值校验
	s := newSheet("2025", "北京",
		[3]string{"700", "5", "5"},
		[3]string{"无效", "0", "5"},
		[3]string{"697", "1", "6"},
	)
	s.Repair()

	if got := s.Rows[1].ScoreCheck; got != "× 分数非数字，无法校验" {
		t.Errorf("非数字行 = %q", got)
	}
	if got := s.Rows[2].ScoreCheck; got != "× 分数非数字，无法校验" {
		t.Errorf("上一行非数字时 = %q", got)
	}
}

func TestRepairMultipleGapRows(t *testing.T) {
	s := newSheet("2025", "北京",
		[3]string{"700", "5", "5"},
		[3]string{"697", "2", "7"},
	)
	s.Repair()

	if len(s.Rows) != 4 {
		t.Fatalf("行数 = %d, want 4", len(s.Rows))
	}
	if s.Rows[1].Score != "699" || s.Rows[2].Score != "698" {
		t.Errorf("缺失分数应逐个补齐: %q, %q", s.Rows[1].Score, s.Rows[2].Score)
	}
	for _, r := range s.Rows[1:3] {
		if r.Count != "0" || r.Total != "5" || !r.Inserted {
			t.Errorf("补断点行内容错误: %+v", r)
		}
	}
}

func TestRepairEmptySheet(t *testing.T) {
	s := newSheet("2025", "北京")
	s.Repair()
	if len(s.Rows) != 0 {
		t.Errorf("空表不应产生行")
	}
}

func TestFormatDiff(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{-1, "-1.0"},
		{1.5, "1.5"},
	}
	for _, c := range cases {
		if got := formatDiff(c.in); got != c.want {
			t.Errorf("formatDiff(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
