package excel

import (
	"reflect"
	"testing"
)

func TestRowMissingVsEmpty(t *testing.T) {
	row := NewRow()
	row.Set("学校", "")

	if _, ok := row.Get("学校"); !ok {
		t.Error("空串列应该存在")
	}
	if _, ok := row.Get("省份"); ok {
		t.Error("未设置的列不应存在")
	}
	if v := row.Value("省份"); v != "" {
		t.Errorf("缺列Value应返回空串，得到 %q", v)
	}
}

func TestRowFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"整数", "695", 695, true},
		{"小数", "620.5", 620.5, true},
		{"带空白", " 600 ", 600, true},
		{"空串", "", 0, false},
		{"非数字", "本科", 0, false},
		{"分数段", "695-750", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRow()
			row.Set("分数", tt.raw)
			got, ok := row.Float("分数")
			if ok != tt.ok || got != tt.want {
				t.Errorf("Float(%q) = (%v, %v), 期望 (%v, %v)", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}

	if _, ok := NewRow().Float("分数"); ok {
		t.Error("缺列Float应返回 ok=false")
	}
}

func TestRowClone(t *testing.T) {
	row := NewRow()
	row.Set("学校", "清华大学")

	dup := row.Clone()
	dup.Set("学校", "北京大学")

	if row.Value("学校") != "清华大学" {
		t.Error("修改副本不应影响原行")
	}
}

func TestRenameColumn(t *testing.T) {
	table := NewTable([]string{"学校", "省份"})
	table.AppendValues([]string{"清华大学", "北京"})

	table.RenameColumn("学校", "学校名称")

	if !reflect.DeepEqual(table.Columns, []string{"学校名称", "省份"}) {
		t.Errorf("列序错误: %v", table.Columns)
	}
	if v := table.Rows[0].Value("学校名称"); v != "清华大学" {
		t.Errorf("单元格未迁移: %q", v)
	}
	if _, ok := table.Rows[0].Get("学校"); ok {
		t.Error("旧列单元格应被删除")
	}
}

func TestMissingColumns(t *testing.T) {
	table := NewTable([]string{"学校", "省份"})
	missing := table.MissingColumns([]string{"年份", "省份", "批次"})
	if !reflect.DeepEqual(missing, []string{"年份", "批次"}) {
		t.Errorf("MissingColumns = %v", missing)
	}
}

func TestSliceIsDeepCopy(t *testing.T) {
	table := NewTable([]string{"学校"})
	table.AppendValues([]string{"清华大学"})
	table.AppendValues([]string{"北京大学"})
	table.AppendValues([]string{"复旦大学"})

	chunk := table.Slice(1, 3)
	if chunk.Len() != 2 {
		t.Fatalf("Slice行数 = %d", chunk.Len())
	}
	chunk.Rows[0].Set("学校", "改写")
	if table.Rows[1].Value("学校") != "北京大学" {
		t.Error("Slice应深拷贝行")
	}

	// 越界截取自动收缩
	if got := table.Slice(-1, 100).Len(); got != 3 {
		t.Errorf("越界Slice行数 = %d", got)
	}
}

func TestConcatKeepsOrderAndColumns(t *testing.T) {
	a := NewTable([]string{"学校"})
	a.AppendValues([]string{"清华大学"})
	b := NewTable([]string{"学校", "备注"})
	b.AppendValues([]string{"北京大学", "医学部"})

	out := Concat([]*Table{a, b})
	if out.Len() != 2 {
		t.Fatalf("Concat行数 = %d", out.Len())
	}
	if !reflect.DeepEqual(out.Columns, []string{"学校", "备注"}) {
		t.Errorf("Concat列 = %v", out.Columns)
	}
	if out.Rows[0].Value("学校") != "清华大学" || out.Rows[1].Value("学校") != "北京大学" {
		t.Error("Concat应保持块顺序")
	}

	if Concat(nil).Len() != 0 {
		t.Error("空Concat应返回空表")
	}
}

func TestSelect(t *testing.T) {
	table := NewTable([]string{"学校", "省份", "备注"})
	table.AppendValues([]string{"清华大学", "北京", "强基计划"})

	out := table.Select([]string{"省份", "学校"})
	if !reflect.DeepEqual(out.Columns, []string{"省份", "学校"}) {
		t.Errorf("Select列 = %v", out.Columns)
	}
	if _, ok := out.Rows[0].Get("备注"); ok {
		t.Error("未选中的列不应保留")
	}
}
