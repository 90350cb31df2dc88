package excel

import (
	"bytes"
	"reflect"
	"testing"
)

func TestTableBytesRoundtrip(t *testing.T) {
	table := NewTable([]string{"学校", "专业组代码"})
	table.AppendValues([]string{"清华大学", "01"})
	table.AppendValues([]string{"北京大学", "007"})

	data, err := TableBytes(table, &WriteOptions{
		SheetName:   "比对结果",
		TextColumns: []string{"专业组代码"},
		StyleHeader: true,
	})
	if err != nil {
		t.Fatalf("TableBytes失败: %v", err)
	}

	got, err := ReadTableFrom(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, []string{"学校", "专业组代码"}) {
		t.Errorf("列 = %v", got.Columns)
	}
	if got.Len() != 2 {
		t.Fatalf("行数 = %d", got.Len())
	}
	// 文本格式保住前导零
	if v := got.Rows[1].Value("专业组代码"); v != "007" {
		t.Errorf("专业组代码 = %q, 期望保留前导零", v)
	}
}

func TestWriteImportTemplateLayout(t *testing.T) {
	table := NewTable([]string{"学校名称", "专业代码"})
	table.AppendValues([]string{"清华大学", "080901"})

	data, err := WriteImportTemplate(table, &TemplateOptions{
		Instructions: "填写说明",
		Year:         "2025",
		TextColumns:  []string{"专业代码"},
	})
	if err != nil {
		t.Fatalf("WriteImportTemplate失败: %v", err)
	}

	// 前3行是说明、年份、表头，数据从第4行开始，HeaderRow=2能对上
	got, err := ReadTableFrom(bytes.NewReader(data), &ReadOptions{HeaderRow: 2})
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, []string{"学校名称", "专业代码"}) {
		t.Errorf("列 = %v", got.Columns)
	}
	if got.Len() != 1 || got.Rows[0].Value("学校名称") != "清华大学" {
		t.Errorf("数据行不符: %d行", got.Len())
	}
}
