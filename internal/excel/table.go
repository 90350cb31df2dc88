// Package excel 实现表格数据的内存抽象与Excel读写
package excel

import (
	"strings"

	"github.com/spf13/cast"
)

// Row 表格中的一行：列名到单元格文本的映射。
// 「缺列」与「空字符串」是两种不同状态：键生成等逻辑依赖这个区分。
type Row struct {
	cells map[string]string
}

// NewRow 创建空行
func NewRow() *Row {
	return &Row{cells: make(map[string]string)}
}

// Get 取单元格值，第二个返回值表示该列是否存在
func (r *Row) Get(col string) (string, bool) {
	v, ok := r.cells[col]
	return v, ok
}

// Value 取单元格值，缺列返回空串
func (r *Row) Value(col string) string {
	return r.cells[col]
}

// TrimValue 取去除首尾空白后的单元格值
func (r *Row) TrimValue(col string) string {
	return strings.TrimSpace(r.cells[col])
}

// Set 写入单元格
func (r *Row) Set(col, val string) {
	r.cells[col] = val
}

// Delete 删除单元格
func (r *Row) Delete(col string) {
	delete(r.cells, col)
}

// Clone 复制一行
func (r *Row) Clone() *Row {
	dup := make(map[string]string, len(r.cells))
	for k, v := range r.cells {
		dup[k] = v
	}
	return &Row{cells: dup}
}

// Float 将单元格解析为浮点数，缺列、空串或非数字返回 ok=false
func (r *Row) Float(col string) (float64, bool) {
	raw, ok := r.cells[col]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Table 有序的内存表：行顺序即输入顺序，列顺序用于展示和导出
type Table struct {
	Columns []string
	Rows    []*Row
}

// NewTable 创建指定列的空表
func NewTable(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len 行数
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn 是否存在指定列
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns 返回required中表里不存在的列，保持required顺序
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, c := range required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// AddColumn 追加一列（已存在则忽略）
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// RenameColumn 重命名列，同时迁移所有行的单元格
func (t *Table) RenameColumn(old, new string) {
	if old == new {
		return
	}
	for i, c := range t.Columns {
		if c == old {
			t.Columns[i] = new
		}
	}
	for _, row := range t.Rows {
		if v, ok := row.Get(old); ok {
			row.Set(new, v)
			row.Delete(old)
		}
	}
}

// AppendRow 追加一行
func (t *Table) AppendRow(row *Row) {
	t.Rows = append(t.Rows, row)
}

// AppendValues 按列顺序追加一行
func (t *Table) AppendValues(values []string) {
	row := NewRow()
	for i, v := range values {
		if i >= len(t.Columns) {
			break
		}
		row.Set(t.Columns[i], v)
	}
	t.Rows = append(t.Rows, row)
}

// Select 按给定列顺序生成新表，行为浅拷贝后的裁剪副本
func (t *Table) Select(columns []string) *Table {
	out := NewTable(columns)
	for _, row := range t.Rows {
		dup := NewRow()
		for _, c := range columns {
			if v, ok := row.Get(c); ok {
				dup.Set(c, v)
			}
		}
		out.AppendRow(dup)
	}
	return out
}

// Slice 截取[i,j)的行并深拷贝，用于分块处理（块之间互不共享）
func (t *Table) Slice(i, j int) *Table {
	if i < 0 {
		i = 0
	}
	if j > len(t.Rows) {
		j = len(t.Rows)
	}
	out := NewTable(t.Columns)
	for _, row := range t.Rows[i:j] {
		out.AppendRow(row.Clone())
	}
	return out
}

// Concat 将若干块按顺序拼接为一张表，列取第一块的列
func Concat(chunks []*Table) *Table {
	if len(chunks) == 0 {
		return NewTable(nil)
	}
	out := NewTable(chunks[0].Columns)
	for _, chunk := range chunks {
		for _, c := range chunk.Columns {
			out.AddColumn(c)
		}
		out.Rows = append(out.Rows, chunk.Rows...)
	}
	return out
}
