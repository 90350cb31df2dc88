package excel

import (
	"github.com/xuri/excelize/v2"

	"github.com/zhikao/datakit/internal/model"
)

const (
	// numFmtText Excel内置文本格式，防止代码列被数值化（丢前导零）
	numFmtText = 49

	// headerFillColor 导出表头底色
	headerFillColor = "4472C4"
)

// WriteOptions 写出配置
type WriteOptions struct {
	// SheetName 工作表名，默认Sheet1
	SheetName string

	// TextColumns 需要保持文本格式的列（专业组代码、专业代码、招生代码等）
	TextColumns []string

	// StyleHeader 是否渲染表头样式（蓝底白字居中）
	StyleHeader bool

	// ColumnWidth 列宽，0表示不设置
	ColumnWidth float64
}

// WriteTable 将内存表写为Excel工作簿
func WriteTable(t *Table, opts *WriteOptions) (*excelize.File, error) {
	if opts == nil {
		opts = &WriteOptions{}
	}
	sheet := opts.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, model.NewFileError(model.ErrCodeFileWrite, "", "rename_sheet", "设置工作表名失败", err)
		}
	}

	// 表头
	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, col); err != nil {
			return nil, model.NewFileError(model.ErrCodeFileWrite, "", "write_header", "写入表头失败", err)
		}
	}

	// 数据行
	for r, row := range t.Rows {
		for c, col := range t.Columns {
			v, ok := row.Get(col)
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, model.NewFileError(model.ErrCodeFileWrite, "", "write_cell", "写入单元格失败", err)
			}
		}
	}

	if err := applyTextColumns(f, sheet, t.Columns, opts.TextColumns, 2, len(t.Rows)+1); err != nil {
		return nil, err
	}

	if opts.StyleHeader && len(t.Columns) > 0 {
		if err := styleHeaderRow(f, sheet, 1, len(t.Columns)); err != nil {
			return nil, err
		}
	}

	if opts.ColumnWidth > 0 && len(t.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err := f.SetColWidth(sheet, "A", last, opts.ColumnWidth); err != nil {
			return nil, model.NewFileError(model.ErrCodeFileWrite, "", "set_width", "设置列宽失败", err)
		}
	}

	return f, nil
}

// TableBytes 将内存表编码为xlsx字节流
func TableBytes(t *Table, opts *WriteOptions) ([]byte, error) {
	f, err := WriteTable(t, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "encode", "编码Excel失败", err)
	}
	return buf.Bytes(), nil
}

// SaveTable 将内存表保存到文件
func SaveTable(t *Table, filePath string, opts *WriteOptions) error {
	f, err := WriteTable(t, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filePath); err != nil {
		return model.NewFileError(model.ErrCodeFileWrite, filePath, "save", "文件保存失败", err)
	}
	return nil
}

// TemplateOptions 专业分导入模板的框架内容
type TemplateOptions struct {
	// Instructions 第一行的填表说明（合并A1:Y1展示）
	Instructions string

	// Year 第二行的招生年份
	Year string

	// TextColumns 保持文本格式的列
	TextColumns []string
}

// WriteImportTemplate 按导入模板格式写出：
// 第1行说明、第2行招生年份、第3行表头、第4行起数据。
// 下游导入按字节比对框架行，顺序与样式不能改。
func WriteImportTemplate(t *Table, opts *TemplateOptions) ([]byte, error) {
	if opts == nil {
		opts = &TemplateOptions{}
	}
	sheet := "专业分数据"

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "rename_sheet", "设置工作表名失败", err)
	}

	// 第1行：说明文本，合并A1~Y1
	if err := f.SetCellStr(sheet, "A1", opts.Instructions); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "write_remark", "写入说明行失败", err)
	}
	if err := f.MergeCell(sheet, "A1", "Y1"); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "merge", "合并说明行失败", err)
	}
	remarkStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top", Horizontal: "left"},
	})
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "style", "创建说明样式失败", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", remarkStyle); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "style", "应用说明样式失败", err)
	}
	if err := f.SetRowHeight(sheet, 1, 100); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "row_height", "设置行高失败", err)
	}

	// 第2行：招生年份
	if err := f.SetCellStr(sheet, "A2", "招生年份"); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "write_year", "写入年份行失败", err)
	}
	if err := f.SetCellStr(sheet, "B2", opts.Year); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "write_year", "写入年份行失败", err)
	}

	// 第3行：表头
	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellStr(sheet, cell, col); err != nil {
			return nil, model.NewFileError(model.ErrCodeFileWrite, "", "write_header", "写入表头失败", err)
		}
	}
	if err := styleHeaderRow(f, sheet, 3, len(t.Columns)); err != nil {
		return nil, err
	}

	// 数据行
	for r, row := range t.Rows {
		for c, col := range t.Columns {
			v, ok := row.Get(col)
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+4)
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, model.NewFileError(model.ErrCodeFileWrite, "", "write_cell", "写入单元格失败", err)
			}
		}
	}

	if err := applyTextColumns(f, sheet, t.Columns, opts.TextColumns, 4, len(t.Rows)+3); err != nil {
		return nil, err
	}

	// 列宽统一12
	if len(t.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err := f.SetColWidth(sheet, "A", last, 12); err != nil {
			return nil, model.NewFileError(model.ErrCodeFileWrite, "", "set_width", "设置列宽失败", err)
		}
	}

	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, "", "encode", "编码Excel失败", err)
	}
	return buf.Bytes(), nil
}

// applyTextColumns 对指定列的数据区域应用文本格式
func applyTextColumns(f *excelize.File, sheet string, columns, textColumns []string, firstRow, lastRow int) error {
	if len(textColumns) == 0 || lastRow < firstRow {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtText})
	if err != nil {
		return model.NewFileError(model.ErrCodeFileWrite, "", "style", "创建文本格式失败", err)
	}

	for _, tc := range textColumns {
		for i, col := range columns {
			if col != tc {
				continue
			}
			top, _ := excelize.CoordinatesToCellName(i+1, firstRow)
			bottom, _ := excelize.CoordinatesToCellName(i+1, lastRow)
			if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
				return model.NewFileError(model.ErrCodeFileWrite, "", "style", "应用文本格式失败", err)
			}
		}
	}
	return nil
}

// styleHeaderRow 渲染表头行：蓝底白字、加粗、居中、自动换行
func styleHeaderRow(f *excelize.File, sheet string, row, columns int) error {
	if columns == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return model.NewFileError(model.ErrCodeFileWrite, "", "style", "创建表头样式失败", err)
	}

	top, _ := excelize.CoordinatesToCellName(1, row)
	bottom, _ := excelize.CoordinatesToCellName(columns, row)
	if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
		return model.NewFileError(model.ErrCodeFileWrite, "", "style", "应用表头样式失败", err)
	}
	return nil
}
