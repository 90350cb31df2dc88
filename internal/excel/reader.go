package excel

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zhikao/datakit/internal/model"
)

// ReadOptions 读取配置
type ReadOptions struct {
	// SheetIndex 工作表序号（从0开始）
	SheetIndex int

	// HeaderRow 表头所在行（从0开始）。库中导出模板的说明占前两行，
	// 表头在第三行，对应 HeaderRow=2。
	HeaderRow int
}

// ReadTable 从Excel文件读取一张表
func ReadTable(filePath string, opts *ReadOptions) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileReadError, filePath, "open", "打开Excel文件失败", err)
	}
	defer f.Close()

	return readTable(f, filePath, opts)
}

// ReadTableFrom 从字节流读取一张表（上传场景）
func ReadTableFrom(r io.Reader, opts *ReadOptions) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileReadError, "", "open", "打开Excel数据失败", err)
	}
	defer f.Close()

	return readTable(f, "", opts)
}

func readTable(f *excelize.File, filePath string, opts *ReadOptions) (*Table, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}

	sheet := f.GetSheetName(opts.SheetIndex)
	if sheet == "" {
		return nil, model.NewInputFormatError(filePath, "找不到工作表")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileReadError, filePath, "read_sheet", "读取工作表数据失败", err)
	}

	if len(rows) <= opts.HeaderRow {
		return nil, model.NewInputFormatError(filePath, "文件行数不足，找不到表头")
	}

	header := rows[opts.HeaderRow]
	table := NewTable(header)

	// GetRows返回的单元格均为格式化后的文本，代码列不会被数值化。
	// 行尾缺失的单元格保持「缺列」状态，不补空串。
	for _, raw := range rows[opts.HeaderRow+1:] {
		row := NewRow()
		for i, v := range raw {
			if i >= len(header) {
				break
			}
			row.Set(header[i], v)
		}
		table.AppendRow(row)
	}

	return table, nil
}
