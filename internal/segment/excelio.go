package segment

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zhikao/datakit/internal/model"
)

// 一分一段表的固定布局：B2年份、B3地区，数据从第8行开始，
// 第7行是表头，E、F列放校验结论
const (
	dataStartRow   = 8
	yearCell       = "B2"
	regionCell     = "B3"
	yearLabelCell  = "F2"
	yearResultCell = "G2"
	countLabelCell = "E7"
	scoreLabelCell = "F7"
)

// insertedFillColor 插入行的高亮底色
const insertedFillColor = "FFFF00"

// RepairFile 读取一分一段表、修复后另存为同目录下的校验结果文件，
// 返回输出路径。
func RepairFile(inputPath string) (string, error) {
	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return "", model.NewFileError(model.ErrCodeFileReadError, inputPath, "打开", "读取文件错误", err)
	}
	defer f.Close()

	if err := RepairWorkbook(f); err != nil {
		return "", err
	}

	ext := filepath.Ext(inputPath)
	outputPath := strings.TrimSuffix(inputPath, ext) + "_校验结果" + ext
	if err := f.SaveAs(outputPath); err != nil {
		return "", model.NewFileError(model.ErrCodeFileWrite, outputPath, "保存", "保存文件错误", err)
	}
	return outputPath, nil
}

// RepairWorkbook 原地修复工作簿的第一张表。
// 调用方负责打开和保存，服务端走OpenReader+WriteToBuffer复用同一逻辑。
func RepairWorkbook(f *excelize.File) error {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return model.NewInputFormatError("", "工作簿中没有工作表")
	}

	s, err := readSheet(f, sheet)
	if err != nil {
		return err
	}
	s.Repair()
	return writeSheet(f, sheet, s)
}

// readSheet 把工作表读成内存形态，行数以整表行数为准
func readSheet(f *excelize.File, sheet string) (*Sheet, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileReadError, sheet, "读取", "读取工作表错误", err)
	}

	year, _ := f.GetCellValue(sheet, yearCell)
	region, _ := f.GetCellValue(sheet, regionCell)

	s := &Sheet{Year: year, Region: region}
	for r := dataStartRow; r <= len(rows); r++ {
		score, _ := f.GetCellValue(sheet, fmt.Sprintf("A%d", r))
		count, _ := f.GetCellValue(sheet, fmt.Sprintf("B%d", r))
		total, _ := f.GetCellValue(sheet, fmt.Sprintf("C%d", r))
		s.Rows = append(s.Rows, &Row{
			Score: strings.TrimSpace(score),
			Count: strings.TrimSpace(count),
			Total: strings.TrimSpace(total),
		})
	}
	return s, nil
}

// writeSheet 把修复结果写回工作表：插入行按修复后的位置补进去，
// 再覆写数据和校验结论，插入行整行高亮。
func writeSheet(f *excelize.File, sheet string, s *Sheet) error {
	f.SetCellStr(sheet, countLabelCell, "累计人数校验结果")
	f.SetCellStr(sheet, scoreLabelCell, "分数校验结果")
	f.SetCellStr(sheet, yearLabelCell, "年份校验")
	f.SetCellStr(sheet, yearResultCell, s.YearCheck)

	fillStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{insertedFillColor}, Pattern: 1},
	})
	if err != nil {
		return model.NewFileError(model.ErrCodeFileWrite, sheet, "样式", "创建高亮样式失败", err)
	}

	for i, row := range s.Rows {
		r := dataStartRow + i
		if row.Inserted {
			if err := f.InsertRows(sheet, r, 1); err != nil {
				return model.NewFileError(model.ErrCodeFileWrite, sheet, "插入行", "插入补断点行失败", err)
			}
		}

		setNumericCell(f, sheet, fmt.Sprintf("A%d", r), row.Score)
		setNumericCell(f, sheet, fmt.Sprintf("B%d", r), row.Count)
		setNumericCell(f, sheet, fmt.Sprintf("C%d", r), row.Total)
		f.SetCellStr(sheet, fmt.Sprintf("E%d", r), row.CountCheck)
		f.SetCellStr(sheet, fmt.Sprintf("F%d", r), row.ScoreCheck)

		if row.Inserted {
			for _, col := range []string{"A", "B", "C", "E", "F"} {
				f.SetCellStyle(sheet, fmt.Sprintf("%s%d", col, r), fmt.Sprintf("%s%d", col, r), fillStyle)
			}
		}
	}
	return nil
}

// setNumericCell 能解析成数字的值按数字写入，保持单元格可参与计算
func setNumericCell(f *excelize.File, sheet, cell, value string) {
	if v, ok := parseNumber(value); ok {
		f.SetCellValue(sheet, cell, v)
		return
	}
	f.SetCellStr(sheet, cell, value)
}
