package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zhikao/datakit/internal/convert"
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
)

var (
	convertInput  string
	convertOutput string
	convertYear   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "招生计划表转录入模板",
	Long: `将招生计划表整表转换为数据录入模板：推导首选科目、
展开选科要求、规范层次表述，输出带填表说明和文本格式代码列的模板。

示例:
  datakit convert --input 招生计划.xlsx --output 录入模板.xlsx --year 2025`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := excel.ReadTable(convertInput, nil)
		if err != nil {
			return err
		}

		// 整表转换，每行都视为待录入
		all := make([]*model.ReconcileResult, 0, plan.Len())
		for i := range plan.Rows {
			all = append(all, &model.ReconcileResult{
				Index:         i + 1,
				OriginalIndex: i,
			})
		}

		rows := convert.ToCanonicalRows(all, plan)
		year := convertYear
		if year == "" {
			year = viper.GetString("admission_year")
		}
		data, err := convert.ExportTemplate(rows, year)
		if err != nil {
			return err
		}
		if err := writeFile(convertOutput, data); err != nil {
			return err
		}
		fmt.Printf("录入模板已写入 %s（%d 条）\n", convertOutput, rows.Len())
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "招生计划表路径")
	convertCmd.Flags().StringVar(&convertOutput, "output", "录入模板.xlsx", "输出路径")
	convertCmd.Flags().StringVar(&convertYear, "year", "", "招生年份")
	_ = convertCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(convertCmd)
}
