package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zhikao/datakit/internal/convert"
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
	"github.com/zhikao/datakit/internal/reconcile"
)

var (
	reconcilePlanFile  string
	reconcileRefFile   string
	reconcileOutput    string
	reconcileProvinces []string
	reconcileBatches   []string
	reconcileUnmatched bool
	reconcileConvertTo string
	reconcileConvertYr string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "招生计划与参照表比对",
}

var reconcileScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "招生计划与分数表比对",
	Long: `按组合键（年份|省份|学校|科类|批次|专业|层次|专业组代码）
比对招生计划表与库中导出的分数表，输出匹配结果。

参照表必须是库中导出的模板版式（说明和年份占前两行，表头在第三行）。
extract命令输出的院校分表表头在第一行，需套回模板后才能作参照表。

示例:
  datakit reconcile score --plan 招生计划.xlsx --reference 分数表.xlsx --output 比对结果.xlsx
  datakit reconcile score --plan 招生计划.xlsx --reference 分数表.xlsx --only-unmatched --convert-to 录入模板.xlsx --year 2025`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile("score")
	},
}

var reconcileCollegeCmd = &cobra.Command{
	Use:   "college",
	Short: "招生计划与院校表比对",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile("college")
	},
}

func runReconcile(mode string) error {
	plan, err := excel.ReadTable(reconcilePlanFile, nil)
	if err != nil {
		return err
	}
	// 库中导出的参照表说明占前两行，表头在第三行
	ref, err := excel.ReadTable(reconcileRefFile, &excel.ReadOptions{HeaderRow: 2})
	if err != nil {
		return err
	}

	var results []*model.ReconcileResult
	switch mode {
	case "college":
		results = reconcile.ComparePlanVsCollege(plan, ref)
	default:
		results = reconcile.ComparePlanVsScore(plan, ref)
	}

	stats := reconcile.ComputeStats(results)
	fmt.Printf("共 %d 条，匹配 %d 条，未匹配 %d 条，匹配率 %s\n",
		stats.Total, stats.Matched, stats.Unmatched, stats.MatchRate)

	filtered := reconcile.Filter(results, reconcile.FilterOptions{
		Provinces:     reconcileProvinces,
		Batches:       reconcileBatches,
		OnlyUnmatched: reconcileUnmatched,
	})

	if reconcileOutput != "" {
		table := reconcile.ResultsTable(filtered)
		opts := &excel.WriteOptions{
			SheetName:   "比对结果",
			StyleHeader: true,
			ColumnWidth: 12,
		}
		if err := excel.SaveTable(table, reconcileOutput, opts); err != nil {
			return err
		}
		fmt.Printf("比对结果已写入 %s\n", reconcileOutput)
	}

	if reconcileConvertTo != "" {
		unmatched := reconcile.Unmatched(results)
		rows := convert.ToCanonicalRows(unmatched, plan)
		year := reconcileConvertYr
		if year == "" {
			year = viper.GetString("admission_year")
		}
		data, err := convert.ExportTemplate(rows, year)
		if err != nil {
			return err
		}
		if err := writeFile(reconcileConvertTo, data); err != nil {
			return err
		}
		fmt.Printf("未匹配数据已转为录入模板 %s（%d 条）\n", reconcileConvertTo, rows.Len())
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{reconcileScoreCmd, reconcileCollegeCmd} {
		c.Flags().StringVar(&reconcilePlanFile, "plan", "", "招生计划表路径")
		c.Flags().StringVar(&reconcileRefFile, "reference", "", "参照表路径（库中导出）")
		c.Flags().StringVar(&reconcileOutput, "output", "", "比对结果输出路径")
		c.Flags().StringSliceVar(&reconcileProvinces, "province", nil, "按省份筛选（可多次指定）")
		c.Flags().StringSliceVar(&reconcileBatches, "batch", nil, "按批次筛选（可多次指定）")
		c.Flags().BoolVar(&reconcileUnmatched, "only-unmatched", false, "只输出未匹配记录")
		c.Flags().StringVar(&reconcileConvertTo, "convert-to", "", "将未匹配记录转为录入模板并写入该路径")
		c.Flags().StringVar(&reconcileConvertYr, "year", "", "录入模板的招生年份")
		_ = c.MarkFlagRequired("plan")
		_ = c.MarkFlagRequired("reference")
		reconcileCmd.AddCommand(c)
	}
	rootCmd.AddCommand(reconcileCmd)
}
