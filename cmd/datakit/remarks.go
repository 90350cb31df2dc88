package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zhikao/datakit/internal/checker"
	"github.com/zhikao/datakit/internal/convert"
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/pipeline"
)

var (
	remarksInput      string
	remarksOutput     string
	remarksSchoolFile string
	remarksMajorFile  string
	remarksChunkSize  int
	remarksWorkers    int
)

var remarksCmd = &cobra.Command{
	Use:   "remarks",
	Short: "专业备注批量检查",
}

var remarksCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "检查备注表并输出修改建议",
	Long: `对库中导出的备注表做逐行检查：学校与招生专业是否在参照表中、
备注内容是否规范、分数逻辑是否自洽、选科要求如何展开。
大表按块并发处理，进度实时打印。

示例:
  datakit remarks check --input 备注表.xlsx --output 备注检查结果.xlsx
  datakit remarks check --input 备注表.xlsx --workers 4 --chunk-size 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schoolFile := remarksSchoolFile
		if schoolFile == "" {
			schoolFile = viper.GetString("refdata.school_file")
		}
		majorFile := remarksMajorFile
		if majorFile == "" {
			majorFile = viper.GetString("refdata.major_file")
		}

		ref := checker.LoadRefData(schoolFile, majorFile)
		if !ref.Schools.Available() {
			fmt.Println("警告: 学校参照表不可用，学校匹配检查将降级")
		}
		if !ref.MajorCombos.Available() {
			fmt.Println("警告: 专业参照表不可用，专业匹配检查将降级")
		}

		t, err := excel.ReadTable(remarksInput, &excel.ReadOptions{HeaderRow: 2})
		if err != nil {
			return err
		}

		processor := pipeline.New(ref)
		result, err := processor.ProcessRemarks(cmd.Context(), t, &pipeline.Options{
			ChunkSize: remarksChunkSize,
			Workers:   remarksWorkers,
			Progress: func(done, total int) {
				fmt.Printf("\r处理进度: %d/%d", done, total)
			},
		})
		fmt.Println()
		if err != nil {
			return err
		}

		opts := &excel.WriteOptions{
			TextColumns: convert.TextColumns,
			StyleHeader: true,
		}
		if err := excel.SaveTable(result, remarksOutput, opts); err != nil {
			return err
		}
		fmt.Printf("检查结果已写入 %s（%d 条）\n", remarksOutput, result.Len())
		return nil
	},
}

func init() {
	remarksCheckCmd.Flags().StringVar(&remarksInput, "input", "", "备注表路径（库中导出）")
	remarksCheckCmd.Flags().StringVar(&remarksOutput, "output", "备注检查结果.xlsx", "输出路径")
	remarksCheckCmd.Flags().StringVar(&remarksSchoolFile, "school-file", "", "学校参照表路径")
	remarksCheckCmd.Flags().StringVar(&remarksMajorFile, "major-file", "", "专业参照表路径")
	remarksCheckCmd.Flags().IntVar(&remarksChunkSize, "chunk-size", pipeline.DefaultChunkSize, "分块大小")
	remarksCheckCmd.Flags().IntVar(&remarksWorkers, "workers", 0, "并发数（0表示按CPU核数）")
	_ = remarksCheckCmd.MarkFlagRequired("input")

	viper.SetDefault("refdata.school_file", "data/学校名称.xlsx")
	viper.SetDefault("refdata.major_file", "data/招生专业.xlsx")

	remarksCmd.AddCommand(remarksCheckCmd)
	rootCmd.AddCommand(remarksCmd)
}
