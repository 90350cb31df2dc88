package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhikao/datakit/internal/aggregate"
	"github.com/zhikao/datakit/internal/convert"
	"github.com/zhikao/datakit/internal/excel"
)

var (
	extractInput  string
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "从分数明细表提取院校分",
}

var extractOrdinaryCmd = &cobra.Command{
	Use:   "ordinary",
	Short: "提取普通批院校分",
	Long: `按分组键提取每组最低分所在行作为院校分代表行，
同时计算组内最高分与招生、录取人数合计。

示例:
  datakit extract ordinary --input 分数明细.xlsx --output 院校分.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(aggregate.ExtractOrdinary)
	},
}

var extractArtsCmd = &cobra.Command{
	Use:   "arts",
	Short: "提取艺术批院校分",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(aggregate.ExtractArts)
	},
}

func runExtract(fn func(*excel.Table) (*excel.Table, error)) error {
	// 分数明细表是库中导出模板，说明占前两行，表头在第三行
	t, err := excel.ReadTable(extractInput, &excel.ReadOptions{HeaderRow: 2})
	if err != nil {
		return err
	}
	result, err := fn(t)
	if err != nil {
		return err
	}
	opts := &excel.WriteOptions{
		TextColumns: convert.TextColumns,
		StyleHeader: true,
	}
	if err := excel.SaveTable(result, extractOutput, opts); err != nil {
		return err
	}
	fmt.Printf("院校分已写入 %s（%d 条）\n", extractOutput, result.Len())
	return nil
}

// writeFile 写出二进制结果文件
func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func init() {
	for _, c := range []*cobra.Command{extractOrdinaryCmd, extractArtsCmd} {
		c.Flags().StringVar(&extractInput, "input", "", "分数明细表路径")
		c.Flags().StringVar(&extractOutput, "output", "院校分.xlsx", "输出路径")
		_ = c.MarkFlagRequired("input")
		extractCmd.AddCommand(c)
	}
	rootCmd.AddCommand(extractCmd)
}
