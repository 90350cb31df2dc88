package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhikao/datakit/internal/segment"
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "一分一段表校验",
}

var segmentRepairCmd = &cobra.Command{
	Use:   "repair <文件...>",
	Short: "校验并修复一分一段表",
	Long: `逐个工作表校验一分一段表：检查年份、补齐锚点行人数、
按省份满分插入缺失分数段、核对累计人数与相邻分数差，
校验结果写入同目录下带"_校验结果"后缀的新文件。

示例:
  datakit segment repair 一分一段.xlsx
  datakit segment repair 上海.xlsx 海南.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			out, err := segment.RepairFile(path)
			if err != nil {
				return fmt.Errorf("校验 %s 失败: %w", path, err)
			}
			fmt.Printf("校验结果已写入 %s\n", out)
		}
		return nil
	},
}

func init() {
	segmentCmd.AddCommand(segmentRepairCmd)
	rootCmd.AddCommand(segmentCmd)
}
