package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/reconcile"
)

var (
	groupcodeBase   string
	groupcodeRef    string
	groupcodeOutput string
)

var groupcodeCmd = &cobra.Command{
	Use:   "groupcode",
	Short: "专业组代码匹配",
}

var groupcodeMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "按组合键与备注相似度为基准表补专业组代码",
	Long: `以基准表每行的组合键（学校名称|省份|招生专业|一级层次|招生科类|
招生批次|招生类型）在参照表中找候选，唯一候选直接取码，
多候选按清洗后的备注做关键词包含、子串与Jaccard相似度匹配。

示例:
  datakit groupcode match --base 基准表.xlsx --reference 参照表.xlsx --output 匹配结果.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := excel.ReadTable(groupcodeBase, nil)
		if err != nil {
			return err
		}
		ref, err := excel.ReadTable(groupcodeRef, nil)
		if err != nil {
			return err
		}

		result, err := reconcile.MatchGroupCodes(base, ref)
		if err != nil {
			return err
		}

		matched := 0
		for _, row := range result.Rows {
			if row.TrimValue("专业组代码") != "" {
				matched++
			}
		}
		fmt.Printf("共 %d 条，匹配到代码 %d 条\n", result.Len(), matched)

		opts := &excel.WriteOptions{
			TextColumns: []string{"专业组代码"},
			StyleHeader: true,
		}
		if err := excel.SaveTable(result, groupcodeOutput, opts); err != nil {
			return err
		}
		fmt.Printf("匹配结果已写入 %s\n", groupcodeOutput)
		return nil
	},
}

func init() {
	groupcodeMatchCmd.Flags().StringVar(&groupcodeBase, "base", "", "基准表路径")
	groupcodeMatchCmd.Flags().StringVar(&groupcodeRef, "reference", "", "参照表路径（含专业组代码）")
	groupcodeMatchCmd.Flags().StringVar(&groupcodeOutput, "output", "匹配结果.xlsx", "输出路径")
	_ = groupcodeMatchCmd.MarkFlagRequired("base")
	_ = groupcodeMatchCmd.MarkFlagRequired("reference")

	groupcodeCmd.AddCommand(groupcodeMatchCmd)
	rootCmd.AddCommand(groupcodeCmd)
}
