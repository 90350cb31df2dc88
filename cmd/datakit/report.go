package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zhikao/datakit/internal/report"
)

var (
	reportOutputDir string
	reportTimeout   time.Duration
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "就业质量报告抓取",
}

var reportPDFCmd = &cobra.Command{
	Use:   "pdf <页面URL>",
	Short: "抓取报告页面图片并合成PDF",
	Long: `抓取指定页面中的全部图片，按出现顺序合成一份PDF。
下载失败的图片跳过，页面没有可用图片时报错。

示例:
  datakit report pdf https://example.edu.cn/report/2024.html
  datakit report pdf https://example.edu.cn/report/2024.html --output-dir reports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageURL := args[0]

		outputDir := reportOutputDir
		if outputDir == "" {
			outputDir = viper.GetString("report.output_dir")
		}
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}

		imageDir, err := os.MkdirTemp(outputDir, "report-*")
		if err != nil {
			return fmt.Errorf("创建临时目录失败: %w", err)
		}
		defer os.RemoveAll(imageDir)

		fetcher := report.NewFetcher(reportTimeout)
		images, err := fetcher.FetchImages(cmd.Context(), pageURL, imageDir)
		if err != nil {
			return fmt.Errorf("抓取页面图片失败: %w", err)
		}

		pdfPath := filepath.Join(outputDir, "就业质量报告.pdf")
		ok, err := report.BuildPDF(images, pdfPath)
		if err != nil {
			return fmt.Errorf("合成PDF失败: %w", err)
		}
		if !ok {
			return fmt.Errorf("页面中没有可用图片: %s", pageURL)
		}

		fmt.Printf("PDF已写入 %s（%d 张图片）\n", pdfPath, len(images))
		return nil
	},
}

func init() {
	reportPDFCmd.Flags().StringVar(&reportOutputDir, "output-dir", "", "输出目录（默认 output）")
	reportPDFCmd.Flags().DurationVar(&reportTimeout, "timeout", report.DefaultTimeout, "单次请求超时")

	viper.SetDefault("report.output_dir", "output")

	reportCmd.AddCommand(reportPDFCmd)
	rootCmd.AddCommand(reportCmd)
}
