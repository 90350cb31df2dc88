package main

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "datakit",
	Short: "高考招生数据处理工具",
	Long: `datakit 是一套处理高考招生Excel数据的命令行工具。

包含的功能:
  - 招生计划与分数表、院校表的比对
  - 院校分提取（普通批、艺术批）
  - 一分一段表校验与修复
  - 备注批量检查
  - 专业组代码匹配
  - 未匹配数据转录入模板
  - 就业质量报告PDF抓取`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "配置文件路径（默认 ./datakit.yaml）",
	)
}

// initConfig 加载可选的CLI配置文件，环境变量以DATAKIT_为前缀覆盖
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("datakit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.datakit")
	}

	viper.SetEnvPrefix("DATAKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// 隐式查找时文件缺失可以接受，显式指定或解析失败则报错退出
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatalf("读取配置文件失败: %v", err)
		}
	}
}
