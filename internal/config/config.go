// Package config 提供分层配置加载：默认值、YAML文件、环境变量，
// 最后做结构校验
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config 全部服务配置
type Config struct {
	App       AppConfig       `yaml:"app"`
	APIServer APIServerConfig `yaml:"api_server"`
	Process   ProcessConfig   `yaml:"process"`
	RefData   RefDataConfig   `yaml:"refdata"`
	Report    ReportConfig    `yaml:"report"`
}

// AppConfig 应用级配置
type AppConfig struct {
	Name  string `yaml:"name" env:"APP_NAME" default:"datakit"`
	Debug bool   `yaml:"debug" env:"APP_DEBUG" default:"false"`
}

// APIServerConfig HTTP服务配置
type APIServerConfig struct {
	Host            string        `yaml:"host" env:"API_HOST" default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"API_PORT" default:"8080" validate:"min=1,max=65535"`
	Mode            string        `yaml:"mode" env:"GIN_MODE" default:"release" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"API_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"API_SHUTDOWN_TIMEOUT" default:"10s"`
	MaxUploadSize   int64         `yaml:"max_upload_size" env:"API_MAX_UPLOAD_SIZE" default:"52428800" validate:"min=1"`
}

// ProcessConfig 备注检查流水线配置
type ProcessConfig struct {
	ChunkSize int `yaml:"chunk_size" env:"PROCESS_CHUNK_SIZE" default:"1000" validate:"min=1"`
	Workers   int `yaml:"workers" env:"PROCESS_WORKERS" default:"0" validate:"min=0"`
}

// RefDataConfig 参照数据文件路径，文件缺失时相应检查降级为不可用
type RefDataConfig struct {
	SchoolFile string `yaml:"school_file" env:"REFDATA_SCHOOL_FILE" default:"data/学校名称.xlsx"`
	MajorFile  string `yaml:"major_file" env:"REFDATA_MAJOR_FILE" default:"data/招生专业.xlsx"`
}

// ReportConfig 就业质量报告抓取配置
type ReportConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"REPORT_FETCH_TIMEOUT" default:"10s"`
	OutputDir    string        `yaml:"output_dir" env:"REPORT_OUTPUT_DIR" default:"output"`
}

// Load 加载配置：默认值打底，YAML文件覆盖（文件不存在则跳过），
// 环境变量最后覆盖，出口处整体校验。
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("设置默认配置失败: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("解析配置文件失败: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return cfg, nil
}

// Addr 监听地址
func (c *APIServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
