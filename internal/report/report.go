// Package report 抓取就业质量报告页面里的图片并合成PDF
package report

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/zhikao/datakit/internal/model"
)

// DefaultTimeout 单个请求的超时时间，失败跳过不重试
const DefaultTimeout = 10 * time.Second

// reImgSrc 静态页面里的图片地址
var reImgSrc = regexp.MustCompile(`(?is)<img[^>]+src\s*=\s*["']([^"']+)["']`)

// Fetcher 静态页面图片抓取器
type Fetcher struct {
	client *http.Client
}

// NewFetcher 创建抓取器，timeout为0时取默认值
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// FetchImages 下载页面里的全部图片到outputDir，
// 单张图片失败直接跳过，返回成功保存的文件路径。
func (f *Fetcher) FetchImages(ctx context.Context, pageURL, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, model.NewFileError(model.ErrCodeFileWrite, outputDir, "创建目录", "静态模式加载失败", err)
	}

	body, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, model.NewFileError(model.ErrCodeFileReadError, pageURL, "抓取", "静态模式加载失败", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, model.NewInputFormatError(pageURL, fmt.Sprintf("页面地址无效: %v", err))
	}

	var saved []string
	for idx, m := range reImgSrc.FindAllStringSubmatch(string(body), -1) {
		src := m[1]
		ref, err := url.Parse(src)
		if err != nil {
			continue
		}
		full := base.ResolveReference(ref)

		ext := path.Ext(full.Path)
		if ext == "" {
			ext = ".jpg"
		}
		target := filepath.Join(outputDir, fmt.Sprintf("img_%03d%s", idx+1, ext))

		data, err := f.get(ctx, full.String())
		if err != nil {
			continue
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			continue
		}
		saved = append(saved, target)
	}
	return saved, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// BuildPDF 把图片按文件名排序后合成单个PDF，
// 没有可用图片时返回false。
func BuildPDF(imagePaths []string, pdfPath string) (bool, error) {
	if len(imagePaths) == 0 {
		return false, nil
	}

	sorted := append([]string{}, imagePaths...)
	sort.Strings(sorted)

	if err := api.ImportImagesFile(sorted, pdfPath, nil, nil); err != nil {
		return false, model.NewFileError(model.ErrCodeFileWrite, pdfPath, "合成PDF", "图片合成PDF失败", err)
	}
	return true, nil
}
