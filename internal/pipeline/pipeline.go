// Package pipeline 对整张数据表做分块并行的备注检查与修复
package pipeline

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/zhikao/datakit/internal/checker"
	"github.com/zhikao/datakit/internal/excel"
	"github.com/zhikao/datakit/internal/model"
	"github.com/zhikao/datakit/internal/normalizer"
)

// DefaultChunkSize 分块行数
const DefaultChunkSize = 1000

// remarkColumn 处理时统一使用的备注列名
const remarkColumn = "专业备注"

// ProgressFunc 进度回调，done为已完成块数
type ProgressFunc func(done, total int)

// Options 处理参数，零值取默认
type Options struct {
	ChunkSize int
	Workers   int
	Progress  ProgressFunc
}

// Processor 备注检查流水线，持有只读参照数据，可并发使用
type Processor struct {
	checker    *checker.Checker
	normalizer *normalizer.Normalizer
}

// New 创建流水线
func New(ref *checker.RefData) *Processor {
	return &Processor{
		checker:    checker.NewChecker(ref),
		normalizer: normalizer.New(),
	}
}

// ProcessRemarks 对整张表做备注检查：按固定行数切块，
// 块之间互相独立（切块即深拷贝），放到有界工作池并行处理，
// 结果按块序号收集后原序拼接，最终行序与输入一致。
func (p *Processor) ProcessRemarks(ctx context.Context, t *excel.Table, opts *Options) (*excel.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	work := t.Slice(0, t.Len())
	if err := renameRemarkColumn(work); err != nil {
		return nil, err
	}

	var chunks []*excel.Table
	for i := 0; i < work.Len(); i += chunkSize {
		end := i + chunkSize
		if end > work.Len() {
			end = work.Len()
		}
		chunks = append(chunks, work.Slice(i, end))
	}
	if len(chunks) == 0 {
		chunks = append(chunks, work)
	}

	results := make([]*excel.Table, len(chunks))
	jobs := make(chan int)
	done := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = p.processChunk(chunks[idx])
				select {
				case done <- idx:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range chunks {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	for completed := 0; completed < len(chunks); completed++ {
		select {
		case <-done:
			if opts.Progress != nil {
				opts.Progress(completed+1, len(chunks))
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	wg.Wait()

	return excel.Concat(results), nil
}

// renameRemarkColumn 容错定位备注列：名字里带"专业备注"的第一列
// 统一改名，找不到就报输入格式错误。
func renameRemarkColumn(t *excel.Table) error {
	for _, col := range t.Columns {
		if strings.Contains(col, remarkColumn) {
			if col != remarkColumn {
				t.RenameColumn(col, remarkColumn)
			}
			return nil
		}
	}
	return model.NewInputFormatError("", "未找到'专业备注'相关列")
}

// processChunk 单块处理：学校名称检查、专业层次组合检查、
// 备注修复、分数一致性检查、选科要求展开、招生科类归一。
// 新增列的出现顺序与各步骤一致。
func (p *Processor) processChunk(chunk *excel.Table) *excel.Table {
	if chunk.HasColumn("学校名称") {
		chunk.AddColumn("学校匹配结果")
		for _, row := range chunk.Rows {
			row.Set("学校匹配结果", string(p.checker.CheckSchoolName(row.Value("学校名称"))))
		}
	}

	if chunk.HasColumn("招生专业") && chunk.HasColumn("一级层次") {
		chunk.AddColumn("招生专业匹配结果")
		for _, row := range chunk.Rows {
			major, majorOK := row.Get("招生专业")
			level, levelOK := row.Get("一级层次")
			row.Set("招生专业匹配结果", string(p.checker.CheckMajorCombo(major, level, majorOK, levelOK)))
		}
	}

	if chunk.HasColumn(remarkColumn) {
		chunk.AddColumn("备注检查结果")
		chunk.AddColumn("修改后备注")
		for _, row := range chunk.Rows {
			verdict, fixed := p.processRemark(row.Value(remarkColumn))
			row.Set("备注检查结果", verdict)
			row.Set("修改后备注", fixed)
		}
	}

	if chunk.HasColumn("最高分") && chunk.HasColumn("平均分") && chunk.HasColumn("最低分") {
		chunk.AddColumn("分数检查结果")
		for _, row := range chunk.Rows {
			row.Set("分数检查结果", checker.CheckScoreConsistency(row))
		}
	}

	if chunk.HasColumn("选科要求") {
		chunk.AddColumn("选科要求说明")
		chunk.AddColumn("次选")
		for _, row := range chunk.Rows {
			desc, second := expandRequirement(row.Value("选科要求"))
			row.Set("选科要求说明", desc)
			row.Set("次选", second)
		}
	}

	if chunk.HasColumn("招生科类") {
		chunk.AddColumn("首选科目")
		for _, row := range chunk.Rows {
			category := row.Value("招生科类")
			switch category {
			case "物理":
				category = "物理类"
			case "历史":
				category = "历史类"
			}
			row.Set("招生科类", category)

			if category == "物理类" || category == "历史类" {
				row.Set("首选科目", string([]rune(category)[0]))
			} else {
				row.Set("首选科目", "")
			}
		}
	}

	return chunk
}

// processRemark 空备注直接视为无问题，其余走修复流程，
// 问题列表拼成单元格文案
func (p *Processor) processRemark(remark string) (verdict, fixed string) {
	if strings.TrimSpace(remark) == "" {
		return normalizer.NoProblem, ""
	}
	fixed, issues := p.normalizer.AnalyzeAndFix(remark)
	return normalizer.JoinIssues(issues), fixed
}

// expandRequirement 选科要求展开为说明和次选科目：
// 不限→不限科目专业组；单科→必选该科；"且"组合→必选全部；
// "或"组合→多门选考；其余留空。
func expandRequirement(req string) (string, string) {
	s := strings.TrimSpace(req)
	if s == "" {
		return "", ""
	}
	if strings.Contains(s, "不限") {
		return "不限科目专业组", ""
	}
	if len([]rune(s)) == 1 {
		return "单科、多科均需选考", s
	}
	if strings.Contains(s, "且") {
		return "单科、多科均需选考", strings.ReplaceAll(s, "且", "")
	}
	if strings.Contains(s, "或") {
		return "多门选考", strings.ReplaceAll(s, "或", "")
	}
	return "", ""
}
