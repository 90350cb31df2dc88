// Package checker 实现学校、专业与分数的一致性检查
package checker

import (
	"log"
	"strings"

	"github.com/zhikao/datakit/internal/excel"
)

// RefSet 只读参照集合
// 进程启动时加载一次，之后只读，无需同步。
type RefSet struct {
	values    map[string]struct{}
	available bool
}

// NewRefSet 由字符串集合构建参照集（测试与自定义数据源用）
func NewRefSet(values []string) *RefSet {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return &RefSet{values: set, available: true}
}

// UnavailableRefSet 不可用的参照集：数据源缺失时的降级形态
func UnavailableRefSet() *RefSet {
	return &RefSet{}
}

// Available 数据源是否可用
func (s *RefSet) Available() bool {
	return s.available
}

// Contains 成员测试（大小写敏感，值须已trim）
func (s *RefSet) Contains(value string) bool {
	if !s.available {
		return false
	}
	_, ok := s.values[value]
	return ok
}

// Size 集合大小
func (s *RefSet) Size() int {
	return len(s.values)
}

// RefData 检查器依赖的参照数据：有效学校名称与有效招生专业组合。
// 显式构造后注入检查器，不使用包级单例。
type RefData struct {
	Schools     *RefSet
	MajorCombos *RefSet
}

// LoadRefData 从辅助数据文件加载参照数据。
// 任一文件缺失只降级对应检查为「不可用」，不阻断启动。
func LoadRefData(schoolPath, majorPath string) *RefData {
	ref := &RefData{
		Schools:     UnavailableRefSet(),
		MajorCombos: UnavailableRefSet(),
	}

	if set, err := loadColumnSet(schoolPath, "学校名称"); err != nil {
		log.Printf("读取学校数据失败：%v，学校名称检查功能将不可用", err)
	} else {
		ref.Schools = set
		log.Printf("成功加载 %d 个有效学校名称", set.Size())
	}

	if set, err := loadColumnSet(majorPath, "招生专业"); err != nil {
		log.Printf("读取招生专业数据失败：%v，专业匹配功能将不可用", err)
	} else {
		ref.MajorCombos = set
		log.Printf("成功加载 %d 个有效专业组合", set.Size())
	}

	return ref
}

// loadColumnSet 读取一个Excel文件指定列的去重集合
func loadColumnSet(filePath, column string) (*RefSet, error) {
	table, err := excel.ReadTable(filePath, &excel.ReadOptions{})
	if err != nil {
		return nil, err
	}

	var values []string
	for _, row := range table.Rows {
		if v := row.TrimValue(column); v != "" {
			values = append(values, v)
		}
	}
	return NewRefSet(values), nil
}
