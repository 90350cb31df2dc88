package model

// Field 命名字段值
// 比对结果中保留字段的原始顺序用于展示，因此不使用map。
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ReconcileResult 单行比对结果
// 每条对应主表的一行，生命周期为一次比对运行，只在内存中保留。
type ReconcileResult struct {
	// Index 展示序号（从1开始）
	Index int `json:"index"`

	// OriginalIndex 原始数据行号（从0开始，用于回查原始行）
	OriginalIndex int `json:"original_index"`

	// KeyFields 参与组合键的字段（保留顺序，用于筛选和展示）
	KeyFields []Field `json:"key_fields"`

	// Exists 组合键是否存在于参照表
	Exists bool `json:"exists"`

	// OtherInfo 不参与键的附加描述字段，原样携带用于导出
	OtherInfo []Field `json:"other_info"`
}

// KeyField 按名称取键字段值，不存在返回空串
func (r *ReconcileResult) KeyField(name string) string {
	for _, f := range r.KeyFields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// OtherField 按名称取附加字段值，不存在返回空串
func (r *ReconcileResult) OtherField(name string) string {
	for _, f := range r.OtherInfo {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// StatusText 匹配状态展示文本
func (r *ReconcileResult) StatusText() string {
	if r.Exists {
		return "✓ 匹配"
	}
	return "✗ 未匹配"
}
