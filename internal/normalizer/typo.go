package normalizer

// TypoPair 一条错别字替换规则
type TypoPair struct {
	Typo       string
	Correction string
}

// typoTable 错别字修正表。
// 按固定顺序逐条应用（先出现的先替换），顺序参与结果，不可重排。
var typoTable = []TypoPair{
	{"教助", "救助"},
	{"指辉", "指挥"},
	{"料学", "科学"},
	{"话言", "语言"},
	{"5十3", "5+3"},
	{"5十3一体化", "5+3一体化"},
	{"“5十3”一体化", "“5+3”一体化"},
	{"5+31体化", "5+3一体化"},
	{"5+3体化", "5+3一体化"},
	{"色言", "色盲"},
	{"NIT", "NIIT"},
	{"色育", "色盲"},
	{"人围", "入围"},
	{"项月", "项目"},
	{"币范类", "师范类"},
	{"投课", "授课"},
	{"就薄", "就读"},
	{"电请", "申请"},
	{"中国面", "中国画"},
	{"火数民族", "少数民族"},
	{"色自", "色盲"},
	{"色盲色弱申报", "色盲色弱慎报"},
	{"数学与应用数笑", "数学与应用数学"},
	{"法学十", "法学+"},
	{"浣海校区", "滨海校区"},
	{"中溴", "中澳"},
}

// whitelist 免修复的校区名与办学类型字面值。
// 这些内容本身常带「不规范」的括号或短语，修复反而会改坏。
var whitelist = map[string]struct{}{
	"宏福校区":   {},
	"沙河校区":   {},
	"中外合作办学": {},
	"珠海校区":   {},
	"江北校区":   {},
	"津南校区":   {},
	"开封校区":   {},
	"联合办学":   {},
	"校企合作":   {},
	"合作办学":   {},
	"威海校区":   {},
	"深圳校区":   {},
	"苏州校区":   {},
	"平果校区":   {},
	"江南校区":   {},
	"合川校区":   {},
	"长安校区":   {},
	"崇安校区":   {},
	"南校区":    {},
	"东校区":    {},
	"都市园艺":   {},
	"甘肃兰州":   {},
}

// TypoTable 返回错别字表的只读副本（测试与文档用）
func TypoTable() []TypoPair {
	out := make([]TypoPair, len(typoTable))
	copy(out, typoTable)
	return out
}
