package repository

// EntityKey 实体主键描述：结构体字段名与数据库列名
type EntityKey struct {
	Field  string
	Column string
}

// entityKeys 实体表 -> 主键描述的静态注册表。
// 主键在此声明而不是运行时反推，遗漏声明在仓储构造时就会暴露。
var entityKeys = map[string]EntityKey{
	"tenants":               {Field: "ID", Column: "id"},
	"users":                 {Field: "ID", Column: "id"},
	"registration_requests": {Field: "ID", Column: "id"},
	"post_messages":         {Field: "ID", Column: "id"},
	"response_messages":     {Field: "ID", Column: "id"},
	"notifications":         {Field: "ID", Column: "id"},
	"chats":                 {Field: "ID", Column: "id"},
}

// KeyFor 查询实体表的主键描述
func KeyFor(table string) (EntityKey, bool) {
	key, ok := entityKeys[table]
	return key, ok
}
