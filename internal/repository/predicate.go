package repository

import (
	"gorm.io/gorm"
)

// Predicate 查询谓词，在实体字段上组合布尔过滤条件
type Predicate struct {
	query string
	args  []interface{}
}

// Where 创建谓词
func Where(query string, args ...interface{}) Predicate {
	return Predicate{query: query, args: args}
}

// And 与另一个条件做逻辑与
func (p Predicate) And(query string, args ...interface{}) Predicate {
	if p.query == "" {
		return Where(query, args...)
	}
	return Predicate{
		query: "(" + p.query + ") AND (" + query + ")",
		args:  append(append([]interface{}{}, p.args...), args...),
	}
}

// Or 与另一个条件做逻辑或
func (p Predicate) Or(query string, args ...interface{}) Predicate {
	if p.query == "" {
		return Where(query, args...)
	}
	return Predicate{
		query: "(" + p.query + ") OR (" + query + ")",
		args:  append(append([]interface{}{}, p.args...), args...),
	}
}

// IsEmpty 是否为空谓词（匹配全部行）
func (p Predicate) IsEmpty() bool {
	return p.query == ""
}

// apply 将谓词应用到查询上
func (p Predicate) apply(tx *gorm.DB) *gorm.DB {
	if p.IsEmpty() {
		return tx
	}
	return tx.Where(p.query, p.args...)
}

// applyAll 应用可选谓词列表
func applyAll(tx *gorm.DB, preds []Predicate) *gorm.DB {
	for _, p := range preds {
		tx = p.apply(tx)
	}
	return tx
}
