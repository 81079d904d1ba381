package repository

import (
	"fmt"

	"teamlink/pkg/errors"

	"gorm.io/gorm"
)

// DeletePolicy 父子关系的删除传播策略
type DeletePolicy int

const (
	// Restrict 存在子记录时拒绝删除父记录
	Restrict DeletePolicy = iota
	// Cascade 删除父记录时连带删除子记录
	Cascade
	// SetNull 删除父记录时将子记录外键置空
	SetNull
	// NoAction 不做任何处理，孤儿行是可接受状态
	NoAction
)

// Relation 关系描述：父表、子表、外键列、删除策略
type Relation struct {
	ParentTable string
	ChildTable  string
	ForeignKey  string
	Policy      DeletePolicy
}

// relations 全部实体关系的静态注册表，删除路径统一消费，
// 与模型结构体上如何声明无关
var relations = []Relation{
	{ParentTable: "tenants", ChildTable: "users", ForeignKey: "tenant_id", Policy: Restrict},
	{ParentTable: "tenants", ChildTable: "post_messages", ForeignKey: "tenant_id", Policy: Restrict},
	{ParentTable: "users", ChildTable: "post_messages", ForeignKey: "user_id", Policy: Restrict},
	{ParentTable: "users", ChildTable: "response_messages", ForeignKey: "user_id", Policy: Restrict},
	{ParentTable: "users", ChildTable: "chats", ForeignKey: "sender_user_id", Policy: Restrict},
	{ParentTable: "users", ChildTable: "chats", ForeignKey: "receiver_user_id", Policy: Restrict},
	{ParentTable: "users", ChildTable: "notifications", ForeignKey: "user_id", Policy: Cascade},
	{ParentTable: "registration_requests", ChildTable: "users", ForeignKey: "registration_request_id", Policy: SetNull},
	{ParentTable: "post_messages", ChildTable: "response_messages", ForeignKey: "post_message_id", Policy: NoAction},
}

// Relations 返回关系注册表的副本
func Relations() []Relation {
	out := make([]Relation, len(relations))
	copy(out, relations)
	return out
}

// deleteWithPolicies 删除指定表的若干行，先按策略处理子表再删除本表。
// 级联触发的删除走同一条路径，子表自身的策略同样生效。
func deleteWithPolicies(tx *gorm.DB, table, keyColumn string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	// 先检查全部Restrict关系，再执行任何写入
	for _, rel := range relations {
		if rel.ParentTable != table || rel.Policy != Restrict {
			continue
		}
		var count int64
		if err := tx.Table(rel.ChildTable).Where(rel.ForeignKey+" IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.NewConflictError(fmt.Sprintf("%s 中存在引用 %s 的记录，无法删除", rel.ChildTable, table))
		}
	}

	for _, rel := range relations {
		if rel.ParentTable != table {
			continue
		}
		switch rel.Policy {
		case Cascade:
			childKey, ok := entityKeys[rel.ChildTable]
			if !ok {
				return errors.NewConfigurationError(fmt.Sprintf("实体 %s 未声明主键", rel.ChildTable))
			}
			var childIDs []string
			if err := tx.Table(rel.ChildTable).Where(rel.ForeignKey+" IN ?", ids).Pluck(childKey.Column, &childIDs).Error; err != nil {
				return err
			}
			// 递归，子表自身的关系策略照常执行
			if err := deleteWithPolicies(tx, rel.ChildTable, childKey.Column, childIDs); err != nil {
				return err
			}
		case SetNull:
			if err := tx.Table(rel.ChildTable).Where(rel.ForeignKey+" IN ?", ids).Update(rel.ForeignKey, nil).Error; err != nil {
				return err
			}
		case Restrict, NoAction:
			// Restrict 已在前置检查处理；NoAction 留给修复任务
		}
	}

	return tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s IN ?", table, keyColumn), ids).Error
}
