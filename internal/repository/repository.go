package repository

import (
	"fmt"
	"reflect"

	"teamlink/pkg/errors"

	"gorm.io/gorm"
)

// tableNamer 实体需要声明自己的表名
type tableNamer interface {
	TableName() string
}

// Repository 泛型仓储，每个实例服务单一实体类型
type Repository[T any] struct {
	db    *gorm.DB
	table string
	key   EntityKey
}

// New 创建实体仓储。实体必须在schema注册表中声明主键，
// 否则返回配置错误，而不是把问题留到调用时
func New[T any](db *gorm.DB) (*Repository[T], error) {
	var zero T
	namer, ok := any(&zero).(tableNamer)
	if !ok {
		return nil, errors.NewConfigurationError(fmt.Sprintf("实体 %T 未声明表名", zero))
	}
	table := namer.TableName()

	key, ok := entityKeys[table]
	if !ok {
		return nil, errors.NewConfigurationError(fmt.Sprintf("实体 %s 未声明主键", table))
	}
	if _, ok := reflect.TypeOf(zero).FieldByName(key.Field); !ok {
		return nil, errors.NewConfigurationError(fmt.Sprintf("实体 %s 缺少主键字段 %s", table, key.Field))
	}

	return &Repository[T]{db: db, table: table, key: key}, nil
}

// MustNew 创建实体仓储，配置错误直接panic，用于启动期装配
func MustNew[T any](db *gorm.DB) *Repository[T] {
	repo, err := New[T](db)
	if err != nil {
		panic(err)
	}
	return repo
}

// WithTx 返回绑定到指定事务的仓储副本，用于单个工作单元内的读写
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, table: r.table, key: r.key}
}

// Table 实体表名
func (r *Repository[T]) Table() string {
	return r.table
}

// Add 新增实体，返回包含存储生成字段的持久化结果
func (r *Repository[T]) Add(entity *T) (*T, error) {
	if entity == nil {
		return nil, errors.NewValidationError("实体不能为空")
	}
	if err := r.db.Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// GetAll 查询全部匹配行，返回只读快照
func (r *Repository[T]) GetAll(preds ...Predicate) ([]T, error) {
	var items []T
	query := applyAll(r.db.Model(new(T)), preds)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 按主键查询，未命中不是错误，第二个返回值为false
func (r *Repository[T]) GetByID(id string) (*T, bool, error) {
	var item T
	err := r.db.Where(r.key.Column+" = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

// Get 返回满足谓词的第一行，顺序由存储决定。
// 需要确定性的调用方应传入能唯一定位的谓词
func (r *Repository[T]) Get(pred Predicate) (*T, bool, error) {
	var item T
	err := pred.apply(r.db).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

// Update 覆盖更新。给定谓词时按谓词定位既有行，零命中报未找到；
// 省略谓词时按声明的主键定位。命中后以入参覆盖该行全部标量字段
func (r *Repository[T]) Update(entity *T, preds ...Predicate) (*T, error) {
	if entity == nil {
		return nil, errors.NewValidationError("实体不能为空")
	}

	var existing T
	var err error
	if len(preds) > 0 {
		err = applyAll(r.db, preds).First(&existing).Error
	} else {
		id, keyErr := r.keyValue(entity)
		if keyErr != nil {
			return nil, keyErr
		}
		err = r.db.Where(r.key.Column+" = ?", id).First(&existing).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("%s 中不存在要更新的记录", r.table))
	}
	if err != nil {
		return nil, err
	}

	// 用既有行的主键覆盖写入，谓词定位时入参主键以命中行为准
	existingID, keyErr := r.keyValue(&existing)
	if keyErr != nil {
		return nil, keyErr
	}
	if err := r.setKeyValue(entity, existingID); err != nil {
		return nil, err
	}

	if err := r.db.Save(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete 按主键删除。行不存在时为无操作，这与Update的未命中报错
// 是有意保留的非对称契约。删除在单事务内统一执行关系策略
func (r *Repository[T]) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicies(tx, r.table, r.key.Column, []string{id})
	})
}

// Exists 是否存在满足谓词的行
func (r *Repository[T]) Exists(pred Predicate) (bool, error) {
	count, err := r.Count(pred)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count 统计满足谓词的行数
func (r *Repository[T]) Count(preds ...Predicate) (int64, error) {
	var count int64
	query := applyAll(r.db.Model(new(T)), preds)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// keyValue 读取实体主键字段
func (r *Repository[T]) keyValue(entity *T) (string, error) {
	v := reflect.ValueOf(entity).Elem().FieldByName(r.key.Field)
	if !v.IsValid() || v.Kind() != reflect.String {
		return "", errors.NewConfigurationError(fmt.Sprintf("实体 %s 主键字段 %s 不可读", r.table, r.key.Field))
	}
	return v.String(), nil
}

// setKeyValue 写入实体主键字段
func (r *Repository[T]) setKeyValue(entity *T, id string) error {
	v := reflect.ValueOf(entity).Elem().FieldByName(r.key.Field)
	if !v.IsValid() || v.Kind() != reflect.String || !v.CanSet() {
		return errors.NewConfigurationError(fmt.Sprintf("实体 %s 主键字段 %s 不可写", r.table, r.key.Field))
	}
	v.SetString(id)
	return nil
}
