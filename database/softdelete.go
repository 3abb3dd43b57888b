package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const includeDeletedKey = "lms:include_deleted"

// RegisterSoftDelete installs a query callback that appends
// `is_deleted = false` to every read of any model carrying an IsDeleted
// field. Installing it once at connection time means no call site can
// forget the predicate; WithDeleted is the only way around it.
func RegisterSoftDelete(db *gorm.DB) error {
	return db.Callback().Query().Before("gorm:query").Register("lms:soft_delete_filter", softDeleteFilter)
}

// WithDeleted opts a query chain into seeing soft-deleted rows
func WithDeleted(db *gorm.DB) *gorm.DB {
	return db.Set(includeDeletedKey, true)
}

func softDeleteFilter(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}
	if _, ok := db.Get(includeDeletedKey); ok {
		return
	}
	field := db.Statement.Schema.LookUpField("IsDeleted")
	if field == nil {
		return
	}
	db.Statement.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: field.DBName},
			Value:  false,
		},
	}})
}

// SoftDelete flags the entity deleted. The row is kept; default reads stop
// returning it.
func SoftDelete(db *gorm.DB, entity interface{}) error {
	return db.Model(entity).Update("is_deleted", true).Error
}

// Restore clears the deleted flag, making the entity visible again
func Restore(db *gorm.DB, entity interface{}) error {
	return db.Model(entity).Update("is_deleted", false).Error
}
