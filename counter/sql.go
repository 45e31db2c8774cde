package counter

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ceyewan/unique/clog"
	"github.com/ceyewan/unique/xerrors"
)

// ========================================
// GORM 实现 (SQL Implementation)
// ========================================

// counterRow 计数表中的一行，Name 区分相互独立的序列
type counterRow struct {
	Name  string `gorm:"primaryKey;size:191"`
	Value int64  `gorm:"not null;default:0"`
}

func (counterRow) TableName() string {
	return "unique_counters"
}

// SQL 基于关系型数据库行的计数器
//
// 每次 Next 在一个事务内完成：不存在则插入值为 0 的行，
// 读取当前值（MySQL 下加行锁），写回当前值加 1。
type SQL struct {
	db     *gorm.DB
	name   string
	owned  bool
	logger clog.Logger
}

// NewSQL 使用外部 GORM 连接创建计数器，并自动迁移计数表
//
// Close 不会关闭外部连接。
func NewSQL(db *gorm.DB, name string, opts ...Option) (*SQL, error) {
	if db == nil {
		return nil, xerrors.WithCode(ErrClientNil, "gorm_db_nil")
	}
	if name == "" {
		return nil, xerrors.WithCode(xerrors.ErrInvalidInput, "name_required")
	}
	o := applyOptions(DriverSQL, opts)
	logger := o.logger.With(clog.String("dialect", db.Dialector.Name()), clog.String("name", name))

	if err := db.AutoMigrate(&counterRow{}); err != nil {
		logger.Error("failed to migrate counter table", clog.Error(err))
		return nil, xerrors.Wrap(err, "migrate counter table")
	}

	return &SQL{
		db:     db,
		name:   name,
		logger: logger,
	}, nil
}

// Next 在事务中读取当前值并写回当前值加 1
func (s *SQL) Next(ctx context.Context) (int64, error) {
	var current int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := counterRow{Name: s.name}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return xerrors.Wrap(err, "insert counter row")
		}

		query := tx
		if tx.Dialector.Name() == "mysql" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var row counterRow
		if err := query.Where("name = ?", s.name).Take(&row).Error; err != nil {
			return xerrors.Wrap(err, "select counter row")
		}
		if row.Value < 0 {
			return xerrors.Wrapf(ErrInvalidCount, "row %s: negative count %d", s.name, row.Value)
		}

		res := tx.Model(&counterRow{}).Where("name = ?", s.name).Update("value", row.Value+1)
		if res.Error != nil {
			return xerrors.Wrap(res.Error, "update counter row")
		}
		current = row.Value
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to advance count", clog.Error(err))
		return 0, err
	}

	s.logger.DebugContext(ctx, "next count", clog.Int64("value", current))
	return current, nil
}

// Close 仅关闭由工厂创建的连接
func (s *SQL) Close() error {
	if !s.owned {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return xerrors.Wrap(err, "get sql db")
	}
	return sqlDB.Close()
}
