package database

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 在 gorm 连接上执行全部未应用的迁移
// 记录版本号的迁移前后变化；无新迁移时为 no-op
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	var before uint
	if v, _, err := m.Version(); err == nil {
		before = v
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("数据库已是最新版本", zap.Uint("version", before))
			return nil
		}
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	after, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("读取迁移版本失败: %w", err)
	}
	if dirty {
		logger.Warn("数据库迁移处于 dirty 状态", zap.Uint("version", after))
		return nil
	}

	logger.Info("数据库迁移完成",
		zap.Uint("from", before),
		zap.Uint("to", after),
	)
	return nil
}
