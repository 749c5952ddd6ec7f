package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgreSQL PostgreSQL连接管理器
type PostgreSQL struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	dbName string
}

// NewPostgreSQL 创建PostgreSQL连接
func NewPostgreSQL(dsn, dbName string) (*PostgreSQL, error) {
	// 首先尝试创建数据库（如果不存在）
	if err := createDatabaseIfNotExists(dsn, dbName); err != nil {
		return nil, fmt.Errorf("failed to create database: %v", err)
	}

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %v", err)
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %v", err)
	}

	return &PostgreSQL{
		db:     db,
		sqlDB:  sqlDB,
		dbName: dbName,
	}, nil
}

// GetDB 获取GORM数据库实例
func (p *PostgreSQL) GetDB() *gorm.DB {
	return p.db
}

// GetDBName 获取数据库名称
func (p *PostgreSQL) GetDBName() string {
	return p.dbName
}

// Transaction 执行事务
func (p *PostgreSQL) Transaction(fn func(*gorm.DB) error) error {
	return p.db.Transaction(fn)
}

// AutoMigrate 自动迁移表结构
func (p *PostgreSQL) AutoMigrate(models ...interface{}) error {
	return p.db.AutoMigrate(models...)
}

// WithContext 使用上下文
func (p *PostgreSQL) WithContext(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx)
}

// Health 健康检查
func (p *PostgreSQL) Health(ctx context.Context) error {
	return p.sqlDB.PingContext(ctx)
}

// Close 关闭连接
func (p *PostgreSQL) Close() error {
	if p.sqlDB != nil {
		return p.sqlDB.Close()
	}
	return nil
}

// createDatabaseIfNotExists 创建数据库（如果不存在）
func createDatabaseIfNotExists(dsn, dbName string) error {
	// 替换DSN中的数据库名，连接到postgres默认数据库
	adminDSN := strings.Replace(dsn, "dbname="+dbName, "dbname=postgres", 1)

	adminDB, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %v", err)
	}

	sqlDB, err := adminDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %v", err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL server: %v", err)
	}

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)"
	if err := adminDB.Raw(query, dbName).Scan(&exists).Error; err != nil {
		return fmt.Errorf("failed to check if database exists: %v", err)
	}

	if !exists {
		createQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, dbName)
		if err := adminDB.Exec(createQuery).Error; err != nil {
			return fmt.Errorf("failed to create database %s: %v", dbName, err)
		}
	}

	return nil
}
