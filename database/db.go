// Package database manages the sqlite database of the gm-panel: connection
// setup, automigration and seeding of the system and owner accounts.
package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/imperiumao/gm-panel/config"
	"github.com/imperiumao/gm-panel/database/model"
	"github.com/imperiumao/gm-panel/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultPassword = "admin"
	ownerUsername   = "root"
	ownerPower      = 99
)

var defaultServers = []model.Server{
	{Id: 1, Name: "Imperium", Color: "#F78181"},
	{Id: 2, Name: "Aurora", Color: "#81BEF7"},
	{Id: 3, Name: "Tempest", Color: "#F3F781"},
}

func initModels() error {
	models := []any{
		&model.User{},
		&model.Record{},
		&model.Server{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initUsers seeds the system account and the protected owner account when the
// users table is empty.
func initUsers() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	hash, err := crypto.HashPasswordAsBcrypt(defaultPassword)
	if err != nil {
		return err
	}

	users := []model.User{
		{
			Username:  config.GetSystemAccount(),
			Password:  hash,
			Power:     ownerPower,
			Protected: true,
		},
		{
			Username:  ownerUsername,
			Password:  hash,
			Power:     ownerPower,
			Protected: true,
		},
	}
	return db.Create(&users).Error
}

// initServers seeds the fixed server set with its display colors.
func initServers() error {
	empty, err := isTableEmpty("servers")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}
	return db.Create(&defaultServers).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA cache_size = -64000;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	if err := initUsers(); err != nil {
		return err
	}
	return initServers()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
