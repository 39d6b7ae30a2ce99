package config

import (
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ConnectDB(cfg Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBURL)
	default:
		dialector = mysql.Open(cfg.DBURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("Failed to connect to database")
	}
	return db
}
