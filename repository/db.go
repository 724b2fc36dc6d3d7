package repository

import (
	"fmt"
	"sync"

	"github.com/jfinfosena/25adso-pap/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var db *gorm.DB
var dbOnce sync.Once

// InitDatabase opens the shared gorm connection. Subsequent calls return the
// same handle.
func InitDatabase(cfg config.DatabaseConfig) *gorm.DB {
	dbOnce.Do(
		func() {
			dsn := fmt.Sprintf(
				"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.Username,
				cfg.Password,
				cfg.Host,
				cfg.Port,
				cfg.DatabaseName,
			)
			var err error
			db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
			if err != nil {
				panic(fmt.Errorf("failed to connect database, error: %v", err))
			}
		},
	)

	return db
}
