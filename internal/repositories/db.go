package repositories

import (
	"fmt"
	"log"

	"github.com/rchoppari/EcomerceProj/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDatabase connects to the relational store named by driver ("sqlite" or
// "postgres") and migrates the schema.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Printf("Connected to %s database and migrated schema", driver)
	return db, nil
}

// Migrate creates or updates the accounts, products, cart, orders and
// order_items tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Product{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
