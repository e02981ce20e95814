package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var DB *gorm.DB

type BAContext string

const (
	DBContextURL BAContext = "ba-backend-url"
)

// Connect opens the SQLite database, migrates it and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	// Migrate with foreign keys disabled since sqlite copies and drops
	// tables for column changes
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors and serializes
	// methodology activation
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "budget_analytics:after_query", queryCallback},
		{db.Callback().Query().After("*"), "budget_analytics:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "budget_analytics:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "budget_analytics:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "budget_analytics:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "budget_analytics:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "budget_analytics:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		err = c.processor.Register(c.name, c.fn)
		if err != nil {
			return err
		}
	}

	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback replaces constraint errors returned by the database
// with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: categories.name") {
		db.Error = ErrCategoryNameNotUnique
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: methodologies.name") {
		db.Error = ErrMethodologyNameNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in database/sql
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code
// and seeds the default methodologies.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Category{}, Transaction{}, Methodology{}, Income{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	err = seedMethodologies(db)
	if err != nil {
		return fmt.Errorf("error seeding default methodologies: %w", err)
	}

	return nil
}
