package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB(cfg *Config, lg *logrus.Logger) (*gorm.DB, error) {
	dbURL := cfg.DBURL

	// local fallback
	if dbURL == "" {
		dbURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			"localhost", "postgres", "postgres", "loans", "5432",
		)
	} else {
		dbURL = withURLParam(dbURL, "sslmode", "require")
		dbURL = withURLParam(dbURL, "search_path", "public")
		// due dates are calendar days in UTC on every pooled connection
		dbURL = withURLParam(dbURL, "TimeZone", "UTC")
	}

	gormLogger := logger.New(
		log.New(lg.WriterLevel(logrus.WarnLevel), "[GORM] ", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn, // Info while debugging
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	var dbName, currentUser string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	_ = db.Raw("SELECT current_user").Scan(&currentUser)
	lg.WithFields(logrus.Fields{"db": dbName, "user": currentUser}).Info("database connected")

	DB = db
	return db, nil
}

// Migrate creates or updates all tables. Parents come before children so
// foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.LoanType{},
		&models.Loan{},
		&models.LoanSchedule{},
		&models.LoanDue{},
		&models.DailyCollection{},
		&models.Attendance{},
		&models.Notification{},
	)
}

// withURLParam appends key=val to a URL-style DSN unless key is already set.
func withURLParam(dsn, key, val string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + val
}
