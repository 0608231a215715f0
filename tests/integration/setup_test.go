//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/vivario/reservation-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "reservation_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS participants")
	testDB.Exec("DROP TABLE IF EXISTS reservation_items")
	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS experiences")

	if err := testDB.AutoMigrate(
		&models.Experience{},
		&models.Reservation{},
		&models.ReservationItem{},
		&models.Participant{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS participants")
	testDB.Exec("DROP TABLE IF EXISTS reservation_items")
	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS experiences")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM participants")
	testDB.Exec("DELETE FROM reservation_items")
	testDB.Exec("DELETE FROM reservations")
	testDB.Exec("DELETE FROM experiences")
	testDB.Exec("ALTER SEQUENCE IF EXISTS experiences_id_seq RESTART WITH 1")
	testDB.Exec("ALTER SEQUENCE IF EXISTS reservations_id_seq RESTART WITH 1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
