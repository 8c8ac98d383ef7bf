package db

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"libtool/models"
)

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Book{}, &models.Reader{}, &models.Issue{}); err != nil {
		return err
	}

	// open issues per book: backs the delete policy check
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_by_book
	  ON %s (book_id)
	  WHERE actual_return_date IS NULL;
	`, models.IssueTable, models.IssueTable)).Error; err != nil {
		return err
	}

	// open issues per reader: backs books_count on reader reads
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_by_reader
	  ON %s (reader_id)
	  WHERE actual_return_date IS NULL;
	`, models.IssueTable, models.IssueTable)).Error; err != nil {
		return err
	}

	return nil
}
