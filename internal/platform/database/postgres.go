package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewPostgresDB connects with retries; the database container may still be
// starting when the service comes up.
func NewPostgresDB(cfg Config) (*sql.DB, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, sslMode)

	var db *sql.DB
	var err error
	maxRetries := 10

	for i := 1; i <= maxRetries; i++ {
		log.Printf("Connecting to database (attempt %d/%d)...", i, maxRetries)
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			log.Println("Database connected successfully!")

			version, verr := postgisVersion(db)
			if verr != nil {
				// The intersection query cannot work without PostGIS.
				db.Close()
				return nil, fmt.Errorf("postgis extension not available: %w", verr)
			}

			log.Printf("PostGIS %s available", version)
			return db, nil
		}

		log.Println("Database not ready yet. Waiting 2 seconds...")
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database: %w", err)
}

func postgisVersion(db *sql.DB) (string, error) {
	var version string
	if err := db.QueryRow("SELECT PostGIS_Lib_Version()").Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}
