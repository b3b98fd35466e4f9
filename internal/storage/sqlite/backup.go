package sqlite

import (
	"database/sql"
	"fmt"
)

// BackupTo writes a consistent copy of the database file at src to dest
func BackupTo(src, dest string) error {
	db, err := sql.Open("sqlite", "file:"+src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := Verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		return fmt.Errorf("failed to copy database: %w", err)
	}
	return nil
}

// VerifyFile checks that path is a readable SQLite database holding app_state
func VerifyFile(path string) error {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := Verify(db); err != nil {
		return err
	}

	var count int
	return db.QueryRow("SELECT count(*) FROM app_state").Scan(&count)
}

// Verify runs a trivial query against sqlite_master
func Verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}
