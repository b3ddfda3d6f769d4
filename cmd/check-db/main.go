// Standalone utility to run an integrity check against an existing database
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/soilfert-app/soilfertdb/internal/database"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: check-db <database-path>")
		os.Exit(1)
	}

	dbPath := os.Args[1]

	db, err := database.Connect(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("Running integrity check...")
	healthy, detail, err := database.IntegrityCheck(db)
	if err != nil {
		log.Fatalf("Integrity check failed to run: %v", err)
	}

	if !healthy {
		fmt.Printf("Integrity problems found:\n%s\n", detail)
		os.Exit(1)
	}

	fmt.Println("Database is healthy!")
}
