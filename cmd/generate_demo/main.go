// Command generate_demo creates a demo database with a sample account and
// a few months of payment history.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/avoelk/pfennig/internal/auth"
	"github.com/avoelk/pfennig/internal/database"
	"github.com/avoelk/pfennig/internal/database/payments"
	"github.com/avoelk/pfennig/internal/database/users"
	"github.com/avoelk/pfennig/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

const (
	demoUsername = "demo"
	demoPassword = "demo-password"
)

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	hash, err := auth.SHA3Hasher{}.Hash(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user, err := users.NewRepository(db.DB).CreateUser(demoUsername, hash)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %q (id %d)", user.Username, user.ID)

	if err := payments.NewRepository(db.DB).InsertBatch(user.ID, samplePayments()); err != nil {
		log.Fatalf("Failed to insert demo payments: %v", err)
	}

	log.Printf("Demo database ready. Log in with %s / %s", demoUsername, demoPassword)
}

func samplePayments() []entities.Payment {
	return []entities.Payment{
		{Date: "2026-06-02", Time: "09:15", Amount: 3.40, Category: "food", Text: "coffee and croissant"},
		{Date: "2026-06-02", Time: "18:40", Amount: 54.20, Category: "groceries", Text: "weekly shopping"},
		{Date: "2026-06-05", Time: "12:05", Amount: 11.90, Category: "food", Text: "lunch"},
		{Date: "2026-06-09", Time: "08:00", Amount: 49.00, Category: "transport", Text: "monthly transit pass"},
		{Date: "2026-06-14", Time: "20:30", Amount: 24.50, Category: "entertainment", Text: "cinema tickets"},
		{Date: "2026-07-01", Time: "10:00", Amount: 780.00, Category: "rent", Text: "july rent"},
		{Date: "2026-07-03", Time: "16:20", Amount: 89.99, Category: "tech", Text: "mechanical keyboard"},
		{Date: "2026-07-11", Time: "13:45", Amount: 7.80, Category: "food", Text: "ramen"},
		{Date: "2026-07-19", Time: "11:10", Amount: 36.00, Category: "health", Text: "pharmacy"},
		{Date: "2026-08-01", Time: "10:00", Amount: 780.00, Category: "rent", Text: "august rent"},
		{Date: "2026-08-06", Time: "19:55", Amount: 42.30, Category: "groceries", Text: "weekly shopping"},
		{Date: "2026-08-23", Time: "15:00", Amount: 120.00, Category: "business", Text: "coworking day passes"},
	}
}
