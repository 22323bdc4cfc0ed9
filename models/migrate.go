package models

import (
	"log"

	"github.com/daftarly/daftar_backend/config"
)

// MigrateTable runs AutoMigrate for every persisted model. Called from
// main() after the DB connection is established (can be skipped with
// SKIP_MIGRATIONS=true and run as a separate job instead).
func MigrateTable() {
	db := config.GetDB()
	err := db.AutoMigrate(
		&Business{},
		&Customer{},
		&Supplier{},
		&SalesInvoice{},
		&Receipt{},
		&Purchase{},
		&SupplierPayment{},
	)
	if err != nil {
		log.Fatalf("failed to migrate tables: %v", err)
	}
}
