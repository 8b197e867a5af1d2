// Package database handles the SQLite connection lifecycle and schema
// migration. Entity-specific queries live in the subpackages (users,
// payments), each exposing a Repository over the shared *gorm.DB.
package database
