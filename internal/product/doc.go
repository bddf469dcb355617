// Package product holds the catalog model and its SQLite-backed store.
package product
