// Package server exposes the product catalog as a JSON HTTP API.
//
// Routes follow the catalog's CRUD surface under /products. Validation
// and uniqueness failures map to 400, missing products to 404, and all
// error bodies carry a single "detail" field.
package server
