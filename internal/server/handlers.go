package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/TheMisteMince/MVP-API/internal/product"
)

// Request body for create and update.
type productRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Error responses carry a single human-readable detail field.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 10)

	products, err := s.store.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := product.Product{ID: uuid.New(), Name: req.Name, Price: req.Price}
	if err := s.store.Insert(r.Context(), p); err != nil {
		switch {
		case errors.Is(err, product.ErrDuplicate):
			writeDetail(w, http.StatusBadRequest, "Product already exists")
		case errors.Is(err, product.ErrInvalid):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := product.Product{ID: id, Name: req.Name, Price: req.Price}
	if err := s.store.Update(r.Context(), p); err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			writeDetail(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, product.ErrDuplicate):
			writeDetail(w, http.StatusBadRequest, "Product already exists")
		case errors.Is(err, product.ErrInvalid):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product successfully deleted"})
}

// Parses the {id} path parameter, rejecting malformed UUIDs.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}

// Reads an integer query parameter, falling back on absence or garbage.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeError(w http.ResponseWriter, status int, err error) {
	slog.Error("request failed", "error", err)
	writeDetail(w, status, "internal server error")
}
