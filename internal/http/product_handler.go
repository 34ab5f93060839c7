package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

type Catalog interface {
	Get(id int64) (domain.Product, bool)
	Search(query, category string) []domain.Product
	Categories() []string
}

type ProductHandler struct {
	catalog Catalog
}

func NewProductHandler(catalog Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	matched := h.catalog.Search(query, category)
	products := make([]ProductResponse, len(matched))
	for i, p := range matched {
		products[i] = toProductResponse(p)
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	p, ok := h.catalog.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &CategoriesResponse{Categories: h.catalog.Categories()})
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}
