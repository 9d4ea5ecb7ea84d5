package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductsAPI interface {
	ListProducts(ctx context.Context, q backend.ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type ProductHandler struct {
	products ProductsAPI
	timeout  time.Duration
}

func NewProductHandler(products ProductsAPI, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
	}
}

// GET /api/v1/products?category=&search=&featured=
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	featured, _ := strconv.ParseBool(q.Get("featured"))
	products, err := h.products.ListProducts(ctx, backend.ProductQuery{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Featured: featured,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if products == nil {
		products = make([]domain.Product, 0)
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.GetProduct(ctx, chi.URLParam(r, "product_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// GET /api/v1/categories
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cats, err := h.products.ListCategories(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cats == nil {
		cats = make([]domain.Category, 0)
	}
	respondJSON(w, http.StatusOK, cats)
}
