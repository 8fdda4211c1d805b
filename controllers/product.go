package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-showcase/models"
	"go-showcase/store"
	"go-showcase/utils"

	"github.com/gorilla/mux"
)

// ProductController handles product-related requests
type ProductController struct {
	Products   ProductStore
	Categories CategoryStore
}

// NewProductController creates a new ProductController
func NewProductController(products ProductStore, categories CategoryStore) *ProductController {
	return &ProductController{
		Products:   products,
		Categories: categories,
	}
}

// AllCategories is the category value that disables filtering
const AllCategories = "all"

// categoryFilter maps a requested category onto a store filter. Labels match exactly.
func categoryFilter(category string) string {
	if category == AllCategories {
		return ""
	}
	return category
}

// GetProducts retrieves all products, optionally filtered by ?category=
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	category := categoryFilter(r.URL.Query().Get("category"))

	products, err := pc.Products.List(r.Context(), category)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// GetProductsByCategory retrieves the products of one category; an empty result is a 404
func (pc *ProductController) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	products, err := pc.Products.List(r.Context(), categoryFilter(category))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if len(products) == 0 {
		utils.WriteError(w, r, utils.NotFoundError("No products found in category: "+category))
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// GetCategories returns the distinct category labels used by products
func (pc *ProductController) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := pc.Products.Categories(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid product ID")
	if !ok {
		return
	}

	product, err := pc.Products.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, storeError(err, "Product not found"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// checkCategory rejects labels that do not name an existing category.
func (pc *ProductController) checkCategory(ctx context.Context, name string) error {
	_, err := pc.Categories.FindByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, store.ErrNotFound) {
		return utils.ValidationError("Category does not exist: " + name)
	}
	return err
}

func (pc *ProductController) decodeProduct(w http.ResponseWriter, r *http.Request) (*models.Product, error) {
	var req models.ProductRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	req.Category = strings.TrimSpace(req.Category)
	if err := pc.checkCategory(r.Context(), req.Category); err != nil {
		return nil, err
	}

	var product models.Product
	req.Apply(&product)
	return &product, nil
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, err := pc.decodeProduct(w, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err := pc.Products.Create(r.Context(), product); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles replacing a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid product ID")
	if !ok {
		return
	}

	product, err := pc.decodeProduct(w, r)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	updated, err := pc.Products.Update(r.Context(), id, product)
	if err != nil {
		utils.WriteError(w, r, storeError(err, "Product not found"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid product ID")
	if !ok {
		return
	}

	if err := pc.Products.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, storeError(err, "Product not found"))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}
