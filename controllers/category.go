package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go-showcase/models"
	"go-showcase/store"
	"go-showcase/utils"

	"github.com/rs/zerolog/hlog"
)

// CategoryController handles category-related requests
type CategoryController struct {
	Categories CategoryStore
	Products   ProductStore
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categories CategoryStore, products ProductStore) *CategoryController {
	return &CategoryController{
		Categories: categories,
		Products:   products,
	}
}

func categoryError(err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return utils.DuplicateNameError("Category")
	}
	return storeError(err, "Category not found")
}

// GetCategories lists categories sorted by name
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.Categories.List(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

// GetCategory retrieves a single category by ID
func (cc *CategoryController) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid category ID")
	if !ok {
		return
	}

	category, err := cc.Categories.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, categoryError(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, category)
}

// CreateCategory adds a category (Admin only)
func (cc *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	category := &models.Category{Name: req.Name}
	if err := cc.Categories.Create(r.Context(), category); err != nil {
		utils.WriteError(w, r, categoryError(err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, category)
}

// UpdateCategory renames a category and relabels its products (Admin only)
func (cc *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid category ID")
	if !ok {
		return
	}

	var req models.CategoryRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	current, err := cc.Categories.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, categoryError(err))
		return
	}

	updated, err := cc.Categories.Rename(r.Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		utils.WriteError(w, r, categoryError(err))
		return
	}

	if updated.Name != current.Name {
		moved, err := cc.Products.RenameCategory(r.Context(), current.Name, updated.Name)
		if err != nil {
			cc.undoRename(r, current, updated.Name)
			utils.WriteError(w, r, err)
			return
		}
		hlog.FromRequest(r).Info().
			Str("from", current.Name).
			Str("to", updated.Name).
			Int64("products", moved).
			Msg("category renamed")
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

// undoRename puts back the previous category name after a failed relabel. The
// relabel may have reached some products, so those are moved back too. Anything
// left over is logged for POST /api/categories/reconcile.
func (cc *CategoryController) undoRename(r *http.Request, previous *models.Category, attempted string) {
	logger := hlog.FromRequest(r)
	if _, err := cc.Products.RenameCategory(r.Context(), attempted, previous.Name); err != nil {
		logger.Error().Err(err).
			Str("label", attempted).
			Msg("products may carry a label with no category; run POST /api/categories/reconcile")
	}
	if _, err := cc.Categories.Rename(r.Context(), previous.ID, previous.Name); err != nil {
		logger.Error().Err(err).
			Str("from", previous.Name).
			Str("to", attempted).
			Msg("category rename half applied; run POST /api/categories/reconcile")
	}
}

// DeleteCategory removes an unused category (Admin only)
func (cc *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid category ID")
	if !ok {
		return
	}

	category, err := cc.Categories.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, categoryError(err))
		return
	}

	inUse, err := cc.Products.CountInCategory(r.Context(), category.Name)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if inUse > 0 {
		utils.WriteError(w, r, utils.ValidationError("Category is still used by products"))
		return
	}

	if err := cc.Categories.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, categoryError(err))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Category deleted successfully")
}

// ReconcileCategories creates a category for every product label that has none (Admin only)
func (cc *CategoryController) ReconcileCategories(w http.ResponseWriter, r *http.Request) {
	labels, err := cc.Products.Categories(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	created := []models.Category{}
	for _, label := range labels {
		_, err := cc.Categories.FindByName(r.Context(), label)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, r, err)
			return
		}

		category := &models.Category{Name: label}
		if err := cc.Categories.Create(r.Context(), category); err != nil {
			// created concurrently
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			utils.WriteError(w, r, err)
			return
		}
		created = append(created, *category)
	}

	hlog.FromRequest(r).Info().Int("created", len(created)).Msg("categories reconciled")
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"created": created})
}
