package routes

import (
	"net/http"

	"go-showcase/controllers"
	"go-showcase/middleware"
	"go-showcase/utils"

	"github.com/gorilla/mux"
)

// Controllers groups the handlers mounted under /api
type Controllers struct {
	Users      *controllers.UserController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Orders     *controllers.OrderController
	Inquiries  *controllers.InquiryController
}

// RegisterRoutes sets up all the routes for the application. auth is the
// session guard; admin routes run it before the admin check.
func RegisterRoutes(router *mux.Router, auth mux.MiddlewareFunc, c Controllers) {
	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/signup", c.Users.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", c.Users.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", c.Users.Logout).Methods(http.MethodPost)

	session := api.PathPrefix("/auth").Subrouter()
	session.Use(auth)
	session.HandleFunc("/check", c.Users.CheckAuth).Methods(http.MethodGet)
	session.HandleFunc("/update-profile", c.Users.UpdateProfilePic).Methods(http.MethodPut)

	// Product routes
	api.HandleFunc("/products", c.Products.GetProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/categories/all", c.Products.GetCategories).Methods(http.MethodGet)
	api.HandleFunc("/products/category/{category}", c.Products.GetProductsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", c.Products.GetProductByID).Methods(http.MethodGet)

	products := api.PathPrefix("/products").Subrouter()
	products.Use(auth, middleware.AdminMiddleware)
	products.HandleFunc("", c.Products.CreateProduct).Methods(http.MethodPost)
	products.HandleFunc("/{id}", c.Products.UpdateProduct).Methods(http.MethodPut)
	products.HandleFunc("/{id}", c.Products.DeleteProduct).Methods(http.MethodDelete)

	// Category routes
	api.HandleFunc("/categories", c.Categories.GetCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", c.Categories.GetCategory).Methods(http.MethodGet)

	categories := api.PathPrefix("/categories").Subrouter()
	categories.Use(auth, middleware.AdminMiddleware)
	categories.HandleFunc("", c.Categories.CreateCategory).Methods(http.MethodPost)
	categories.HandleFunc("/reconcile", c.Categories.ReconcileCategories).Methods(http.MethodPost)
	categories.HandleFunc("/{id}", c.Categories.UpdateCategory).Methods(http.MethodPut)
	categories.HandleFunc("/{id}", c.Categories.DeleteCategory).Methods(http.MethodDelete)

	// Order routes
	api.HandleFunc("/orders", c.Orders.CreateOrder).Methods(http.MethodPost)

	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(auth, middleware.AdminMiddleware)
	orders.HandleFunc("", c.Orders.GetOrders).Methods(http.MethodGet)
	orders.HandleFunc("/status/{status}", c.Orders.GetOrdersByStatus).Methods(http.MethodGet)
	orders.HandleFunc("/{id}", c.Orders.GetOrder).Methods(http.MethodGet)
	orders.HandleFunc("/{id}", c.Orders.UpdateOrder).Methods(http.MethodPut)
	orders.HandleFunc("/{id}/status", c.Orders.UpdateOrderStatus).Methods(http.MethodPatch)
	orders.HandleFunc("/{id}", c.Orders.DeleteOrder).Methods(http.MethodDelete)

	// Inquiry routes
	api.HandleFunc("/inquiries", c.Inquiries.CreateInquiry).Methods(http.MethodPost)

	inquiries := api.PathPrefix("/inquiries").Subrouter()
	inquiries.Use(auth)
	inquiries.HandleFunc("", c.Inquiries.GetInquiries).Methods(http.MethodGet)
	inquiries.HandleFunc("/{id}", c.Inquiries.UpdateInquiry).Methods(http.MethodPut)
	inquiries.HandleFunc("/{id}", c.Inquiries.DeleteInquiry).Methods(http.MethodDelete)

	// User admin routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(auth, middleware.AdminMiddleware)
	users.HandleFunc("", c.Users.ListUsers).Methods(http.MethodGet)
	users.HandleFunc("", c.Users.CreateUser).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, r, utils.ErrRouteNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
