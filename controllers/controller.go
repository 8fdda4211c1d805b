package controllers

import (
	"context"
	"errors"
	"net/http"

	"go-showcase/models"
	"go-showcase/store"
	"go-showcase/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence the auth and user controllers need
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetProfilePic(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error)
}

// ProductStore is the persistence behind the product controller
type ProductStore interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Categories(ctx context.Context) ([]string, error)
	CountInCategory(ctx context.Context, category string) (int64, error)
	RenameCategory(ctx context.Context, from, to string) (int64, error)
}

// CategoryStore is the persistence behind the category controller
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Rename(ctx context.Context, id primitive.ObjectID, name string) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderStore is the persistence behind the order controller
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	List(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateCustomer(ctx context.Context, id primitive.ObjectID, c models.Customer) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InquiryStore is the persistence behind the inquiry controller
type InquiryStore interface {
	Create(ctx context.Context, in *models.Inquiry) error
	List(ctx context.Context) ([]models.Inquiry, error)
	Update(ctx context.Context, id primitive.ObjectID, in *models.Inquiry) (*models.Inquiry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Sessions issues session tokens and manages the session cookie
type Sessions interface {
	Issue(userID primitive.ObjectID) (string, error)
	SetCookie(w http.ResponseWriter, token string)
	ClearCookie(w http.ResponseWriter)
}

// Notifier mails the shop owner about new orders and inquiries
type Notifier interface {
	SendOrderNotification(o models.Order) error
	SendInquiryNotification(in models.Inquiry) error
}

// pathID parses the {id} route variable, answering 400 with invalidMsg when it is not an ObjectID.
func pathID(w http.ResponseWriter, r *http.Request, invalidMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, r, utils.ValidationError(invalidMsg))
		return primitive.NilObjectID, false
	}
	return id, true
}

// storeError maps store sentinels onto API errors; notFoundMsg is used for ErrNotFound.
func storeError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFoundError(notFoundMsg)
	case errors.Is(err, store.ErrInvalidTransition):
		return utils.ValidationError("Invalid status transition")
	}
	return err
}
