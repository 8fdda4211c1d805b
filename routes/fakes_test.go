package routes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-showcase/models"
	"go-showcase/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUsers struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.users = append(m.users, *u)
	return nil
}

func (m *memUsers) EmailTaken(_ context.Context, email string) (bool, error) {
	_, err := m.find(func(u models.User) bool { return u.Email == email })
	return err == nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) List(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User{}, m.users...), nil
}

func (m *memUsers) SetProfilePic(_ context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].ProfilePic = url
			updated := m.users[i]
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

type memProducts struct {
	mu        sync.Mutex
	products  []models.Product
	renameErr error
}

func (m *memProducts) List(_ context.Context, category string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	m.products = append(m.products, *p)
	return nil
}

func (m *memProducts) Update(_ context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			p.ID = id
			p.CreatedAt = m.products[i].CreatedAt
			p.UpdatedAt = time.Now().UTC()
			m.products[i] = *p
			updated := *p
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memProducts) Categories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range m.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memProducts) CountInCategory(_ context.Context, category string) (int64, error) {
	products, _ := m.List(context.Background(), category)
	return int64(len(products)), nil
}

func (m *memProducts) RenameCategory(_ context.Context, from, to string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renameErr != nil {
		return 0, m.renameErr
	}
	var n int64
	for i := range m.products {
		if m.products[i].Category == from {
			m.products[i].Category = to
			n++
		}
	}
	return n, nil
}

type memCategories struct {
	mu         sync.Mutex
	categories []models.Category
}

func (m *memCategories) List(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Category{}, m.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) Get(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	return m.find(func(c models.Category) bool { return c.ID == id })
}

func (m *memCategories) FindByName(_ context.Context, name string) (*models.Category, error) {
	return m.find(func(c models.Category) bool { return c.Name == name })
}

func (m *memCategories) find(match func(models.Category) bool) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if match(c) {
			found := c
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memCategories) Create(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Name = strings.TrimSpace(c.Name)
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return store.ErrDuplicate
		}
	}
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.categories = append(m.categories, *c)
	return nil
}

func (m *memCategories) Rename(_ context.Context, id primitive.ObjectID, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = strings.TrimSpace(name)
	for _, existing := range m.categories {
		if existing.Name == name && existing.ID != id {
			return nil, store.ErrDuplicate
		}
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories[i].Name = name
			updated := m.categories[i]
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memCategories) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type memOrders struct {
	mu     sync.Mutex
	orders []models.Order
}

func (m *memOrders) Create(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = primitive.NewObjectID()
	o.Status = models.StatusPending
	o.OrderDate = time.Now().UTC()
	o.CreatedAt = o.OrderDate
	o.UpdatedAt = o.OrderDate
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memOrders) List(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		if status == "" || m.orders[i].Status == status {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

func (m *memOrders) Get(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memOrders) UpdateCustomer(_ context.Context, id primitive.ObjectID, c models.Customer) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Customer = c
			updated := m.orders[i]
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			if !m.orders[i].Status.CanTransitionTo(status) {
				return nil, store.ErrInvalidTransition
			}
			m.orders[i].Status = status
			updated := m.orders[i]
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type memInquiries struct {
	mu        sync.Mutex
	inquiries []models.Inquiry
}

func (m *memInquiries) Create(_ context.Context, in *models.Inquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	in.ID = primitive.NewObjectID()
	in.CreatedAt = time.Now().UTC()
	in.UpdatedAt = in.CreatedAt
	m.inquiries = append(m.inquiries, *in)
	return nil
}

func (m *memInquiries) List(context.Context) ([]models.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Inquiry{}
	for i := len(m.inquiries) - 1; i >= 0; i-- {
		out = append(out, m.inquiries[i])
	}
	return out, nil
}

func (m *memInquiries) Update(_ context.Context, id primitive.ObjectID, in *models.Inquiry) (*models.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.inquiries {
		if m.inquiries[i].ID == id {
			m.inquiries[i].Name = in.Name
			m.inquiries[i].Email = in.Email
			m.inquiries[i].Message = in.Message
			updated := m.inquiries[i]
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memInquiries) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.inquiries {
		if m.inquiries[i].ID == id {
			m.inquiries = append(m.inquiries[:i], m.inquiries[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// chanNotifier records notifications on buffered channels
type chanNotifier struct {
	orders    chan models.Order
	inquiries chan models.Inquiry
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{
		orders:    make(chan models.Order, 8),
		inquiries: make(chan models.Inquiry, 8),
	}
}

func (n *chanNotifier) SendOrderNotification(o models.Order) error {
	n.orders <- o
	return nil
}

func (n *chanNotifier) SendInquiryNotification(in models.Inquiry) error {
	n.inquiries <- in
	return nil
}
