package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

type account struct {
	models.User
	passwordHash []byte
	verified     bool
	verifyToken  string
}

type session struct {
	id        string
	userID    int64
	device    string
	ip        string
	createdAt time.Time
}

type refreshToken struct {
	userID    int64
	sessionID string
	expires   time.Time
}

// store holds every piece of backend state behind one mutex.
type store struct {
	mu sync.Mutex

	nextID int64

	accounts map[int64]*account
	byEmail  map[string]int64
	sessions map[string]*session
	refresh  map[string]refreshToken

	categories []models.Category
	products   []models.Product
	vouchers   []models.Voucher

	addresses  map[int64][]models.ShippingAddress
	orders     []*models.Order
	idempotent map[string]models.CreateOrderResponse
}

func newStore() *store {
	return &store{
		accounts:   map[int64]*account{},
		byEmail:    map[string]int64{},
		sessions:   map[string]*session{},
		refresh:    map[string]refreshToken{},
		addresses:  map[int64][]models.ShippingAddress{},
		idempotent: map[string]models.CreateOrderResponse{},
	}
}

// id must be called with mu held.
func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// accountByEmail must be called with mu held.
func (s *store) accountByEmail(email string) *account {
	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil
	}
	return s.accounts[id]
}

// product must be called with mu held.
func (s *store) product(id int64) *models.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

// category must be called with mu held.
func (s *store) category(id int64) *models.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

// voucher must be called with mu held.
func (s *store) voucher(code string) *models.Voucher {
	for i := range s.vouchers {
		if strings.EqualFold(s.vouchers[i].Code, code) {
			return &s.vouchers[i]
		}
	}
	return nil
}

// dropSession removes a session and every refresh token issued for it.
// Must be called with mu held.
func (s *store) dropSession(id string) {
	delete(s.sessions, id)
	for tok, rt := range s.refresh {
		if rt.sessionID == id {
			delete(s.refresh, tok)
		}
	}
}
