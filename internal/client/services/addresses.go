package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// AddressService manages saved shipping addresses and keeps an in-memory
// copy of the list in step with every change:
//   - a new or updated default address clears the flag on all others;
//   - a created address goes to the front of the list;
//   - an update replaces the entry with the same id.
type AddressService interface {
	List(ctx context.Context) ([]models.ShippingAddress, error)
	Cached() []models.ShippingAddress
	Find(ctx context.Context, id int64) (*models.ShippingAddress, error)
	Default(ctx context.Context) (*models.ShippingAddress, error)
	Create(ctx context.Context, payload models.CreateShippingAddressPayload) (models.ShippingAddress, error)
	Update(ctx context.Context, id int64, payload models.UpdateShippingAddressPayload) (models.ShippingAddress, error)
	Delete(ctx context.Context, id int64) error
	SetDefault(ctx context.Context, id int64) (models.ShippingAddress, error)
	Reset()
}

type addressService struct {
	client client.AddressAPI

	mu     sync.Mutex
	list   []models.ShippingAddress
	loaded bool
}

func NewAddressService(c client.AddressAPI) AddressService {
	return &addressService{client: c}
}

func (s *addressService) List(ctx context.Context) ([]models.ShippingAddress, error) {
	list, err := s.client.Addresses(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.list = append([]models.ShippingAddress(nil), list...)
	s.loaded = true
	s.mu.Unlock()
	return list, nil
}

func (s *addressService) Cached() []models.ShippingAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ShippingAddress(nil), s.list...)
}

func (s *addressService) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	_, err := s.List(ctx)
	return err
}

func (s *addressService) Find(ctx context.Context, id int64) (*models.ShippingAddress, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == id {
			a := s.list[i]
			return &a, nil
		}
	}
	return nil, nil
}

// Default returns the default address, or the first one when none is
// flagged. It returns nil when there are no addresses.
func (s *addressService) Default(ctx context.Context) (*models.ShippingAddress, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.list) == 0 {
		return nil, nil
	}
	for i := range s.list {
		if s.list[i].IsDefault {
			a := s.list[i]
			return &a, nil
		}
	}
	a := s.list[0]
	return &a, nil
}

func (s *addressService) Create(ctx context.Context, payload models.CreateShippingAddressPayload) (models.ShippingAddress, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return models.ShippingAddress{}, err
	}
	s.mu.Lock()
	n := len(s.list)
	s.mu.Unlock()
	if n >= models.MaxShippingAddresses {
		return models.ShippingAddress{}, client.ErrAddressLimitReached
	}

	a, err := s.client.CreateAddress(ctx, payload)
	if err != nil {
		return models.ShippingAddress{}, fmt.Errorf("create address error: %w", err)
	}

	s.mu.Lock()
	if a.IsDefault {
		clearDefault(s.list)
	}
	s.list = append([]models.ShippingAddress{a}, s.list...)
	s.mu.Unlock()
	return a, nil
}

func (s *addressService) Update(ctx context.Context, id int64, payload models.UpdateShippingAddressPayload) (models.ShippingAddress, error) {
	a, err := s.client.UpdateAddress(ctx, id, payload)
	if err != nil {
		return models.ShippingAddress{}, fmt.Errorf("update address error: %w", err)
	}
	s.mu.Lock()
	s.replace(id, a)
	s.mu.Unlock()
	return a, nil
}

func (s *addressService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteAddress(ctx, id); err != nil {
		return fmt.Errorf("delete address error: %w", err)
	}
	s.mu.Lock()
	out := s.list[:0]
	for _, a := range s.list {
		if a.ID != id {
			out = append(out, a)
		}
	}
	s.list = out
	s.mu.Unlock()
	return nil
}

func (s *addressService) SetDefault(ctx context.Context, id int64) (models.ShippingAddress, error) {
	a, err := s.client.SetDefaultAddress(ctx, id)
	if err != nil {
		return models.ShippingAddress{}, fmt.Errorf("set default address error: %w", err)
	}
	a.IsDefault = true
	s.mu.Lock()
	s.replace(id, a)
	s.mu.Unlock()
	return a, nil
}

// Reset forgets the cached list, e.g. when the user signs out.
func (s *addressService) Reset() {
	s.mu.Lock()
	s.list = nil
	s.loaded = false
	s.mu.Unlock()
}

// replace must be called with mu held.
func (s *addressService) replace(id int64, a models.ShippingAddress) {
	if a.IsDefault {
		clearDefault(s.list)
	}
	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i] = a
			return
		}
	}
	s.list = append([]models.ShippingAddress{a}, s.list...)
}

func clearDefault(list []models.ShippingAddress) {
	for i := range list {
		list[i].IsDefault = false
	}
}
