package mockapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	list := append([]models.ShippingAddress{}, s.store.addresses[userID(r)]...)
	ok(w, http.StatusOK, "Get shipping addresses successfully!", list)
}

func requireFields(values map[string]string) map[string][]string {
	fields := map[string][]string{}
	for name, v := range values {
		if strings.TrimSpace(v) == "" {
			fields[name] = []string{name + " is required"}
		}
	}
	return fields
}

func (s *Server) createAddress(w http.ResponseWriter, r *http.Request) {
	var req models.CreateShippingAddressPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if fields := requireFields(map[string]string{
		"fullName": req.FullName, "phone": req.Phone, "address": req.Address,
		"city": req.City, "province": req.Province,
	}); len(fields) > 0 {
		invalid(w, "Validation failed", fields)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := userID(r)
	list := s.store.addresses[uid]
	if len(list) >= models.MaxShippingAddresses {
		fail(w, http.StatusBadRequest, "You can save at most 10 shipping addresses!")
		return
	}

	active := true
	a := models.ShippingAddress{
		ID: s.store.id(), UserID: uid,
		FullName: req.FullName, Phone: req.Phone, Address: req.Address,
		City: req.City, Province: req.Province,
		IsDefault: req.IsDefault || len(list) == 0,
		IsActive:  &active,
		CreatedAt: s.now(),
	}
	if req.PostalCode != "" {
		pc := req.PostalCode
		a.PostalCode = &pc
	}
	if a.IsDefault {
		clearDefaults(list)
	}
	s.store.addresses[uid] = append([]models.ShippingAddress{a}, list...)
	ok(w, http.StatusCreated, "Create shipping address successfully!", a)
}

func clearDefaults(list []models.ShippingAddress) {
	for i := range list {
		list[i].IsDefault = false
	}
}

// findAddress must be called with mu held.
func (s *store) findAddress(uid, id int64) (int, []models.ShippingAddress) {
	list := s.addresses[uid]
	for i := range list {
		if list[i].ID == id {
			return i, list
		}
	}
	return -1, list
}

func (s *Server) updateAddress(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		fail(w, http.StatusBadRequest, "Invalid address id")
		return
	}
	var req models.UpdateShippingAddressPayload
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i, list := s.store.findAddress(userID(r), id)
	if i < 0 {
		fail(w, http.StatusNotFound, "Shipping address not found!")
		return
	}
	a := &list[i]
	set := func(dst *string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = *v
		}
	}
	set(&a.FullName, req.FullName)
	set(&a.Phone, req.Phone)
	set(&a.Address, req.Address)
	set(&a.City, req.City)
	set(&a.Province, req.Province)
	if req.PostalCode != nil {
		pc := *req.PostalCode
		a.PostalCode = &pc
	}
	if req.IsDefault != nil && *req.IsDefault {
		clearDefaults(list)
		a.IsDefault = true
	}
	ok(w, http.StatusOK, "Update shipping address successfully!", *a)
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		fail(w, http.StatusBadRequest, "Invalid address id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := userID(r)
	i, list := s.store.findAddress(uid, id)
	if i < 0 {
		fail(w, http.StatusNotFound, "Shipping address not found!")
		return
	}
	wasDefault := list[i].IsDefault
	list = append(list[:i], list[i+1:]...)
	if wasDefault && len(list) > 0 {
		list[0].IsDefault = true
	}
	s.store.addresses[uid] = list
	ok(w, http.StatusOK, "Delete shipping address successfully!", nil)
}

func (s *Server) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		fail(w, http.StatusBadRequest, "Invalid address id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i, list := s.store.findAddress(userID(r), id)
	if i < 0 {
		fail(w, http.StatusNotFound, "Shipping address not found!")
		return
	}
	clearDefaults(list)
	list[i].IsDefault = true
	ok(w, http.StatusOK, "Set default shipping address successfully!", list[i])
}
