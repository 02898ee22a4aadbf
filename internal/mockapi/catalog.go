package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultProductLimit  = 12
	defaultCategoryLimit = 20
)

func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

var productOrder = map[models.ProductSort]func(a, b models.Product) bool{
	models.SortPriceAsc:  func(a, b models.Product) bool { return a.Price.LessThan(b.Price) },
	models.SortPriceDesc: func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) },
	models.SortNameAsc:   func(a, b models.Product) bool { return a.Name < b.Name },
	models.SortNameDesc:  func(a, b models.Product) bool { return a.Name > b.Name },
	models.SortNewest:    func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) },
	models.SortOldest:    func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) },
	models.SortRating:    func(a, b models.Product) bool { return a.Rating.GreaterThan(b.Rating) },
}

// listProducts nests the pagination next to the list inside data.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	categoryID, _ := strconv.ParseInt(q.Get("categoryId"), 10, 64)
	sortBy := models.ProductSort(q.Get("sort"))
	if sortBy != "" && !sortBy.Valid() {
		invalid(w, "Invalid sort", map[string][]string{"sort": {"Unknown sort order"}})
		return
	}

	s.store.mu.Lock()
	matched := make([]models.Product, 0, len(s.store.products))
	for _, p := range s.store.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		matched = append(matched, p)
	}
	s.store.mu.Unlock()

	if less, found := productOrder[sortBy]; found {
		sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	}

	items, page := paginate(matched, queryInt(r, "page"), queryInt(r, "limit"), defaultProductLimit)
	ok(w, http.StatusOK, "Get products successfully!", map[string]any{
		"products":   items,
		"pagination": page,
	})
}

func (s *Server) productDetails(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		fail(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p := s.store.product(id)
	if p == nil {
		fail(w, http.StatusNotFound, "Product not found!")
		return
	}
	out := *p
	if c := s.store.category(p.CategoryID); c != nil {
		cat := *c
		out.Category = &cat
	}
	ok(w, http.StatusOK, "Get product successfully!", out)
}

// listCategories sends the pagination at the top level of the envelope.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

	s.store.mu.Lock()
	matched := make([]models.Category, 0, len(s.store.categories))
	for _, c := range s.store.categories {
		if search == "" || strings.Contains(strings.ToLower(c.Name), search) {
			matched = append(matched, c)
		}
	}
	s.store.mu.Unlock()

	items, page := paginate(matched, queryInt(r, "page"), queryInt(r, "limit"), defaultCategoryLimit)
	writeJSON(w, http.StatusOK, envelope{
		Success: true, Code: http.StatusOK, Message: "Get categories successfully!",
		Data: items, Pagination: &page,
	})
}

func (s *Server) categoryDetails(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		fail(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c := s.store.category(id)
	if c == nil {
		fail(w, http.StatusNotFound, "Category not found!")
		return
	}
	ok(w, http.StatusOK, "Get category successfully!", *c)
}
