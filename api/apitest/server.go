// Package apitest runs an in-process fake of the storefront API for tests.
// It mirrors the real service's routes and its observable behavior where the
// client cares: duplicate product adds merge into one line, out-of-stock
// adds are rejected with a message, orders snapshot their items, and
// payments walk the create/confirm two-phase protocol.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"

	"go-storefront/api"
	"go-storefront/models"
)

var signingKey = []byte("apitest-secret")

type plannedFailure struct {
	times   int
	status  int
	message string
}

type cartLine struct {
	id        int64
	productID string
	quantity  int
}

// Server is a scriptable fake storefront API
type Server struct {
	httpSrv *httptest.Server

	mu              sync.Mutex
	products        map[string]models.Product
	nextProductID   int
	categories      map[string]api.Category
	nextCategoryID  int
	reviews         []api.Review
	nextReviewID    int
	lines           []cartLine
	nextLineID      int64
	orders          []models.Order
	nextOrderID     int
	users           map[string]string
	counts          map[string]int
	failures        map[string]*plannedFailure
	paymentStatuses []string
}

// NewServer starts the fake API. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		products:   make(map[string]models.Product),
		categories: make(map[string]api.Category),
		nextLineID: 1,
		users:      make(map[string]string),
		counts:     make(map[string]int),
		failures:   make(map[string]*plannedFailure),
	}

	router := mux.NewRouter()
	router.Use(s.bookkeeping)

	router.HandleFunc("/users/register", s.handleRegister).Methods("POST")
	router.HandleFunc("/users/login", s.handleLogin).Methods("POST")
	router.HandleFunc("/users/me", s.requireAuth(s.handleProfile)).Methods("GET")

	router.HandleFunc("/products", s.handleListProducts).Methods("GET")
	router.HandleFunc("/products", s.requireAuth(s.handleCreateProduct)).Methods("POST")
	router.HandleFunc("/products/{id}", s.handleGetProduct).Methods("GET")
	router.HandleFunc("/products/{id}", s.requireAuth(s.handleUpdateProduct)).Methods("PUT")
	router.HandleFunc("/products/{id}", s.requireAuth(s.handleDeleteProduct)).Methods("DELETE")

	router.HandleFunc("/categories", s.handleListCategories).Methods("GET")
	router.HandleFunc("/categories", s.requireAuth(s.handleCreateCategory)).Methods("POST")
	router.HandleFunc("/categories/{id}/products", s.handleCategoryProducts).Methods("GET")
	router.HandleFunc("/categories/{id}", s.requireAuth(s.handleUpdateCategory)).Methods("PUT")
	router.HandleFunc("/categories/{id}", s.requireAuth(s.handleDeleteCategory)).Methods("DELETE")

	router.HandleFunc("/reviews/product/{id}", s.handleProductReviews).Methods("GET")
	router.HandleFunc("/reviews/user", s.requireAuth(s.handleUserReviews)).Methods("GET")
	router.HandleFunc("/reviews", s.requireAuth(s.handleCreateReview)).Methods("POST")
	router.HandleFunc("/reviews/{id}", s.requireAuth(s.handleUpdateReview)).Methods("PUT")
	router.HandleFunc("/reviews/{id}", s.requireAuth(s.handleDeleteReview)).Methods("DELETE")

	router.HandleFunc("/cart", s.requireAuth(s.handleGetCart)).Methods("GET")
	router.HandleFunc("/cart/items", s.requireAuth(s.handleAddItem)).Methods("POST")
	router.HandleFunc("/cart/items/{id}", s.requireAuth(s.handleUpdateItem)).Methods("PUT")
	router.HandleFunc("/cart/items/{id}", s.requireAuth(s.handleRemoveItem)).Methods("DELETE")
	router.HandleFunc("/cart/clear", s.requireAuth(s.handleClearCart)).Methods("DELETE")

	router.HandleFunc("/orders/create", s.requireAuth(s.handleCreateOrder)).Methods("POST")
	router.HandleFunc("/orders/user", s.requireAuth(s.handleUserOrders)).Methods("GET")
	router.HandleFunc("/orders", s.requireAuth(s.handleAllOrders)).Methods("GET")
	router.HandleFunc("/orders/{id}", s.requireAuth(s.handleGetOrder)).Methods("GET")
	router.HandleFunc("/orders/{id}/cancel", s.requireAuth(s.handleCancelOrder)).Methods("POST")
	router.HandleFunc("/orders/{id}/status", s.requireAuth(s.handleUpdateOrderStatus)).Methods("PUT")

	router.HandleFunc("/cart/payment", s.requireAuth(s.handlePayment)).Methods("POST")
	router.HandleFunc("/cart/payment/confirm", s.requireAuth(s.handlePaymentConfirm)).Methods("POST")

	router.HandleFunc("/contact", s.handleContact).Methods("POST")

	s.httpSrv = httptest.NewServer(router)
	return s
}

// URL is the base URL clients should be pointed at
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// Close shuts the fake API down
func (s *Server) Close() {
	s.httpSrv.Close()
}

// GenerateToken issues a signed session token the way the real API does
func GenerateToken(email, role string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return signed
}

// SeedProduct adds a product to the fake catalog
func (s *Server) SeedProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SeedCartLine injects a server cart line directly, even for a product the
// catalog no longer knows. Lines for unknown products come back without a
// price or product snapshot.
func (s *Server) SeedCartLine(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, cartLine{id: s.nextLineID, productID: productID, quantity: quantity})
	s.nextLineID++
}

// SeedUser registers a user so Login succeeds for it
func (s *Server) SeedUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// RequestCount reports how many requests matched the given method and mux
// route template, e.g. ("POST", "/orders/create")
func (s *Server) RequestCount(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[method+" "+pattern]
}

// TotalRequests reports how many requests the fake has served overall
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// FailNext makes the next `times` requests matching method and route
// template fail with the given status and message
func (s *Server) FailNext(method, pattern string, times, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+pattern] = &plannedFailure{times: times, status: status, message: message}
}

// ScriptPaymentStatuses queues the statuses the payment endpoints will
// answer with, in order. Unscripted payments succeed.
func (s *Server) ScriptPaymentStatuses(statuses ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentStatuses = append(s.paymentStatuses, statuses...)
}

// Orders returns a copy of every order placed against the fake
func (s *Server) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// CartSize reports how many lines the server cart currently has
func (s *Server) CartSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Server) bookkeeping(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pattern := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				pattern = tmpl
			}
		}
		key := r.Method + " " + pattern

		s.mu.Lock()
		s.counts[key]++
		if failure, ok := s.failures[key]; ok && failure.times > 0 {
			failure.times--
			status, message := failure.status, failure.message
			s.mu.Unlock()
			writeError(w, status, message)
			return
		}
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header missing")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	s.mu.Lock()
	s.users[req.Email] = req.Password
	s.mu.Unlock()
	writeJSON(w, api.AuthResponse{
		Token: GenerateToken(req.Email, "user", 24*time.Hour),
		User:  api.User{ID: "1", Name: req.Name, Email: req.Email},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	s.mu.Lock()
	password, ok := s.users[req.Email]
	s.mu.Unlock()
	if !ok || password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, api.AuthResponse{
		Token: GenerateToken(req.Email, "user", 24*time.Hour),
		User:  api.User{ID: "1", Email: req.Email},
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.User{ID: "1", Email: "shopper@example.com"})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	writeJSON(w, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	product, ok := s.products[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, product)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == "" {
		s.nextProductID++
		product.ID = fmt.Sprintf("product-%d", s.nextProductID)
	}
	s.products[product.ID] = product
	writeJSON(w, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	product.ID = id
	s.products[id] = product
	writeJSON(w, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	delete(s.products, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories := make([]api.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	writeJSON(w, categories)
}

func (s *Server) handleCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	products := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Category == id {
			products = append(products, p)
		}
	}
	writeJSON(w, products)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCategoryID++
	category := api.Category{
		ID:          fmt.Sprintf("category-%d", s.nextCategoryID),
		Name:        req.Name,
		Description: req.Description,
	}
	s.categories[category.ID] = category
	writeJSON(w, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req api.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	s.categories[id] = category
	writeJSON(w, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	delete(s.categories, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProductReviews(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]api.Review, 0)
	for _, review := range s.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	writeJSON(w, reviews)
}

func (s *Server) handleUserReviews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]api.Review, 0)
	for _, review := range s.reviews {
		if review.UserID == "1" {
			reviews = append(reviews, review)
		}
	}
	writeJSON(w, reviews)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req api.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[req.ProductID]; !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	s.nextReviewID++
	review := api.Review{
		ID:        fmt.Sprintf("review-%d", s.nextReviewID),
		UserID:    "1",
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	s.reviews = append(s.reviews, review)
	writeJSON(w, review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req api.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Rating != 0 && (req.Rating < 1 || req.Rating > 5) {
		writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, review := range s.reviews {
		if review.ID != id {
			continue
		}
		if req.Rating != 0 {
			s.reviews[i].Rating = req.Rating
		}
		if req.Comment != "" {
			s.reviews[i].Comment = req.Comment
		}
		writeJSON(w, s.reviews[i])
		return
	}
	writeError(w, http.StatusNotFound, "Review not found")
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, review := range s.reviews {
		if review.ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Review not found")
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.serverCartLocked())
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[req.ProductID]
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	held := 0
	for _, line := range s.lines {
		if line.productID == req.ProductID {
			held = line.quantity
		}
	}
	if product.Stock < held+req.Quantity {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for product: %s", product.Name))
		return
	}

	for i, line := range s.lines {
		if line.productID == req.ProductID {
			s.lines[i].quantity += req.Quantity
			writeJSON(w, s.wireItemLocked(s.lines[i]))
			return
		}
	}
	line := cartLine{id: s.nextLineID, productID: req.ProductID, quantity: req.Quantity}
	s.nextLineID++
	s.lines = append(s.lines, line)
	writeJSON(w, s.wireItemLocked(line))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, line := range s.lines {
		if line.id == id {
			s.lines[i].quantity = req.Quantity
			writeJSON(w, s.wireItemLocked(s.lines[i]))
			return
		}
	}
	writeError(w, http.StatusNotFound, "Cart item not found")
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.id != id {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req api.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	total := 0.0
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}
	order := models.Order{
		ID:              fmt.Sprintf("order-%d", s.nextOrderID),
		Items:           req.Items,
		Status:          "Pending",
		Total:           total,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       time.Now(),
	}
	s.orders = append(s.orders, order)
	writeJSON(w, order)
}

func (s *Server) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Orders())
}

func (s *Server) handleAllOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Orders())
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			writeJSON(w, order)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Order not found")
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, order := range s.orders {
		if order.ID != id {
			continue
		}
		if order.Status != "Pending" {
			writeError(w, http.StatusBadRequest, "Order can no longer be cancelled")
			return
		}
		s.orders[i].Status = "Cancelled"
		writeJSON(w, s.orders[i])
		return
	}
	writeError(w, http.StatusNotFound, "Order not found")
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, order := range s.orders {
		if order.ID == id {
			s.orders[i].Status = req.Status
			writeJSON(w, s.orders[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Order not found")
}

func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethodID string `json:"paymentMethodId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PaymentMethodID == "" {
		writeError(w, http.StatusBadRequest, "Invalid payment method")
		return
	}
	writeJSON(w, api.PaymentIntentResponse{
		ClientSecret: "cs_test",
		Status:       s.nextPaymentStatus(),
	})
}

func (s *Server) handlePaymentConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientSecret == "" {
		writeError(w, http.StatusBadRequest, "Invalid client secret")
		return
	}
	writeJSON(w, api.PaymentIntentResponse{
		ClientSecret: req.ClientSecret,
		Status:       s.nextPaymentStatus(),
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var submission api.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	submission.ID = "contact-1"
	submission.Status = "pending"
	writeJSON(w, submission)
}

func (s *Server) nextPaymentStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.paymentStatuses) == 0 {
		return "succeeded"
	}
	status := s.paymentStatuses[0]
	s.paymentStatuses = s.paymentStatuses[1:]
	return status
}

// serverCartLocked builds the wire cart. Callers hold s.mu.
func (s *Server) serverCartLocked() api.ServerCart {
	cart := api.ServerCart{ID: 1, UserID: 1, CartItems: []api.ServerCartItem{}}
	for _, line := range s.lines {
		item := s.wireItemLocked(line)
		cart.CartItems = append(cart.CartItems, item)
		if item.Price != nil {
			cart.TotalAmount += *item.Price * float64(item.Quantity)
		}
	}
	return cart
}

// wireItemLocked builds one wire cart item. Callers hold s.mu.
func (s *Server) wireItemLocked(line cartLine) api.ServerCartItem {
	item := api.ServerCartItem{
		ID:        line.id,
		ProductID: line.productID,
		Quantity:  line.quantity,
	}
	if product, ok := s.products[line.productID]; ok {
		price := product.Price
		item.Price = &price
		item.ProductDetails = &api.ServerProduct{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Stock:    product.Stock,
			ImageURL: product.ImageURL,
		}
	}
	return item
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
