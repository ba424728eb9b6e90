package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rchoppari/EcomerceProj/internal/models"
	"github.com/rchoppari/EcomerceProj/internal/repositories"
	"github.com/rchoppari/EcomerceProj/internal/server"
	"github.com/rchoppari/EcomerceProj/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

type testApp struct {
	app      *fiber.App
	tokens   *services.TokenService
	products map[string]models.Product
}

// setupApp wires the full HTTP stack over a private in-memory SQLite database.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := repositories.OpenDatabase("sqlite", dsn)
	require.NoError(t, err)

	accountRepo := repositories.NewGORMAccountRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	tokens := services.NewTokenService(testJWTSecret, time.Hour)
	carts := services.NewCartService(cartRepo, productRepo)
	orders := services.NewOrderService(repositories.NewGORMUnitOfWork(db), orderRepo, productRepo, carts, nil, false)

	app := server.New(server.Services{
		Auth:     services.NewAuthService(accountRepo, tokens, services.BcryptPolicy{Cost: bcrypt.MinCost}),
		Tokens:   tokens,
		Products: services.NewProductService(productRepo),
		Carts:    carts,
		Orders:   orders,
	})

	return &testApp{
		app:      app,
		tokens:   tokens,
		products: seedProductsForTest(t, productRepo),
	}
}

// seedProductsForTest populates the product repository and indexes it by name.
func seedProductsForTest(t *testing.T, repo repositories.ProductRepository) map[string]models.Product {
	t.Helper()
	products := []models.Product{
		{Name: "Phone Case", Price: 10, Rating: 4.0, Category: "Accessories", Stock: 10},
		{Name: "Smartphone", Price: 500, Rating: 4.6, Category: "Electronics", Stock: 5},
		{Name: "Desk Lamp", Price: 35, Rating: 3.9, Category: "Home", Stock: 20},
	}
	byName := make(map[string]models.Product, len(products))
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
		byName[products[i].Name] = products[i]
	}
	return byName
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// request sends a JSON request and decodes the JSON response into out when non-nil.
func (a *testApp) request(t *testing.T, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testApp) register(t *testing.T, email string) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	status := a.request(t, http.MethodPost, "/api/authentication/create-account", "", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "password123",
	}, &body)
	require.Equal(t, http.StatusCreated, status)
	return body
}

func TestAuthRegisterAndLogin(t *testing.T) {
	a := setupApp(t)

	created := a.register(t, "test@example.com")
	assert.Equal(t, "Account created successfully", created["message"])
	assert.Equal(t, "test@example.com", created["email"])
	assert.Equal(t, "Test", created["firstName"])
	assert.NotEmpty(t, created["userId"])
	assert.True(t, a.tokens.Validate(created["token"].(string)))

	var dup map[string]interface{}
	status := a.request(t, http.MethodPost, "/api/authentication/create-account", "", map[string]string{
		"firstName": "Other",
		"lastName":  "User",
		"email":     "test@example.com",
		"password":  "different",
	}, &dup)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Account already exists with this email", dup["message"])

	var login map[string]interface{}
	status = a.request(t, http.MethodPost, "/api/authentication/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, &login)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login successful", login["message"])
	assert.Equal(t, created["userId"], login["userId"])

	userID, err := a.tokens.UserID(login["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, created["userId"], userID)
}

func TestAuthLoginFailures(t *testing.T) {
	a := setupApp(t)
	a.register(t, "known@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"unknown account", "nobody@example.com", "password123", "Account does not exist"},
		{"wrong password", "known@example.com", "wrong", "Invalid email or password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]interface{}
			status := a.request(t, http.MethodPost, "/api/authentication/login", "", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			}, &body)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.message, body["message"])
			assert.Nil(t, body["token"])
		})
	}
}

func TestAuthValidation(t *testing.T) {
	a := setupApp(t)

	var body map[string]interface{}
	status := a.request(t, http.MethodPost, "/api/authentication/create-account", "", map[string]string{
		"firstName": "",
		"lastName":  "User",
		"email":     "not-an-email",
		"password":  "x",
	}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["message"])
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "CreateAccountRequest.firstName")
	assert.Contains(t, errs, "CreateAccountRequest.email")

	req := httptest.NewRequest(http.MethodPost, "/api/authentication/login", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAccountRejectsUnusablePasswordsAndNames(t *testing.T) {
	a := setupApp(t)

	tests := []struct {
		name     string
		first    string
		password string
		message  string
	}{
		{"password over 72 characters", "Test", strings.Repeat("a", 80), "Validation failed"},
		{"password over 72 bytes", "Test", strings.Repeat("é", 40), "Password must be at most 72 bytes"},
		{"blank first name", "   ", "password123", "Validation failed"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]interface{}
			status := a.request(t, http.MethodPost, "/api/authentication/create-account", "", map[string]string{
				"firstName": tt.first,
				"lastName":  "User",
				"email":     fmt.Sprintf("user%d@example.com", i),
				"password":  tt.password,
			}, &body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, body["message"])
		})
	}

	created := a.register(t, "user0@example.com")
	assert.NotEmpty(t, created["token"])
}

func TestListProducts(t *testing.T) {
	a := setupApp(t)

	names := func(products []models.Product) []string {
		out := make([]string, len(products))
		for i, p := range products {
			out[i] = p.Name
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"default sort by name", "", []string{"Desk Lamp", "Phone Case", "Smartphone"}},
		{"search name and category", "?search=PHONE", []string{"Phone Case", "Smartphone"}},
		{"search with price sort desc", "?search=phone&sortBy=price&order=desc", []string{"Smartphone", "Phone Case"}},
		{"full range filter", "?minPrice=20&maxPrice=600&minRating=4&maxRating=5", []string{"Smartphone"}},
		{"partial range is ignored", "?minPrice=20", []string{"Desk Lamp", "Phone Case", "Smartphone"}},
		{"malformed bound is ignored", "?minPrice=abc&maxPrice=600&minRating=0&maxRating=5&sortBy=rating", []string{"Desk Lamp", "Phone Case", "Smartphone"}},
		{"sort by rating desc", "?sortBy=rating&order=desc", []string{"Smartphone", "Phone Case", "Desk Lamp"}},
		{"no match", "?search=tractor", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var products []models.Product
			status := a.request(t, http.MethodGet, "/api/products"+tt.query, "", nil, &products)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, names(products))
		})
	}
}

func TestGetProductByID(t *testing.T) {
	a := setupApp(t)
	lamp := a.products["Desk Lamp"]

	var product models.Product
	status := a.request(t, http.MethodGet, "/api/products/"+lamp.ID, "", nil, &product)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, lamp.Name, product.Name)
	assert.Equal(t, lamp.Price, product.Price)

	var missing map[string]interface{}
	status = a.request(t, http.MethodGet, "/api/products/does-not-exist", "", nil, &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", missing["message"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := setupApp(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/cart"},
		{http.MethodDelete, "/api/cart/some-id"},
		{http.MethodPost, "/api/order"},
		{http.MethodGet, "/api/order/ordered-items"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			var body map[string]interface{}
			status := a.request(t, r.method, r.path, "", nil, &body)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "Invalid or missing token", body["message"])
		})
	}

	var body map[string]interface{}
	status := a.request(t, http.MethodGet, "/api/cart", "not.a.token", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["message"])
}

type cartResponse struct {
	Items []models.CartItemView `json:"items"`
	Total float64               `json:"total"`
}

func TestCartFlow(t *testing.T) {
	a := setupApp(t)
	token := a.register(t, "cart@example.com")["token"].(string)
	phoneCase := a.products["Phone Case"]
	lamp := a.products["Desk Lamp"]

	var empty cartResponse
	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/api/cart", token, nil, &empty))
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0.0, empty.Total)

	var added map[string]interface{}
	status := a.request(t, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": phoneCase.ID,
		"quantity":  2,
	}, &added)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, added["success"])
	assert.Equal(t, "Product added to cart", added["message"])
	firstCartID := added["cartId"]

	status = a.request(t, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": phoneCase.ID,
		"quantity":  3,
	}, &added)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, firstCartID, added["cartId"])

	status = a.request(t, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": lamp.ID,
		"quantity":  1,
	}, &added)
	require.Equal(t, http.StatusOK, status)
	lampCartID := added["cartId"].(string)

	var cart cartResponse
	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/api/cart", token, nil, &cart))
	require.Len(t, cart.Items, 2)
	assert.InDelta(t, 5*10.0+35.0, cart.Total, 1e-9)

	var removed map[string]interface{}
	status = a.request(t, http.MethodDelete, "/api/cart/"+lampCartID, token, nil, &removed)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Product removed from cart", removed["message"])

	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/api/cart", token, nil, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "Phone Case", cart.Items[0].ProductName)

	other := a.register(t, "other@example.com")["token"].(string)
	var otherCart cartResponse
	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/api/cart", other, nil, &otherCart))
	assert.Empty(t, otherCart.Items)
}

func TestAddToCartFailures(t *testing.T) {
	a := setupApp(t)
	token := a.register(t, "cart@example.com")["token"].(string)

	var body map[string]interface{}
	status := a.request(t, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": "missing",
		"quantity":  1,
	}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Product not found", body["message"])

	status = a.request(t, http.MethodPost, "/api/cart", token, map[string]interface{}{
		"productId": a.products["Desk Lamp"].ID,
		"quantity":  0,
	}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["message"])
}

func validOrder(items []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"items":           items,
		"deliveryAddress": "221B Baker Street",
		"cardNumber":      "4111111111111234",
		"cardHolderName":  "Test User",
		"expiryDate":      "12/30",
		"cvv":             "123",
	}
}

func TestPlaceOrderAndListOrders(t *testing.T) {
	a := setupApp(t)
	token := a.register(t, "buyer@example.com")["token"].(string)
	phoneCase := a.products["Phone Case"]
	lamp := a.products["Desk Lamp"]

	a.request(t, http.MethodPost, "/api/cart", token, map[string]interface{}{"productId": phoneCase.ID, "quantity": 2}, nil)

	var receipt models.OrderReceipt
	status := a.request(t, http.MethodPost, "/api/order", token, validOrder([]map[string]interface{}{
		{"productId": phoneCase.ID, "quantity": 2, "price": 10.0},
		{"productId": lamp.ID, "quantity": 1, "price": 5.0},
	}), &receipt)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, receipt.OrderID)
	assert.InDelta(t, 25.0, receipt.TotalPrice, 1e-9)
	assert.InDelta(t, 2.0, receipt.TaxAmount, 1e-9)
	assert.InDelta(t, 27.0, receipt.GrandTotal, 1e-9)
	assert.Equal(t, 7*24*time.Hour, receipt.ExpectedDeliveryDate.Sub(receipt.OrderDate))
	assert.Contains(t, receipt.Message, receipt.ExpectedDeliveryDate.Format("2006-01-02"))

	var cart cartResponse
	a.request(t, http.MethodGet, "/api/cart", token, nil, &cart)
	assert.Empty(t, cart.Items)

	var history struct {
		Orders []models.Order `json:"orders"`
		Count  int            `json:"count"`
	}
	status = a.request(t, http.MethodGet, "/api/order/ordered-items", token, nil, &history)
	assert.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, history.Count)
	assert.Equal(t, receipt.OrderID, history.Orders[0].ID)
	assert.Equal(t, "1234", history.Orders[0].CardLastFour)
	assert.Len(t, history.Orders[0].Items, 2)

	other := a.register(t, "other@example.com")["token"].(string)
	status = a.request(t, http.MethodGet, "/api/order/ordered-items", other, nil, &history)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, history.Count)
	assert.NotNil(t, history.Orders)
}

func TestPlaceOrderFailures(t *testing.T) {
	a := setupApp(t)
	token := a.register(t, "buyer@example.com")["token"].(string)
	item := []map[string]interface{}{{"productId": a.products["Desk Lamp"].ID, "quantity": 1, "price": 35.0}}

	shortCard := validOrder(item)
	shortCard["cardNumber"] = "123"

	missingAddress := validOrder(item)
	delete(missingAddress, "deliveryAddress")

	blankField := func(field, value string) map[string]interface{} {
		body := validOrder(item)
		body[field] = value
		return body
	}

	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{"empty items", validOrder([]map[string]interface{}{}), "Cart items are required"},
		{"short card number", shortCard, "Card number must have at least 4 characters"},
		{"missing address", missingAddress, "Validation failed"},
		{"blank address", blankField("deliveryAddress", "   "), "Validation failed"},
		{"blank card holder", blankField("cardHolderName", "\t"), "Validation failed"},
		{"blank expiry", blankField("expiryDate", " "), "Validation failed"},
		{"blank cvv", blankField("cvv", " "), "Validation failed"},
		{"blank card number", blankField("cardNumber", "    "), "Validation failed"},
		{"zero quantity", validOrder([]map[string]interface{}{{"productId": "p", "quantity": 0, "price": 1.0}}), "Validation failed"},
		{"negative price", validOrder([]map[string]interface{}{{"productId": "p", "quantity": 1, "price": -1.0}}), "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]interface{}
			status := a.request(t, http.MethodPost, "/api/order", token, tt.body, &body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, body["message"])
		})
	}

	var history struct {
		Count int `json:"count"`
	}
	assert.Equal(t, http.StatusOK, a.request(t, http.MethodGet, "/api/order/ordered-items", token, nil, &history))
	assert.Equal(t, 0, history.Count)
}

func TestTaxRateIsPublic(t *testing.T) {
	a := setupApp(t)

	var body map[string]interface{}
	status := a.request(t, http.MethodGet, "/api/order/tax-on-product/India", "", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "India", body["country"])
	assert.InDelta(t, 0.08, body["taxRate"], 1e-9)
	assert.InDelta(t, 8.0, body["taxPercentage"], 1e-9)
}

func TestHealth(t *testing.T) {
	a := setupApp(t)

	var body map[string]interface{}
	status := a.request(t, http.MethodGet, "/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "none", body["broker"])
}

func TestUnknownRouteUsesMessageShape(t *testing.T) {
	a := setupApp(t)

	var body map[string]interface{}
	status := a.request(t, http.MethodGet, "/api/nope", "", nil, &body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["message"])
}
