package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanaqua/Psychovoystore/internal/cart"
	"github.com/germanaqua/Psychovoystore/internal/domain"
)

type mockCartService struct {
	carts  map[string]*domain.Cart
	addErr error
}

func newMockCartService() *mockCartService {
	return &mockCartService{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartService) GetCart(_ context.Context, ownerID string) *domain.Cart {
	if c, ok := m.carts[ownerID]; ok {
		return c
	}
	return domain.NewCart(ownerID)
}

func (m *mockCartService) AddItem(ctx context.Context, ownerID string, product domain.Product) (*domain.Cart, error) {
	c := m.GetCart(ctx, ownerID)
	if m.addErr != nil {
		return c, m.addErr
	}
	if c.Contains(product.ID) {
		return c, cart.ErrDuplicateItem
	}
	c.Items = append(c.Items, domain.NewCartItem(product))
	m.carts[ownerID] = c
	return c, nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, ownerID string, productID int64) *domain.Cart {
	c := m.GetCart(ctx, ownerID)
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	m.carts[ownerID] = c
	return c
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, ownerID string, productID int64, quantity int) *domain.Cart {
	if quantity == 0 {
		return m.RemoveItem(ctx, ownerID, productID)
	}
	return m.GetCart(ctx, ownerID)
}

func (m *mockCartService) Clear(_ context.Context, ownerID string) *domain.Cart {
	delete(m.carts, ownerID)
	return domain.NewCart(ownerID)
}

type mockProducts struct {
	products map[int64]domain.Product
}

func (m mockProducts) Get(id int64) (domain.Product, bool) {
	p, ok := m.products[id]
	return p, ok
}

func sessionRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(context.WithValue(req.Context(), "owner_id", "session-1"))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testCartHandler() (*CartHandler, *mockCartService) {
	service := newMockCartService()
	products := mockProducts{products: map[int64]domain.Product{
		1: {ID: 1, Name: "#42 Widget", Price: 10.00},
		2: {ID: 2, Name: "#7 Gadget", Price: 20.00},
	}}
	return NewCartHandler(service, products, 5*time.Second), service
}

func TestAddItem_Created(t *testing.T) {
	handler, _ := testCartHandler()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", body))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp CartResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, int64(1), resp.Cart.Items[0].ID)
	assert.Equal(t, 1, resp.Cart.Items[0].Quantity)
	assert.Equal(t, 10.00, resp.Totals.Subtotal)
}

func TestAddItem_DuplicateConflict(t *testing.T) {
	handler, _ := testCartHandler()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", body))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", body))

	require.Equal(t, http.StatusConflict, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "already_exists", resp.Code)
	assert.Equal(t, "This stock is already in your cart!", resp.Error)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	handler, _ := testCartHandler()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 999})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", body))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddItem_InvalidBody(t *testing.T) {
	handler, _ := testCartHandler()

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", []byte("{not json")))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_MissingSession(t *testing.T) {
	handler, _ := testCartHandler()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRemoveItem_AbsentStillReportsSuccess(t *testing.T) {
	handler, _ := testCartHandler()

	req := withURLParam(sessionRequest("DELETE", "/api/v1/cart/items/999", nil), "product_id", "999")
	recorder := httptest.NewRecorder()
	handler.RemoveItem(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateQuantity_ZeroRemovesEntry(t *testing.T) {
	handler, service := testCartHandler()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", body))
	require.Equal(t, http.StatusCreated, recorder.Code)

	body, _ = json.Marshal(UpdateQuantityRequestDTO{Quantity: 0})
	req := withURLParam(sessionRequest("PUT", "/api/v1/cart/items/1", body), "product_id", "1")
	recorder = httptest.NewRecorder()
	handler.UpdateQuantity(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, service.GetCart(context.Background(), "session-1").Items)
}

func TestUpdateQuantity_NonZeroLeavesCartUnchanged(t *testing.T) {
	handler, service := testCartHandler()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", body))
	require.Equal(t, http.StatusCreated, recorder.Code)

	body, _ = json.Marshal(UpdateQuantityRequestDTO{Quantity: 5})
	req := withURLParam(sessionRequest("PUT", "/api/v1/cart/items/1", body), "product_id", "1")
	recorder = httptest.NewRecorder()
	handler.UpdateQuantity(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	c := service.GetCart(context.Background(), "session-1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestClearCart(t *testing.T) {
	handler, service := testCartHandler()

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", body))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ClearCart(recorder, sessionRequest("DELETE", "/api/v1/cart", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, service.GetCart(context.Background(), "session-1").Items)

	var resp CartResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Totals.ItemCount)
}

func TestGetCart_TotalsIncludeDiscount(t *testing.T) {
	handler, _ := testCartHandler()

	for _, id := range []int64{1, 2} {
		payload, _ := json.Marshal(AddItemRequestDTO{ProductID: id})
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, sessionRequest("POST", "/api/v1/cart/items", payload))
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, sessionRequest("GET", "/api/v1/cart", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp CartResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, 30.00, resp.Totals.Subtotal)
	assert.InDelta(t, 6.00, resp.Totals.Discount, 1e-9)
	assert.InDelta(t, 24.00, resp.Totals.Total, 1e-9)
}
