package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jfinfosena/25adso-pap/domain"
	"github.com/jfinfosena/25adso-pap/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserRepo struct {
	users     map[uint]repository.User
	createErr error
}

func (f *fakeUserRepo) Create(_ context.Context, user *repository.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = 1
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (repository.User, error) {
	user, ok := f.users[id]
	if !ok {
		return repository.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) List(_ context.Context, limit, offset int) ([]repository.User, error) {
	var res []repository.User
	for _, user := range f.users {
		res = append(res, user)
	}
	return res, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *repository.User) error {
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint]repository.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *repository.Category) error {
	category.ID = 1
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uint) (repository.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return repository.Category{}, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, limit, offset int) ([]repository.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *repository.Category) error {
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	return nil
}

type fakeItemRepo struct {
	items map[uint]repository.Item
}

func (f *fakeItemRepo) Create(_ context.Context, item *repository.Item) error {
	item.ID = 1
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id uint) (repository.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return repository.Item{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) List(_ context.Context, query repository.ItemQuery) ([]repository.Item, error) {
	var res []repository.Item
	for _, item := range f.items {
		if query.InStock && item.Stock == 0 {
			continue
		}
		res = append(res, item)
	}
	return res, nil
}

func (f *fakeItemRepo) ListByCategory(_ context.Context, categoryID uint) ([]repository.Item, error) {
	var res []repository.Item
	for _, item := range f.items {
		if item.CategoryID == categoryID {
			res = append(res, item)
		}
	}
	return res, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *repository.Item) error {
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id uint) error {
	return nil
}

type fakeLoanService struct {
	checkoutErr error
	returnErr   error
	cancelErr   error
	loan        repository.Loan
}

func (f *fakeLoanService) Checkout(_ context.Context, req domain.CreateLoanRequest) (repository.Loan, error) {
	if f.checkoutErr != nil {
		return repository.Loan{}, f.checkoutErr
	}
	return repository.Loan{
		Reference: "ref-123",
		UserID:    req.UserID,
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		Status:    repository.LoanActive,
		DueAt:     time.Now().Add(24 * time.Hour),
	}, nil
}

func (f *fakeLoanService) Return(_ context.Context, id uint) (repository.Loan, error) {
	if f.returnErr != nil {
		return repository.Loan{}, f.returnErr
	}
	return f.loan, nil
}

func (f *fakeLoanService) Cancel(_ context.Context, id uint) (repository.Loan, error) {
	if f.cancelErr != nil {
		return repository.Loan{}, f.cancelErr
	}
	return f.loan, nil
}

func (f *fakeLoanService) Get(_ context.Context, id uint) (repository.Loan, error) {
	return f.loan, nil
}

func (f *fakeLoanService) List(_ context.Context, query repository.LoanQuery) ([]repository.Loan, error) {
	return []repository.Loan{f.loan}, nil
}

func (f *fakeLoanService) MarkOverdue(_ context.Context, now time.Time) (int, error) {
	return 0, nil
}

type testEnv struct {
	router *gin.Engine
	users  *fakeUserRepo
	items  *fakeItemRepo
	loans  *fakeLoanService
}

func newTestEnv() *testEnv {
	users := &fakeUserRepo{users: map[uint]repository.User{}}
	categories := &fakeCategoryRepo{categories: map[uint]repository.Category{}}
	items := &fakeItemRepo{items: map[uint]repository.Item{}}
	loans := &fakeLoanService{}
	router := NewRouter(Deps{
		Users:      users,
		Categories: categories,
		Items:      items,
		Loans:      loans,
	})
	return &testEnv{
		router: router,
		users:  users,
		items:  items,
		loans:  loans,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodPost, "/users", gin.H{
		"name":  "Ana",
		"email": "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var res domain.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, uint(1), res.ID)
	assert.Equal(t, "Ana", res.Name)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodPost, "/users", gin.H{
		"name":  "Ana",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation failed")
}

func TestCreateUser_MissingBody(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodPost, "/users", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.users.createErr = &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	rec := env.do(t, http.MethodPost, "/users", gin.H{
		"name":  "Ana",
		"email": "ana@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "duplicate")
}

func TestGetUser_NotFound(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/users/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUser_BadID(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/users/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv()
	env.users.users[4] = repository.User{Name: "Ana"}
	rec := env.do(t, http.MethodDelete, "/users/4", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetItem(t *testing.T) {
	env := newTestEnv()
	item := repository.Item{SKU: "SKU-1", Name: "Taladro", PriceCents: 15000, Stock: 4, CategoryID: 2}
	item.ID = 8
	env.items.items[8] = item

	rec := env.do(t, http.MethodGet, "/items/8", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "SKU-1", res.SKU)
	assert.Equal(t, uint(4), res.Stock)
}

func TestCheckoutLoan(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodPost, "/loans", gin.H{
		"user_id":  1,
		"item_id":  8,
		"quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var res domain.LoanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "ref-123", res.Reference)
	assert.Equal(t, "active", res.Status)
}

func TestCheckoutLoan_QuantityOutOfRange(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodPost, "/loans", gin.H{
		"user_id":  1,
		"item_id":  8,
		"quantity": 99,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckoutLoan_InsufficientStock(t *testing.T) {
	env := newTestEnv()
	env.loans.checkoutErr = repository.ErrInsufficientStock
	rec := env.do(t, http.MethodPost, "/loans", gin.H{
		"user_id":  1,
		"item_id":  8,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelLoan_InvalidTransition(t *testing.T) {
	env := newTestEnv()
	env.loans.cancelErr = repository.ErrInvalidTransition
	rec := env.do(t, http.MethodPost, "/loans/7/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListLoans_UnknownStatus(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/loans?status=misplaced", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListLoans_ByStatus(t *testing.T) {
	env := newTestEnv()
	env.loans.loan = repository.Loan{Reference: "ref-9", Status: repository.LoanOverdue}
	rec := env.do(t, http.MethodGet, "/loans?status=overdue", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res []domain.LoanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.Equal(t, "overdue", res[0].Status)
}

func TestCategoryItems_CategoryNotFound(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/categories/3/items", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv()
	req := httptest.NewRequest(http.MethodOptions, "/items", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
