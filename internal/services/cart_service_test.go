package services_test

import (
	"testing"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListActive(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetActiveBySlug(slug string) (*models.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetActiveByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func TestCartService_AddAccumulates(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	cartService := services.NewCartService(cartRepo, productRepo)

	product := &models.Product{ID: "p1", IsActive: true}
	cart := &models.Cart{ID: "cart-1", UserID: "user-1"}

	// First add: no existing line, a new one is created with quantity 2.
	productRepo.On("GetActiveByID", "p1").Return(product, nil).Once()
	cartRepo.On("GetOrCreateByUser", "user-1").Return(cart, nil).Twice()
	cartRepo.On("GetItemByProduct", "cart-1", "p1").Return(nil, notFound("line")).Once()
	cartRepo.On("CreateItem", mock.MatchedBy(func(item *models.CartItem) bool {
		return item.CartID == "cart-1" && item.ProductID == "p1" && item.Quantity == 2
	})).Return(nil).Once()

	_, err := cartService.AddToCart("user-1", "p1", 2)
	assert.NoError(t, err)

	// Second add: the existing line's quantity is incremented, 2+3=5.
	productRepo.On("GetActiveByID", "p1").Return(product, nil).Once()
	cartRepo.On("GetOrCreateByUser", "user-1").Return(cart, nil).Twice()
	cartRepo.On("GetItemByProduct", "cart-1", "p1").
		Return(&models.CartItem{ID: "l1", CartID: "cart-1", ProductID: "p1", Quantity: 2}, nil).Once()
	cartRepo.On("UpdateItem", mock.MatchedBy(func(item *models.CartItem) bool {
		return item.ID == "l1" && item.Quantity == 5
	})).Return(nil).Once()

	_, err = cartService.AddToCart("user-1", "p1", 3)
	assert.NoError(t, err)

	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCartService_AddInactiveProduct(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	cartService := services.NewCartService(cartRepo, productRepo)

	productRepo.On("GetActiveByID", "gone").Return(nil, notFound("product")).Once()

	_, err := cartService.AddToCart("user-1", "gone", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	cartRepo.AssertNotCalled(t, "GetOrCreateByUser", mock.Anything)
}

func TestCartService_UpdateOverwrites(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	cartService := services.NewCartService(cartRepo, productRepo)

	cart := &models.Cart{ID: "cart-1", UserID: "user-1"}
	cartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	cartRepo.On("GetItem", "cart-1", "l1").
		Return(&models.CartItem{ID: "l1", CartID: "cart-1", Quantity: 5}, nil).Once()
	cartRepo.On("UpdateItem", mock.MatchedBy(func(item *models.CartItem) bool {
		// Overwrite semantics: exactly 3, no accumulation.
		return item.ID == "l1" && item.Quantity == 3
	})).Return(nil).Once()

	item, err := cartService.UpdateItem("user-1", "l1", 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	cartRepo.AssertExpectations(t)
}

func TestCartService_QuantityValidation(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	cartService := services.NewCartService(cartRepo, productRepo)

	var fieldErrs services.FieldErrors
	_, err := cartService.AddToCart("user-1", "p1", 0)
	assert.ErrorAs(t, err, &fieldErrs)

	_, err = cartService.UpdateItem("user-1", "l1", -1)
	assert.ErrorAs(t, err, &fieldErrs)
}

func TestCartService_ForeignLineIsNotFound(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	cartService := services.NewCartService(cartRepo, productRepo)

	// The line exists in another user's cart; the scoped lookup misses.
	cart := &models.Cart{ID: "cart-1", UserID: "user-1"}
	cartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	cartRepo.On("GetItem", "cart-1", "foreign-line").Return(nil, notFound("line")).Once()

	_, err := cartService.UpdateItem("user-1", "foreign-line", 3)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	cartRepo.AssertExpectations(t)
}
