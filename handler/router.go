package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jfinfosena/25adso-pap/cache"
	"github.com/jfinfosena/25adso-pap/repository"
	"github.com/jfinfosena/25adso-pap/service/loan"
)

// maxLoanQuantity bounds how many units a single loan may take.
const maxLoanQuantity = 10

// Deps collects everything the router wires into handlers. Limiter and
// ItemCache may be nil; the corresponding feature is then disabled.
type Deps struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Items      repository.ItemRepository
	Loans      loan.IService
	ItemCache  *cache.ItemCache
	Limiter    *RateLimiter
}

// RegisterValidators installs custom binding rules on gin's validator engine.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("loanqty", func(fl validator.FieldLevel) bool {
			qty := fl.Field().Uint()
			return qty >= 1 && qty <= maxLoanQuantity
		})
	}
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(deps Deps) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORS())
	if deps.Limiter != nil {
		router.Use(deps.Limiter.Middleware())
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	users := NewUserHandler(deps.Users)
	router.POST("/users", users.Create)
	router.GET("/users", users.List)
	router.GET("/users/:id", users.Get)
	router.PUT("/users/:id", users.Update)
	router.DELETE("/users/:id", users.Delete)

	categories := NewCategoryHandler(deps.Categories, deps.Items)
	router.POST("/categories", categories.Create)
	router.GET("/categories", categories.List)
	router.GET("/categories/:id", categories.Get)
	router.GET("/categories/:id/items", categories.Items)
	router.PUT("/categories/:id", categories.Update)
	router.DELETE("/categories/:id", categories.Delete)

	items := NewItemHandler(deps.Items, deps.ItemCache)
	router.POST("/items", items.Create)
	router.GET("/items", items.List)
	router.GET("/items/:id", items.Get)
	router.PUT("/items/:id", items.Update)
	router.DELETE("/items/:id", items.Delete)

	loans := NewLoanHandler(deps.Loans)
	router.POST("/loans", loans.Checkout)
	router.GET("/loans", loans.List)
	router.GET("/loans/:id", loans.Get)
	router.POST("/loans/:id/return", loans.Return)
	router.POST("/loans/:id/cancel", loans.Cancel)

	return router
}
