package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yangsb/account-ledger/internal/core/services"
)

var accountNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)

// RegisterValidators installs the custom binding validators used by the
// request DTOs. Call once before registering routes.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("acctnum", func(fl validator.FieldLevel) bool {
			return accountNumberPattern.MatchString(fl.Field().String())
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, svcs *services.ServicesContainer) {
	RegisterValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerUserRoutes(v1, svcs.UserSvc)
	registerAccountRoutes(v1, svcs.AccountSvc)
	registerTransactionRoutes(v1, svcs.TransactionSvc)
}
