package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
	"github.com/yangsb/account-ledger/internal/dto"
	"github.com/yangsb/account-ledger/internal/middleware"
)

// userHandler handles HTTP requests related to account users.
type userHandler struct {
	userService portssvc.UserSvc
}

func newUserHandler(us portssvc.UserSvc) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvc) {
	h := newUserHandler(userService)

	users := rg.Group("/user")
	{
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
	}
}

func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User created", slog.String("user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

func (h *userHandler) getUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
