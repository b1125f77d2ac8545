package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/api/internal/auth"
	"github.com/taskboard/api/internal/models"
	"github.com/taskboard/api/internal/stores"
)

// userResponse never carries the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind create user request")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to hash password")
		h.abortInternal(c, err)
		return
	}

	user, err := h.users.CreateUser(c, stores.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// A duplicate email surfaces from the store's unique
		// constraint and is reported like any other store failure.
		h.logger.Error().
			Err(err).
			Str("email", req.Email).
			Msg("failed to create user")
		h.abortInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.users.FindUserByID(c, id)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrUserNotFound):
			abort(c, newNotFoundError(stores.ErrUserNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Str("user_id", id).
				Msg("failed to get user")
			h.abortInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req updateUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind update user request")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.UpdateUser(c, stores.UpdateUserParams{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrUserNotFound):
			abort(c, newNotFoundError(stores.ErrUserNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Str("user_id", id).
				Msg("failed to update user")
			h.abortInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	id := c.Param("id")

	err := h.users.SoftDeleteUser(c, id)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to soft delete user")
		h.abortInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
