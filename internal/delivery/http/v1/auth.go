package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/api/internal/auth"
	"github.com/taskboard/api/internal/stores"
)

// Required fields are presence-checked only; email format is
// deliberately not validated at this layer.
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind login request")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.FindUserByEmail(c, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrUserNotFound):
			abort(c, newBadRequestError(stores.ErrUserNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to look up credentials")
			h.abortInternal(c, err)
		}
		return
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to compare password")
		h.abortInternal(c, err)
		return
	}
	if !match {
		h.logger.Warn().
			Str("user_id", user.ID).
			Msg("password mismatch")
		abort(c, newUnauthorizedError("wrong password"))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Name)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to issue token")
		h.abortInternal(c, err)
		return
	}

	h.logger.Info().
		Str("user_id", user.ID).
		Msg("user logged in")
	c.JSON(http.StatusOK, loginResponse{Token: token})
}

// HandleLogout is a stateless no-op: tokens are not tracked server-side,
// expiry is the only invalidation.
func (h *handlerImpl) HandleLogout(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
