package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/middleware"
	"github.com/duccv/weather-tracker/internal/model/request"
	"github.com/duccv/weather-tracker/internal/model/response"
)

type AuthHandler struct {
	users      UserService
	tokens     TokenIssuer
	translator *apperror.Translator
}

func NewAuthHandler(users UserService, tokens TokenIssuer, translator *apperror.Translator) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, translator: translator}
}

// Register godoc
//
//	@Summary		Register a user
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.RegisterRequest	true	"new account"
//	@Success		201		{object}	response.AuthResponse
//	@Failure		400		{object}	response.ApiError
//	@Failure		409		{object}	response.ApiError
//	@Router			/v1/api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := c.MustGet(constant.ValidatedBody).(request.RegisterRequest)

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user.Username)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.AuthResponse{Token: token, Username: user.Username})
}

// Token godoc
//
//	@Summary		Issue an access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.TokenRequest	true	"credentials"
//	@Success		200		{object}	response.AuthResponse
//	@Failure		401		{object}	response.ApiError
//	@Router			/v1/api/auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	req := c.MustGet(constant.ValidatedBody).(request.TokenRequest)

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user.Username)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, response.AuthResponse{Token: token, Username: user.Username})
}

// Activate godoc
//
//	@Summary		Activate own account
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Param			username	path		string	true	"username"
//	@Success		200			{object}	model.User
//	@Failure		403			{object}	response.ApiError
//	@Router			/v1/api/auth/users/{username}/activate [put]
func (h *AuthHandler) Activate(c *gin.Context) {
	params := c.MustGet(constant.ValidatedParams).(request.UsernameParam)

	user, err := h.users.Activate(c.Request.Context(), middleware.IdentityFrom(c), params.Username)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Deactivate godoc
//
//	@Summary		Deactivate own account
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Param			username	path		string	true	"username"
//	@Success		200			{object}	model.User
//	@Failure		403			{object}	response.ApiError
//	@Router			/v1/api/auth/users/{username}/deactivate [put]
func (h *AuthHandler) Deactivate(c *gin.Context) {
	params := c.MustGet(constant.ValidatedParams).(request.UsernameParam)

	user, err := h.users.Deactivate(c.Request.Context(), middleware.IdentityFrom(c), params.Username)
	if err != nil {
		h.translator.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
