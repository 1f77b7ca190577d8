package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
	"taskmanager/pkg/translator"
)

const (
	MsgUserRegistered  = "userRegistered"
	MsgLoginSuccessful = "loginSuccessful"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidJSON, lang),
		)
		return
	}

	session, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondValidationError(c, validationErr.Errors)
		case errors.Is(err, domain.ErrUserExists):
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgUserExists, lang),
			)
		default:
			zap.L().Error("failed to register user", zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailRegister, lang),
			)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: translator.Localize(MsgUserRegistered, lang),
		Token:   session.Token,
		User:    mapper.ToUserItem(session.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidJSON, lang),
		)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondValidationError(c, validationErr.Errors)
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang),
			)
		default:
			zap.L().Error("failed to log in user", zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailLogin, lang),
			)
		}
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: translator.Localize(MsgLoginSuccessful, lang),
		Token:   session.Token,
		User:    mapper.ToUserItem(session.User),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{User: mapper.ToUserItem(user)})
}
