package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coworking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.Signup)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) Signup(c *gin.Context) {
	var body SignupBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Signup(c.Request.Context(), SignupRequest{
		Username:  body.Username,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Password:  body.Password,
		Email:     body.Email,
		Phone:     body.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing or malformed signup fields")
		case errors.Is(err, ErrUsernameTaken):
			response.Fail(c, http.StatusConflict, "USERNAME_TAKEN", "Username already exists")
		case errors.Is(err, ErrEmailTaken):
			response.Fail(c, http.StatusConflict, "EMAIL_TAKEN", "Email already exists")
		case errors.Is(err, ErrPhoneTaken):
			response.Fail(c, http.StatusConflict, "PHONE_TAKEN", "Phone number already exists")
		default:
			response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create account")
		}
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"user": NewUserView(user)})
}

func (h *Handler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required")
		case errors.Is(err, ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		default:
			response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"user":  NewUserView(result.User),
		"token": result.Token,
	})
}
