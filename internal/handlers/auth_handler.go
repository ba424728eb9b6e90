package handlers

import (
	"errors"
	"log"

	"github.com/rchoppari/EcomerceProj/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/authentication")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/create-account", h.HandleCreateAccount)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateAccountRequest represents the request body for registration.
type CreateAccountRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,max=72"`
}

// LoginResponse is returned by both login and registration.
type LoginResponse struct {
	UserID    string `json:"userId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Token     string `json:"token,omitempty"`
	Message   string `json:"message"`
}

func newLoginResponse(result *services.AuthResult, message string) LoginResponse {
	return LoginResponse{
		UserID:    result.UserID,
		FirstName: result.FirstName,
		LastName:  result.LastName,
		Email:     result.Email,
		Token:     result.Token,
		Message:   message,
	}
}

// HandleLogin authenticates an account and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		switch {
		case errors.Is(err, services.ErrNoSuchAccount):
			return c.Status(fiber.StatusUnauthorized).JSON(LoginResponse{Message: "Account does not exist"})
		case errors.Is(err, services.ErrBadCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(LoginResponse{Message: "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(LoginResponse{Message: "Could not log in"})
	}

	return c.JSON(newLoginResponse(result, "Login successful"))
}

// HandleCreateAccount registers a new account and issues a token.
func (h *AuthHandler) HandleCreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.authService.Register(req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		log.Printf("Error registering account %s: %v", req.Email, err)
		switch {
		case errors.Is(err, services.ErrDuplicateAccount):
			return c.Status(fiber.StatusConflict).JSON(LoginResponse{Message: "Account already exists with this email"})
		case errors.Is(err, services.ErrPasswordTooLong):
			return c.Status(fiber.StatusBadRequest).JSON(LoginResponse{Message: "Password must be at most 72 bytes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(LoginResponse{Message: "Could not create account"})
	}

	return c.Status(fiber.StatusCreated).JSON(newLoginResponse(result, "Account created successfully"))
}
