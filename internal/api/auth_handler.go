package api

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"storefront-service/internal/entity"
	"storefront-service/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account --> POST /register
func (h *AuthHandler) Register(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	created, err := h.authService.Register(c.Request().Context(), &user)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, created.Public())
}

// Login authenticates by email or username --> POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	login := struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	identifier := login.Email
	if identifier == "" {
		identifier = login.Username
	}
	if identifier == "" || login.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	user, token, err := h.authService.Login(c.Request().Context(), identifier, login.Password)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]any{
		"user":  user.Public(),
		"token": token,
	})
}

// ValidateSession checks the presented token --> GET /users/validate
func (h *AuthHandler) ValidateSession(c echo.Context) error {
	token := c.Request().Header.Get("Authorization")
	email := c.QueryParam("email")
	if token == "" || email == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	if err := h.authService.ValidateSession(c.Request().Context(), email, token); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"message": "Session is valid"})
}

// Logout drops the server-side session --> POST /logout
func (h *AuthHandler) Logout(c echo.Context) error {
	payload := struct {
		Email string `json:"email"`
	}{}
	if err := c.Bind(&payload); err != nil || payload.Email == "" {
		return badRequest(c, "Email is required")
	}

	if err := h.authService.Logout(c.Request().Context(), payload.Email); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"message": "Logged out"})
}

// ListUsers serves the collection, with the legacy lookup filters
// --> GET /users, GET /users?email=, GET /users?username=
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	// The lookup filters return a list with zero or one element, the way
	// the original store answered them.
	if email := c.QueryParam("email"); email != "" {
		user, err := h.authService.FindByEmail(ctx, email)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(200, publicList(user))
	}
	if username := c.QueryParam("username"); username != "" {
		user, err := h.authService.FindByUsername(ctx, username)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(200, publicList(user))
	}

	users, err := h.authService.ListUsers(ctx)
	if err != nil {
		return jsonError(c, err)
	}

	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(200, out)
}

func publicList(user *entity.User) []entity.User {
	if user == nil {
		return []entity.User{}
	}
	return []entity.User{user.Public()}
}

// GetUser retrieves one account --> GET /users/:id
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	user, err := h.authService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, user.Public())
}

// UpdateUser applies a partial profile update --> PATCH /users/:id
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	patch := entity.User{}
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	updated, err := h.authService.UpdateProfile(c.Request().Context(), id, patch)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, updated.Public())
}

// DeleteUser removes an account --> DELETE /users/:id
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	if err := h.authService.DeleteUser(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"message": "User deleted"})
}

// RequireAdmin gates a route on the admin account. It runs behind the
// JWT middleware, which has already parsed the claims.
func RequireAdmin(adminUsername string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.JSON(401, map[string]string{"error": "Unauthorized"})
			}
			claims, ok := token.Claims.(*service.JwtCustomClaims)
			if !ok || claims.Name != adminUsername {
				return c.JSON(403, map[string]string{"error": "Admin access required"})
			}
			return next(c)
		}
	}
}
