package middleware

import (
	"fmt"
	"strings"
	"time"

	"saathi/config"
	"saathi/database"
	"saathi/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Paths that only administrators may reach, no matter what role list the
// route itself declares.
var adminOnlyPaths = []string{"/promotion-requests", "/process-promotion"}

// GenerateJWT generates a JWT token asserting identity and role
func GenerateJWT(userID uint, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   string(role),
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// SetTokenCookie stores the token in the jwt cookie the way the SPA expects
func SetTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

// ClearTokenCookie expires the jwt cookie
func ClearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Unix(0, 0),
	})
}

// extractToken pulls the raw token from the jwt cookie or the Authorization
// header. The header wins when both are present.
func extractToken(c *fiber.Ctx) string {
	token := c.Cookies("jwt")

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if bearer := strings.TrimSpace(authHeader[len("Bearer "):]); bearer != "" {
			token = bearer
		}
	}

	return token
}

// JWTMiddleware verifies the request token, resolves the identity record for
// the role it carries and attaches userId/role/identity to the context.
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "No authentication token found in cookie or Authorization header!", nil)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token!", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil || claims["role"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload!", nil)
	}

	userIDFloat, ok := claims["userId"].(float64)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload!", nil)
	}
	userID := uint(userIDFloat)

	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if !models.IsValidRole(role) {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload!", nil)
	}

	// Promotion administration is locked to admins regardless of the
	// role list declared on the route
	for _, p := range adminOnlyPaths {
		if strings.Contains(c.Path(), p) && role != models.RoleAdmin {
			return JsonResponse(c, fiber.StatusForbidden, false, "This endpoint requires admin privileges!", nil)
		}
	}

	db := database.Database.Db

	// Resolve the identity record from the collection the role implies
	switch {
	case role == models.RoleAdmin:
		var admin models.Admin
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&admin).Error; err != nil {
			return JsonResponse(c, fiber.StatusNotFound, false, "Admin not found!", nil)
		}
		c.Locals("admin", &admin)
	case models.IsTeacherRole(role):
		var teacher models.Teacher
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&teacher).Error; err != nil {
			return JsonResponse(c, fiber.StatusNotFound, false, "Teacher not found!", nil)
		}
		c.Locals("teacher", &teacher)
	default:
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		c.Locals("user", &user)
	}

	c.Locals("userId", userID)
	c.Locals("role", role)

	return c.Next()
}

// JsonResponse writes the standard response envelope
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// ValidationErrorResponse reports per-field validation failures
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
