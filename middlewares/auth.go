package middlewares

import (
	"log"
	"time"

	"github.com/haginus/bachelor-backend-sub001/config"
	"github.com/haginus/bachelor-backend-sub001/database"
	"github.com/haginus/bachelor-backend-sub001/models"
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UniversalAuthMiddleware validates the access token, refreshes it when
// possible and checks the account kind against the allowed list.
func UniversalAuthMiddleware(allowedKinds ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := validateAccessToken(c)
		if err != nil {
			user, err = tryRefreshToken(c)
			if err != nil {
				log.Println("[auth] access_token and refresh_token both invalid")
				clearAuthCookies(c)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
			}
		}
		if len(allowedKinds) > 0 {
			allowed := false
			for _, k := range allowedKinds {
				if user.Kind == k {
					allowed = true
					break
				}
			}
			if !allowed {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "insufficient permissions",
				})
			}
		}

		c.Locals("userID", user.ID)
		c.Locals("userEmail", user.Email)
		c.Locals("userKind", user.Kind)
		return c.Next()
	}
}

// validateAccessToken checks the access_token cookie and returns its user.
func validateAccessToken(c *fiber.Ctx) (*models.User, error) {
	tokenStr := c.Cookies("access_token")
	if tokenStr == "" {
		return nil, fiber.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	userID, ok := claims["userID"].(float64)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	var user models.User
	if err := database.DB.First(&user, uint(userID)).Error; err != nil {
		return nil, fiber.ErrUnauthorized
	}

	return &user, nil
}

// tryRefreshToken issues a new access_token from the refresh_token cookie.
func tryRefreshToken(c *fiber.Ctx) (*models.User, error) {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return nil, fiber.ErrUnauthorized
	}

	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	email, ok := claims["user"].(string)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	var user models.User
	if err := database.DB.Where("email = ? AND refresh_token = ?", email, refreshToken).First(&user).Error; err != nil {
		return nil, fiber.ErrUnauthorized
	}

	newAccessToken, _, err := services.GenerateTokens(user.ID, user.Email, user.Kind)
	if err != nil {
		return nil, fiber.ErrUnauthorized
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    newAccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(15 * time.Minute),
	})

	return &user, nil
}

func clearAuthCookies(c *fiber.Ctx) {
	c.ClearCookie("access_token")
	c.ClearCookie("refresh_token")
}
