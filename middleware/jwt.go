package middleware

import (
	"fmt"
	"strings"
	"time"

	"civicvoice/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Identity carries the authenticated caller's profile as asserted by the
// external identity provider's token. The app never issues sessions itself.
type Identity struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	ImageURL   string
}

// GenerateIdentityToken mints a provider-style token. Used by tests and
// local development; in production the identity provider signs these.
func GenerateIdentityToken(externalID, email, firstName, lastName, imageURL string) (string, error) {
	claims := jwt.MapClaims{
		"sub":       externalID,
		"email":     email,
		"firstName": firstName,
		"lastName":  lastName,
		"imageUrl":  imageURL,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.IdentityJWTSecret))
}

// IdentityMiddleware verifies the bearer token from the identity provider and
// stores the caller's Identity in the request context.
func IdentityMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.IdentityJWTSecret), nil
	})
	if err != nil || !token.Valid {
		return JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["sub"] == nil {
		return JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	c.Locals("identity", Identity{
		ExternalID: claimString(claims, "sub"),
		Email:      claimString(claims, "email"),
		FirstName:  claimString(claims, "firstName"),
		LastName:   claimString(claims, "lastName"),
		ImageURL:   claimString(claims, "imageUrl"),
	})

	return c.Next()
}

// CallerIdentity returns the identity set by IdentityMiddleware, if any.
func CallerIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals("identity").(Identity)
	return id, ok
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// JsonError writes the boundary error shape used by every handler.
func JsonError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}
