package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/pkg/jwt"
)

// Locals keys para los datos del usuario autenticado en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalFirstName = "first_name"
	LocalLastName  = "last_name"
	LocalPhone     = "phone"
	LocalEmail     = "email"
)

// AuthMiddleware valida el Bearer Token JWT y deja los claims en c.Locals.
// Solo acepta tokens de tipo access: un refresh token no abre rutas protegidas.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if claims.TokenType != jwt.TokenTypeAccess {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "se requiere un access token"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalFirstName, claims.FirstName)
		c.Locals(LocalLastName, claims.LastName)
		c.Locals(LocalPhone, claims.Phone)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// RequireRole exige que el rol del token esté en la lista. SUPER_ADMIN pasa
// cualquier verja. Debe colgarse después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == entity.RoleSuperAdmin || allowed[role] {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetActor reconstruye el usuario autenticado desde los claims del token.
// Alcanza para firmar cobros y notas sin ir a la base.
func GetActor(c *fiber.Ctx) *entity.User {
	id := GetUserID(c)
	if id == "" {
		return nil
	}
	return &entity.User{
		ID:        id,
		FirstName: localString(c, LocalFirstName),
		LastName:  localString(c, LocalLastName),
		Phone:     localString(c, LocalPhone),
		Email:     localString(c, LocalEmail),
		Role:      GetRole(c),
	}
}
