package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/userservice"
)

const msgUnknownUser = "пользователь не найден"

// UserResolver источник имени и роли пользователя (*userservice.Client)
type UserResolver interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Identity собирает domain.Requester для запроса. Должен стоять после Auth.
// resolver == nil - имя и роль берутся из заголовков X-User-Name / X-User-Role.
// При недоступности сервиса пользователей запрос продолжается с непривилегированным пользователем
func Identity(resolver UserResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			requester := domain.Requester{UserID: userID, Role: domain.RoleUser}

			if resolver == nil {
				requester.Name = strings.TrimSpace(r.Header.Get(HeaderUserName))
				requester.Role = parseRole(r.Header.Get(HeaderUserRole))
			} else {
				user, err := resolver.GetUserWithGracefulDegradation(r.Context(), userID)
				switch {
				case errors.Is(err, userservice.ErrUserNotFound):
					logger.Warn("Identity: user id=%d not found", userID)
					handlers.RespondUnauthorized(w, msgUnknownUser)
					return
				case err != nil:
					logger.Warn("Identity: continuing as non-privileged user id=%d: %v", userID, err)
				default:
					requester.Name = user.Name
					requester.Role = parseRole(user.Role)
				}
			}

			ctx := context.WithValue(r.Context(), requesterKey, requester)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequester возвращает пользователя, собранного Identity
func GetRequester(ctx context.Context) (domain.Requester, bool) {
	requester, ok := ctx.Value(requesterKey).(domain.Requester)
	return requester, ok
}

// WithRequester кладёт пользователя в контекст
func WithRequester(ctx context.Context, requester domain.Requester) context.Context {
	ctx = context.WithValue(ctx, userIDKey, requester.UserID)
	return context.WithValue(ctx, requesterKey, requester)
}

// parseRole неизвестная роль трактуется как обычный пользователь
func parseRole(raw string) domain.Role {
	switch role := domain.Role(strings.ToLower(strings.TrimSpace(raw))); role {
	case domain.RoleAdmin, domain.RoleSuperAdmin:
		return role
	default:
		return domain.RoleUser
	}
}
