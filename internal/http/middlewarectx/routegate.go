package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	authservice "github.com/magabrotheeeer/exam-trainer/internal/services/auth"
)

// SessionCookieName имя cookie с сессионным JWT.
const SessionCookieName = "access_token"

// Адреса переходов, которые шлюз выдаёт пользовательскому агенту.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// protectedPrefixes префиксы страниц, требующих аутентификации.
var protectedPrefixes = []string{"/dashboard", "/admin", "/test", "/settings", "/tickets"}

// SessionResolver описывает разбор сессионной cookie.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (authservice.Session, error)
}

// RouteGate возвращает middleware-перехватчик страничных запросов.
//
// Правила применяются по порядку, срабатывает первое подходящее:
//  1. служебные и статические пути пропускаются без разбора сессии;
//  2. разбор cookie: невалидный токен — аноним, ошибка бэкенда — запрос
//     пропускается (fail open), кроме административных страниц, где сбой
//     проверки роли закрывает доступ переходом на /dashboard (fail closed);
//  3. /admin для аутентифицированного не-администратора — переход на /dashboard;
//  4. /login и /register для аутентифицированного — переход на /dashboard;
//  5. защищённые префиксы для анонима — переход на /login;
//  6. иначе запрос пропускается.
//
// Перевыпущенная при разборе cookie устанавливается на ответ при любом
// исходе, кроме раннего пропуска статики.
func RouteGate(resolver SessionResolver, log *slog.Logger, tokenTTL time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RouteGate"
			path := r.URL.Path

			if isStaticOrInternal(path) {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", path),
			)

			var token string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}

			var sess authservice.Session
			var resolveErr error
			if token != "" {
				sess, resolveErr = resolver.ResolveSession(r.Context(), token)
			}

			if sess.RefreshedToken != "" {
				http.SetCookie(w, SessionCookie(sess.RefreshedToken, tokenTTL))
			}

			isAdminPath := strings.HasPrefix(path, "/admin")

			if resolveErr != nil {
				log.Error("identity resolution failed", sl.Err(resolveErr))
				if isAdminPath && sess.Authenticated {
					// роль проверить не удалось — от чувствительной зоны уводим
					http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			switch {
			case isAdminPath && sess.Authenticated:
				if sess.User == nil || !sess.User.IsAdmin() {
					http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, r)
			case (path == LoginPath || path == "/register") && sess.Authenticated:
				http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
			case isProtected(path) && !sess.Authenticated:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// isStaticOrInternal сообщает, нужно ли пропустить путь без разбора сессии.
// Пути с точкой — файлы ассетов; разбор сессии на каждый ассет слишком дорог.
func isStaticOrInternal(path string) bool {
	return strings.HasPrefix(path, "/api") ||
		strings.HasPrefix(path, "/static") ||
		strings.HasPrefix(path, "/metrics") ||
		strings.HasPrefix(path, "/docs") ||
		strings.Contains(path, ".")
}

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SessionCookie формирует сессионную cookie с заданным токеном.
// Пустой токен с нулевым TTL используется для сброса cookie при выходе.
func SessionCookie(token string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
