package auth

import (
	"net/http"
	"net/url"
	"strings"
)

// Keys the browser keeps in its local store and forwards on every call.
const (
	TokenKey       = "authToken"
	UserInfoKey    = "userInfo"
	UserInfoHeader = "X-User-Info"
)

// ExtractBearerTokenFromHeader extracts the token from an Authorization header value.
// Both "Bearer" and "bearer" prefixes are accepted.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < len("bearer ") {
		return ""
	}
	if strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return ""
}

// ExtractToken returns the session token from the Authorization header, then the authToken cookie.
func ExtractToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerTokenFromHeader(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return cookieValue(r, TokenKey)
}

// ExtractUserInfo returns the serialized profile from the X-User-Info header, then the userInfo cookie.
func ExtractUserInfo(r *http.Request) string {
	if r == nil {
		return ""
	}
	if raw := strings.TrimSpace(r.Header.Get(UserInfoHeader)); raw != "" {
		return raw
	}
	return cookieValue(r, UserInfoKey)
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	value := strings.TrimSpace(cookie.Value)
	if unescaped, err := url.QueryUnescape(value); err == nil {
		return strings.TrimSpace(unescaped)
	}
	return value
}
