// Package cookie управляет cookie сессии.
package cookie

import (
	"net/http"
	"time"
)

// DefaultName — имя cookie сессии по умолчанию.
const DefaultName = "sessionId"

// Options задаёт параметры cookie сессии.
type Options struct {
	Name   string
	Secure bool
	TTL    time.Duration // 0 — сессионная cookie без Max-Age
}

func (o Options) name() string {
	if o.Name == "" {
		return DefaultName
	}
	return o.Name
}

// Set записывает токен сессии в ответ.
func (o Options) Set(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     o.name(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if o.TTL > 0 {
		c.MaxAge = int(o.TTL.Seconds())
		c.Expires = time.Now().Add(o.TTL)
	}
	http.SetCookie(w, c)
}

// Clear удаляет cookie сессии у клиента.
func (o Options) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// Read возвращает токен сессии из запроса или пустую строку.
func (o Options) Read(r *http.Request) string {
	c, err := r.Cookie(o.name())
	if err != nil {
		return ""
	}
	return c.Value
}
