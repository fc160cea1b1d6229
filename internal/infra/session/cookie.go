package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const cookieName = "chroma_sessao"

// EnsureID devolve o ID da sessão do visitante, criando o cookie no
// primeiro toque. O cookie é o único vínculo entre as páginas do fluxo.
func EnsureID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	sid := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return sid
}

// CurrentID lê o ID sem criar sessão nova. Vazio significa visitante
// que nunca passou pelo formulário.
func CurrentID(r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
