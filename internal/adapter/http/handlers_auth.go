package adapthttp

import (
	"errors"
	"net/http"

	"simplyblog/internal/app"
	"simplyblog/internal/token"
)

const tokenCookieName = "token"

func (s *Server) setTokenCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(token.TTL.Seconds()),
	})
}

func (s *Server) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, app.ErrEmailTaken) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// The User JSON projection omits the password hash.
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tok, user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, app.ErrUnknownUser) || errors.Is(err, app.ErrWrongPassword) {
		// The two failure messages stay distinct for the client.
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.setTokenCookie(w, tok)
	writeJSON(w, http.StatusOK, map[string]any{"Status": "login success", "role": user.Role})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	s.clearTokenCookie(w)
	writeJSON(w, http.StatusOK, "cookie cleared")
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, app.ErrBadToken)
		return
	}

	user, err := s.auth.UserByEmail(r.Context(), identity.Email)
	if errors.Is(err, app.ErrUnknownUser) {
		// The account was deleted after the token was issued.
		writeError(w, http.StatusUnauthorized, app.ErrBadToken)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"email": user.Email, "name": user.Name})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
