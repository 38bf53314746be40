package gate

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func RegisterRoutes(r chi.Router, g *Gate) {
	r.Post("/auth/login", loginHandler(g))
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Compara la contraseña del personal con el hash bcrypt configurado y devuelve un token de sesión. Usarlo como `Authorization: Bearer <token>` o `?token=` en el WebSocket.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Contraseña"
// @Success 200 {object} loginResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /auth/login [post]
func loginHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		tok, err := g.Login(req.Password)
		if errors.Is(err, ErrWrongPassword) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "wrong password"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{Token: tok.Value, ExpiresAt: tok.ExpiresAt})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
