// Package session mantiene el estado de autenticación del panel: un objeto
// inyectable con ciclo de vida explícito (Initialize/Logout), en vez de
// estado global ambiente, para poder testearlo de forma determinista.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/backend"
	"github.com/tu-usuario/inventory-panel/pkg/jwt"
	"github.com/tu-usuario/inventory-panel/pkg/logger"
)

// State estado de la sesión: loading → {authenticated, anonymous}.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Backend puerto mínimo que la sesión necesita del cliente API.
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginData, error)
	Signup(ctx context.Context, email, password, name string) (*backend.SignupResult, error)
	GetProfile(ctx context.Context) (*entity.Profile, error)
	Token() string
	Logout()
}

// Session dueña del usuario en memoria y del estado de autenticación.
// El token vive en el cliente API; aquí solo se orquesta su ciclo de vida.
type Session struct {
	api Backend
	log *logger.Logger

	mu    sync.RWMutex
	state State
	user  *entity.User
}

// New construye la sesión en estado loading.
func New(api Backend, log *logger.Logger) *Session {
	return &Session{api: api, log: log, state: StateLoading}
}

// Initialize restaura la sesión persistida: si hay token lo valida con un
// fetch de perfil; si la validación falla, el token se limpia y la sesión
// queda anonymous. Un solo intento, sin retry: un fallo es terminal para
// esta sesión.
func (s *Session) Initialize(ctx context.Context) {
	token := s.api.Token()
	if token == "" {
		s.settle(StateAnonymous, nil)
		return
	}

	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("validación del token persistido fallida")
		s.api.Logout()
		s.settle(StateAnonymous, nil)
		return
	}

	s.settle(StateAuthenticated, &entity.User{ID: profile.ID, Email: profile.Email})
	s.log.Info().Str("email", profile.Email).Msg("sesión restaurada")
}

// Login intercambia credenciales por un token (el cliente lo persiste) y
// deja la sesión autenticada.
func (s *Session) Login(ctx context.Context, email, password string) error {
	data, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.settle(StateAuthenticated, &data.User)
	return nil
}

// Signup registra al usuario; si el backend devuelve token inline la sesión
// queda autenticada de inmediato. Devuelve si quedó autenticada y el
// mensaje del backend.
func (s *Session) Signup(ctx context.Context, email, password, name string) (bool, string, error) {
	res, err := s.api.Signup(ctx, email, password, name)
	if err != nil {
		return false, "", err
	}
	if res.Authenticated() && res.User != nil {
		s.settle(StateAuthenticated, res.User)
		return true, res.Message, nil
	}
	return false, res.Message, nil
}

// Logout limpia token y usuario incondicionalmente.
func (s *Session) Logout() {
	s.api.Logout()
	s.settle(StateAnonymous, nil)
}

// Invalidate marca la sesión como anónima sin tocar el token: se usa cuando
// el cliente ya lo limpió (401/403 en medio de una operación).
func (s *Session) Invalidate() {
	s.settle(StateAnonymous, nil)
}

// State devuelve el estado actual.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User devuelve el usuario actual (nil si no hay sesión).
func (s *Session) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// ExpiresAt devuelve la expiración declarada en los claims del token, si el
// token la incluye. Solo informativo: la autoridad es el backend.
func (s *Session) ExpiresAt() (time.Time, bool) {
	tok := s.api.Token()
	if tok == "" {
		return time.Time{}, false
	}
	exp, err := jwt.Expiry(tok)
	if err != nil {
		return time.Time{}, false
	}
	return exp, true
}

func (s *Session) settle(state State, user *entity.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}
