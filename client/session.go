package client

import (
	"context"
	"sync"
)

// SessionState estado de autenticación observable.
type SessionState int

const (
	// StateAnonymous sin sesión.
	StateAnonymous SessionState = iota
	// StateLoading validando un token persistido o credenciales en curso.
	StateLoading
	// StateAuthenticated sesión válida con usuario cargado.
	StateAuthenticated
)

// Session máquina de estados de autenticación sobre el cliente. Los
// observadores se notifican en cada transición.
type Session struct {
	client *Client

	mu        sync.RWMutex
	state     SessionState
	user      *User
	observers map[int]func(SessionState, *User)
	nextObsID int
}

// NewSession construye una sesión anónima.
func NewSession(c *Client) *Session {
	return &Session{
		client:    c,
		state:     StateAnonymous,
		observers: make(map[int]func(SessionState, *User)),
	}
}

// Init valida un token persistido contra /auth/me. Un token inválido se
// descarta y la sesión queda anónima sin error.
func (s *Session) Init(ctx context.Context) error {
	if s.client.Token() == "" {
		s.transition(StateAnonymous, nil)
		return nil
	}
	s.transition(StateLoading, nil)
	user, err := s.client.Auth.Me(ctx)
	if err != nil {
		// El token guardado ya no sirve: se limpia y se parte de cero.
		_ = s.client.SetToken("")
		s.transition(StateAnonymous, nil)
		return nil
	}
	s.transition(StateAuthenticated, user)
	return nil
}

// Login autentica; en fallo la sesión vuelve a anónima y el error se propaga.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	s.transition(StateLoading, nil)
	result, err := s.client.Auth.Login(ctx, email, password)
	if err != nil {
		s.transition(StateAnonymous, nil)
		return nil, err
	}
	user := result.User
	s.transition(StateAuthenticated, &user)
	return &user, nil
}

// Logout avisa al servidor con el mejor esfuerzo y limpia el estado local
// incondicionalmente.
func (s *Session) Logout(ctx context.Context) {
	_ = s.client.Auth.Logout(ctx)
	s.transition(StateAnonymous, nil)
}

// State devuelve el estado actual.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User devuelve el usuario autenticado, o nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAdmin deriva del rol del usuario autenticado.
func (s *Session) IsAdmin() bool {
	return s.User().IsAdmin()
}

// Subscribe registra un observador de transiciones; devuelve la función para
// darse de baja.
func (s *Session) Subscribe(fn func(SessionState, *User)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Session) transition(state SessionState, user *User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	observers := make([]func(SessionState, *User), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()
	for _, fn := range observers {
		fn(state, user)
	}
}
