package client

import (
	"context"
	"sync"
)

// CooperativeState lista de cooperativas visibles y la selección activa.
// Observa la sesión: cuando el usuario queda no autenticado, la lista y la
// selección se limpian solas; no depende de que el consumidor llame a Clear.
type CooperativeState struct {
	client  *Client
	session *Session
	unsub   func()

	mu       sync.RWMutex
	list     []Cooperative
	selected *Cooperative
}

// NewCooperativeState construye el estado vacío suscrito a la sesión.
func NewCooperativeState(c *Client, s *Session) *CooperativeState {
	cs := &CooperativeState{client: c, session: s}
	if s != nil {
		cs.unsub = s.Subscribe(func(state SessionState, _ *User) {
			if state == StateAnonymous {
				cs.Clear()
			}
		})
	}
	return cs
}

// Refresh recarga la lista y aplica la política de autoselección: la
// cooperativa propia del usuario de la sesión si está en la lista, si no la
// primera, si no ninguna. Se invoca tras cada autenticación.
func (cs *CooperativeState) Refresh(ctx context.Context) error {
	list, err := cs.client.Cooperatives.List(ctx)
	if err != nil {
		return err
	}
	var user *User
	if cs.session != nil {
		user = cs.session.User()
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.list = list
	cs.selected = nil
	if user != nil && user.CooperativeID != "" {
		for i := range list {
			if list[i].ID == user.CooperativeID {
				cs.selected = &list[i]
				break
			}
		}
	}
	if cs.selected == nil && len(list) > 0 {
		cs.selected = &list[0]
	}
	return nil
}

// Select cambia la cooperativa activa por ID; un ID desconocido no cambia nada
// y devuelve false.
func (cs *CooperativeState) Select(id string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for i := range cs.list {
		if cs.list[i].ID == id {
			cs.selected = &cs.list[i]
			return true
		}
	}
	return false
}

// Selected devuelve la cooperativa activa, o nil si no hay ninguna.
func (cs *CooperativeState) Selected() *Cooperative {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.selected
}

// List devuelve la lista visible.
func (cs *CooperativeState) List() []Cooperative {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.list
}

// Clear vacía lista y selección. La suscripción a la sesión lo invoca en cada
// transición a anónimo; también puede llamarse directamente.
func (cs *CooperativeState) Clear() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.list = nil
	cs.selected = nil
}

// Close da de baja la suscripción a la sesión.
func (cs *CooperativeState) Close() {
	if cs.unsub != nil {
		cs.unsub()
		cs.unsub = nil
	}
}
