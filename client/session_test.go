package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopfondos/coopfondos-api/client"
)

const loginOKBody = `{"success":true,"data":{"token":"jwt-abc","user":{"id":"u1","email":"a@b.co","name":"Ana","role":"admin","cooperativeId":"c1","status":"active","createdAt":"2026-01-01T00:00:00Z"},"expiresIn":"480m"}}`
const meOKBody = `{"success":true,"data":{"id":"u1","email":"a@b.co","name":"Ana","role":"socio","cooperativeId":"c1","status":"active","createdAt":"2026-01-01T00:00:00Z"}}`

// Init sin token persistido deja la sesión anónima sin llamar a la red.
func TestSession_InitSinToken_QuedaAnonima(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	s := client.NewSession(c)

	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, client.StateAnonymous, s.State())
	assert.Nil(t, s.User())
	assert.False(t, called)
}

// Init con token válido carga el usuario y pasa a autenticada.
func TestSession_InitConTokenValido_Autentica(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(meOKBody))
	}))
	require.NoError(t, c.SetToken("tok-persistido"))
	s := client.NewSession(c)

	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, client.StateAuthenticated, s.State())
	require.NotNil(t, s.User())
	assert.Equal(t, "Ana", s.User().Name)
	assert.False(t, s.IsAdmin(), "socio no es admin")
}

// Init con token inválido lo descarta y queda anónima, sin propagar error.
func TestSession_InitConTokenInvalido_DescartaToken(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"token inválido o expirado"}`))
	}))
	require.NoError(t, c.SetToken("tok-viejo"))
	s := client.NewSession(c)

	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, client.StateAnonymous, s.State())
	assert.Empty(t, c.Token(), "el token inválido debe descartarse")
	persisted, _ := store.Load()
	assert.Empty(t, persisted)
}

// Login fallido deja la sesión anónima y devuelve el error.
func TestSession_LoginFallido_QuedaAnonima(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"credenciales inválidas"}`))
	}))
	s := client.NewSession(c)

	_, err := s.Login(context.Background(), "ana@coop.cl", "Password1")
	require.Error(t, err)
	assert.Equal(t, client.StateAnonymous, s.State())
	assert.Nil(t, s.User())
}

// Login exitoso notifica a los observadores con el estado autenticado.
func TestSession_LoginNotificaObservadores(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(loginOKBody))
	}))
	s := client.NewSession(c)

	var states []client.SessionState
	unsubscribe := s.Subscribe(func(state client.SessionState, _ *client.User) {
		states = append(states, state)
	})
	defer unsubscribe()

	user, err := s.Login(context.Background(), "ana@coop.cl", "Password1")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.Equal(t, []client.SessionState{client.StateLoading, client.StateAuthenticated}, states)
}

// Logout limpia el estado local aunque el servidor falle.
func TestSession_LogoutSiempreLimpia(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/login" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(loginOKBody))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	s := client.NewSession(c)
	_, err := s.Login(context.Background(), "ana@coop.cl", "Password1")
	require.NoError(t, err)

	s.Logout(context.Background())
	assert.Equal(t, client.StateAnonymous, s.State())
	assert.Nil(t, s.User())
	assert.Empty(t, c.Token())
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_AnonimaRedirigeALogin(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())
	s := client.NewSession(c)
	g := client.NewGuard(s)

	assert.Equal(t, client.DecisionRedirectLogin, g.Check(false))
	assert.Equal(t, client.DecisionRedirectLogin, g.Check(true))
}

func TestGuard_SocioEnPaginaAdmin_RedirigeADashboard(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(meOKBody)) // rol socio
	}))
	require.NoError(t, c.SetToken("tok"))
	s := client.NewSession(c)
	require.NoError(t, s.Init(context.Background()))
	g := client.NewGuard(s)

	assert.Equal(t, client.DecisionRender, g.Check(false), "página normal se renderiza")
	assert.Equal(t, client.DecisionRedirectDashboard, g.Check(true), "página admin redirige a dashboard")
}

func TestGuard_AdminRenderizaTodo(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(loginOKBody))
	}))
	s := client.NewSession(c)
	_, err := s.Login(context.Background(), "ana@coop.cl", "Password1")
	require.NoError(t, err)
	g := client.NewGuard(s)

	assert.Equal(t, client.DecisionRender, g.Check(false))
	assert.Equal(t, client.DecisionRender, g.Check(true))
}

// ──────────────────────────────────────────────────────────────────────────────
// CooperativeState — política de autoselección y acoplamiento con la sesión
// ──────────────────────────────────────────────────────────────────────────────

const coopsBody = `{"success":true,"data":[{"id":"c1","name":"Coop Andina"},{"id":"c2","name":"Coop del Sur"}]}`

// coopStateFixture levanta un servidor que responde login y listado de
// cooperativas, y devuelve el estado suscrito a una sesión nueva.
func coopStateFixture(t *testing.T, loginBody string) (*client.CooperativeState, *client.Session) {
	t.Helper()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(loginBody))
		case "/api/cooperatives":
			w.Write([]byte(coopsBody))
		default:
			w.Write([]byte(`{"success":true}`))
		}
	}))
	s := client.NewSession(c)
	return client.NewCooperativeState(c, s), s
}

func loginBodyWithCoop(coopID string) string {
	return `{"success":true,"data":{"token":"jwt-abc","user":{"id":"u1","email":"a@b.co","name":"Ana","role":"admin","cooperativeId":"` +
		coopID + `","status":"active","createdAt":"2026-01-01T00:00:00Z"},"expiresIn":"480m"}}`
}

func TestCooperativeState_AutoseleccionaLaDelUsuario(t *testing.T) {
	cs, s := coopStateFixture(t, loginBodyWithCoop("c2"))
	_, err := s.Login(context.Background(), "a@b.co", "Password1")
	require.NoError(t, err)

	require.NoError(t, cs.Refresh(context.Background()))
	require.NotNil(t, cs.Selected())
	assert.Equal(t, "c2", cs.Selected().ID, "debe preferirse la cooperativa propia del usuario")
}

func TestCooperativeState_SinCoopPropia_SeleccionaPrimera(t *testing.T) {
	cs, s := coopStateFixture(t, loginBodyWithCoop("c9")) // no está en la lista
	_, err := s.Login(context.Background(), "a@b.co", "Password1")
	require.NoError(t, err)

	require.NoError(t, cs.Refresh(context.Background()))
	require.NotNil(t, cs.Selected())
	assert.Equal(t, "c1", cs.Selected().ID, "sin coincidencia se toma la primera")
}

func TestCooperativeState_ListaVacia_SinSeleccion(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	require.NoError(t, c.SetToken("tok"))
	cs := client.NewCooperativeState(c, nil)

	require.NoError(t, cs.Refresh(context.Background()))
	assert.Nil(t, cs.Selected())
}

func TestCooperativeState_ClearVaciaTodo(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(coopsBody))
	}))
	require.NoError(t, c.SetToken("tok"))
	cs := client.NewCooperativeState(c, nil)
	require.NoError(t, cs.Refresh(context.Background()))
	require.NotNil(t, cs.Selected())

	cs.Clear()
	assert.Nil(t, cs.Selected())
	assert.Empty(t, cs.List())
}

// El logout debe limpiar lista y selección sin que el consumidor llame a Clear.
func TestCooperativeState_LogoutLimpiaListaYSeleccion(t *testing.T) {
	cs, s := coopStateFixture(t, loginBodyWithCoop("c1"))
	_, err := s.Login(context.Background(), "a@b.co", "Password1")
	require.NoError(t, err)
	require.NoError(t, cs.Refresh(context.Background()))
	require.NotNil(t, cs.Selected())
	require.Len(t, cs.List(), 2)

	s.Logout(context.Background())

	assert.Nil(t, cs.Selected(), "la selección no debe sobrevivir al cierre de sesión")
	assert.Empty(t, cs.List())
}
