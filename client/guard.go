package client

// Decision resultado del guard de una página protegida.
type Decision int

const (
	// DecisionLoading la sesión aún se está validando: mostrar spinner.
	DecisionLoading Decision = iota
	// DecisionRedirectLogin no hay sesión: redirigir a /login.
	DecisionRedirectLogin
	// DecisionRedirectDashboard sesión válida pero sin permisos para la
	// página admin: redirigir a /dashboard.
	DecisionRedirectDashboard
	// DecisionRender sesión válida con permisos: renderizar la página.
	DecisionRender
)

// Guard decide el acceso a páginas protegidas a partir de la sesión.
type Guard struct {
	session *Session
}

// NewGuard construye el guard sobre la sesión.
func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// Check evalúa el acceso; adminOnly marca las páginas exclusivas de admin.
func (g *Guard) Check(adminOnly bool) Decision {
	switch g.session.State() {
	case StateLoading:
		return DecisionLoading
	case StateAnonymous:
		return DecisionRedirectLogin
	}
	if adminOnly && !g.session.IsAdmin() {
		return DecisionRedirectDashboard
	}
	return DecisionRender
}
