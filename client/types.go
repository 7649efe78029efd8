package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos del SDK: cada payload de la API tiene su struct explícito, parseado
// en la frontera del cliente. Los montos viajan como decimal para no perder
// precisión en cifras contables.

// User perfil del usuario autenticado.
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	CooperativeID string     `json:"cooperativeId,omitempty"`
	RUT           string     `json:"rut,omitempty"`
	Status        string     `json:"status"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// LoginResult token más perfil devueltos por POST /api/auth/login.
type LoginResult struct {
	Token     string `json:"token"`
	User      User   `json:"user"`
	ExpiresIn string `json:"expiresIn"`
}

// RegisterInput alta de una cooperativa con su usuario administrador.
type RegisterInput struct {
	CooperativeName string `json:"cooperativeName"`
	CooperativeType string `json:"cooperativeType"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
}

// ActivityItem entrada de la bitácora del usuario.
type ActivityItem struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cooperative elemento del selector de cooperativas.
type Cooperative struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	RUC  string `json:"ruc,omitempty"`
}

// CooperativeInfo ficha completa de la cooperativa.
type CooperativeInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	RUC     string `json:"ruc,omitempty"`
	Type    string `json:"type,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateCooperativeInput actualización de la ficha.
type UpdateCooperativeInput struct {
	Name    string `json:"name"`
	RUC     string `json:"ruc,omitempty"`
	Address string `json:"address,omitempty"`
}

// KPI métrica del dashboard con tendencia respecto al período anterior.
type KPI struct {
	ID            string          `json:"id"`
	Label         string          `json:"label"`
	Value         decimal.Decimal `json:"value"`
	PreviousValue decimal.Decimal `json:"previousValue"`
	Trend         string          `json:"trend"`
	Format        string          `json:"format"`
}

// BalanceEntry línea del balance de comprobación y saldos.
type BalanceEntry struct {
	ID            string          `json:"id"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	InitialDebit  decimal.Decimal `json:"initialDebit"`
	InitialCredit decimal.Decimal `json:"initialCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	FinalDebit    decimal.Decimal `json:"finalDebit"`
	FinalCredit   decimal.Decimal `json:"finalCredit"`
}

// BalanceSummary totales del balance; IsBalanced refleja el cuadre
// activo = pasivo + patrimonio.
type BalanceSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// BalanceSheet respuesta de GET /api/balance-sheet.
type BalanceSheet struct {
	Entries []BalanceEntry `json:"entries"`
	Summary BalanceSummary `json:"summary"`
}

// CashFlowEntry movimiento del flujo de efectivo.
type CashFlowEntry struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowSummary totales por actividad y flujo neto.
type CashFlowSummary struct {
	Operating   decimal.Decimal `json:"operating"`
	Investing   decimal.Decimal `json:"investing"`
	Financing   decimal.Decimal `json:"financing"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// CashFlow respuesta de GET /api/cash-flow.
type CashFlow struct {
	Entries []CashFlowEntry `json:"entries"`
	Summary CashFlowSummary `json:"summary"`
}

// CashFlowHistoryItem punto de la serie histórica de flujo de caja.
type CashFlowHistoryItem struct {
	Period      string          `json:"period"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Operating   decimal.Decimal `json:"operating"`
	Investing   decimal.Decimal `json:"investing"`
	Financing   decimal.Decimal `json:"financing"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// Fee aporte de un socio en un período.
type Fee struct {
	ID                   string          `json:"id"`
	MemberID             string          `json:"memberId"`
	MemberName           string          `json:"memberName"`
	Period               string          `json:"period"`
	ExpectedContribution decimal.Decimal `json:"expectedContribution"`
	PaymentMade          decimal.Decimal `json:"paymentMade"`
	Debt                 decimal.Decimal `json:"debt"`
	Status               string          `json:"status"`
}

// FeeSummary agregados de aportes del período.
type FeeSummary struct {
	TotalExpected   decimal.Decimal `json:"totalExpected"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	MembersWithDebt int             `json:"membersWithDebt"`
	TotalMembers    int             `json:"totalMembers"`
	CollectionRate  decimal.Decimal `json:"collectionRate"`
}

// Fees respuesta de GET /api/membership-fees.
type Fees struct {
	Fees    []Fee      `json:"fees"`
	Summary FeeSummary `json:"summary"`
}

// RatioPoint punto histórico de un indicador.
type RatioPoint struct {
	Period string          `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// Ratio indicador financiero con tendencia e histórico.
type Ratio struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
	Trend       string          `json:"trend"`
	History     []RatioPoint    `json:"history,omitempty"`
}

// UploadResult resultado de una carga de archivo.
type UploadResult struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	RecordsCount int    `json:"recordsCount"`
}

// UploadRecord entrada del historial de cargas.
type UploadRecord struct {
	ID           string    `json:"id"`
	Module       string    `json:"module"`
	FileName     string    `json:"fileName"`
	UserName     string    `json:"userName"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Status       string    `json:"status"`
	RecordsCount int       `json:"recordsCount"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUserInput alta de usuario por un administrador.
type CreateUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	RUT      string `json:"rut,omitempty"`
	Password string `json:"password,omitempty"`
}

// CreatedUser usuario creado, con la contraseña temporal si se generó.
type CreatedUser struct {
	User              User   `json:"user"`
	TemporaryPassword string `json:"temporaryPassword,omitempty"`
}

// Notification notificación vista desde el buzón.
type Notification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	SenderName string    `json:"senderName"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationHistoryItem notificación enviada con métricas de alcance.
type NotificationHistoryItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	SenderName     string    `json:"senderName"`
	RecipientType  string    `json:"recipientType"`
	RecipientCount int       `json:"recipientCount"`
	ReadCount      int       `json:"readCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SendNotificationInput envío de un aviso a socios.
type SendNotificationInput struct {
	Title           string   `json:"title"`
	Message         string   `json:"message"`
	RecipientType   string   `json:"recipientType"`
	SpecificUserIDs []string `json:"specificUserIds,omitempty"`
}

// SendNotificationResult identificador y alcance del envío.
type SendNotificationResult struct {
	ID             string `json:"id"`
	RecipientCount int    `json:"recipientCount"`
}

// Settings preferencias de la cooperativa agrupadas por sección.
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Backups       BackupSettings       `json:"backups"`
}

// NotificationSettings preferencias de avisos por correo.
type NotificationSettings struct {
	EmailNotifications  bool `json:"emailNotifications"`
	UploadNotifications bool `json:"uploadNotifications"`
	PaymentReminders    bool `json:"paymentReminders"`
}

// SecuritySettings preferencias de seguridad de la sesión.
type SecuritySettings struct {
	TwoFactorAuth  bool `json:"twoFactorAuth"`
	SessionTimeout bool `json:"sessionTimeout"`
}

// BackupSettings preferencias de respaldo.
type BackupSettings struct {
	AutoBackup bool `json:"autoBackup"`
}

// OdooStatus estado de la integración con Odoo.
type OdooStatus struct {
	IsConnected bool       `json:"isConnected"`
	LastSync    *time.Time `json:"lastSync"`
}

// OdooConfig credenciales de conexión a Odoo.
type OdooConfig struct {
	URL      string `json:"url"`
	Database string `json:"database"`
	Username string `json:"username"`
	APIKey   string `json:"apiKey"`
}

// OdooTestResult resultado de la prueba de conexión.
type OdooTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
