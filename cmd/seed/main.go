package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/infrastructure/postgres"
	"github.com/coopfondos/coopfondos-api/pkg/config"
	"github.com/coopfondos/coopfondos-api/pkg/logger"
)

// Siembra datos de demostración: una cooperativa, un admin, tres socios y
// seis meses de balance, flujo de caja, aportes e indicadores. Pensado para
// entornos de desarrollo; reutilizarlo contra producción duplicaría datos.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	coopRepo := postgres.NewCooperativeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	cashFlowRepo := postgres.NewCashFlowRepository(pool)
	feeRepo := postgres.NewFeeRepository(pool)
	ratioRepo := postgres.NewRatioRepository(pool)

	now := time.Now()
	coop := &entity.Cooperative{
		ID:        uuid.New().String(),
		Name:      "Cooperativa Esperanza",
		RUC:       "76.543.210-K",
		Type:      "ahorro-credito",
		Address:   "Av. Libertad 1234, Valparaíso",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := coopRepo.Create(ctx, coop); err != nil {
		log.Fatal().Err(err).Msg("creando cooperativa demo")
	}

	admin := seedUser(ctx, log, userRepo, coop.ID, "admin@esperanza.coop", "Carla Mendoza", entity.RoleAdmin, "")
	members := []*entity.User{
		seedUser(ctx, log, userRepo, coop.ID, "jperez@esperanza.coop", "Juan Pérez", entity.RoleSocio, "12.345.678-9"),
		seedUser(ctx, log, userRepo, coop.ID, "mrojas@esperanza.coop", "María Rojas", entity.RoleSocio, "13.456.789-0"),
		seedUser(ctx, log, userRepo, coop.ID, "ltapia@esperanza.coop", "Luis Tapia", entity.RoleSocio, "14.567.890-1"),
	}
	log.Info().Str("admin", admin.Email).Int("socios", len(members)).Msg("usuarios demo creados")

	// Seis meses hacia atrás desde el mes actual, con montos que crecen
	// levemente para que las tendencias del dashboard tengan dirección.
	y, m := now.Year(), int(now.Month())
	for i := 0; i < 6; i++ {
		growth := decimal.NewFromInt(int64(5 - i)).Mul(decimal.NewFromInt(100000))

		if err := balanceRepo.InsertPeriod(ctx, coop.ID, y, m, balanceEntries(coop.ID, y, m, growth)); err != nil {
			log.Fatal().Err(err).Int("year", y).Int("month", m).Msg("sembrando balance")
		}
		if err := cashFlowRepo.InsertPeriod(ctx, coop.ID, y, m, cashFlowEntries(coop.ID, y, m, growth)); err != nil {
			log.Fatal().Err(err).Int("year", y).Int("month", m).Msg("sembrando flujo de caja")
		}
		if err := feeRepo.InsertPeriod(ctx, coop.ID, y, m, fees(coop.ID, y, m, members, i)); err != nil {
			log.Fatal().Err(err).Int("year", y).Int("month", m).Msg("sembrando aportes")
		}
		if err := ratioRepo.InsertPeriod(ctx, coop.ID, y, m, ratios(coop.ID, y, m, i)); err != nil {
			log.Fatal().Err(err).Int("year", y).Int("month", m).Msg("sembrando indicadores")
		}

		m--
		if m == 0 {
			m = 12
			y--
		}
	}

	log.Info().Msg("datos de demostración listos (login: admin@esperanza.coop / Esperanza1)")
}

func seedUser(ctx context.Context, log *logger.Logger, repo interface {
	Create(ctx context.Context, user *entity.User) error
}, coopID, email, name, role, rut string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("Esperanza1"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("generando hash de contraseña")
	}
	now := time.Now()
	u := &entity.User{
		ID:            uuid.New().String(),
		CooperativeID: coopID,
		Email:         email,
		PasswordHash:  string(hash),
		Name:          name,
		Role:          role,
		RUT:           rut,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("creando usuario demo")
	}
	return u
}

func balanceEntries(coopID string, year, month int, growth decimal.Decimal) []*entity.BalanceEntry {
	base := func(code, name, category string, debit, credit int64) *entity.BalanceEntry {
		return &entity.BalanceEntry{
			ID:            uuid.New().String(),
			CooperativeID: coopID,
			Year:          year,
			Month:         month,
			AccountCode:   code,
			AccountName:   name,
			Category:      category,
			FinalDebit:    decimal.NewFromInt(debit),
			FinalCredit:   decimal.NewFromInt(credit),
			CreatedAt:     time.Now(),
		}
	}
	caja := base("1.1.01", "Caja y bancos", entity.CategoryAssets, 12500000, 0)
	caja.FinalDebit = caja.FinalDebit.Sub(growth)
	return []*entity.BalanceEntry{
		caja,
		base("1.2.01", "Colocaciones a socios", entity.CategoryAssets, 38000000, 0),
		base("2.1.01", "Depósitos de socios", entity.CategoryLiabilities, 0, 31500000),
		base("2.2.01", "Obligaciones bancarias", entity.CategoryLiabilities, 0, 6000000),
		// El patrimonio absorbe el resto para que el balance cierre cuadrado.
		base("3.1.01", "Capital social", entity.CategoryEquity, 0, 13000000-growthInt(growth)),
	}
}

func growthInt(d decimal.Decimal) int64 {
	return d.IntPart()
}

func cashFlowEntries(coopID string, year, month int, growth decimal.Decimal) []*entity.CashFlowEntry {
	entry := func(category, description string, amount int64) *entity.CashFlowEntry {
		return &entity.CashFlowEntry{
			ID:            uuid.New().String(),
			CooperativeID: coopID,
			Year:          year,
			Month:         month,
			Category:      category,
			Description:   description,
			Amount:        decimal.NewFromInt(amount),
			CreatedAt:     time.Now(),
		}
	}
	return []*entity.CashFlowEntry{
		entry(entity.FlowOperating, "Recaudación de aportes", 2400000-growth.IntPart()/2),
		entry(entity.FlowOperating, "Gastos administrativos", -950000),
		entry(entity.FlowInvesting, "Compra de equipamiento", -300000),
		entry(entity.FlowFinancing, "Amortización crédito bancario", -450000),
	}
}

func fees(coopID string, year, month int, members []*entity.User, offset int) []*entity.MembershipFee {
	expected := decimal.NewFromInt(50000)
	out := make([]*entity.MembershipFee, 0, len(members))
	for i, member := range members {
		paid := expected
		// El último socio queda con deuda en los meses pares para que la
		// tasa de cobranza y los filtros de morosidad tengan casos reales.
		if i == len(members)-1 && offset%2 == 0 {
			paid = decimal.NewFromInt(20000)
		}
		out = append(out, &entity.MembershipFee{
			ID:                   uuid.New().String(),
			CooperativeID:        coopID,
			Year:                 year,
			Month:                month,
			MemberID:             member.RUT,
			MemberName:           member.Name,
			ExpectedContribution: expected,
			PaymentMade:          paid,
			CreatedAt:            time.Now(),
		})
	}
	return out
}

func ratios(coopID string, year, month int, offset int) []*entity.FinancialRatio {
	ratio := func(name, description string, value float64) *entity.FinancialRatio {
		return &entity.FinancialRatio{
			ID:            uuid.New().String(),
			CooperativeID: coopID,
			Year:          year,
			Month:         month,
			Name:          name,
			Value:         decimal.NewFromFloat(value),
			Description:   description,
			CreatedAt:     time.Now(),
		}
	}
	drift := float64(offset) * 0.02
	return []*entity.FinancialRatio{
		ratio("Liquidez corriente", "Activo corriente sobre pasivo corriente", 1.45-drift),
		ratio("Endeudamiento", "Pasivo total sobre patrimonio", 0.62+drift),
		ratio("ROA", "Resultado sobre activos totales", 0.038-drift/10),
		ratio("Morosidad", "Cartera vencida sobre colocaciones", 0.051+drift/5),
	}
}
