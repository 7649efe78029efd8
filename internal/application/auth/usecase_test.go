package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/coopfondos/coopfondos-api/internal/application/auth"
	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
	pkgjwt "github.com/coopfondos/coopfondos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail   map[string]*entity.User
	byID      map[string]*entity.User
	createErr error // fuerza el fallo de Create (p.ej. constraint único)
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}, byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}
func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ string) error { return nil }
func (r *fakeUserRepo) ListByCooperative(_ context.Context, _, _ string) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListIDsByCooperative(_ context.Context, _ string, _ bool) ([]string, error) {
	return nil, nil
}

type fakeCoopRepo struct {
	created []*entity.Cooperative
}

func (r *fakeCoopRepo) Create(_ context.Context, c *entity.Cooperative) error {
	r.created = append(r.created, c)
	return nil
}
func (r *fakeCoopRepo) GetByID(_ context.Context, _ string) (*entity.Cooperative, error) {
	return nil, nil
}
func (r *fakeCoopRepo) List(_ context.Context) ([]*entity.Cooperative, error) { return nil, nil }
func (r *fakeCoopRepo) Update(_ context.Context, _ *entity.Cooperative) error { return nil }

type fakeActivityRepo struct {
	entries []*entity.ActivityLog
}

func (r *fakeActivityRepo) Log(_ context.Context, e *entity.ActivityLog) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeActivityRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.ActivityLog, error) {
	var out []*entity.ActivityLog
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeTxRunner imita el Commit/Rollback real: ejecuta fn sobre copias de los
// repos y solo vuelca los cambios a los definitivos si fn no devuelve error.
type fakeTxRunner struct {
	users *fakeUserRepo
	coops *fakeCoopRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	userRepo repository.UserRepository,
	coopRepo repository.CooperativeRepository,
) error) error {
	staged := &fakeUserRepo{
		byEmail:   make(map[string]*entity.User, len(r.users.byEmail)),
		byID:      make(map[string]*entity.User, len(r.users.byID)),
		createErr: r.users.createErr,
	}
	for k, v := range r.users.byEmail {
		staged.byEmail[k] = v
	}
	for k, v := range r.users.byID {
		staged.byID[k] = v
	}
	stagedCoops := &fakeCoopRepo{created: append([]*entity.Cooperative(nil), r.coops.created...)}

	if err := fn(staged, stagedCoops); err != nil {
		return err
	}
	r.users.byEmail = staged.byEmail
	r.users.byID = staged.byID
	r.coops.created = stagedCoops.created
	return nil
}

const testSecret = "secreto-de-pruebas"

func newTestUseCase() (*auth.AuthUseCase, *fakeUserRepo, *fakeCoopRepo, *fakeActivityRepo) {
	users := newFakeUserRepo()
	coops := &fakeCoopRepo{}
	activity := &fakeActivityRepo{}
	runner := &fakeTxRunner{users: users, coops: coops}
	uc := auth.NewAuthUseCase(users, coops, activity, runner, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "coopfondos-test",
	})
	return uc, users, coops, activity
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:            "user-1",
		CooperativeID: "coop-1",
		Email:         email,
		PasswordHash:  string(hash),
		Name:          "Ana Soto",
		Role:          entity.RoleAdmin,
		Status:        status,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaCooperativaYAdmin(t *testing.T) {
	uc, users, coops, _ := newTestUseCase()

	err := uc.Register(context.Background(), dto.RegisterRequest{
		CooperativeName: "Cooperativa Austral",
		CooperativeType: "ahorro-credito",
		Name:            "Ana Soto",
		Email:           "ana@austral.coop",
		Password:        "Password1",
	})
	require.NoError(t, err)

	require.Len(t, coops.created, 1)
	assert.Equal(t, "Cooperativa Austral", coops.created[0].Name)

	user := users.byEmail["ana@austral.coop"]
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleAdmin, user.Role, "el primer usuario de la cooperativa es admin")
	assert.Equal(t, coops.created[0].ID, user.CooperativeID)
	assert.Equal(t, entity.StatusActive, user.Status)
	assert.NotEqual(t, "Password1", user.PasswordHash, "la contraseña nunca se guarda en plano")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, users, _, _ := newTestUseCase()
	seedUser(t, users, "ana@austral.coop", "Password1", entity.StatusActive)

	err := uc.Register(context.Background(), dto.RegisterRequest{
		CooperativeName: "Otra Coop",
		Name:            "Ana",
		Email:           "ana@austral.coop",
		Password:        "Password1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordDebil(t *testing.T) {
	uc, _, coops, _ := newTestUseCase()

	err := uc.Register(context.Background(), dto.RegisterRequest{
		CooperativeName: "Coop",
		Name:            "Ana",
		Email:           "ana@austral.coop",
		Password:        "corta1", // sin mayúscula y menos de 8
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, coops.created, "una contraseña inválida no debe crear nada")
}

func TestRegister_FalloAlCrearUsuario_NoDejaCooperativaHuerfana(t *testing.T) {
	uc, users, coops, _ := newTestUseCase()
	// Duplicado concurrente: pasó el pre-chequeo de email pero el INSERT choca
	// con el constraint único.
	users.createErr = domain.ErrEmailAlreadyExists

	err := uc.Register(context.Background(), dto.RegisterRequest{
		CooperativeName: "Cooperativa Austral",
		Name:            "Ana Soto",
		Email:           "ana@austral.coop",
		Password:        "Password1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, coops.created, "la transacción revierte la cooperativa cuando falla el alta del usuario")
	assert.Empty(t, users.byEmail)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ExitosoDevuelveTokenValido(t *testing.T) {
	uc, users, _, activity := newTestUseCase()
	seeded := seedUser(t, users, "ana@austral.coop", "Password1", entity.StatusActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "Ana@Austral.coop", // el email se normaliza a minúsculas
		Password: "Password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "60m", out.ExpiresIn)
	assert.Equal(t, seeded.Email, out.User.Email)

	userID, coopID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, userID)
	assert.Equal(t, seeded.CooperativeID, coopID)
	assert.Equal(t, entity.RoleAdmin, role)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, entity.ActionLogin, activity.entries[0].Action)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, users, _, _ := newTestUseCase()
	seedUser(t, users, "ana@austral.coop", "Password1", entity.StatusActive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@austral.coop",
		Password: "Incorrecta9",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente_MismoError(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@austral.coop",
		Password: "Password1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"email inexistente y password incorrecta deben devolver el mismo error")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _, _ := newTestUseCase()
	seedUser(t, users, "ana@austral.coop", "Password1", entity.StatusInactive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@austral.coop",
		Password: "Password1",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	uc, users, _, _ := newTestUseCase()
	seedUser(t, users, "ana@austral.coop", "Password1", entity.StatusActive)

	err := uc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "Incorrecta9",
		NewPassword:     "Password2",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_NuevaNoPasaPolitica(t *testing.T) {
	uc, users, _, _ := newTestUseCase()
	seedUser(t, users, "ana@austral.coop", "Password1", entity.StatusActive)

	err := uc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "Password1",
		NewPassword:     "sinmayuscula1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword_Exitoso(t *testing.T) {
	uc, users, _, _ := newTestUseCase()
	seedUser(t, users, "ana@austral.coop", "Password1", entity.StatusActive)

	err := uc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "Password1",
		NewPassword:     "Password2",
	})
	require.NoError(t, err)

	// La contraseña nueva debe servir para el siguiente login.
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@austral.coop",
		Password: "Password2",
	})
	assert.NoError(t, err)
}
