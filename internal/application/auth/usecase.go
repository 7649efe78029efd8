package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
	"github.com/coopfondos/coopfondos-api/internal/domain/validate"
	"github.com/coopfondos/coopfondos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil,
// cambio de contraseña y bitácora de actividad.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	coopRepo     repository.CooperativeRepository
	activityRepo repository.ActivityRepository
	txRunner     TxRunner
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	coopRepo repository.CooperativeRepository,
	activityRepo repository.ActivityRepository,
	txRunner TxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		coopRepo:     coopRepo,
		activityRepo: activityRepo,
		txRunner:     txRunner,
		jwtCfg:       jwtCfg,
	}
}

// Register da de alta una cooperativa nueva junto con su usuario administrador
// en una sola transacción: si el alta del usuario falla (por ejemplo un email
// duplicado que pasó el pre-chequeo), la cooperativa no queda huérfana.
// La validación de contraseña se repite aquí aunque el cliente ya la haya hecho.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) error {
	if strings.TrimSpace(in.CooperativeName) == "" {
		return fmt.Errorf("%w: nombre de cooperativa requerido", domain.ErrInvalidInput)
	}
	if err := validate.Email(in.Email); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if err := validate.Password(in.Password); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	coop := &entity.Cooperative{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.CooperativeName),
		Type:      in.CooperativeType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:            uuid.New().String(),
		CooperativeID: coop.ID,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:  string(hash),
		Name:          name,
		Role:          entity.RoleAdmin,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return uc.txRunner.Run(ctx, func(
		userRepo repository.UserRepository,
		coopRepo repository.CooperativeRepository,
	) error {
		if err := coopRepo.Create(ctx, coop); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
}

// Login verifica email/password, genera JWT, actualiza last_login y registra
// la actividad. Credenciales inválidas y usuario inexistente devuelven el
// mismo error para no revelar qué emails existen.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.StatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CooperativeID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	uc.logActivity(ctx, user.ID, entity.ActionLogin, "")

	now := time.Now()
	user.LastLogin = &now
	return &dto.LoginResponse{
		Token:     token,
		User:      *toUserResponse(user),
		ExpiresIn: fmt.Sprintf("%dm", uc.jwtCfg.ExpMinutes),
	}, nil
}

// Logout registra el cierre de sesión. El descarte del token es responsabilidad
// del cliente; este endpoint existe para la bitácora.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) {
	uc.logActivity(ctx, userID, entity.ActionLogout, "")
}

// Me devuelve el perfil del usuario autenticado. Se usa también para validar
// un token persistido al arrancar el cliente.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual y aplica la política a la nueva.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	if err := validate.Password(in.NewPassword); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	uc.logActivity(ctx, userID, entity.ActionPasswordChanged, "")
	return nil
}

// Activity devuelve las últimas entradas de la bitácora del usuario.
func (uc *AuthUseCase) Activity(ctx context.Context, userID string, limit int) ([]dto.ActivityItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	entries, err := uc.activityRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ActivityItem{
			ID: e.ID, Action: e.Action, Details: e.Details, CreatedAt: e.CreatedAt,
		})
	}
	return items, nil
}

// logActivity registra sin propagar errores: la bitácora nunca bloquea el flujo.
func (uc *AuthUseCase) logActivity(ctx context.Context, userID, action, details string) {
	_ = uc.activityRepo.Log(ctx, &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		CooperativeID: u.CooperativeID,
		RUT:           u.RUT,
		Status:        u.Status,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
	}
}
