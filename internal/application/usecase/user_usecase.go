package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
	"github.com/coopfondos/coopfondos-api/internal/domain/validate"
)

// UserUseCase administración de usuarios de la cooperativa (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista los usuarios de la cooperativa, con filtro por nombre o email.
func (uc *UserUseCase) List(ctx context.Context, cooperativeID, search string) ([]dto.UserResponse, error) {
	users, err := uc.repo.ListByCooperative(ctx, cooperativeID, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userToResponse(u))
	}
	return out, nil
}

// Create da de alta un usuario. Si no llega contraseña se genera una temporal
// que se devuelve una única vez en la respuesta.
func (uc *UserUseCase) Create(ctx context.Context, cooperativeID string, in dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if err := validate.Email(in.Email); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleSocio
	}
	if role != entity.RoleAdmin && role != entity.RoleSocio {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	existing, err := uc.repo.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	password := in.Password
	var temporary string
	if password == "" {
		temporary = GenerateTemporaryPassword()
		password = temporary
	} else if err := validate.Password(password); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		CooperativeID: cooperativeID,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:  string(hash),
		Name:          strings.TrimSpace(in.Name),
		Role:          role,
		RUT:           in.RUT,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.CreateUserResponse{User: *userToResponse(user), TemporaryPassword: temporary}, nil
}

// ChangeRole cambia el rol de un usuario de la misma cooperativa.
func (uc *UserUseCase) ChangeRole(ctx context.Context, cooperativeID, userID, role string) (*dto.UserResponse, error) {
	if role != entity.RoleAdmin && role != entity.RoleSocio {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	user, err := uc.userInCooperative(ctx, cooperativeID, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// ChangeStatus activa o desactiva un usuario de la misma cooperativa.
func (uc *UserUseCase) ChangeStatus(ctx context.Context, cooperativeID, userID, status string) (*dto.UserResponse, error) {
	if status != entity.StatusActive && status != entity.StatusInactive {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	user, err := uc.userInCooperative(ctx, cooperativeID, userID)
	if err != nil {
		return nil, err
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// ResetPassword genera una contraseña temporal nueva para el usuario.
func (uc *UserUseCase) ResetPassword(ctx context.Context, cooperativeID, userID string) (*dto.ResetPasswordResponse, error) {
	user, err := uc.userInCooperative(ctx, cooperativeID, userID)
	if err != nil {
		return nil, err
	}
	temporary := GenerateTemporaryPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.ResetPasswordResponse{TemporaryPassword: temporary}, nil
}

// userInCooperative obtiene el usuario verificando que pertenezca a la cooperativa
// del administrador; evita administrar usuarios de otros tenants.
func (uc *UserUseCase) userInCooperative(ctx context.Context, cooperativeID, userID string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CooperativeID != cooperativeID {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Alfabetos para la contraseña temporal; se garantiza al menos un carácter de
// cada clase para cumplir la política de contraseñas.
const (
	tmpUpper  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	tmpLower  = "abcdefghijkmnpqrstuvwxyz"
	tmpDigits = "23456789"
	tmpLen    = 12
)

// GenerateTemporaryPassword genera una contraseña aleatoria que cumple la
// política (mayúscula, minúscula y dígito; 12 caracteres).
func GenerateTemporaryPassword() string {
	all := tmpUpper + tmpLower + tmpDigits
	b := make([]byte, tmpLen)
	b[0] = randChar(tmpUpper)
	b[1] = randChar(tmpLower)
	b[2] = randChar(tmpDigits)
	for i := 3; i < tmpLen; i++ {
		b[i] = randChar(all)
	}
	// Mezclar para no fijar las clases en posiciones conocidas
	for i := len(b) - 1; i > 0; i-- {
		j := randIndex(i + 1)
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func randChar(alphabet string) byte {
	return alphabet[randIndex(len(alphabet))]
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand no debería fallar; si falla, no hay fuente de entropía utilizable
		panic(err)
	}
	return int(v.Int64())
}

func userToResponse(u *entity.User) *dto.UserResponse {
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
