package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/usecase"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
	"github.com/jhoicas/Ganancias-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	partners profit.Participants
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, partners profit.Participants, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, partners: partners, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. ErrDuplicate si el email ya existe.
// Un usuario partner debe estar vinculado a un socio configurado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: email y contraseña (mínimo 8 caracteres) son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	role := in.Role
	if role == "" {
		role = entity.RoleViewer
	}
	switch role {
	case entity.RoleAdmin, entity.RolePartner, entity.RoleViewer:
	default:
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	owner := entity.Owner(in.Owner)
	if owner != "" && !uc.isPartner(owner) {
		return nil, fmt.Errorf("%w: %q no es un socio", domain.ErrInvalidInput, owner)
	}
	if role == entity.RolePartner && owner == "" {
		return nil, fmt.Errorf("%w: un usuario partner necesita socio", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Owner:        owner,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.EntityToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, string(user.Owner), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.EntityToUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) isPartner(o entity.Owner) bool {
	for _, p := range uc.partners {
		if p.Owner == o {
			return true
		}
	}
	return false
}
