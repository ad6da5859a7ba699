package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios (administración).
type UserUseCase struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, roles repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, roles: roles}
}

// Create crea un usuario activo con el rol indicado.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.NewValidationError("email", "es requerido")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "debe tener al menos 8 caracteres")
	}
	if err := uc.checkRole(ctx, in.Role); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// Update edita email, nombre, rol, estado o contraseña.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if err := uc.checkRole(ctx, *in.Role); err != nil {
			return nil, err
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if *in.Status != entity.UserStatusActive && *in.Status != entity.UserStatusInactive {
			return nil, domain.NewValidationError("status", "debe ser active o inactive")
		}
		user.Status = *in.Status
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 8 {
			return nil, domain.NewValidationError("password", "debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios ordenados por email.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.NewPageResponse(page.Limit, page.Offset, total)}, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) checkRole(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("role", "es requerido")
	}
	role, err := uc.roles.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.NewNotFound("rol", name)
	}
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RoleUseCase administración de roles. Renombrar un rol actualiza a sus usuarios.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// Create crea un rol.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CatalogRequest) (*dto.CatalogItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	now := time.Now()
	role := &entity.Role{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return roleResponse(role), nil
}

// Update renombra un rol.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.CatalogRequest) (*dto.CatalogItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NewNotFound("rol", id)
	}
	role.Name = name
	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return roleResponse(role), nil
}

// List lista todos los roles.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.CatalogItemResponse, error) {
	roles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, *roleResponse(r))
	}
	return out, nil
}

// Delete elimina un rol sin usuarios.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func roleResponse(r *entity.Role) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}
