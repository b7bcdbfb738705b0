// Package user реализует управление пользователями компаний и начальную
// регистрацию администратора платформы.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/ident"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/validate"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/services/access"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u models.User) (*models.User, error)
	ListUsers(ctx context.Context, companyID string) ([]*models.User, error)
	// RemoveUser удаляет пользователя; storage.ErrInUse, если у него есть занятия.
	RemoveUser(ctx context.Context, id string) error
}

// CompanyRepository нужен для проверки существования компании.
type CompanyRepository interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
}

// CompanyEnsurer находит компанию по названию или создаёт её.
type CompanyEnsurer interface {
	Ensure(ctx context.Context, name string) (*models.Company, bool, error)
}

// CompanyRegistrar создаёт компанию при самостоятельной регистрации.
type CompanyRegistrar interface {
	Register(ctx context.Context, in models.CompanyInput) (*models.Company, error)
}

// PasswordHasher хеширует пароли с перцем.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// Service реализует бизнес-логику работы с пользователями.
type Service struct {
	users     UserRepository
	companies CompanyRepository
	hasher    PasswordHasher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, companies CompanyRepository, hasher PasswordHasher, log *slog.Logger) *Service {
	return &Service{users: users, companies: companies, hasher: hasher, log: log}
}

// Create создаёт пользователя в компании. Назначить роль выше собственной нельзя.
func (s *Service) Create(ctx context.Context, actor *models.Actor, in models.NewUserInput) (*models.User, error) {
	const op = "user.Create"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	company, err := s.getCompany(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", company.ID, false); err != nil {
		return nil, err
	}

	u := models.User{
		CompanyID: company.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      models.RoleMember,
		Status:    models.StatusActive,
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	if !u.Role.Valid() {
		return nil, apperr.Validation("field role is not valid")
	}
	if u.Role > actor.Role {
		return nil, apperr.Forbidden("cannot assign a role above your own")
	}

	created, err := s.insert(ctx, u, in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new user", slog.String("op", op), slog.String("id", created.ID))
	return created, nil
}

// Update изменяет пользователя. Member может изменять только себя и не может
// менять роль, статус и компанию; переводить в другую компанию может только SuperAdmin.
func (s *Service) Update(ctx context.Context, actor *models.Actor, id string, in models.UpdateUserInput) (*models.User, error) {
	const op = "user.Update"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	existing, err := s.getUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, existing.ID, existing.CompanyID, true); err != nil {
		return nil, err
	}
	if existing.Role > actor.Role {
		return nil, apperr.Forbidden("not authorized")
	}

	next := *existing
	if in.Role != nil && *in.Role != existing.Role {
		if actor.Role == models.RoleMember || *in.Role > actor.Role {
			return nil, apperr.Forbidden("not allowed to change role")
		}
		next.Role = *in.Role
	}
	if in.Status != nil && *in.Status != existing.Status {
		if actor.Role == models.RoleMember {
			return nil, apperr.Forbidden("not allowed to change status")
		}
		next.Status = *in.Status
	}
	if in.CompanyID != nil && !ident.Equal(*in.CompanyID, existing.CompanyID) {
		if !access.IsSuperAdmin(actor) {
			return nil, apperr.Forbidden("not allowed to change company")
		}
		company, err := s.getCompany(ctx, *in.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		next.CompanyID = company.ID
	}
	if in.FirstName != nil {
		next.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		next.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		next.Email = strings.TrimSpace(*in.Email)
		if err := s.checkEmail(ctx, next.Email, existing.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		next.PasswordHash = hash
	}

	updated, err := s.users.UpdateUser(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, conflict(notFound(err)))
	}
	s.log.Info("updated user", slog.String("op", op), slog.String("id", updated.ID))
	return updated, nil
}

// Get возвращает пользователя своей компании. Чужой пользователь неотличим от несуществующего.
func (s *Service) Get(ctx context.Context, actor *models.Actor, id string) (*models.User, error) {
	const op = "user.Get"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ident.Equal(actor.ID, u.ID) {
		return u, nil
	}
	if err := access.Authorize(actor, u.ID, u.CompanyID, false); err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

// List возвращает пользователей компании actor. SuperAdmin может указать другую компанию.
func (s *Service) List(ctx context.Context, actor *models.Actor, companyID string) ([]*models.User, error) {
	const op = "user.List"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	target := actor.CompanyID
	if access.IsSuperAdmin(actor) && strings.TrimSpace(companyID) != "" {
		company, err := s.getCompany(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		target = company.ID
	}
	if ident.Canonical(target) == "" {
		return []*models.User{}, nil
	}
	if err := access.Authorize(actor, "", target, false); err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx, ident.Canonical(target))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Delete удаляет пользователя своей компании. Доступно Manager и SuperAdmin;
// удалить себя или пользователя с ролью выше своей нельзя. Пользователь
// с занятиями не удаляется.
func (s *Service) Delete(ctx context.Context, actor *models.Actor, id string) (*models.User, error) {
	const op = "user.Delete"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if actor.Role < models.RoleManager {
		return nil, apperr.Forbidden("not authorized")
	}
	existing, err := s.getUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", existing.CompanyID, false); err != nil {
		return nil, apperr.NotFound("user not found")
	}
	if ident.Equal(actor.ID, existing.ID) {
		return nil, apperr.Validation("cannot delete yourself")
	}
	if existing.Role > actor.Role {
		return nil, apperr.Forbidden("cannot delete a user with a role above your own")
	}
	if err := s.users.RemoveUser(ctx, existing.ID); err != nil {
		if errors.Is(err, storage.ErrInUse) {
			return nil, apperr.Validation("user has scheduled lessons")
		}
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	s.log.Info("removed user", slog.String("op", op), slog.String("id", existing.ID))
	return existing, nil
}

// Register регистрирует новую компанию и её первого пользователя с ролью Manager.
// Email проверяется до создания компании.
func (s *Service) Register(ctx context.Context, companies CompanyRegistrar, in models.RegisterInput) (*models.User, error) {
	const op = "user.Register"
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, in.Email, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	company, err := companies.Register(ctx, models.CompanyInput{Name: in.CompanyName})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.insert(ctx, models.User{
		CompanyID: company.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      models.RoleManager,
		Status:    models.StatusActive,
	}, in.Password)
	if err != nil {
		s.log.Warn("company registered without manager",
			slog.String("op", op), slog.String("company_id", company.ID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered new user", slog.String("op", op), slog.String("id", created.ID))
	return created, nil
}

// SuperUserInput — данные начальной регистрации администратора платформы.
type SuperUserInput struct {
	CompanyName string
	FirstName   string
	LastName    string
	Email       string
	Password    string
}

// CreateSuperUser находит или создаёт компанию и регистрирует в ней активного SuperAdmin.
// Если пользователь с таким email уже есть, возвращает его и created=false.
func (s *Service) CreateSuperUser(ctx context.Context, companies CompanyEnsurer, in SuperUserInput) (*models.User, bool, error) {
	const op = "user.CreateSuperUser"
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, false, apperr.Validation("email and password are required")
	}

	existing, err := s.users.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	company, _, err := companies.Ensure(ctx, in.CompanyName)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.insert(ctx, models.User{
		CompanyID: company.ID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Role:      models.RoleSuperAdmin,
		Status:    models.StatusActive,
	}, in.Password)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created super user", slog.String("op", op), slog.String("id", created.ID))
	return created, true, nil
}

func (s *Service) insert(ctx context.Context, u models.User, plain string) (*models.User, error) {
	if err := s.checkEmail(ctx, u.Email, ""); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	created, err := s.users.CreateUser(ctx, u)
	if err != nil {
		return nil, conflict(err)
	}
	return created, nil
}

func (s *Service) checkEmail(ctx context.Context, email, excludeID string) error {
	u, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return err
	case excludeID != "" && ident.Equal(u.ID, excludeID):
		return nil
	default:
		return apperr.Validation("email already in use")
	}
}

func (s *Service) getUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetUser(ctx, ident.Canonical(id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *Service) getCompany(ctx context.Context, id string) (*models.Company, error) {
	c, err := s.companies.GetCompany(ctx, ident.Canonical(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}
	return c, nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	return err
}

func conflict(err error) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return apperr.Validation("email already in use")
	}
	return err
}
