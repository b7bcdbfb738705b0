// Package company реализует регистрацию, изменение и просмотр компаний.
package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/ident"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/validate"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/services/access"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

// CompanyRepository определяет методы для работы с компаниями в хранилище.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, c models.Company) (*models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	// GetCompanyByName ищет компанию по названию без учёта регистра.
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	UpdateCompany(ctx context.Context, c models.Company) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
}

// Service реализует бизнес-логику работы с компаниями.
type Service struct {
	companies CompanyRepository
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(companies CompanyRepository, log *slog.Logger) *Service {
	return &Service{companies: companies, log: log}
}

// Create регистрирует компанию. Доступно только SuperAdmin.
func (s *Service) Create(ctx context.Context, actor *models.Actor, in models.CompanyInput) (*models.Company, error) {
	const op = "company.Create"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if !access.IsSuperAdmin(actor) {
		return nil, apperr.Forbidden("not authorized")
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	created, err := s.create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new company", slog.String("op", op), slog.String("id", created.ID))
	return created, nil
}

// Register создаёт компанию при самостоятельной регистрации, без проверки прав.
// Занятое название (без учёта регистра) — ошибка валидации.
func (s *Service) Register(ctx context.Context, in models.CompanyInput) (*models.Company, error) {
	const op = "company.Register"
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	created, err := s.create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered new company", slog.String("op", op), slog.String("id", created.ID))
	return created, nil
}

// Update перезаписывает данные компании. Доступно только SuperAdmin.
func (s *Service) Update(ctx context.Context, actor *models.Actor, id string, in models.CompanyInput) (*models.Company, error) {
	const op = "company.Update"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if !access.IsSuperAdmin(actor) {
		return nil, apperr.Forbidden("not authorized")
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	existing, err := s.companies.GetCompany(ctx, ident.Canonical(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}

	same, err := s.companies.GetCompanyByName(ctx, in.Name)
	switch {
	case err == nil && !ident.Equal(same.ID, existing.ID):
		return nil, apperr.Validation("company with this name already exists")
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.companies.UpdateCompany(ctx, models.Company{
		ID:           existing.ID,
		Name:         in.Name,
		Description:  in.Description,
		Address:      in.Address,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		LogoURL:      in.LogoURL,
		Timezone:     in.Timezone,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, apperr.Validation("company with this name already exists")
		}
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	s.log.Info("updated company", slog.String("op", op), slog.String("id", updated.ID))
	return updated, nil
}

// List возвращает все компании. Доступно только SuperAdmin.
func (s *Service) List(ctx context.Context, actor *models.Actor) ([]*models.Company, error) {
	const op = "company.List"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if !access.IsSuperAdmin(actor) {
		return nil, apperr.Forbidden("not authorized")
	}
	companies, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return companies, nil
}

// Get возвращает компанию, если actor в ней работает или является SuperAdmin.
func (s *Service) Get(ctx context.Context, actor *models.Actor, id string) (*models.Company, error) {
	const op = "company.Get"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, "", id, false); err != nil {
		return nil, apperr.NotFound("company not found")
	}
	c, err := s.companies.GetCompany(ctx, ident.Canonical(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return c, nil
}

// Ensure возвращает компанию с названием name (без учёта регистра), создавая её при отсутствии.
// Используется при начальной настройке, до появления первого пользователя.
func (s *Service) Ensure(ctx context.Context, name string) (*models.Company, bool, error) {
	const op = "company.Ensure"
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperr.Validation("field name is a required field")
	}
	c, err := s.companies.GetCompanyByName(ctx, name)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.create(ctx, models.CompanyInput{Name: name})
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return created, true, nil
}

func (s *Service) create(ctx context.Context, in models.CompanyInput) (*models.Company, error) {
	_, err := s.companies.GetCompanyByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, apperr.Validation("company with this name already exists")
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}
	created, err := s.companies.CreateCompany(ctx, models.Company{
		Name:         in.Name,
		Description:  in.Description,
		Address:      in.Address,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		LogoURL:      in.LogoURL,
		Timezone:     in.Timezone,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, apperr.Validation("company with this name already exists")
		}
		return nil, err
	}
	return created, nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("company not found")
	}
	return err
}
