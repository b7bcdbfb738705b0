// Package client реализует управление клиентами компании с проверкой прав.
package client

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

// ClientRepository определяет методы для работы с клиентами в хранилище.
type ClientRepository interface {
	CreateClient(ctx context.Context, c models.Client) (*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	UpdateClient(ctx context.Context, c models.Client) (*models.Client, error)
	RemoveClient(ctx context.Context, id string) error
	ListClients(ctx context.Context, companyID string) ([]*models.Client, error)
	// ClientContactTaken сообщает, занят ли email (без учёта регистра) или телефон
	// другим клиентом, кроме excludeID.
	ClientContactTaken(ctx context.Context, email, phone, excludeID string) (emailTaken, phoneTaken bool, err error)
}

// CompanyRepository нужен для проверки существования компании.
type CompanyRepository interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
}

// Service реализует бизнес-логику работы с клиентами.
type Service struct {
	clients   ClientRepository
	companies CompanyRepository
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(clients ClientRepository, companies CompanyRepository, log *slog.Logger) *Service {
	return &Service{clients: clients, companies: companies, log: log}
}

// Create создаёт клиента в указанной компании.
func (s *Service) Create(ctx context.Context, actor *models.Actor, in models.NewClientInput) (*models.Client, error) {
	const op = "client.Create"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	normalizeNew(&in)
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
	if err := s.checkContacts(ctx, in.Email, in.Phone, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.clients.CreateClient(ctx, models.Client{
		CompanyID:  company.ID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, conflict(err))
	}
	s.log.Info("created new client", slog.String("op", op), slog.String("id", created.ID))
	return created, nil
}

// Get возвращает клиента. Клиент чужой компании неотличим от несуществующего.
func (s *Service) Get(ctx context.Context, actor *models.Actor, id string) (*models.Client, error) {
	const op = "client.Get"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	c, err := s.getClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", c.CompanyID, false); err != nil {
		return nil, apperr.NotFound("client not found")
	}
	return c, nil
}

// List возвращает клиентов компании. SuperAdmin может указать любую существующую
// компанию, остальные всегда получают клиентов своей.
func (s *Service) List(ctx context.Context, actor *models.Actor, companyID string) ([]*models.Client, error) {
	const op = "client.List"
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
	if err := access.Authorize(actor, "", target, false); err != nil {
		return nil, err
	}
	clients, err := s.clients.ListClients(ctx, ident.Canonical(target))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return clients, nil
}

// Update изменяет данные клиента. Перенести клиента в другую компанию может только SuperAdmin.
func (s *Service) Update(ctx context.Context, actor *models.Actor, id string, in models.UpdateClientInput) (*models.Client, error) {
	const op = "client.Update"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	existing, err := s.getClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", existing.CompanyID, false); err != nil {
		return nil, err
	}

	next := *existing
	if in.CompanyID != nil && !ident.Equal(*in.CompanyID, existing.CompanyID) {
		if !access.IsSuperAdmin(actor) {
			return nil, apperr.Forbidden("only super admin can move a client to another company")
		}
		company, err := s.getCompany(ctx, *in.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		next.CompanyID = company.ID
	}
	apply(&next, in)
	if next.FirstName == "" || next.LastName == "" || next.Email == "" || next.Phone == "" {
		return nil, apperr.Validation("name, email and phone cannot be empty")
	}

	if err := s.checkContacts(ctx, next.Email, next.Phone, existing.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	updated, err := s.clients.UpdateClient(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, conflict(notFound(err, "client not found")))
	}
	s.log.Info("updated client", slog.String("op", op), slog.String("id", updated.ID))
	return updated, nil
}

// Delete удаляет клиента и возвращает его состояние до удаления.
// Клиента с занятиями удалить нельзя.
func (s *Service) Delete(ctx context.Context, actor *models.Actor, id string) (*models.Client, error) {
	const op = "client.Delete"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	existing, err := s.getClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", existing.CompanyID, false); err != nil {
		return nil, apperr.NotFound("client not found")
	}
	if err := s.clients.RemoveClient(ctx, existing.ID); err != nil {
		if errors.Is(err, storage.ErrInUse) {
			return nil, apperr.Validation("client has scheduled lessons")
		}
		return nil, fmt.Errorf("%s: %w", op, notFound(err, "client not found"))
	}
	s.log.Info("removed client", slog.String("op", op), slog.String("id", existing.ID))
	return existing, nil
}

func (s *Service) checkContacts(ctx context.Context, email, phone, excludeID string) error {
	emailTaken, phoneTaken, err := s.clients.ClientContactTaken(ctx, email, phone, excludeID)
	if err != nil {
		return err
	}
	switch {
	case emailTaken:
		return apperr.Validation("client with this email already exists")
	case phoneTaken:
		return apperr.Validation("client with this phone already exists")
	}
	return nil
}

func (s *Service) getClient(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.clients.GetClient(ctx, ident.Canonical(id))
	if err != nil {
		return nil, notFound(err, "client not found")
	}
	return c, nil
}

func (s *Service) getCompany(ctx context.Context, id string) (*models.Company, error) {
	c, err := s.companies.GetCompany(ctx, ident.Canonical(id))
	if err != nil {
		return nil, notFound(err, "company not found")
	}
	return c, nil
}

func normalizeNew(in *models.NewClientInput) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

func apply(c *models.Client, in models.UpdateClientInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.FirstName, in.FirstName)
	set(&c.LastName, in.LastName)
	set(&c.Email, in.Email)
	set(&c.Phone, in.Phone)
	set(&c.Address, in.Address)
	set(&c.City, in.City)
	set(&c.State, in.State)
	set(&c.PostalCode, in.PostalCode)
	set(&c.Country, in.Country)
}

func notFound(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}

func conflict(err error) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return apperr.Validation("client with this email or phone already exists")
	}
	return err
}
