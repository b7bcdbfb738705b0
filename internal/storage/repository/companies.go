package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

const companyColumns = `id, name, description, address, contact_email, contact_phone, logo_url, timezone`

// CreateCompany сохраняет компанию и возвращает её с присвоенным ID.
func (s *Storage) CreateCompany(ctx context.Context, c models.Company) (*models.Company, error) {
	const op = "storage.CreateCompany"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO companies (name, description, address, contact_email, contact_phone, logo_url, timezone)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + companyColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.Name, c.Description, c.Address, c.ContactEmail, c.ContactPhone, c.LogoURL, c.Timezone)
	created, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// GetCompany возвращает компанию по ID.
func (s *Storage) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	const op = "storage.GetCompany"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return c, nil
}

// GetCompanyByName возвращает компанию по названию без учёта регистра.
func (s *Storage) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	const op = "storage.GetCompanyByName"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE LOWER(name) = LOWER($1)`, name)
	c, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return c, nil
}

// UpdateCompany перезаписывает поля компании и возвращает новую версию.
func (s *Storage) UpdateCompany(ctx context.Context, c models.Company) (*models.Company, error) {
	const op = "storage.UpdateCompany"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE companies
			  SET name = $1, description = $2, address = $3, contact_email = $4,
			      contact_phone = $5, logo_url = $6, timezone = $7
			  WHERE id = $8
			  RETURNING ` + companyColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.Name, c.Description, c.Address, c.ContactEmail, c.ContactPhone, c.LogoURL, c.Timezone, c.ID)
	updated, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return updated, nil
}

// ListCompanies возвращает все компании, отсортированные по названию.
func (s *Storage) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	const op = "storage.ListCompanies"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY LOWER(name), id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (*models.Company, error) {
	var c models.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Address,
		&c.ContactEmail, &c.ContactPhone, &c.LogoURL, &c.Timezone); err != nil {
		return nil, err
	}
	return &c, nil
}
