package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

const clientColumns = `id, company_id, first_name, last_name, email, phone,
			      address, city, state, postal_code, country, created_at, updated_at`

// CreateClient сохраняет клиента и возвращает его с присвоенным ID.
func (s *Storage) CreateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	const op = "storage.CreateClient"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO clients (company_id, first_name, last_name, email, phone,
			      address, city, state, postal_code, country)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + clientColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.CompanyID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Address, c.City, c.State, c.PostalCode, c.Country)
	created, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// GetClient возвращает клиента по ID.
func (s *Storage) GetClient(ctx context.Context, id string) (*models.Client, error) {
	const op = "storage.GetClient"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	c, err := scanClient(s.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return c, nil
}

// UpdateClient перезаписывает поля клиента.
func (s *Storage) UpdateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	const op = "storage.UpdateClient"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE clients
			  SET company_id = $1, first_name = $2, last_name = $3, email = $4, phone = $5,
			      address = $6, city = $7, state = $8, postal_code = $9, country = $10,
			      updated_at = NOW()
			  WHERE id = $11
			  RETURNING ` + clientColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.CompanyID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Address, c.City, c.State, c.PostalCode, c.Country, c.ID)
	updated, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return updated, nil
}

// RemoveClient удаляет клиента. Клиент с занятиями не удаляется (storage.ErrInUse).
func (s *Storage) RemoveClient(ctx context.Context, id string) error {
	const op = "storage.RemoveClient"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// ListClients возвращает клиентов компании, отсортированных по фамилии и имени.
func (s *Storage) ListClients(ctx context.Context, companyID string) ([]*models.Client, error) {
	const op = "storage.ListClients"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+clientColumns+`
			  FROM clients
			  WHERE company_id = $1
			  ORDER BY last_name, first_name, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
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

// ClientContactTaken сообщает, заняты ли email (без учёта регистра) и телефон
// другими клиентами, кроме excludeID.
func (s *Storage) ClientContactTaken(ctx context.Context, email, phone, excludeID string) (bool, bool, error) {
	const op = "storage.ClientContactTaken"
	if err := ctxDone(ctx, op); err != nil {
		return false, false, err
	}

	query := `SELECT
			      EXISTS (SELECT 1 FROM clients WHERE LOWER(email) = LOWER($1) AND id::text <> $3),
			      EXISTS (SELECT 1 FROM clients WHERE phone = $2 AND id::text <> $3)`
	var emailTaken, phoneTaken bool
	if err := s.DB.QueryRowContext(ctx, query, email, phone, excludeID).Scan(&emailTaken, &phoneTaken); err != nil {
		return false, false, fmt.Errorf("%s: %w", op, err)
	}
	return emailTaken, phoneTaken, nil
}

func scanClient(row scanner) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.CompanyID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.PostalCode, &c.Country, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
