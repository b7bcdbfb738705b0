package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

const userColumns = `id, company_id, first_name, last_name, email, password_hash,
			      role, status, registered_at, last_access_at, updated_at`

// CreateUser сохраняет нового пользователя и возвращает его с присвоенным ID.
func (s *Storage) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO users (company_id, first_name, last_name, email, password_hash, role, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		nullString(u.CompanyID), u.FirstName, u.LastName, u.Email, u.PasswordHash, int(u.Role), int(u.Status))
	created, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email без учёта регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// UpdateUser перезаписывает изменяемые поля пользователя.
func (s *Storage) UpdateUser(ctx context.Context, u models.User) (*models.User, error) {
	const op = "storage.UpdateUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE users
			  SET company_id = $1, first_name = $2, last_name = $3, email = $4,
			      password_hash = $5, role = $6, status = $7, updated_at = NOW()
			  WHERE id = $8
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		nullString(u.CompanyID), u.FirstName, u.LastName, u.Email, u.PasswordHash, int(u.Role), int(u.Status), u.ID)
	updated, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return updated, nil
}

// TouchUserAccess обновляет время последнего входа пользователя.
func (s *Storage) TouchUserAccess(ctx context.Context, id string, at time.Time) error {
	const op = "storage.TouchUserAccess"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET last_access_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// RemoveUser удаляет пользователя. Пользователя с занятиями удалить нельзя: storage.ErrInUse.
func (s *Storage) RemoveUser(ctx context.Context, id string) error {
	const op = "storage.RemoveUser"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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

// ListUsers возвращает пользователей компании, отсортированных по фамилии и имени.
func (s *Storage) ListUsers(ctx context.Context, companyID string) ([]*models.User, error) {
	const op = "storage.ListUsers"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+`
			  FROM users
			  WHERE company_id = $1
			  ORDER BY last_name, first_name, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanUser(row scanner) (*models.User, error) {
	var (
		u          models.User
		companyID  sql.NullString
		role       int
		status     int
		lastAccess sql.NullTime
	)
	if err := row.Scan(&u.ID, &companyID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&role, &status, &u.RegisteredAt, &lastAccess, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.CompanyID = companyID.String
	u.Role = models.Role(role)
	u.Status = models.UserStatus(status)
	if lastAccess.Valid {
		t := lastAccess.Time
		u.LastAccessAt = &t
	}
	return &u, nil
}
