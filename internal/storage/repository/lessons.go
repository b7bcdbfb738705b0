package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

const lessonColumns = `l.id, l.name, l.description, l.client_id, l.user_id, l.start_at, l.duration,
			      l.type, l.importance, l.mood, l.created_at, l.updated_at`

// CreateLesson сохраняет занятие и возвращает его с присвоенным ID.
func (s *Storage) CreateLesson(ctx context.Context, l models.Lesson) (*models.Lesson, error) {
	const op = "storage.CreateLesson"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO lessons AS l (name, description, client_id, user_id, start_at, duration, type, importance, mood)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + lessonColumns
	row := s.DB.QueryRowContext(ctx, query,
		l.Name, l.Description, l.ClientID, l.UserID, l.Start.UTC(), l.Duration, l.Type, l.Importance, l.Mood)
	created, err := scanLesson(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// GetLesson возвращает занятие по ID.
func (s *Storage) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	const op = "storage.GetLesson"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	l, err := scanLesson(s.DB.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons l WHERE l.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return l, nil
}

// UpdateLesson перезаписывает поля занятия.
func (s *Storage) UpdateLesson(ctx context.Context, l models.Lesson) (*models.Lesson, error) {
	const op = "storage.UpdateLesson"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE lessons AS l
			  SET name = $1, description = $2, client_id = $3, user_id = $4, start_at = $5,
			      duration = $6, type = $7, importance = $8, mood = $9, updated_at = NOW()
			  WHERE l.id = $10
			  RETURNING ` + lessonColumns
	row := s.DB.QueryRowContext(ctx, query,
		l.Name, l.Description, l.ClientID, l.UserID, l.Start.UTC(), l.Duration, l.Type, l.Importance, l.Mood, l.ID)
	updated, err := scanLesson(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return updated, nil
}

// RemoveLesson удаляет занятие по ID.
func (s *Storage) RemoveLesson(ctx context.Context, id string) error {
	const op = "storage.RemoveLesson"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
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

// ListLessons возвращает занятия по фильтру, отсортированные по времени начала.
// Фильтр по компании применяется через компанию клиента.
func (s *Storage) ListLessons(ctx context.Context, f models.LessonFilter) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != "" {
		add("l.user_id = $%d", f.UserID)
	}
	if f.ClientID != "" {
		add("l.client_id = $%d", f.ClientID)
	}
	if f.CompanyID != "" {
		add("c.company_id = $%d", f.CompanyID)
	}
	if f.Start != nil {
		add("l.start_at >= $%d", f.Start.UTC())
	}
	if f.End != nil {
		add("l.start_at < $%d", f.End.UTC())
	}

	query := `SELECT ` + lessonColumns + ` FROM lessons l JOIN clients c ON c.id = l.client_id`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY l.start_at, l.id`

	return s.queryLessons(ctx, op, query, args...)
}

// ListForOverlap возвращает занятия пользователя или клиента, начинающиеся в [from, to).
func (s *Storage) ListForOverlap(ctx context.Context, userID, clientID string, from, to time.Time) ([]*models.Lesson, error) {
	const op = "storage.ListForOverlap"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + lessonColumns + `
			  FROM lessons l
			  WHERE (l.user_id = $1 OR l.client_id = $2)
			    AND l.start_at >= $3 AND l.start_at < $4
			  ORDER BY l.start_at`
	return s.queryLessons(ctx, op, query, userID, clientID, from.UTC(), to.UTC())
}

func (s *Storage) queryLessons(ctx context.Context, op, query string, args ...any) ([]*models.Lesson, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanLesson(row scanner) (*models.Lesson, error) {
	var l models.Lesson
	if err := row.Scan(&l.ID, &l.Name, &l.Description, &l.ClientID, &l.UserID, &l.Start, &l.Duration,
		&l.Type, &l.Importance, &l.Mood, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Start = l.Start.UTC()
	return &l, nil
}
