package lesson

import (
	"strings"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/ident"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/validate"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// validateInput нормализует и проверяет поля занятия.
func validateInput(in *models.LessonInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Mood = strings.ToLower(strings.TrimSpace(in.Mood))
	return validate.Struct(in)
}

func validateRange(f models.LessonFilter) error {
	if f.Start != nil && f.End != nil && !f.Start.Before(*f.End) {
		return apperr.Validation("start must be before end")
	}
	return nil
}

// fromInput строит занятие из проверенных входных данных, подставляя значения по умолчанию.
func fromInput(in models.LessonInput) models.Lesson {
	l := models.Lesson{
		Name:        in.Name,
		Description: in.Description,
		ClientID:    ident.Canonical(in.ClientID),
		UserID:      ident.Canonical(in.UserID),
		Start:       in.Start.UTC(),
		Duration:    in.Duration,
		Type:        in.Type,
		Mood:        in.Mood,
	}
	if l.Type == "" {
		l.Type = models.LessonTypeOther
	}
	if l.Mood == "" {
		l.Mood = models.MoodNeutral
	}
	if in.Importance != nil {
		l.Importance = *in.Importance
	}
	return l
}
