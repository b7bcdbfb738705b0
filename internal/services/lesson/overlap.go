package lesson

import (
	"time"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/ident"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Overlaps сообщает, пересекаются ли полуоткрытые интервалы [s1, s1+d1) и [s2, s2+d2).
// Занятия встык (конец одного равен началу другого) не пересекаются.
func Overlaps(s1 time.Time, d1 time.Duration, s2 time.Time, d2 time.Duration) bool {
	return s1.Before(s2.Add(d2)) && s2.Before(s1.Add(d1))
}

// CheckOverlap проверяет, что proposed не пересекается ни с одним занятием из existing,
// у которого тот же пользователь или тот же клиент. Занятие с идентификатором excludeID
// (прежняя версия обновляемого занятия) пропускается.
func CheckOverlap(proposed models.Lesson, existing []*models.Lesson, excludeID string) error {
	d1 := time.Duration(proposed.Duration) * time.Minute
	for _, l := range existing {
		if l == nil {
			continue
		}
		if excludeID != "" && ident.Equal(l.ID, excludeID) {
			continue
		}
		if !ident.Equal(l.UserID, proposed.UserID) && !ident.Equal(l.ClientID, proposed.ClientID) {
			continue
		}
		if Overlaps(proposed.Start, d1, l.Start, time.Duration(l.Duration)*time.Minute) {
			return apperr.Validation("slot already booked")
		}
	}
	return nil
}

// overlapWindow возвращает окно выборки кандидатов: любое занятие, пересекающееся
// с proposed, начинается не раньше proposed.Start-MaxLessonDuration и раньше его конца.
func overlapWindow(proposed models.Lesson) (time.Time, time.Time) {
	from := proposed.Start.Add(-models.MaxLessonDuration * time.Minute)
	return from, proposed.End()
}
