package models

import "time"

// Типы занятий.
const (
	LessonTypeLesson   = "lesson"
	LessonTypeTraining = "training"
	LessonTypeMeeting  = "meeting"
	LessonTypeEvent    = "event"
	LessonTypeOther    = "other"
)

// MoodNeutral — настроение по умолчанию.
const MoodNeutral = "neutral"

// Ограничения длительности занятия в минутах.
const (
	MinLessonDuration = 30
	MaxLessonDuration = 120
)

// Lesson — запланированное занятие пользователя с клиентом.
// Интервал занятия полуоткрытый: [Start, Start+Duration).
type Lesson struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ClientID    string    `json:"client_id"`
	UserID      string    `json:"user_id"`
	Start       time.Time `json:"start"`
	Duration    int       `json:"duration"` // в минутах
	Type        string    `json:"type"`
	Importance  int       `json:"importance"`
	Mood        string    `json:"mood"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// End возвращает момент окончания занятия (не включительно).
func (l Lesson) End() time.Time {
	return l.Start.Add(time.Duration(l.Duration) * time.Minute)
}

// LessonInput — данные занятия из запроса на создание или обновление.
type LessonInput struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	ClientID    string    `json:"client_id" validate:"required"`
	UserID      string    `json:"user_id" validate:"required"`
	Start       time.Time `json:"start" validate:"required"`
	Duration    int       `json:"duration" validate:"required,min=30,max=120"`
	Type        string    `json:"type,omitempty" validate:"omitempty,oneof=lesson training meeting event other"`
	Importance  *int      `json:"importance,omitempty" validate:"omitempty,min=0,max=5"`
	Mood        string    `json:"mood,omitempty" validate:"omitempty,oneof=happy sad interested tired frustrated angry surprised confident nervous indifferent neutral"`
}

// LessonFilter — параметры выборки занятий. Нулевые значения означают «без ограничения».
// Start включительно, End не включительно.
type LessonFilter struct {
	UserID    string
	ClientID  string
	CompanyID string
	Start     *time.Time
	End       *time.Time
}
