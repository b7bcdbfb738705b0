package rabbitmq

// QueueConfig — очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// LessonAuditQueue получает все события о занятиях.
const LessonAuditQueue = "lessons.audit"

// LessonQueues возвращает очереди, которые объявляет сервис.
func LessonQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: LessonAuditQueue, RoutingKey: "lesson.*"},
	}
}
