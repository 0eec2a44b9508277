package events

import "errors"

var (
	// ErrPublisherUnavailable возвращается, когда не удалось подключиться к брокеру
	ErrPublisherUnavailable = errors.New("events: publisher unavailable")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: publish failed")

	// ErrQueueFull возвращается, когда очередь отправки заполнена и событие отброшено
	ErrQueueFull = errors.New("events: queue is full")
)
