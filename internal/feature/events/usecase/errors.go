package usecase

import "errors"

// eventsフィーチャーのドメインエラー。ハンドラー層でHTTPステータスに変換されます。
var (
	// ErrEventNotFound is returned when an event cannot be found by ID or slug.
	ErrEventNotFound = errors.New("event not found")

	// ErrAlreadyRegistered is returned when the caller already holds a
	// registration for the event.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrSlugExists is returned when creating an event whose slug is taken.
	ErrSlugExists = errors.New("event slug already exists")
)
