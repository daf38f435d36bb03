package entities

import "errors"

// ErrInvalidFeedbackCategory возвращается для неизвестной категории сообщения.
var ErrInvalidFeedbackCategory = errors.New("invalid feedback category")

// FeedbackCategory - категория одноразового сообщения пользователю.
type FeedbackCategory string

// Категории сообщений.
const (
	FeedbackError   FeedbackCategory = "error"
	FeedbackSuccess FeedbackCategory = "success"
	FeedbackWarning FeedbackCategory = "warning"
)

// Valid сообщает, входит ли категория в допустимый набор.
func (c FeedbackCategory) Valid() bool {
	switch c {
	case FeedbackError, FeedbackSuccess, FeedbackWarning:
		return true
	default:
		return false
	}
}

// FeedbackMessage - сообщение, переживающее редирект и показываемое один раз.
type FeedbackMessage struct {
	Category FeedbackCategory `json:"category"`
	Text     string           `json:"text"`
}
