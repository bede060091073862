package middlewares

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateHandler processes one incoming telegram update.
type UpdateHandler func(update tgbotapi.Update)

// OperatorOnly gates every update on the single authorized operator id.
// Anything else is dropped before it reaches a handler.
func OperatorOnly(adminID int64, next UpdateHandler) UpdateHandler {
	return func(update tgbotapi.Update) {
		from := update.SentFrom()
		if from == nil {
			return
		}
		if from.ID != adminID {
			log.Printf("middlewares: dropped update from unauthorized user %d", from.ID)
			return
		}
		next(update)
	}
}
