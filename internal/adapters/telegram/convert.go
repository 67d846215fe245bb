package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"heroes-marathon-bot/internal/domain"
)

// EventFromUpdate converts an update into a transport-neutral event.
// Updates without a chat (edits, channel posts, inline queries) are skipped.
func EventFromUpdate(u tgbotapi.Update) (domain.Event, bool) {
	if cq := u.CallbackQuery; cq != nil {
		var chatID int64
		switch {
		case cq.Message != nil && cq.Message.Chat != nil:
			chatID = cq.Message.Chat.ID
		case cq.From != nil:
			chatID = cq.From.ID
		default:
			return domain.Event{}, false
		}
		ev := domain.Event{ChatID: chatID, Kind: domain.EventCallback, Text: cq.Data}
		if cq.From != nil {
			ev.ClientLanguage = cq.From.LanguageCode
		}
		return ev, true
	}

	m := u.Message
	if m == nil || m.Chat == nil {
		return domain.Event{}, false
	}

	ev := domain.Event{ChatID: m.Chat.ID}
	if m.From != nil {
		ev.ClientLanguage = m.From.LanguageCode
	}
	switch {
	case m.Location != nil:
		ev.Kind = domain.EventLocation
		ev.Location = domain.Coordinates{Lat: m.Location.Latitude, Lon: m.Location.Longitude}
	case m.Contact != nil:
		ev.Kind = domain.EventContact
		ev.Phone = m.Contact.PhoneNumber
	case m.IsCommand():
		ev.Kind = domain.EventCommand
		ev.Text = m.Command()
	default:
		// Photos, stickers and the like arrive as empty text so the current step re-prompts.
		ev.Kind = domain.EventText
		ev.Text = m.Text
	}
	return ev, true
}

// RenderReply builds the outgoing message with its keyboard markup.
func RenderReply(r domain.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(r.ChatID, r.Text)

	switch {
	case len(r.Inline) > 0:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(r.Inline))
		for _, row := range r.Inline {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				if b.URL != "" {
					buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				} else {
					buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
				}
			}
			rows = append(rows, buttons)
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	case r.Keyboard != nil:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(r.Keyboard.Rows))
		for _, row := range r.Keyboard.Rows {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, b := range row {
				switch {
				case b.RequestContact:
					buttons = append(buttons, tgbotapi.NewKeyboardButtonContact(b.Text))
				case b.RequestLocation:
					buttons = append(buttons, tgbotapi.NewKeyboardButtonLocation(b.Text))
				default:
					buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Text))
				}
			}
			rows = append(rows, buttons)
		}
		kb := tgbotapi.NewReplyKeyboard(rows...)
		kb.OneTimeKeyboard = r.Keyboard.OneTime
		msg.ReplyMarkup = kb

	case r.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}

	return msg
}
