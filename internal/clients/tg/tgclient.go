package tg

import (
	"fmt"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/avkozyreva/tg-splitbot/internal/logger"
	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
	"github.com/avkozyreva/tg-splitbot/internal/model/messages"
)

type HandlerFunc func(tgUpdate tgbotapi.Update, c *Client, msgModel *messages.Model)

func (f HandlerFunc) RunFunc(tgUpdate tgbotapi.Update, c *Client, msgModel *messages.Model) {
	f(tgUpdate, c, msgModel)
}

type Client struct {
	client                *tgbotapi.BotAPI
	handlerProcessingFunc HandlerFunc // Функция обработки входящих сообщений.
}

type TokenGetter interface {
	Token() string
}

func New(tokenGetter TokenGetter, handlerProcessingFunc HandlerFunc) (*Client, error) {
	client, err := tgbotapi.NewBotAPI(tokenGetter.Token())
	if err != nil {
		return nil, errors.Wrap(err, "Ошибка NewBotAPI")
	}

	return &Client{
		client:                client,
		handlerProcessingFunc: handlerProcessingFunc,
	}, nil
}

// SendMessage Отправка сообщения в чат. HTML-разметка, при ошибке разметки
// одна повторная попытка обычным текстом.
func (c *Client) SendMessage(text string, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := c.client.Send(msg)
	if err != nil {
		plain := tgbotapi.NewMessage(chatID, text)
		if _, plainErr := c.client.Send(plain); plainErr != nil {
			return errors.Wrap(plainErr, "Ошибка отправки сообщения client.Send")
		}
	}
	return nil
}

// SendMessageReply Отправка сообщения как ответа на сообщение пользователя.
func (c *Client) SendMessageReply(text string, chatID int64, replyToMsgID int) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = replyToMsgID
	_, err := c.client.Send(msg)
	if err != nil {
		plain := tgbotapi.NewMessage(chatID, text)
		plain.ReplyToMessageID = replyToMsgID
		if _, plainErr := c.client.Send(plain); plainErr != nil {
			return errors.Wrap(plainErr, "Ошибка отправки ответа client.Send")
		}
	}
	return nil
}

func (c *Client) ListenUpdates(msgModel *messages.Model) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.client.GetUpdatesChan(u)

	logger.Info("Start listening for tg messages")

	for update := range updates {
		// Функция обработки сообщений (обернутая в middleware).
		c.handlerProcessingFunc.RunFunc(update, c, msgModel)
	}
}

// ProcessingMessages функция обработки сообщений.
func ProcessingMessages(tgUpdate tgbotapi.Update, c *Client, msgModel *messages.Model) {
	if tgUpdate.Message != nil {
		// Пользователь написал текстовое сообщение.
		logger.Info(fmt.Sprintf("[%s][%v] %s", tgUpdate.Message.From.UserName, tgUpdate.Message.From.ID, tgUpdate.Message.Text))
		replyToID := 0
		if tgUpdate.Message.ReplyToMessage != nil {
			replyToID = tgUpdate.Message.ReplyToMessage.MessageID
		}
		err := msgModel.IncomingMessage(messages.Message{
			Text:             tgUpdate.Message.Text,
			ChatID:           tgUpdate.Message.Chat.ID,
			UserID:           tgUpdate.Message.From.ID,
			UserName:         tgUpdate.Message.From.UserName,
			UserDisplayName:  strings.TrimSpace(tgUpdate.Message.From.FirstName + " " + tgUpdate.Message.From.LastName),
			MessageID:        tgUpdate.Message.MessageID,
			ReplyToMessageID: replyToID,
			Mentions:         extractMentions(tgUpdate.Message),
		})
		if err != nil {
			logger.Error("error processing message:", "err", err)
		}
	} else if tgUpdate.CallbackQuery != nil {
		// Пользователь нажал кнопку.
		logger.Info(fmt.Sprintf("[%s][%v] Callback: %s", tgUpdate.CallbackQuery.From.UserName, tgUpdate.CallbackQuery.From.ID, tgUpdate.CallbackQuery.Data))
		callback := tgbotapi.NewCallback(tgUpdate.CallbackQuery.ID, tgUpdate.CallbackQuery.Data)
		if _, err := c.client.Request(callback); err != nil {
			logger.Error("Ошибка Request callback:", "err", err)
		}
		if err := deleteInlineButtons(c, tgUpdate.CallbackQuery.Message.Chat.ID, tgUpdate.CallbackQuery.Message.MessageID, tgUpdate.CallbackQuery.Message.Text); err != nil {
			logger.Error("Ошибка удаления кнопок:", "err", err)
		}
		err := msgModel.IncomingMessage(messages.Message{
			Text:            tgUpdate.CallbackQuery.Data,
			ChatID:          tgUpdate.CallbackQuery.Message.Chat.ID,
			UserID:          tgUpdate.CallbackQuery.From.ID,
			UserName:        tgUpdate.CallbackQuery.From.UserName,
			UserDisplayName: strings.TrimSpace(tgUpdate.CallbackQuery.From.FirstName + " " + tgUpdate.CallbackQuery.From.LastName),
			IsCallback:      true,
			CallbackMsgID:   tgUpdate.CallbackQuery.InlineMessageID,
		})
		if err != nil {
			logger.Error("error processing message from callback:", "err", err)
		}
	}
}

// extractMentions Извлечение упоминаний пользователей из сущностей сообщения.
// Учитываются обычные упоминания (@username) и text_mention для пользователей
// без имени (у них известен идентификатор). Смещения сущностей заданы
// в кодовых единицах UTF-16, поэтому текст режется в тех же единицах:
// эмодзи перед упоминанием занимает две единицы и сдвигает руны.
func extractMentions(message *tgbotapi.Message) []types.MentionSpan {
	var mentions []types.MentionSpan
	encoded := utf16.Encode([]rune(message.Text))
	for _, entity := range message.Entities {
		switch {
		case entity.Type == "mention":
			if entity.Offset < 0 || entity.Offset+entity.Length > len(encoded) {
				continue
			}
			mention := string(utf16.Decode(encoded[entity.Offset : entity.Offset+entity.Length]))
			mentions = append(mentions, types.MentionSpan{
				Offset:   entity.Offset,
				Length:   entity.Length,
				UserName: strings.TrimPrefix(mention, "@"),
			})
		case entity.Type == "text_mention" && entity.User != nil:
			mentions = append(mentions, types.MentionSpan{
				Offset:      entity.Offset,
				Length:      entity.Length,
				TgID:        entity.User.ID,
				UserName:    entity.User.UserName,
				DisplayName: strings.TrimSpace(entity.User.FirstName + " " + entity.User.LastName),
			})
		}
	}
	return mentions
}

// ShowInlineButtons Отображение кнопок меню под сообщением с ответом.
// Их нажатие ожидает коллбек-ответ.
func (c *Client) ShowInlineButtons(text string, buttons []types.TgRowButtons, chatID int64) error {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, len(buttons))
	for i := 0; i < len(buttons); i++ {
		tgRowButtons := buttons[i]
		keyboard[i] = make([]tgbotapi.InlineKeyboardButton, len(tgRowButtons))
		for j := 0; j < len(tgRowButtons); j++ {
			tgInlineButton := tgRowButtons[j]
			keyboard[i][j] = tgbotapi.NewInlineKeyboardButtonData(tgInlineButton.DisplayName, tgInlineButton.Value)
		}
	}
	var numericKeyboard = tgbotapi.NewInlineKeyboardMarkup(keyboard...)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = numericKeyboard
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := c.client.Send(msg)
	if err != nil {
		logger.Error("Ошибка отправки сообщения", "err", err)
		return errors.Wrap(err, "client.Send with inline-buttons")
	}
	return nil
}

func deleteInlineButtons(c *Client, chatID int64, msgID int, sourceText string) error {
	msg := tgbotapi.NewEditMessageText(chatID, msgID, sourceText)
	_, err := c.client.Send(msg)
	if err != nil {
		logger.Error("Ошибка отправки сообщения", "err", err)
		return errors.Wrap(err, "client.Send remove inline-buttons")
	}
	return nil
}
