package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	app "doc2html/internal/application"
	"doc2html/internal/container"
	"doc2html/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я собираю HTML-страницу из фотографии документа.

📸 Отправьте мне изображение: текст я распознаю, а рисунки, печати и схемы вырежу отдельными картинками.

📋 Команды:
/help — справка
/status — результат последней обработки`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото или файл с изображением документа
2️⃣ Бот распознает текст и найдёт визуальные элементы
3️⃣ Вы получите файл output.html

💡 Рекомендации:
• Тёмный текст на светлом фоне
• Ровное освещение без бликов`

	msgSendImage      = "📸 Пожалуйста, отправьте изображение документа."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing     = "⏳ Обрабатываю изображение..."
	msgNoRuns         = "Вы ещё не отправляли изображений."
	msgDownloadError  = "⚠️ Не удалось получить изображение. Попробуйте ещё раз."
	msgAborted        = "⚠️ Документ не собран.\n%s"
)

// Bot Telegram-бот, который прогоняет присланные изображения через конвейер
type Bot struct {
	api     *tgbotapi.BotAPI
	c       *container.Container
	baseDir string
	log     logrus.FieldLogger
}

// NewBot создаёт нового бота. Результаты каждого чата пишутся в baseDir/<chat_id>/<время>.
func NewBot(token string, c *container.Container, baseDir string, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.WithField("account", api.Self.UserName).Info("authorized")

	return &Bot{
		api:     api,
		c:       c,
		baseDir: baseDir,
		log:     log,
	}, nil
}

// Run запускает основной цикл обработки сообщений.
// Сообщения обрабатываются по одному.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if fileID, ok := imageFileID(msg); ok {
		b.handleImage(ctx, msg.Chat.ID, fileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendImage)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "status":
		run, err := b.c.Runs.Last(ctx, msg.Chat.ID)
		if err != nil || run == nil {
			b.sendMessage(msg.Chat.ID, msgNoRuns)
			return
		}
		b.sendMessage(msg.Chat.ID, app.Summary(run))

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage прогоняет изображение через конвейер и отправляет документ
func (b *Bot) handleImage(ctx context.Context, chatID int64, fileID string) {
	b.sendMessage(chatID, msgProcessing)

	imageData, err := b.downloadFile(fileID)
	if err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("failed to download image")
		b.sendMessage(chatID, msgDownloadError)
		return
	}

	dir := filepath.Join(b.baseDir, fmt.Sprint(chatID), time.Now().Format("20060102-150405"))
	pipeline, _ := b.c.PipelineAt(dir)
	run := pipeline.Run(ctx, imageData)
	if err := b.c.Runs.Save(ctx, chatID, run); err != nil {
		b.log.WithError(err).Error("failed to save run")
	}

	if run.State != entity.StatePersisted {
		b.sendMessage(chatID, fmt.Sprintf(msgAborted, app.Summary(run)))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(run.Document))
	doc.Caption = fmt.Sprintf("Визуальных элементов: %d", run.Elements)
	if _, err := b.api.Send(doc); err != nil {
		b.log.WithError(err).Error("failed to send document")
	}
}

// imageFileID возвращает файл изображения из сообщения: фото максимального
// размера или документ с image/* MIME-типом.
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	return fetch(http.DefaultClient, file.Link(b.api.Token))
}

// fetch скачивает содержимое по адресу, ответ не 200 считается ошибкой
func fetch(client *http.Client, fileURL string) ([]byte, error) {
	resp, err := client.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).Error("failed to send message")
	}
}
