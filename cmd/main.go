package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"doc2html/config"
	app "doc2html/internal/application"
	telegram "doc2html/internal/api"
	"doc2html/internal/container"
	"doc2html/internal/logging"
)

func main() {
	configPtr := flag.String("config", "", "Путь к YAML-файлу настроек (по умолчанию CONFIG_FILE)")
	telegramPtr := flag.Bool("telegram", false, "Запустить Telegram-бота вместо обработки одного файла")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	logger := logging.New(cfg.LogLevel)

	c, err := container.New(cfg, logger)
	if err != nil {
		fmt.Printf("Failed to create pipeline: %v\n", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *telegramPtr {
		if cfg.TelegramToken == "" {
			fmt.Println("TELEGRAM_TOKEN is required")
			return
		}
		bot, err := telegram.NewBot(cfg.TelegramToken, c, cfg.OutputDir, logger)
		if err != nil {
			fmt.Printf("Failed to create bot: %v\n", err)
			return
		}
		logger.Info("bot is running")
		if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Printf("Bot error: %v\n", err)
		}
		return
	}

	imagePath := cfg.ImagePath
	if flag.NArg() > 0 {
		imagePath = flag.Arg(0)
	}

	if msg := checkImage(imagePath); msg != "" {
		fmt.Println(msg)
		return
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Printf("Failed to read image %s: %v\n", imagePath, err)
		return
	}

	run := c.Pipeline.Run(ctx, imageData)
	fmt.Println(app.Summary(run))
}

// checkImage проверяет файл изображения до запуска конвейера.
// Пустая строка означает, что файл доступен.
func checkImage(path string) string {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("Image file %s does not exist.", path)
	default:
		return fmt.Sprintf("Cannot access image file %s: %v", path, err)
	}
}
