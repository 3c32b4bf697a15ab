package container

import (
	"github.com/sirupsen/logrus"

	"doc2html/config"
	app "doc2html/internal/application"
	"doc2html/internal/domain/port"
	"doc2html/internal/infrastructure/recognition"
	"doc2html/internal/infrastructure/storage"
	"doc2html/internal/infrastructure/vision"
)

type Container struct {
	Pipeline *app.Pipeline
	Store    *storage.FileStore
	Runs     port.RunRepository

	recognizer port.TextRecognizer
	segmenter  port.RegionSegmenter
	opts       app.Options
	logger     *logrus.Logger
}

// New собирает конвейер из настроек.
func New(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	recognizer, err := recognition.New(cfg.Recognizer, recognition.VisionConfig{
		APIKey:   cfg.VisionAPIKey,
		Endpoint: cfg.VisionEndpoint,
		Timeout:  cfg.VisionTimeout,
	}, cfg.Languages)
	if err != nil {
		return nil, err
	}

	segmenter := vision.NewSegmenter(uint8(cfg.Threshold))
	segmenter.MinArea = cfg.MinRegionArea

	return NewWith(cfg, recognizer, segmenter, logger), nil
}

// NewWith собирает конвейер из готовых компонентов.
func NewWith(cfg *config.Config, recognizer port.TextRecognizer, segmenter port.RegionSegmenter, logger *logrus.Logger) *Container {
	c := &Container{
		Runs:       storage.NewMemoryRunRepository(),
		recognizer: recognizer,
		segmenter:  segmenter,
		opts: app.Options{
			OutputFile:     cfg.OutputFile,
			AllowTextOnly:  cfg.AllowTextOnly,
			CleanupOnAbort: cfg.CleanupOnAbort,
		},
		logger: logger,
	}
	c.Pipeline, c.Store = c.PipelineAt(cfg.OutputDir)
	return c
}

// PipelineAt создаёт конвейер, который пишет результаты в dir.
func (c *Container) PipelineAt(dir string) (*app.Pipeline, *storage.FileStore) {
	store := storage.NewFileStore(dir)
	return app.NewPipeline(c.recognizer, c.segmenter, store, c.opts, c.logger), store
}
