package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"doc2html/internal/domain/entity"
	"doc2html/internal/domain/port"
)

// DefaultOutputFile имя итогового документа по умолчанию
const DefaultOutputFile = "output.html"

// Options политика конвейера
type Options struct {
	OutputFile     string // имя HTML-файла в каталоге хранилища
	AllowTextOnly  bool   // не останавливаться, если визуальных элементов нет
	CleanupOnAbort bool   // удалять записанные фрагменты при остановке
}

// Pipeline проводит одно изображение через все этапы:
// Analyzing → TextExtraction → Segmentation → Assembly → Persisted.
// Любой пустой или ошибочный результат переводит проход в Aborted.
type Pipeline struct {
	recognizer port.TextRecognizer
	segmenter  port.RegionSegmenter
	store      port.AssetStore
	opts       Options
	log        logrus.FieldLogger
}

// NewPipeline создаёт конвейер.
func NewPipeline(recognizer port.TextRecognizer, segmenter port.RegionSegmenter, store port.AssetStore, opts Options, log logrus.FieldLogger) *Pipeline {
	if opts.OutputFile == "" {
		opts.OutputFile = DefaultOutputFile
	}
	return &Pipeline{
		recognizer: recognizer,
		segmenter:  segmenter,
		store:      store,
		opts:       opts,
		log:        log,
	}
}

// Run выполняет все этапы и возвращает проход в терминальном состоянии.
func (p *Pipeline) Run(ctx context.Context, imageData []byte) *entity.Run {
	run := entity.NewRun()
	log := p.log.WithField("run_id", run.ID)
	log.WithField("bytes", len(imageData)).Debug("pipeline started")

	// Analyzing
	result, err := p.recognizer.Recognize(ctx, imageData)
	if err != nil {
		return p.abort(run, log, entity.NewAcquisitionFailure("", "failed to analyze image", err))
	}
	if result.Failed() {
		return p.abort(run, log, entity.NewAcquisitionFailure("", fmt.Sprintf("API error: %s", result.Error.Message), nil))
	}
	p.advance(run, log)

	// TextExtraction
	text := ExtractText(result)
	if text == "" {
		return p.abort(run, log, entity.NewEmptyFailure("", "no text found in image"))
	}
	run.Text = text
	p.advance(run, log)

	// Segmentation
	elements, err := p.segmenter.Segment(ctx, imageData)
	if err != nil {
		return p.abort(run, log, entity.NewAcquisitionFailure("", "failed to segment visual elements", err))
	}
	if len(elements) == 0 {
		if !p.opts.AllowTextOnly {
			return p.abort(run, log, entity.NewEmptyFailure("", "no visual elements found in image"))
		}
		log.Warn("no visual elements found, continuing with text only")
	}
	run.Elements = len(elements)
	p.advance(run, log)

	// Assembly
	doc, paths, err := Assemble(text, elements, p.store)
	run.Assets = paths
	if err != nil {
		var f *entity.Failure
		if !errors.As(err, &f) {
			f = entity.NewPersistenceFailure("", "failed to assemble document", err)
		}
		return p.abort(run, log, f)
	}
	if doc.Empty() {
		return p.abort(run, log, entity.NewEmptyFailure("", "failed to create HTML content"))
	}

	docPath, err := p.store.WriteDocument(p.opts.OutputFile, doc.HTML)
	if err != nil {
		return p.abort(run, log, entity.NewPersistenceFailure("", "failed to save HTML content", err))
	}
	run.Document = docPath
	p.advance(run, log)

	log.WithFields(logrus.Fields{
		"paragraphs": doc.Paragraphs,
		"elements":   run.Elements,
		"path":       docPath,
	}).Info("HTML content saved")
	return run
}

func (p *Pipeline) advance(run *entity.Run, log logrus.FieldLogger) {
	from := run.State
	run.Advance()
	log.WithFields(logrus.Fields{"from": from, "to": run.State}).Debug("stage completed")
}

func (p *Pipeline) abort(run *entity.Run, log logrus.FieldLogger, f *entity.Failure) *entity.Run {
	run.Abort(f)
	entry := log.WithFields(logrus.Fields{
		"stage": run.AbortedAt(),
		"kind":  f.Kind,
	})
	if f.Cause != nil && !f.Soft() {
		entry = entry.WithError(f.Cause)
	}
	entry.Warn(f.Message)

	if p.opts.CleanupOnAbort && len(run.Assets) > 0 {
		if err := p.store.Remove(run.Assets); err != nil {
			log.WithError(err).Error("failed to remove visual elements")
		} else {
			run.Assets = nil
		}
	}
	return run
}
