package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doc2html/internal/domain/entity"
	"doc2html/internal/domain/port"
)

// DefaultVisionEndpoint адрес Google Cloud Vision API
const DefaultVisionEndpoint = "https://vision.googleapis.com"

// VisionConfig настройки клиента Cloud Vision
type VisionConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration // 0 означает без ограничения
}

// VisionClient распознаёт текст через images:annotate (DOCUMENT_TEXT_DETECTION).
type VisionClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewVisionClient создаёт клиента Cloud Vision.
func NewVisionClient(cfg VisionConfig) (*VisionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision api key is required")
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultVisionEndpoint
	}
	return &VisionClient{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		http:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []imageResponse `json:"responses"`
	Error     *statusError    `json:"error,omitempty"`
}

type imageResponse struct {
	TextAnnotations []entityAnnotation `json:"textAnnotations"`
	Error           *statusError       `json:"error,omitempty"`
}

type entityAnnotation struct {
	Description  string        `json:"description"`
	BoundingPoly *boundingPoly `json:"boundingPoly,omitempty"`
}

type boundingPoly struct {
	Vertices []vertex `json:"vertices"`
}

type vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type statusError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Recognize отправляет изображение в Cloud Vision и возвращает аннотации.
func (c *VisionClient) Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error) {
	body, err := json.Marshal(annotateRequest{
		Requests: []imageRequest{{
			Image:    imageContent{Content: base64.StdEncoding.EncodeToString(imageData)},
			Features: []feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	reqURL := c.endpoint + "/v1/images:annotate?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call vision api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed annotateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("vision api returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("vision api returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("vision api returned status %d", resp.StatusCode)
	}

	return toResult(parsed), nil
}

func toResult(parsed annotateResponse) *entity.RecognitionResult {
	result := &entity.RecognitionResult{}
	if parsed.Error != nil {
		result.Error = &entity.ErrorInfo{Code: parsed.Error.Code, Message: parsed.Error.Message}
	}
	if len(parsed.Responses) == 0 {
		return result
	}

	first := parsed.Responses[0]
	if first.Error != nil && result.Error == nil {
		result.Error = &entity.ErrorInfo{Code: first.Error.Code, Message: first.Error.Message}
	}
	for _, a := range first.TextAnnotations {
		result.TextAnnotations = append(result.TextAnnotations, entity.TextAnnotation{
			Description: a.Description,
			Box:         polyBox(a.BoundingPoly),
		})
	}
	return result
}

// polyBox переводит многоугольник аннотации в охватывающий прямоугольник.
func polyBox(p *boundingPoly) *entity.BoundingBox {
	if p == nil || len(p.Vertices) == 0 {
		return nil
	}
	minX, minY := p.Vertices[0].X, p.Vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range p.Vertices[1:] {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}
	return &entity.BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Проверка реализации интерфейса
var _ port.TextRecognizer = (*VisionClient)(nil)
