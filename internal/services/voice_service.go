package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sashabaranov/go-openai"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
)

// Speech speed bounds accepted by the TTS endpoint
const (
	MinSpeechSpeed = 0.25
	MaxSpeechSpeed = 4.0
)

// FileLinker resolves a Telegram file id to a download URL
type FileLinker interface {
	GetFileDirectURL(fileID string) (string, error)
}

// VoiceService transcribes voice messages and synthesizes speech
type VoiceService struct {
	openaiClient *openai.Client
	http         *resty.Client
	maxBytes     int64
}

func NewVoiceService(client *openai.Client, maxBytes int64) *VoiceService {
	return &VoiceService{
		openaiClient: client,
		http:         resty.New().SetTimeout(30 * time.Second),
		maxBytes:     maxBytes,
	}
}

// ProcessVoiceMessage downloads the voice file and returns its transcription
func (s *VoiceService) ProcessVoiceMessage(ctx context.Context, fileID string, files FileLinker) (string, error) {
	url, err := files.GetFileDirectURL(fileID)
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "telegram")
	}

	audio, err := s.download(ctx, url)
	if err != nil {
		return "", err
	}

	resp, err := s.openaiClient.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "voice.ogg",
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "whisper")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperrors.ErrEmptyTranscription
	}
	logger.FromContext(ctx).Info("Voice transcribed", "bytes", len(audio), "chars", len([]rune(text)))
	return text, nil
}

func (s *VoiceService) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "telegram")
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("download voice: %s", resp.Status()), "telegram")
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "telegram")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("voice message exceeds %d bytes", s.maxBytes))
	}
	return data, nil
}

// GenerateSpeech returns MP3 audio for text. Premium users get the HD model.
func (s *VoiceService) GenerateSpeech(ctx context.Context, text, language string, premium bool, speed float64) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("nothing to speak")
	}

	model := openai.TTSModel1
	if premium {
		model = openai.TTSModel1HD
	}

	resp, err := s.openaiClient.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          model,
		Input:          text,
		Voice:          openai.VoiceAlloy,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          ClampSpeed(speed),
	})
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "tts")
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "tts")
	}
	logger.FromContext(ctx).Info("Speech generated", "language", language, "model", model, "bytes", len(audio))
	return audio, nil
}

// ClampSpeed keeps speed inside the range the TTS endpoint accepts; zero means normal speed
func ClampSpeed(speed float64) float64 {
	switch {
	case speed == 0:
		return 1.0
	case speed < MinSpeechSpeed:
		return MinSpeechSpeed
	case speed > MaxSpeechSpeed:
		return MaxSpeechSpeed
	default:
		return speed
	}
}
