// Package bottest provides in-memory fakes of the Telegram transport and the AI services
// for handler and router tests.
package bottest

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	"github.com/vladimiradmaev/translator-bot/internal/services"
)

// Sender records everything sent through it
type Sender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int

	// SendErr, when set, can fail individual sends
	SendErr func(c tgbotapi.Chattable) error
}

func NewSender() *Sender {
	return &Sender{nextID: 100}
}

func (s *Sender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SendErr != nil {
		if err := s.SendErr(c); err != nil {
			return tgbotapi.Message{}, err
		}
	}
	s.sent = append(s.sent, c)
	s.nextID++
	return tgbotapi.Message{MessageID: s.nextID}, nil
}

func (s *Sender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *Sender) GetFileDirectURL(fileID string) (string, error) {
	return "https://files.example/" + fileID, nil
}

// Sent returns a copy of the sent chattables
func (s *Sender) Sent() []tgbotapi.Chattable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), s.sent...)
}

// Requests returns a copy of the raw requests (callback answers, chat actions)
func (s *Sender) Requests() []tgbotapi.Chattable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), s.requests...)
}

// Texts returns the text of every sent message and message edit, in order
func (s *Sender) Texts() []string {
	var texts []string
	for _, c := range s.Sent() {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			texts = append(texts, m.Text)
		case tgbotapi.EditMessageTextConfig:
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// LastText returns the most recent text, or "" when nothing was sent
func (s *Sender) LastText() string {
	texts := s.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// Documents returns every sent document
func (s *Sender) Documents() []tgbotapi.DocumentConfig {
	var docs []tgbotapi.DocumentConfig
	for _, c := range s.Sent() {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			docs = append(docs, d)
		}
	}
	return docs
}

// Voices returns every sent voice message
func (s *Sender) Voices() []tgbotapi.VoiceConfig {
	var voices []tgbotapi.VoiceConfig
	for _, c := range s.Sent() {
		if v, ok := c.(tgbotapi.VoiceConfig); ok {
			voices = append(voices, v)
		}
	}
	return voices
}

// Translator is a scripted translator
type Translator struct {
	mu    sync.Mutex
	calls []services.TranslateRequest

	TranslateFunc func(ctx context.Context, req services.TranslateRequest) (*domain.TranslationResult, error)
}

func (t *Translator) Translate(ctx context.Context, req services.TranslateRequest) (*domain.TranslationResult, error) {
	t.mu.Lock()
	t.calls = append(t.calls, req)
	t.mu.Unlock()
	if t.TranslateFunc == nil {
		return nil, fmt.Errorf("translator not scripted")
	}
	return t.TranslateFunc(ctx, req)
}

func (t *Translator) LanguageName(code, interfaceLang string) string {
	return config.LanguageName(code, interfaceLang)
}

// Calls returns the requests received so far
func (t *Translator) Calls() []services.TranslateRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]services.TranslateRequest(nil), t.calls...)
}

// Voice is a scripted voice service
type Voice struct {
	TranscribeFunc func(ctx context.Context, fileID string) (string, error)
	SpeechFunc     func(ctx context.Context, text, language string, premium bool, speed float64) ([]byte, error)
}

func (v *Voice) ProcessVoiceMessage(ctx context.Context, fileID string, files services.FileLinker) (string, error) {
	if _, err := files.GetFileDirectURL(fileID); err != nil {
		return "", err
	}
	if v.TranscribeFunc == nil {
		return "", fmt.Errorf("transcription not scripted")
	}
	return v.TranscribeFunc(ctx, fileID)
}

func (v *Voice) GenerateSpeech(ctx context.Context, text, language string, premium bool, speed float64) ([]byte, error) {
	if v.SpeechFunc == nil {
		return nil, fmt.Errorf("speech not scripted")
	}
	return v.SpeechFunc(ctx, text, language, premium, speed)
}
