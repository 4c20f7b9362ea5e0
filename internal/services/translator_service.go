package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vladimiradmaev/translator-bot/internal/config"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
)

// Completer sends one prompt to a language model
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// TranslateRequest describes one translation
type TranslateRequest struct {
	Text       string
	TargetLang string
	Style      string
	Enhance    bool
}

// TranslatorService translates text in one stage, or two when enhancement is requested
type TranslatorService struct {
	ai           Completer
	basicModel   string
	enhanceModel string
}

func NewTranslatorService(ai Completer, basicModel, enhanceModel string) *TranslatorService {
	return &TranslatorService{
		ai:           ai,
		basicModel:   basicModel,
		enhanceModel: enhanceModel,
	}
}

type basicResponse struct {
	SourceLang  string `json:"source_lang"`
	Translation string `json:"translation"`
}

type enhancedResponse struct {
	Translation  string   `json:"translation"`
	Alternatives []string `json:"alternatives"`
	Explanation  string   `json:"explanation"`
	Grammar      string   `json:"grammar"`
}

// Translate returns the translated text with its metadata, or an error when the provider
// gives no usable translation. A failed enhancement pass falls back to the basic result.
func (s *TranslatorService) Translate(ctx context.Context, req TranslateRequest) (*domain.TranslationResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("nothing to translate")
	}
	log := logger.FromContext(ctx)

	basic, err := s.translateBasic(ctx, text, req.TargetLang)
	if err != nil {
		return nil, err
	}
	sourceLang := strings.ToLower(strings.TrimSpace(basic.SourceLang))
	if sourceLang == "" {
		sourceLang = config.AutoLanguage
	}
	single := &domain.TranslationResult{
		Text:     basic.Translation,
		Metadata: domain.TranslationMetadata{SourceLang: sourceLang},
	}
	if !req.Enhance {
		return single, nil
	}

	enhanced, err := s.enhance(ctx, text, basic.Translation, req.TargetLang, req.Style)
	if err != nil {
		log.Warn("Enhancement failed, using basic translation", "error", err)
		return single, nil
	}

	return &domain.TranslationResult{
		Text: enhanced.Translation,
		Metadata: domain.TranslationMetadata{
			SourceLang:       sourceLang,
			BasicTranslation: basic.Translation,
			Alternatives:     cleanAlternatives(enhanced.Alternatives, enhanced.Translation),
			Explanation:      strings.TrimSpace(enhanced.Explanation),
			Grammar:          strings.TrimSpace(enhanced.Grammar),
		},
	}, nil
}

func (s *TranslatorService) translateBasic(ctx context.Context, text, targetLang string) (*basicResponse, error) {
	system := `You are a professional translator.
Detect the language of the user's text and translate it accurately and literally.
Respond ONLY with a JSON object of the form:
{"source_lang": "<ISO 639-1 code of the detected language>", "translation": "<translated text>"}`
	prompt := fmt.Sprintf("Target language: %s\n\nText:\n%s", config.LanguageName(targetLang, "en"), text)

	raw, err := s.ai.Complete(ctx, CompletionRequest{
		Model:       s.basicModel,
		System:      system,
		Prompt:      prompt,
		JSON:        true,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	var resp basicResponse
	if err := decodeJSON(raw, &resp); err != nil {
		return nil, apperrors.NewExternalAPIError(err, "translation")
	}
	resp.Translation = strings.TrimSpace(resp.Translation)
	if resp.Translation == "" {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("empty translation"), "translation")
	}
	return &resp, nil
}

func (s *TranslatorService) enhance(ctx context.Context, original, basic, targetLang, style string) (*enhancedResponse, error) {
	system := `You are an expert editor of translations.
Improve the literal translation so it sounds natural to a native speaker, fixing idioms and word choice.
Respond ONLY with a JSON object of the form:
{"translation": "<improved translation>", "alternatives": ["<alternative phrasing>", "..."], "explanation": "<short note on word choice, in Russian>", "grammar": "<short grammar note, in Russian>"}`
	prompt := fmt.Sprintf("Target language: %s\nStyle: %s\n\nOriginal text:\n%s\n\nLiteral translation:\n%s",
		config.LanguageName(targetLang, "en"), styleInstruction(style), original, basic)

	raw, err := s.ai.Complete(ctx, CompletionRequest{
		Model:       s.enhanceModel,
		System:      system,
		Prompt:      prompt,
		JSON:        true,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	var resp enhancedResponse
	if err := decodeJSON(raw, &resp); err != nil {
		return nil, err
	}
	resp.Translation = strings.TrimSpace(resp.Translation)
	if resp.Translation == "" {
		return nil, fmt.Errorf("empty enhanced translation")
	}
	return &resp, nil
}

func decodeJSON(raw string, v interface{}) error {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return fmt.Errorf("no valid JSON found in response")
	}
	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// cleanAlternatives drops blanks, duplicates and copies of the main translation
func cleanAlternatives(alts []string, main string) []string {
	seen := map[string]bool{strings.TrimSpace(main): true}
	var out []string
	for _, a := range alts {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// LanguageName resolves a language code for display in the interface language
func (s *TranslatorService) LanguageName(code, interfaceLang string) string {
	return config.LanguageName(code, interfaceLang)
}
