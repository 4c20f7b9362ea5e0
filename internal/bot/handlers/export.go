package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/bot/keyboards"
	"github.com/vladimiradmaev/translator-bot/internal/bot/menus"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/domain"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
)

// ExportLimit is how many records an export file holds
const ExportLimit = 100

// ExportHandler sends the translation history as a file
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// Prompt asks for an export format
func (h *ExportHandler) Prompt(ctx context.Context, req *Request) error {
	if !req.Premium {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.PremiumRequired, req.Lang))
	}
	_, err := menus.SendMarkdown(h.deps.API, req.ChatID, messages.Get(messages.SelectExportFormat, req.Lang), keyboards.Export(req.Lang))
	return err
}

// Export handles "export:<format>"
func (h *ExportHandler) Export(ctx context.Context, req *Request) error {
	if !req.Premium {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.PremiumRequired, req.Lang))
	}

	format := strings.TrimPrefix(req.CallbackData, keyboards.CallbackExportPrefix)
	records, err := h.deps.Users.GetUserHistory(ctx, req.UserID, ExportLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return menus.SendText(h.deps.API, req.ChatID, messages.Get(messages.ExportEmpty, req.Lang))
	}

	data, err := RenderHistory(format, records)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Exporting history", "format", format, "records", len(records))

	doc := tgbotapi.NewDocument(req.ChatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("translations_%s.%s", time.Now().Format("2006-01-02"), format),
		Bytes: data,
	})
	doc.Caption = messages.Get(messages.ExportCaption, req.Lang)
	_, err = h.deps.API.Send(doc)
	return err
}

type exportRecord struct {
	CreatedAt      time.Time `json:"created_at"`
	SourceLanguage string    `json:"source_language"`
	SourceText     string    `json:"source_text"`
	TargetLanguage string    `json:"target_language"`
	TranslatedText string    `json:"translated_text"`
	Style          string    `json:"style"`
	IsVoice        bool      `json:"is_voice"`
}

// RenderHistory encodes records as txt, csv or json
func RenderHistory(format string, records []domain.TranslationRecord) ([]byte, error) {
	switch format {
	case "txt":
		return renderText(records), nil
	case "csv":
		return renderCSV(records)
	case "json":
		out := make([]exportRecord, 0, len(records))
		for _, r := range records {
			out = append(out, exportRecord{
				CreatedAt:      r.CreatedAt,
				SourceLanguage: r.SourceLanguage,
				SourceText:     r.SourceText,
				TargetLanguage: r.TargetLanguage,
				TranslatedText: r.TranslatedText,
				Style:          r.Style,
				IsVoice:        r.IsVoice,
			})
		}
		return json.MarshalIndent(out, "", "  ")
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported export format %q", format))
	}
}

func renderText(records []domain.TranslationRecord) []byte {
	var buf bytes.Buffer
	for i, r := range records {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "[%s] %s → %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.SourceLanguage, r.TargetLanguage)
		fmt.Fprintf(&buf, "%s\n%s\n", r.SourceText, r.TranslatedText)
	}
	return buf.Bytes()
}

func renderCSV(records []domain.TranslationRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"created_at", "source_language", "source_text", "target_language", "translated_text", "style", "is_voice"}); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.CreatedAt.Format(time.RFC3339),
			r.SourceLanguage,
			r.SourceText,
			r.TargetLanguage,
			r.TranslatedText,
			r.Style,
			strconv.FormatBool(r.IsVoice),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
