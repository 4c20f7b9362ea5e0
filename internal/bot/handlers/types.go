package handlers

import (
	"context"

	"github.com/vladimiradmaev/translator-bot/internal/domain"
	"github.com/vladimiradmaev/translator-bot/internal/interfaces"
	"github.com/vladimiradmaev/translator-bot/internal/session"
)

// EventKind is the routing class of an incoming update
type EventKind int

const (
	KindUnknown EventKind = iota
	KindCommand
	KindVoice
	KindText
	KindCallback
)

func (k EventKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindVoice:
		return "voice"
	case KindText:
		return "text"
	case KindCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Event is a transport-neutral view of one update
type Event struct {
	Kind         EventKind
	UserID       int64
	ChatID       int64
	MessageID    int
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
	Text         string
	Command      string // lowercased, without slash or @bot suffix
	VoiceFileID  string
	CallbackID   string
	CallbackData string
}

// Request is an event after the profile has been loaded
type Request struct {
	Event
	User    *domain.UserProfile
	Lang    string // interface language
	Premium bool
}

// HandlerFunc processes one routed request
type HandlerFunc func(ctx context.Context, req *Request) error

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	API        interfaces.Sender
	Users      interfaces.UserServiceInterface
	Translator interfaces.TranslatorInterface
	Voice      interfaces.VoiceInterface
	Sessions   session.Store
}
