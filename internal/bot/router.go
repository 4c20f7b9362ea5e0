package bot

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/translator-bot/internal/bot/handlers"
	"github.com/vladimiradmaev/translator-bot/internal/bot/menus"
	"github.com/vladimiradmaev/translator-bot/internal/bot/messages"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"github.com/vladimiradmaev/translator-bot/internal/interfaces"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"github.com/vladimiradmaev/translator-bot/internal/ratelimit"
)

// RatePolicy caps how often one user may hit a route
type RatePolicy struct {
	Action string
	Rate   int
	Period time.Duration
}

// Rate policies shared by routes
var (
	TranslationPolicy = &RatePolicy{Action: "translation", Rate: 10, Period: time.Minute}
	VoicePolicy       = &RatePolicy{Action: "voice", Rate: 5, Period: time.Minute}
)

type route struct {
	name    string
	handler handlers.HandlerFunc
	policy  *RatePolicy
}

type prefixRoute struct {
	prefix string
	route
}

// Router matches events to handlers in priority order: command, voice, button label,
// free text. Callbacks match exact data first, then registered prefixes.
type Router struct {
	api        interfaces.Sender
	users      interfaces.UserServiceInterface
	limiter    *ratelimit.Limiter
	errHandler *apperrors.Handler

	commands         map[string]route
	labels           map[string]route
	voice            *route
	text             *route
	callbacks        map[string]route
	callbackPrefixes []prefixRoute
}

// NewRouter creates an empty router
func NewRouter(api interfaces.Sender, users interfaces.UserServiceInterface, limiter *ratelimit.Limiter) *Router {
	return &Router{
		api:        api,
		users:      users,
		limiter:    limiter,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
		commands:   make(map[string]route),
		labels:     make(map[string]route),
		callbacks:  make(map[string]route),
	}
}

// Command registers h under every given command name
func (r *Router) Command(h handlers.HandlerFunc, names ...string) {
	for _, name := range names {
		r.commands[strings.ToLower(name)] = route{name: "/" + name, handler: h}
	}
}

// Label registers h for an exact reply-keyboard label
func (r *Router) Label(label string, h handlers.HandlerFunc, policy *RatePolicy) {
	r.labels[label] = route{name: "label:" + label, handler: h, policy: policy}
}

func (r *Router) Voice(h handlers.HandlerFunc, policy *RatePolicy) {
	r.voice = &route{name: "voice", handler: h, policy: policy}
}

// Text registers the free-text fallback
func (r *Router) Text(h handlers.HandlerFunc, policy *RatePolicy) {
	r.text = &route{name: "text", handler: h, policy: policy}
}

func (r *Router) Callback(data string, h handlers.HandlerFunc) {
	r.callbacks[data] = route{name: "callback:" + data, handler: h}
}

// CallbackPrefix registers h for callback data starting with prefix
func (r *Router) CallbackPrefix(prefix string, h handlers.HandlerFunc) {
	r.callbackPrefixes = append(r.callbackPrefixes, prefixRoute{
		prefix: prefix,
		route:  route{name: "callback:" + prefix, handler: h},
	})
}

func (r *Router) match(ev handlers.Event) (route, bool) {
	switch ev.Kind {
	case handlers.KindCommand:
		rt, ok := r.commands[ev.Command]
		return rt, ok
	case handlers.KindVoice:
		if r.voice != nil {
			return *r.voice, true
		}
	case handlers.KindText:
		if rt, ok := r.labels[strings.TrimSpace(ev.Text)]; ok {
			return rt, true
		}
		if r.text != nil {
			return *r.text, true
		}
	case handlers.KindCallback:
		if rt, ok := r.callbacks[ev.CallbackData]; ok {
			return rt, true
		}
		for _, p := range r.callbackPrefixes {
			if strings.HasPrefix(ev.CallbackData, p.prefix) {
				return p.route, true
			}
		}
	}
	return route{}, false
}

// Dispatch runs the matched handler. It never panics and never returns an error:
// failures are logged and answered with a generic reply.
func (r *Router) Dispatch(ctx context.Context, ev handlers.Event) {
	log := logger.FromContext(ctx)
	lang := config.NormalizeInterfaceLanguage(ev.LanguageCode)

	rt, ok := r.match(ev)
	if !ok {
		log.Debug("No route for update", "kind", ev.Kind.String(), "command", ev.Command)
		if ev.Kind == handlers.KindCallback {
			r.answerCallback(ctx, ev)
		}
		return
	}
	log = log.With("route", rt.name)
	ctx = logger.WithContext(ctx, log)

	defer func() {
		if p := recover(); p != nil {
			log.Error("Handler panicked", "panic", p, "stack", string(debug.Stack()))
			r.fail(ctx, ev.ChatID, lang, apperrors.NewInternalError(fmt.Errorf("panic: %v", p)))
		}
	}()

	user, err := r.users.RegisterUser(ctx, ev.UserID, ev.Username, ev.FirstName, ev.LastName, ev.LanguageCode)
	if err != nil {
		r.fail(ctx, ev.ChatID, lang, err)
		return
	}
	req := &handlers.Request{
		Event:   ev,
		User:    user,
		Lang:    user.InterfaceLanguage,
		Premium: r.users.HasPremium(user),
	}

	if ev.Kind == handlers.KindCallback {
		r.answerCallback(ctx, ev)
	}

	if p := rt.policy; p != nil && !r.limiter.Allow(ev.UserID, p.Action, p.Rate, p.Period) {
		r.errHandler.HandleWith(ctx, log, apperrors.New(apperrors.ErrorTypeRateLimit, "RATE_LIMIT", "Rate limit exceeded").WithContext("action", p.Action))
		if err := menus.SendText(r.api, ev.ChatID, messages.Get(messages.RateLimited, req.Lang)); err != nil {
			log.Error("Failed to send rate limit notice", "error", err)
		}
		return
	}

	if err := rt.handler(ctx, req); err != nil {
		r.fail(ctx, ev.ChatID, req.Lang, err)
	}
}

func (r *Router) answerCallback(ctx context.Context, ev handlers.Event) {
	if _, err := r.api.Request(tgbotapi.NewCallback(ev.CallbackID, "")); err != nil {
		logger.FromContext(ctx).Warn("Failed to answer callback query", "error", err)
	}
}

func (r *Router) fail(ctx context.Context, chatID int64, lang string, err error) {
	log := logger.FromContext(ctx)
	if stderrors.Is(err, context.DeadlineExceeded) {
		err = apperrors.NewTimeoutError("update").WithContext("cause", err.Error())
	}
	r.errHandler.HandleWith(ctx, log, err)
	if sendErr := menus.SendText(r.api, chatID, messages.Get(messages.GenericError, lang)); sendErr != nil {
		log.Error("Failed to send error reply", "error", sendErr)
	}
}
