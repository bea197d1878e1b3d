// Package chat answers one utterance at a time: it classifies the text,
// dispatches to the matching handler and records the turn on the session.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/varsilias/crystal/internal/intent"
	"github.com/varsilias/crystal/internal/lists"
	"github.com/varsilias/crystal/internal/locale"
	"github.com/varsilias/crystal/internal/metrics"
	"github.com/varsilias/crystal/internal/reminder"
	"github.com/varsilias/crystal/internal/session"
	"github.com/varsilias/crystal/internal/weather"
	"github.com/varsilias/crystal/pkg/types"
)

var (
	ErrEmptyMessage    = errors.New("empty message")
	ErrSessionNotFound = errors.New("session not found")
)

// Engine is the fallback chat model. Reply never fails; errors come back as
// apology text.
type Engine interface {
	Reply(ctx context.Context, prompt string, history []types.Turn) string
}

type Weather interface {
	Report(ctx context.Context, city string) string
}

type Searcher interface {
	Answer(ctx context.Context, query string) string
}

type News interface {
	Summary(ctx context.Context, topic string) string
}

type Deps struct {
	Log     *slog.Logger
	Store   session.Store
	Engine  Engine
	Weather Weather
	Search  Searcher
	News    News
	// Location is the user's time zone for dates, clocks and reminders.
	Location *time.Location
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type Controller struct {
	log      *slog.Logger
	sessions session.Store
	eng      Engine
	weather  Weather
	search   Searcher
	news     News
	loc      *time.Location
	clock    func() time.Time
}

func NewController(d Deps) *Controller {
	c := &Controller{
		log:      d.Log,
		sessions: d.Store,
		eng:      d.Engine,
		weather:  d.Weather,
		search:   d.Search,
		news:     d.News,
		loc:      d.Location,
		clock:    d.Clock,
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	return c
}

// Reply is the outcome of one turn.
type Reply struct {
	SessionID string
	Intent    intent.Kind
	Message   types.Message
	Latency   time.Duration
}

func (c *Controller) now() time.Time { return c.clock().In(c.loc) }

// NewSession starts a seeded conversation and stores it.
func (c *Controller) NewSession() (*session.Session, error) {
	now := c.now()
	sess := session.New(uuid.NewString(), Persona(now), Greeting, now)
	if err := c.sessions.Put(sess); err != nil {
		return nil, err
	}
	c.log.Info("session started", "session", sess.ID)
	return sess, nil
}

// Respond answers text within sessionID and records the turn on both
// transcripts.
func (c *Controller) Respond(ctx context.Context, sessionID, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}
	sess, ok := c.sessions.Get(sessionID)
	if !ok {
		return Reply{}, ErrSessionNotFound
	}

	in := intent.Classify(text)
	metrics.IntentsTotal.WithLabelValues(in.Kind.String()).Inc()

	start := time.Now()
	msg := sess.Exchange(text, c.now, func(history []types.Turn) string {
		return c.dispatch(ctx, in, history)
	})
	latency := time.Since(start)

	c.log.Info("turn", "session", sessionID, "intent", in.Kind.String(), "latency_ms", latency.Milliseconds())
	return Reply{SessionID: sessionID, Intent: in.Kind, Message: msg, Latency: latency}, nil
}

func (c *Controller) dispatch(ctx context.Context, in intent.Intent, history []types.Turn) string {
	switch in.Kind {
	case intent.List:
		reply, _ := lists.Reply(in.Folded)
		return reply
	case intent.Reminder:
		reply, _ := reminder.Reply(c.now(), in.Folded)
		return reply
	case intent.News:
		return c.news.Summary(ctx, in.Arg)
	case intent.Weather:
		if in.Arg == "" {
			return weather.MsgMissingCity
		}
		return c.weather.Report(ctx, in.Arg)
	case intent.Date:
		return "Hoje é " + locale.ShortDate(c.now()) + "."
	case intent.Time:
		return "São " + locale.Clock(c.now()) + "."
	case intent.Search:
		return c.search.Answer(ctx, in.Arg)
	default:
		return c.eng.Reply(ctx, in.Text, history)
	}
}

// History returns the display transcript of sessionID.
func (c *Controller) History(sessionID string) ([]types.Message, error) {
	sess, ok := c.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Display(), nil
}

func (c *Controller) Sessions() []session.Summary { return c.sessions.List() }

func (c *Controller) EndSession(sessionID string) { c.sessions.Delete(sessionID) }
