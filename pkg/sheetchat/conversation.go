package sheetchat

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/intent"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

// FailureMessage is appended when an action fails.
const FailureMessage = "Sorry, I couldn't complete that on your selection. " +
	"Check that the right cells are selected and try again."

// noCompleterMessage is appended for unmatched requests when no completion
// service is configured.
const noCompleterMessage = "I can only sum, pivot, chart or apply formulas to your selection right now."

// confirmations are the fixed replies for successful actions by kind.
var confirmations = map[intent.Kind]string{
	intent.KindSum:        "Done! I added up the selected cells and wrote the total below the selection.",
	intent.KindColumnSum:  "Done! I wrote the column totals in the row below your selection.",
	intent.KindPivotTable: "Done! I created a pivot table summarizing your data.",
	intent.KindChart:      "Done! I created a chart from your selection.",
	intent.KindFormula:    "Done! I applied the formula.",
	intent.KindPairSum:    "I also summed the amount and cost columns below your selection.",
	intent.KindNextRowSum: "Done! I wrote the totals of each column into the next row.",
}

// SelectionReader reads the current selection. A nil snapshot means
// nothing is selected.
type SelectionReader interface {
	Selection(ctx context.Context) (*models.SelectionSnapshot, error)
}

// Actor carries out a classified request.
type Actor interface {
	Execute(ctx context.Context, snap *models.SelectionSnapshot, req intent.Request) models.Outcome
}

// Completer answers requests no rule matched. Implementations report
// failures as reply text.
type Completer interface {
	Complete(ctx context.Context, history []models.Message, query string, data *models.SelectionSnapshot) string
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Conversation) { c.logger = l }
}

// WithHistoryLimit sets how many prior messages a completion sees.
func WithHistoryLimit(n int) Option {
	return func(c *Conversation) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// WithGreeting replaces the opening assistant message.
func WithGreeting(greeting string) Option {
	return func(c *Conversation) {
		if greeting != "" {
			c.greeting = greeting
		}
	}
}

// WithChartTitle replaces the default title of requested charts.
func WithChartTitle(title string) Option {
	return func(c *Conversation) { c.chartTitle = title }
}

// Conversation is one chat session over a workbook. Turns run one at a
// time; history only grows.
type Conversation struct {
	id           string
	selection    SelectionReader
	actor        Actor
	completer    Completer
	logger       *slog.Logger
	historyLimit int
	greeting     string
	chartTitle   string

	// turn is held for the whole of a Submit call.
	turn sync.Mutex

	mu      sync.RWMutex
	history []models.Message
}

// NewConversation starts a conversation whose history holds the greeting.
// completer may be nil.
func NewConversation(selection SelectionReader, actor Actor, completer Completer, opts ...Option) *Conversation {
	c := &Conversation{
		id:           uuid.Must(uuid.NewV7()).String(),
		selection:    selection,
		actor:        actor,
		completer:    completer,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		historyLimit: defaultHistoryLimit,
		greeting:     defaultGreeting,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.history = []models.Message{{Role: models.RoleAssistant, Content: c.greeting}}
	return c
}

// ID returns the session identifier.
func (c *Conversation) ID() string {
	return c.id
}

// History returns a copy of the conversation so far.
func (c *Conversation) History() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message(nil), c.history...)
}

// Submit runs one user turn and returns the messages it appended, the user
// message first. It fails only when text is blank or another turn is
// running; action and completion failures become assistant messages.
func (c *Conversation) Submit(ctx context.Context, text string) ([]models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if !c.turn.TryLock() {
		return nil, ErrTurnInProgress
	}
	defer c.turn.Unlock()

	logger := c.logger.With("session", c.id)
	prior := c.recent()
	start := c.append(models.RoleUser, text)

	snap, err := c.selection.Selection(ctx)
	if err != nil {
		logger.WarnContext(ctx, "failed to read selection", "error", err)
		snap = nil
	}

	result := intent.Classify(text, snap)
	if result.Primary != nil {
		c.run(ctx, logger, snap, *result.Primary)
	}
	for _, overlay := range result.Overlays {
		c.run(ctx, logger, snap, overlay)
	}

	if !result.Matched() {
		logger.DebugContext(ctx, "no rule matched, asking completion service", "history", len(prior))
		reply := noCompleterMessage
		if c.completer != nil {
			reply = c.completer.Complete(ctx, prior, text, snap)
		}
		c.append(models.RoleAssistant, reply)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message(nil), c.history[start:]...), nil
}

func (c *Conversation) run(ctx context.Context, logger *slog.Logger, snap *models.SelectionSnapshot, req intent.Request) {
	if req.Kind == intent.KindChart && c.chartTitle != "" && req.Title == intent.DefaultChartTitle {
		req.Title = c.chartTitle
	}

	outcome := c.actor.Execute(ctx, snap, req)
	logger.DebugContext(ctx, "action finished",
		"kind", req.Kind,
		"rule", req.Rule,
		"succeeded", outcome.Succeeded,
		"detail", outcome.Message)

	reply := FailureMessage
	if outcome.Succeeded {
		reply = confirmations[req.Kind]
		if reply == "" {
			reply = "Done!"
		}
	}
	c.append(models.RoleAssistant, reply)
}

// append adds a message and returns its index.
func (c *Conversation) append(role models.Role, content string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, models.Message{Role: role, Content: content})
	return len(c.history) - 1
}

// recent returns up to historyLimit of the latest messages.
func (c *Conversation) recent() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	from := len(c.history) - c.historyLimit
	if from < 0 {
		from = 0
	}
	return append([]models.Message(nil), c.history[from:]...)
}
