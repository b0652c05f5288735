// Package interpreter turns a spoken or typed command into an inventory
// change, with an explicit user confirmation in between.
//
// States:
//
//	Idle --Start--> Listening --Submit--> Processing --intent--> Idle (pending)
//	Idle (pending) --Confirm--> Processing --commit--> Idle
//	Idle (pending) --Cancel--> Idle
//
// Confirm while Processing is ignored: it neither commits nor changes state.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/classifier"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/inventory"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/metrics"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

// State is the interpreter state.
type State int

const (
	StateIdle State = iota
	StateListening
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrInvalidTransition is returned when an event is not allowed in the
	// current state. The state is left unchanged.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrBusy is returned when the shared Guard is held elsewhere.
	ErrBusy = errors.New("another command is being processed")

	// ErrNothingToConfirm is returned by Confirm without a pending intent.
	ErrNothingToConfirm = errors.New("no command to confirm")
)

// OutcomeKind classifies the result of Confirm.
type OutcomeKind string

const (
	OutcomeCommitted      OutcomeKind = "committed"
	OutcomeIgnored        OutcomeKind = "ignored"
	OutcomeNotImplemented OutcomeKind = "not_implemented"
	OutcomeFailed         OutcomeKind = "failed"
)

// Outcome is the feedback shown after Confirm.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Intent  *models.Intent
	Err     error

	// ItemID is the committed item, for OutcomeCommitted.
	ItemID string
}

// Parser interprets a transcript. remote.API satisfies it.
type Parser interface {
	ProcessVoiceCommand(ctx context.Context, transcript string) (*models.Intent, error)
}

// Committer applies a confirmed add. *inventory.Repository satisfies it.
type Committer interface {
	AddItem(ctx context.Context, in inventory.AddItemInput) inventory.Result
}

// Interpreter is the command state machine. It is safe for concurrent use;
// events are applied one at a time.
type Interpreter struct {
	mu         sync.Mutex
	state      State
	transcript string
	pending    *models.Intent

	parser    Parser
	committer Committer
	guard     *Guard
	logger    *slog.Logger
}

// New creates an Interpreter in the Idle state. A nil guard gets a private one.
func New(parser Parser, committer Committer, guard *Guard, logger *slog.Logger) *Interpreter {
	if guard == nil {
		guard = NewGuard()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{
		state:     StateIdle,
		parser:    parser,
		committer: committer,
		guard:     guard,
		logger:    logger,
	}
}

// State returns the current state.
func (i *Interpreter) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Pending returns a copy of the intent awaiting confirmation, or nil.
func (i *Interpreter) Pending() *models.Intent {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pending == nil {
		return nil
	}
	cp := *i.pending
	return &cp
}

// Transcript returns the transcript of the pending intent.
func (i *Interpreter) Transcript() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.transcript
}

// Start begins capturing a command. A pending intent is discarded.
func (i *Interpreter) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != StateIdle {
		return fmt.Errorf("start from %s: %w", i.state, ErrInvalidTransition)
	}
	i.state = StateListening
	i.pending = nil
	i.transcript = ""
	return nil
}

// Submit sends transcript for interpretation and holds the resulting intent
// for confirmation. An empty transcript keeps the interpreter Listening. A
// failed interpretation returns it to Idle.
func (i *Interpreter) Submit(ctx context.Context, transcript string) (*models.Intent, error) {
	transcript = strings.TrimSpace(transcript)

	i.mu.Lock()
	if i.state != StateListening {
		state := i.state
		i.mu.Unlock()
		return nil, fmt.Errorf("submit from %s: %w", state, ErrInvalidTransition)
	}
	if transcript == "" {
		i.mu.Unlock()
		return nil, apperr.Validation("transcript", "is required")
	}
	if !i.guard.TryBegin() {
		i.mu.Unlock()
		return nil, ErrBusy
	}
	i.state = StateProcessing
	i.transcript = transcript
	i.mu.Unlock()

	var intent *models.Intent
	var err error
	defer func() {
		i.mu.Lock()
		i.state = StateIdle
		if err == nil {
			i.pending = intent
		} else {
			i.transcript = ""
		}
		i.mu.Unlock()
		i.guard.End()
	}()

	intent, err = i.parser.ProcessVoiceCommand(ctx, transcript)
	if err == nil && intent == nil {
		err = errors.New("interpretation returned no intent")
	}
	if err != nil {
		i.logger.Warn("Command interpretation failed", "transcript", transcript, "error", err)
		metrics.ObserveCommand("unknown", string(OutcomeFailed))
		return nil, err
	}

	normalize(intent, transcript)
	i.logger.Info("Command interpreted",
		"intent", intent.Intent,
		"item", intent.Item.DisplayName(),
		"category", intent.Item.Category,
		"confidence", intent.Confidence,
	)
	cp := *intent
	return &cp, nil
}

// Confirm commits the pending intent.
//
// Only add_item is committed. Other intents clear the pending intent and
// report OutcomeNotImplemented. A failed commit keeps the intent pending so
// the user can retry; the repository leaves no partial item behind.
func (i *Interpreter) Confirm(ctx context.Context) Outcome {
	i.mu.Lock()
	if i.state == StateProcessing {
		i.mu.Unlock()
		return Outcome{Kind: OutcomeIgnored, Message: "Already processing"}
	}
	if i.state != StateIdle || i.pending == nil {
		i.mu.Unlock()
		return Outcome{Kind: OutcomeFailed, Message: ErrNothingToConfirm.Error(), Err: ErrNothingToConfirm}
	}
	intent := i.pending

	if intent.Intent != models.IntentAddItem {
		i.pending = nil
		i.transcript = ""
		i.mu.Unlock()
		metrics.ObserveCommand(string(intent.Intent), string(OutcomeNotImplemented))
		i.logger.Info("Command not supported yet", "intent", intent.Intent)
		return Outcome{
			Kind:    OutcomeNotImplemented,
			Message: fmt.Sprintf("%s is not supported yet", describe(intent.Intent)),
			Intent:  intent,
		}
	}

	if !i.guard.TryBegin() {
		i.mu.Unlock()
		return Outcome{Kind: OutcomeIgnored, Message: ErrBusy.Error(), Err: ErrBusy}
	}
	i.state = StateProcessing
	i.mu.Unlock()

	var res inventory.Result
	defer func() {
		i.mu.Lock()
		i.state = StateIdle
		if res.Success {
			i.pending = nil
			i.transcript = ""
		}
		i.mu.Unlock()
		i.guard.End()
	}()

	res = i.committer.AddItem(ctx, toAddItem(intent))
	if !res.Success {
		metrics.ObserveCommand(string(intent.Intent), string(OutcomeFailed))
		i.logger.Warn("Command commit failed", "item", intent.Item.DisplayName(), "error", res.Err)
		return Outcome{Kind: OutcomeFailed, Message: res.Error, Intent: intent, Err: res.Err}
	}

	metrics.ObserveCommand(string(intent.Intent), string(OutcomeCommitted))
	return Outcome{
		Kind:    OutcomeCommitted,
		Message: fmt.Sprintf("Added %s %s of %s", intent.Item.Quantity.String(), intent.Item.Unit, intent.Item.DisplayName()),
		Intent:  intent,
		ItemID:  res.ItemID,
	}
}

// Cancel discards the pending intent or stops listening. It is not possible
// while Processing.
func (i *Interpreter) Cancel() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == StateProcessing {
		return fmt.Errorf("cancel from %s: %w", i.state, ErrInvalidTransition)
	}
	if i.pending != nil {
		metrics.ObserveCommand(string(i.pending.Intent), "cancelled")
	}
	i.state = StateIdle
	i.pending = nil
	i.transcript = ""
	return nil
}

// normalize keeps the intent inside the model's invariants: a taxonomy
// category and a confidence in [0,1].
func normalize(intent *models.Intent, transcript string) {
	intent.Confidence = models.ClampConfidence(intent.Confidence)
	if intent.Transcript == "" {
		intent.Transcript = transcript
	}
	if intent.Intent == "" {
		intent.Intent = models.IntentAddItem
	}
	if category, ok := models.ParseCategory(string(intent.Item.Category)); ok {
		intent.Item.Category = category
	} else {
		intent.Item.Category = classifier.ClassifyRules(intent.Item.DisplayName()).Category
	}
	if !intent.Item.Quantity.IsPositive() {
		intent.Item.Quantity = decimal.NewFromInt(1)
	}
	if intent.Item.Unit == "" {
		intent.Item.Unit = inventory.DefaultUnit
	}
}

func toAddItem(intent *models.Intent) inventory.AddItemInput {
	return inventory.AddItemInput{
		Name:     capitalize(intent.Item.DisplayName()),
		Category: intent.Item.Category,
		Quantity: intent.Item.Quantity,
		Unit:     intent.Item.Unit,
		Location: intent.Item.Location,
	}
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func describe(kind models.IntentKind) string {
	switch kind {
	case models.IntentUpdateItem:
		return "Updating items by voice"
	case models.IntentRemoveItem:
		return "Removing items by voice"
	case models.IntentQueryItem:
		return "Asking about items by voice"
	default:
		return fmt.Sprintf("Command %q", kind)
	}
}
