// Package workflow drives one prompt-generation session: category selection,
// form capture, remote generation/improvement and the saved-prompt list.
//
// At most one remote call is in flight. While it runs the workflow is Pending
// and rejects generate, improve and any context switch; the call always
// resolves back to Idle, with either the model's text or a fixed fallback.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"prompt_generator_server/internal/ai"
	"prompt_generator_server/internal/ai/prompts"
	"prompt_generator_server/internal/store"
	"prompt_generator_server/internal/templates"
	"prompt_generator_server/internal/types"
)

var (
	// ErrPending is returned when a transition requires Idle but a call is in flight.
	ErrPending = errors.New("a request is already in progress")
	// ErrUnknownField is returned when editing a field the active category does not have.
	ErrUnknownField = errors.New("unknown field for active category")
	// ErrNotFound is returned when a saved entry does not exist.
	ErrNotFound = errors.New("saved prompt not found")
)

// State is the request state of the workflow.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
)

// Snapshot is a read-only view of the workflow for presentation.
type Snapshot struct {
	Category      types.Category    `json:"category"`
	Fields        []types.FieldSpec `json:"fields"`
	FormData      types.FormValues  `json:"formData"`
	GeneratedText string            `json:"generatedText"`
	State         State             `json:"state"`
	Pending       bool              `json:"pending"`
	SavedCount    int               `json:"savedCount"`
}

type Workflow struct {
	mu sync.Mutex

	registry  *templates.Registry
	completer ai.Completer
	store     store.Store
	modelID   string
	logger    *slog.Logger
	newID     func() (string, error)

	category  types.Category
	values    types.FormValues
	generated string
	// snapshot holds the form values of the current cycle; nil when none exists.
	snapshot types.FormValues
	state    State
	// cycle identifies the context a remote call was issued for.
	cycle uint64
	saved types.SavedResultList
}

// New creates a workflow on the Text category and loads the saved list from st.
func New(ctx context.Context, registry *templates.Registry, completer ai.Completer, st store.Store, modelID string, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Workflow{
		registry:  registry,
		completer: completer,
		store:     st,
		modelID:   modelID,
		logger:    logger.With("component", "workflow"),
		newID:     newSavedID,
		category:  types.CategoryText,
		values:    registry.Defaults(types.CategoryText),
		state:     StateIdle,
		saved:     st.Load(ctx),
	}
	w.logger.Info("workflow ready", "saved", len(w.saved), "model", modelID)
	return w
}

// newSavedID returns a time-ordered UUIDv7, monotonic within the process.
func newSavedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Snapshot returns the current view.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workflow) snapshotLocked() Snapshot {
	return Snapshot{
		Category:      w.category,
		Fields:        w.registry.FieldsFor(w.category),
		FormData:      w.values.Clone(),
		GeneratedText: w.generated,
		State:         w.state,
		Pending:       w.state == StatePending,
		SavedCount:    len(w.saved),
	}
}

// Saved returns a copy of the saved list, newest first.
func (w *Workflow) Saved() types.SavedResultList {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(types.SavedResultList, len(w.saved))
	copy(out, w.saved)
	return out
}

// SelectCategory activates c with default form values and no generated text.
func (w *Workflow) SelectCategory(c types.Category) (Snapshot, error) {
	if !c.Valid() {
		return Snapshot{}, types.ErrUnknownCategory
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StatePending {
		return w.snapshotLocked(), ErrPending
	}

	w.category = c
	w.values = w.registry.Defaults(c)
	w.generated = ""
	w.snapshot = nil
	w.cycle++
	return w.snapshotLocked(), nil
}

// SetField records one field edit of the active category.
func (w *Workflow) SetField(id, value string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.registry.HasField(w.category, id) {
		return w.snapshotLocked(), fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	w.values[id] = value
	return w.snapshotLocked(), nil
}

// Generate renders values for the active category, frames the instruction
// and asks the model for a prompt. Missing fields are treated as empty; nil
// values generate from the current form.
func (w *Workflow) Generate(ctx context.Context, values types.FormValues) (Snapshot, error) {
	w.mu.Lock()
	if w.state == StatePending {
		defer w.mu.Unlock()
		return w.snapshotLocked(), ErrPending
	}
	if values == nil {
		values = w.values
	}

	normalized := w.registry.Normalize(w.category, values)
	w.values = normalized
	w.snapshot = normalized.Clone()
	w.generated = ""

	text := prompts.GetGenerationPrompt(w.registry.Render(w.category, normalized))
	cycle := w.beginLocked()
	w.mu.Unlock()

	return w.run(ctx, "generate", cycle, text)
}

// Improve asks the model to expand the current generated text.
// Without generated text it does nothing.
func (w *Workflow) Improve(ctx context.Context) (Snapshot, error) {
	w.mu.Lock()
	if w.state == StatePending {
		defer w.mu.Unlock()
		return w.snapshotLocked(), ErrPending
	}
	if w.generated == "" {
		defer w.mu.Unlock()
		return w.snapshotLocked(), nil
	}

	text := prompts.GetImprovementPrompt(w.generated)
	cycle := w.beginLocked()
	w.mu.Unlock()

	return w.run(ctx, "improve", cycle, text)
}

func (w *Workflow) beginLocked() uint64 {
	w.cycle++
	w.state = StatePending
	return w.cycle
}

// run performs the single remote call of a cycle and applies its outcome.
// The call outlives the caller's context; only the client timeout bounds it.
func (w *Workflow) run(ctx context.Context, op string, cycle uint64, text string) (Snapshot, error) {
	result, err := w.complete(context.WithoutCancel(ctx), text)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = StateIdle
	if cycle != w.cycle {
		w.logger.Warn("discarding stale completion", "op", op, "cycle", cycle, "current", w.cycle)
		return w.snapshotLocked(), nil
	}

	if err != nil {
		w.logger.Error("remote call failed", "op", op, "kind", ai.Classify(err), "error", err)
		w.generated = prompts.ErrorMessage
		return w.snapshotLocked(), nil
	}

	w.logger.Info("remote call completed", "op", op, "category", w.category, "chars", len(result))
	w.generated = result
	return w.snapshotLocked(), nil
}

// complete converts a panicking completer into an error so the cycle still resolves.
func (w *Workflow) complete(ctx context.Context, text string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("completer panicked: %v", r)
		}
	}()
	return w.completer.Complete(ctx, w.modelID, text)
}

// Save prepends the current result to the saved list and persists it.
// It reports false when there is no generated text or no form snapshot.
func (w *Workflow) Save(ctx context.Context) (types.SavedResult, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.generated == "" || w.snapshot == nil {
		return types.SavedResult{}, false
	}

	id, err := w.newID()
	if err != nil {
		w.logger.Warn("uuid v7 unavailable, falling back to v4", "error", err)
		id = uuid.NewString()
	}

	saved := types.SavedResult{
		ID:       id,
		Category: w.category,
		FormData: w.snapshot.Clone(),
		Prompt:   w.generated,
	}
	w.saved = w.saved.Prepend(saved)
	w.store.Save(context.WithoutCancel(ctx), w.saved)

	w.logger.Info("prompt saved", "id", id, "category", saved.Category, "total", len(w.saved))
	return saved, true
}

// DeleteSaved removes the entry with the given id. It reports whether one was removed.
func (w *Workflow) DeleteSaved(ctx context.Context, id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	list, removed := w.saved.Remove(id)
	if !removed {
		return false
	}
	w.saved = list
	w.store.Save(context.WithoutCancel(ctx), w.saved)

	w.logger.Info("prompt deleted", "id", id, "total", len(w.saved))
	return true
}

// SelectSaved resumes a saved entry: its category, form values and text.
func (w *Workflow) SelectSaved(id string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StatePending {
		return w.snapshotLocked(), ErrPending
	}
	entry, ok := w.saved.Find(id)
	if !ok {
		return w.snapshotLocked(), ErrNotFound
	}

	w.category = entry.Category
	w.values = w.registry.Normalize(entry.Category, entry.FormData)
	w.snapshot = w.values.Clone()
	w.generated = entry.Prompt
	w.cycle++
	return w.snapshotLocked(), nil
}
