package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alejandrodnm/bandgap/internal/domain"
	"github.com/alejandrodnm/bandgap/internal/history"
	"github.com/alejandrodnm/bandgap/internal/ports"
	"github.com/google/uuid"
)

// ErrBusy se devuelve si se envía una predicción mientras otra está en curso.
var ErrBusy = errors.New("predictor: prediction already in flight")

// Dashboard es la vista completa que consume la capa de presentación.
// Trend y Counts se recalculan en cada llamada a Snapshot.
type Dashboard struct {
	State     State
	Current   *domain.PredictionRecord
	LastError string
	History   domain.History
	Trend     []domain.TrendPoint
	Counts    map[domain.Bucket]int
}

// Orchestrator conduce una predicción: valida, llama a la API, clasifica y
// confirma el resultado en el historial. Como máximo una predicción en vuelo.
type Orchestrator struct {
	api       ports.PredictionAPI
	meta      ports.MetadataAPI
	store     *history.Store
	presenter ports.Presenter

	now          func() time.Time
	newID        func() string
	onTransition func(Transition)

	mu        sync.Mutex
	state     State
	current   *domain.PredictionRecord
	lastError string
}

// Option configura un Orchestrator.
type Option func(*Orchestrator)

// WithMetadata habilita ModelInfo.
func WithMetadata(meta ports.MetadataAPI) Option {
	return func(o *Orchestrator) { o.meta = meta }
}

// WithPresenter muestra cada resultado o error al terminar un Submit.
func WithPresenter(p ports.Presenter) Option {
	return func(o *Orchestrator) { o.presenter = p }
}

// WithClock reemplaza time.Now para el CreatedAt de los registros.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDGenerator reemplaza la generación de IDs (uuid por defecto).
func WithIDGenerator(gen func() string) Option {
	return func(o *Orchestrator) { o.newID = gen }
}

// WithTransitionHook observa cada transición, en orden, fuera del lock.
func WithTransitionHook(fn func(Transition)) Option {
	return func(o *Orchestrator) { o.onTransition = fn }
}

// New crea un Orchestrator con las dependencias inyectadas.
func New(api ports.PredictionAPI, store *history.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api:   api,
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LoadHistory lee el historial persistido. Llamar una vez al arrancar.
func (o *Orchestrator) LoadHistory(ctx context.Context) domain.History {
	h := o.store.Load(ctx)
	slog.Debug("history loaded", "records", len(h))
	return h
}

// Submit ejecuta una predicción completa para formula.
//
// Devuelve *domain.ValidationError si la fórmula está vacía (sin llamar a la red),
// ErrBusy si ya hay una predicción en curso y *domain.PredictionError si la API
// falla. En cualquier error el historial y la predicción actual no cambian.
func (o *Orchestrator) Submit(ctx context.Context, formula string) (domain.PredictionRecord, error) {
	trimmed := strings.TrimSpace(formula)
	if trimmed == "" {
		verr := &domain.ValidationError{Field: "formula", Reason: "empty formula"}
		o.setError("Please enter a chemical formula")
		return domain.PredictionRecord{}, verr
	}

	if !o.begin() {
		return domain.PredictionRecord{}, ErrBusy
	}

	start := time.Now()
	result, err := o.api.Predict(ctx, trimmed)
	if err != nil {
		perr := asPredictionError(err)
		slog.Warn("prediction failed", "formula", trimmed, "err", err)
		o.finish(StateFailed, nil, perr.UserMessage())
		return domain.PredictionRecord{}, perr
	}

	record := result.Record(o.newID(), o.now().UTC())
	hist := o.store.Commit(ctx, record)

	slog.Info("prediction complete",
		"formula", record.Formula,
		"band_gap", record.PredictedBandGap,
		"optimal", record.IsOptimal,
		"history", len(hist),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	o.finish(StateSucceeded, &record, "")
	return record, nil
}

// ClearHistory vacía el historial. La predicción actual no cambia.
func (o *Orchestrator) ClearHistory(ctx context.Context) {
	o.store.Clear(ctx)
	slog.Info("history cleared")
	if o.presenter != nil {
		o.presenter.ShowHistory(domain.History{})
	}
}

// ModelInfo consulta la metadata del modelo. Best-effort: un fallo se loguea
// y devuelve ok=false.
func (o *Orchestrator) ModelInfo(ctx context.Context) (domain.ModelInfo, bool) {
	if o.meta == nil {
		return domain.ModelInfo{}, false
	}
	info, err := o.meta.ModelInfo(ctx)
	if err != nil {
		slog.Warn("model info unavailable", "err", err)
		return domain.ModelInfo{}, false
	}
	return info, true
}

// Current devuelve la última predicción exitosa de esta sesión.
func (o *Orchestrator) Current() (domain.PredictionRecord, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return domain.PredictionRecord{}, false
	}
	return *o.current, true
}

// State devuelve el estado actual de la máquina.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// History devuelve el historial en memoria.
func (o *Orchestrator) History() domain.History {
	return o.store.Current()
}

// Snapshot arma la vista del dashboard a partir del estado actual.
func (o *Orchestrator) Snapshot() Dashboard {
	o.mu.Lock()
	d := Dashboard{State: o.state, LastError: o.lastError}
	if o.current != nil {
		rec := *o.current
		d.Current = &rec
	}
	o.mu.Unlock()

	d.History = o.store.Current()
	d.Trend = domain.TrendSeries(d.History)
	d.Counts = domain.CategoryCounts(d.History)
	return d
}

// --- máquina de estados ---

// begin pasa de idle a submitting. Devuelve false si no estaba idle.
func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return false
	}
	t := o.transitionLocked(StateSubmitting)
	o.lastError = ""
	o.mu.Unlock()

	o.notify(t)
	return true
}

// finish cierra el ciclo: submitting → outcome → idle, y presenta el resultado.
func (o *Orchestrator) finish(outcome State, record *domain.PredictionRecord, errMsg string) {
	o.mu.Lock()
	t1 := o.transitionLocked(outcome)
	if record != nil {
		o.current = record
	}
	o.lastError = errMsg
	t2 := o.transitionLocked(StateIdle)
	o.mu.Unlock()

	o.notify(t1)
	o.notify(t2)

	if o.presenter == nil {
		return
	}
	if record != nil {
		o.presenter.ShowPrediction(*record)
		o.presenter.ShowHistory(o.store.Current())
		return
	}
	o.presenter.ShowError(errMsg)
}

func (o *Orchestrator) transitionLocked(to State) Transition {
	t := Transition{From: o.state, To: to}
	if !validTransitions[t] {
		panic(fmt.Sprintf("predictor: invalid transition %s → %s", t.From, t.To))
	}
	o.state = to
	return t
}

func (o *Orchestrator) notify(t Transition) {
	slog.Debug("predictor state", "from", t.From, "to", t.To)
	if o.onTransition != nil {
		o.onTransition(t)
	}
}

func (o *Orchestrator) setError(msg string) {
	o.mu.Lock()
	o.lastError = msg
	o.mu.Unlock()
	if o.presenter != nil {
		o.presenter.ShowError(msg)
	}
}

// asPredictionError normaliza cualquier error de la API a *domain.PredictionError.
func asPredictionError(err error) *domain.PredictionError {
	var perr *domain.PredictionError
	if errors.As(err, &perr) {
		return perr
	}
	return &domain.PredictionError{Message: domain.DefaultPredictionMessage, Err: err}
}
