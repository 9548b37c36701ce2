package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/nstehr/brood/ipc"
	"github.com/nstehr/brood/journal"
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/store"
	"github.com/nstehr/brood/world"
	"github.com/nstehr/brood/zerg"
)

// Sink receives the orders of one step. It is called at most once per step
// and never with an empty batch.
type Sink interface {
	Submit(loop, gameStep int, orders []model.Order) error
}

// Options are shared by every match an agent plays.
type Options struct {
	Thresholds world.Thresholds
	Gates      []*rules.Gate
	Disabled   []string
	// JournalDir enables the per-step decision journal.
	JournalDir string
	// Store enables the match history. It may be shared between agents.
	Store *store.Store
}

// Agent owns the decision-making for a single bridge connection. One match
// runs at a time; hello starts a new one with fresh modules.
type Agent struct {
	Sink   Sink
	Player string
	opts   Options

	match   string
	builder *world.Builder
	engine  *rules.Engine
	batch   rules.Batch
	journal *journal.Writer
	prev    *stateSnapshot
	steps   int
}

var errNoMatch = errors.New("observation before hello")

func New(sink Sink, opts Options) *Agent {
	return &Agent{Sink: sink, opts: opts}
}

// Begin sets up a match: snapshot builder, command modules, journal and
// history row. A match still open is ended without a result. On error the
// agent is left without a match.
func (a *Agent) Begin(hello ipc.HelloMessage) error {
	a.Abandon()

	seed := hello.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	deps := zerg.Deps{
		Placement: world.NewGridPlacement(hello.Info.Placement),
		Rand:      rand.New(rand.NewSource(seed)),
	}
	engine := rules.NewEngine(a.opts.Gates, a.opts.Disabled)
	zerg.Register(engine, deps)
	if unbound := engine.Unbound(); len(unbound) > 0 {
		slog.Warn("gates or disabled names match no command", "names", unbound)
	}

	match := uuid.NewString()
	if a.opts.Store != nil {
		id, err := a.opts.Store.StartMatch(context.Background(), store.Match{
			Player:    hello.Player,
			Race:      string(hello.Race),
			EnemyRace: string(hello.EnemyRace),
			Map:       hello.Info.MapName,
		})
		if err != nil {
			return fmt.Errorf("start match: %w", err)
		}
		match = id
	}
	var w *journal.Writer
	if a.opts.JournalDir != "" {
		var err error
		if w, err = journal.Create(a.opts.JournalDir, match); err != nil {
			if a.opts.Store != nil {
				_ = a.opts.Store.EndMatch(context.Background(), match, 0, "abandoned")
			}
			return err
		}
	}

	a.Player = hello.Player
	a.match = match
	a.journal = w
	a.builder = world.NewBuilder(hello.Info, hello.Race, hello.EnemyRace, a.opts.Thresholds)
	a.engine = engine
	a.prev = nil
	a.steps = 0

	slog.Info("match started", "match", a.match, "player", a.Player,
		"race", hello.Race, "enemy", hello.EnemyRace, "map", hello.Info.MapName, "seed", seed)
	return nil
}

// Step runs one decision step: snapshot, the four categories in order, and
// at most one Submit. It reports whether anything was submitted.
func (a *Agent) Step(obs model.Observation) (bool, error) {
	if a.builder == nil {
		return false, errNoMatch
	}
	a.batch.Reset()
	s := a.builder.Build(obs)

	if a.steps == 0 {
		zerg.SplitWorkers(s, &a.batch)
	}
	a.steps++

	var fired []rules.Fired
	for _, c := range rules.Categories {
		fired = append(fired, a.engine.Run(c, s, &a.batch)...)
	}

	cur := takeSnapshot(s)
	events := detectEvents(obs.Loop, cur, a.prev)
	a.prev = &cur
	a.recordEvents(events)

	orders := a.batch.Orders()
	gameStep := s.GameStep()
	a.writeJournal(journal.Record{
		Loop:     obs.Loop,
		Time:     s.Time,
		GameStep: gameStep,
		Fired:    fired,
		Orders:   orders,
		Events:   eventKinds(events),
	})

	if len(orders) == 0 {
		return false, nil
	}
	if err := a.Sink.Submit(obs.Loop, gameStep, orders); err != nil {
		return false, fmt.Errorf("submit loop %d: %w", obs.Loop, err)
	}
	slog.Debug("batch submitted", "loop", obs.Loop, "orders", len(orders), "gameStep", gameStep)
	return true, nil
}

// End closes the match. An empty result means the match was abandoned.
func (a *Agent) End(loop int, result string) {
	if a.builder == nil {
		return
	}
	if a.opts.Store != nil {
		if result == "" {
			result = "abandoned"
		}
		if err := a.opts.Store.EndMatch(context.Background(), a.match, loop, result); err != nil {
			slog.Error("store match result", "match", a.match, "error", err)
		}
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			slog.Error("close journal", "match", a.match, "error", err)
		}
		a.journal = nil
	}
	slog.Info("match ended", "match", a.match, "result", result, "loop", loop, "steps", a.steps)
	a.builder = nil
	a.engine = nil
}

// Abandon ends an open match at the last loop seen, without a result.
func (a *Agent) Abandon() { a.End(a.lastLoop(), "") }

func (a *Agent) lastLoop() int {
	if a.prev == nil {
		return 0
	}
	return a.prev.loop
}

func (a *Agent) recordEvents(events []Event) {
	for _, e := range events {
		slog.Info("game event", "match", a.match, "kind", e.Kind, "loop", e.Loop, "detail", e.Detail)
		if a.opts.Store == nil {
			continue
		}
		err := a.opts.Store.RecordEvent(context.Background(), a.match,
			store.Event{Loop: e.Loop, Kind: string(e.Kind), Detail: e.Detail})
		if err != nil {
			slog.Error("store event", "match", a.match, "error", err)
		}
	}
}

func (a *Agent) writeJournal(r journal.Record) {
	if a.journal == nil {
		return
	}
	if err := a.journal.Write(r); err != nil {
		slog.Error("journal write", "match", a.match, "loop", r.Loop, "error", err)
	}
}

func eventKinds(events []Event) []string {
	if len(events) == 0 {
		return nil
	}
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = string(e.Kind)
	}
	return out
}

func ack() (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &env, nil
}

// HandleHello starts a match and acknowledges it.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}
	if err := a.Begin(hello); err != nil {
		return nil, err
	}
	return ack()
}

// HandleObservation answers every observation exactly once: the actions
// batch was already sent through the sink, otherwise an ack goes back.
func (a *Agent) HandleObservation(env ipc.Envelope) (*ipc.Envelope, error) {
	var obs model.Observation
	if err := json.Unmarshal(env.Data, &obs); err != nil {
		return nil, fmt.Errorf("unmarshal observation: %w", err)
	}
	flushed, err := a.Step(obs)
	if err != nil {
		return nil, err
	}
	if flushed {
		return nil, nil
	}
	return ack()
}

func (a *Agent) HandleGameEnd(env ipc.Envelope) (*ipc.Envelope, error) {
	var end ipc.GameEndMessage
	if err := json.Unmarshal(env.Data, &end); err != nil {
		return nil, fmt.Errorf("unmarshal game_end: %w", err)
	}
	a.End(end.Loop, end.Result)
	return ack()
}
