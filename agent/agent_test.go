package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nstehr/brood/ipc"
	"github.com/nstehr/brood/journal"
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/store"
	"github.com/nstehr/brood/world"
)

type submission struct {
	loop, gameStep int
	orders         []model.Order
}

type fakeSink struct {
	calls []submission
	err   error
}

func (f *fakeSink) Submit(loop, gameStep int, orders []model.Order) error {
	f.calls = append(f.calls, submission{loop, gameStep, orders})
	return f.err
}

var testHello = ipc.HelloMessage{
	Player:    "brood",
	Race:      model.Zerg,
	EnemyRace: model.Terran,
	Info:      testInfo,
	Seed:      1,
}

func started(t *testing.T, sink Sink, opts Options) *Agent {
	t.Helper()
	if opts.Thresholds == (world.Thresholds{}) {
		opts.Thresholds = world.DefaultThresholds()
	}
	a := New(sink, opts)
	if err := a.Begin(testHello); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return a
}

func mineral(tag uint64, x, y float64) model.Unit {
	return model.Unit{Tag: tag, Type: "MINERALFIELD", Alliance: model.Neutral, X: x, Y: y, MineralContents: 1500}
}

// hungry has a larva, money and no supply left: both overlord and drone
// training want to run.
func hungry(loop int) model.Observation {
	return model.Observation{
		Loop: loop, Minerals: 1000, SupplyUsed: 12, SupplyCap: 14,
		Units: []model.Unit{own(1, model.Hatchery, 20, 20), own(2, model.Larva, 20, 18)},
	}
}

func TestStepWithoutHello(t *testing.T) {
	a := New(&fakeSink{}, Options{})
	if _, err := a.Step(hungry(1)); !errors.Is(err, errNoMatch) {
		t.Errorf("err = %v, want errNoMatch", err)
	}
}

func TestStepNothingToDo(t *testing.T) {
	sink := &fakeSink{}
	a := started(t, sink, Options{})
	obs := model.Observation{Loop: 1, SupplyCap: 6, Units: []model.Unit{own(1, model.Hatchery, 20, 20)}}

	flushed, err := a.Step(obs)
	if err != nil || flushed {
		t.Fatalf("Step = %v, %v", flushed, err)
	}
	if len(sink.calls) != 0 {
		t.Errorf("empty batch was submitted: %+v", sink.calls)
	}
}

func TestSubmitOncePerStep(t *testing.T) {
	sink := &fakeSink{}
	a := started(t, sink, Options{})

	flushed, err := a.Step(hungry(224))
	if err != nil || !flushed {
		t.Fatalf("Step = %v, %v", flushed, err)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("Submit called %d times, want 1", len(sink.calls))
	}
	call := sink.calls[0]
	if call.loop != 224 || call.gameStep != 8 {
		t.Errorf("submitted loop %d step %d", call.loop, call.gameStep)
	}
	abilities := make(map[model.Ability]bool)
	for _, o := range call.orders {
		abilities[o.Ability] = true
	}
	if !abilities[model.TrainOverlord] || !abilities[model.TrainDrone] {
		t.Errorf("orders = %+v, want overlord and drone", call.orders)
	}
}

func TestFirstStepSplitsWorkers(t *testing.T) {
	sink := &fakeSink{}
	a := started(t, sink, Options{})

	mining := func(tag uint64, x float64) model.Unit {
		d := own(tag, model.Drone, x, 20)
		d.Orders = []model.UnitOrder{{Ability: model.HarvestGather, TargetTag: 90}}
		return d
	}
	obs := func(loop int) model.Observation {
		return model.Observation{Loop: loop, SupplyUsed: 2, SupplyCap: 6, Units: []model.Unit{
			own(1, model.Hatchery, 20, 20),
			mining(2, 23), mining(3, 17),
			mineral(90, 26, 20), mineral(91, 14, 20),
		}}
	}

	if _, err := a.Step(obs(0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("first step submitted %d batches", len(sink.calls))
	}
	targets := make(map[uint64]uint64)
	for _, o := range sink.calls[0].orders {
		if o.Ability == model.HarvestGather {
			targets[o.UnitTags[0]] = o.TargetTag
		}
	}
	if targets[2] != 90 || targets[3] != 91 {
		t.Errorf("split = %v, want each drone on its closest field", targets)
	}

	if _, err := a.Step(obs(16)); err != nil {
		t.Fatal(err)
	}
	if len(sink.calls) != 1 {
		t.Errorf("busy drones were split again: %+v", sink.calls[1:])
	}
}

func TestDisabledAndGatedCommands(t *testing.T) {
	gates, err := rules.CompileGates(map[string]string{"train-worker": "Minerals > 5000"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		opts Options
		want map[model.Ability]bool
	}{
		{"gate closes worker", Options{Gates: gates}, map[model.Ability]bool{model.TrainOverlord: true}},
		{"disabled overlord", Options{Disabled: []string{"train-overlord"}}, map[model.Ability]bool{model.TrainDrone: true}},
		{"both", Options{Gates: gates, Disabled: []string{"train-overlord"}}, map[model.Ability]bool{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink := &fakeSink{}
			a := started(t, sink, tc.opts)
			if _, err := a.Step(hungry(1)); err != nil {
				t.Fatal(err)
			}
			got := make(map[model.Ability]bool)
			for _, c := range sink.calls {
				for _, o := range c.orders {
					got[o.Ability] = true
				}
			}
			if len(got) != len(tc.want) {
				t.Fatalf("abilities = %v, want %v", got, tc.want)
			}
			for ab := range tc.want {
				if !got[ab] {
					t.Errorf("missing %s in %v", ab, got)
				}
			}
		})
	}
}

func TestHandleObservationReplies(t *testing.T) {
	sink := &fakeSink{}
	a := started(t, sink, Options{})

	env, _ := ipc.NewEnvelope(ipc.TypeObservation, hungry(1))
	reply, err := a.HandleObservation(env)
	if err != nil || reply != nil {
		t.Errorf("flushed step: reply %+v, err %v; want no reply", reply, err)
	}

	idle := model.Observation{Loop: 2, SupplyCap: 6, Units: []model.Unit{own(1, model.Hatchery, 20, 20)}}
	env, _ = ipc.NewEnvelope(ipc.TypeObservation, idle)
	reply, err = a.HandleObservation(env)
	if err != nil || reply == nil || reply.Type != ipc.TypeAck {
		t.Errorf("idle step: reply %+v, err %v; want ack", reply, err)
	}

	sink.err = errors.New("broken pipe")
	env, _ = ipc.NewEnvelope(ipc.TypeObservation, hungry(3))
	if _, err := a.HandleObservation(env); err == nil {
		t.Error("sink error should surface")
	}
}

func TestMatchIsJournaledAndStored(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "brood.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	a := New(&fakeSink{}, Options{Thresholds: world.DefaultThresholds(), JournalDir: dir, Store: st})
	hello, _ := ipc.NewEnvelope(ipc.TypeHello, testHello)
	if reply, err := a.HandleHello(hello); err != nil || reply.Type != ipc.TypeAck {
		t.Fatalf("hello: %+v, %v", reply, err)
	}
	match := a.match

	proxy := enemy(50, model.Barracks, 40, 40)
	proxy.IsStructure = true
	steps := []model.Observation{hungry(1), hungry(9), hungry(17)}
	steps[1].Units = append(steps[1].Units, proxy)
	for _, obs := range steps {
		if _, err := a.Step(obs); err != nil {
			t.Fatal(err)
		}
	}
	end, _ := ipc.NewEnvelope(ipc.TypeGameEnd, ipc.GameEndMessage{Loop: 17, Result: "defeat"})
	if _, err := a.HandleGameEnd(end); err != nil {
		t.Fatal(err)
	}

	records, err := journal.Read(journal.Path(dir, match))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("journal has %d records", len(records))
	}
	if len(records[0].Fired) == 0 || len(records[0].Orders) == 0 {
		t.Errorf("record 1 = %+v", records[0])
	}
	// The proxy is also the first enemy we see.
	wantEvents := []string{string(EventProxyDetected), string(EventFirstContact)}
	if !slices.Equal(records[1].Events, wantEvents) {
		t.Errorf("record 2 events = %v, want %v", records[1].Events, wantEvents)
	}

	m, err := st.Match(ctx, match)
	if err != nil {
		t.Fatal(err)
	}
	if m.Result != "defeat" || m.FinalLoop != 17 || m.EnemyRace != "Terran" {
		t.Errorf("stored match = %+v", m)
	}
	events, err := st.Events(ctx, match)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Kind != string(EventProxyDetected) || events[0].Loop != 9 {
		t.Errorf("stored events = %+v", events)
	}

	if _, err := a.Step(hungry(25)); !errors.Is(err, errNoMatch) {
		t.Errorf("step after game end: %v", err)
	}
}

func TestLocalMatchesNeverShareAJournal(t *testing.T) {
	dir := t.TempDir()
	a := New(&fakeSink{}, Options{Thresholds: world.DefaultThresholds(), JournalDir: dir})

	var ids []string
	for range 2 {
		// Same seed both times.
		if err := a.Begin(testHello); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, a.match)
		if _, err := a.Step(hungry(1)); err != nil {
			t.Fatal(err)
		}
	}
	a.End(1, "victory")

	if ids[0] == ids[1] {
		t.Fatalf("both matches got id %q", ids[0])
	}
	for _, id := range ids {
		records, err := journal.Read(journal.Path(dir, id))
		if err != nil {
			t.Fatalf("journal %s: %v", id, err)
		}
		if len(records) != 1 {
			t.Errorf("journal %s has %d records, want 1", id, len(records))
		}
	}
}

func TestBeginFailureLeavesNoMatch(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(&fakeSink{}, Options{Thresholds: world.DefaultThresholds(), JournalDir: filepath.Join(blocker, "journal")})

	if err := a.Begin(testHello); err == nil {
		t.Fatal("Begin succeeded with an unusable journal dir")
	}
	if _, err := a.Step(hungry(1)); !errors.Is(err, errNoMatch) {
		t.Errorf("Step after failed Begin: %v, want errNoMatch", err)
	}
}
