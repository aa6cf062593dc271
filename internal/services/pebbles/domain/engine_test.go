package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/pebbles/internal/platform/errors"
	"github.com/louisbranch/pebbles/internal/testkit/pebblesfakes"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)

func newTestEngine(source *pebblesfakes.SequenceSource, opts ...Option) *Engine {
	ids := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() (string, error) {
			ids++
			return "session-" + string(rune('0'+ids)), nil
		}),
	}
	return NewEngine(source, append(base, opts...)...)
}

func hardConfig() Config {
	return Config{Difficulty: DifficultyHard, TotalPebbles: 72, MaxPerTurn: 5}
}

func assertCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if !apperrors.IsCode(err, code) {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

func TestInitializeValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "total equals max", cfg: Config{Difficulty: DifficultyEasy, TotalPebbles: 5, MaxPerTurn: 5}},
		{name: "total below max", cfg: Config{Difficulty: DifficultyHard, TotalPebbles: 3, MaxPerTurn: 5}},
		{name: "zero max", cfg: Config{Difficulty: DifficultyHard, TotalPebbles: 10, MaxPerTurn: 0}},
		{name: "missing difficulty", cfg: Config{TotalPebbles: 10, MaxPerTurn: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := pebblesfakes.NewSequenceSource(0)
			engine := newTestEngine(source)
			_, err := engine.Initialize(tc.cfg)
			assertCode(t, err, apperrors.CodeInvalidConfiguration)
			if _, err := engine.Snapshot(); !apperrors.IsCode(err, apperrors.CodeUninitializedState) {
				t.Fatalf("expected no session after failed initialize, got %v", err)
			}
			if source.Calls != 0 {
				t.Fatalf("random calls = %d, want 0", source.Calls)
			}
		})
	}
}

func TestInitializeHumanFirst(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(4))

	opening, err := engine.Initialize(hardConfig())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if opening.AutomatedCount != 0 {
		t.Fatalf("automated count = %d, want 0", opening.AutomatedCount)
	}
	got := opening.Session
	if got.FirstActor != ActorHuman {
		t.Fatalf("first actor = %v, want %v", got.FirstActor, ActorHuman)
	}
	if got.Remaining != 72 || got.TotalPebbles != 72 || got.MaxPerTurn != 5 {
		t.Fatalf("session = %+v, want 72/72 with max 5", got)
	}
	if got.Winner != ActorUnspecified {
		t.Fatalf("winner = %v, want none", got.Winner)
	}
	if got.ID != "session-1" || !got.StartedAt.Equal(fixedNow) {
		t.Fatalf("id/started = %q/%v", got.ID, got.StartedAt)
	}
}

func TestInitializeAutomatedFirstPlaysOpeningMove(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(3))

	opening, err := engine.Initialize(hardConfig())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if opening.Session.FirstActor != ActorAutomated {
		t.Fatalf("first actor = %v, want %v", opening.Session.FirstActor, ActorAutomated)
	}
	if opening.AutomatedCount != 5 {
		t.Fatalf("automated count = %d, want 5", opening.AutomatedCount)
	}
	snap, err := engine.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Remaining != 67 {
		t.Fatalf("remaining = %d, want 67", snap.Remaining)
	}
}

func TestInitializeEasyAutomatedFirstDrawsTwice(t *testing.T) {
	source := pebblesfakes.NewSequenceSource(1, 10)
	engine := newTestEngine(source)

	opening, err := engine.Initialize(Config{Difficulty: DifficultyEasy, TotalPebbles: 20, MaxPerTurn: 4})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if opening.AutomatedCount != 2 {
		t.Fatalf("automated count = %d, want 2", opening.AutomatedCount)
	}
	if source.Calls != 2 {
		t.Fatalf("random calls = %d, want 2", source.Calls)
	}
}

func TestInitializeTwiceFails(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(0, 0))
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	_, err := engine.Initialize(hardConfig())
	assertCode(t, err, apperrors.CodeSessionExists)
}

func TestRandomFailureLeavesNoSession(t *testing.T) {
	source := pebblesfakes.NewSequenceSource()
	source.Err = errors.New("entropy unavailable")
	engine := newTestEngine(source)

	_, err := engine.Initialize(hardConfig())
	assertCode(t, err, apperrors.CodeRandomUnavailable)
	if _, err := engine.Snapshot(); !apperrors.IsCode(err, apperrors.CodeUninitializedState) {
		t.Fatalf("expected uninitialized after random failure, got %v", err)
	}
}

func TestOperationsRequireSession(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource())

	_, err := engine.ApplyTurn(1)
	assertCode(t, err, apperrors.CodeUninitializedState)
	_, err = engine.ApplyGiveUp()
	assertCode(t, err, apperrors.CodeUninitializedState)
	_, err = engine.Snapshot()
	assertCode(t, err, apperrors.CodeUninitializedState)
}

func TestApplyTurnRejectionsAreNoOps(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(0), WithFirstActor(ActorHuman))
	if _, err := engine.Initialize(Config{Difficulty: DifficultyHard, TotalPebbles: 8, MaxPerTurn: 5}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	// Bring the pool below max: human 2 leaves 6, hard replies 5 leaving 1.
	if _, err := engine.ApplyTurn(2); err != nil {
		t.Fatalf("turn: %v", err)
	}
	before, _ := engine.Snapshot()
	if before.Remaining != 1 {
		t.Fatalf("remaining = %d, want 1", before.Remaining)
	}

	tests := []struct {
		count  uint32
		reason RejectReason
	}{
		{count: 0, reason: RejectZero},
		{count: 6, reason: RejectAboveMax},
		{count: 2, reason: RejectAboveRemaining},
	}
	for _, tc := range tests {
		outcome, err := engine.ApplyTurn(tc.count)
		if err != nil {
			t.Fatalf("turn %d: %v", tc.count, err)
		}
		if outcome.Status != TurnRejected || outcome.Reason != tc.reason {
			t.Fatalf("turn %d outcome = %+v, want rejected %v", tc.count, outcome, tc.reason)
		}
		if outcome.Remaining != before.Remaining {
			t.Fatalf("turn %d remaining = %d, want %d", tc.count, outcome.Remaining, before.Remaining)
		}
		after, _ := engine.Snapshot()
		if after != before {
			t.Fatalf("turn %d mutated session: %+v -> %+v", tc.count, before, after)
		}
	}
}

func TestApplyTurnContinuesWithHardReply(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(), WithFirstActor(ActorHuman))
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	outcome, err := engine.ApplyTurn(2)
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	snap, _ := engine.Snapshot()
	want := TurnOutcome{Status: TurnContinues, HumanCount: 2, AutomatedCount: 4, Remaining: 66, Session: snap}
	if outcome != want {
		t.Fatalf("outcome = %+v, want %+v", outcome, want)
	}
}

func TestApplyTurnEasyReply(t *testing.T) {
	tests := []struct {
		name      string
		draw      uint32
		count     uint32
		automated uint32
		remaining uint32
		status    TurnStatus
	}{
		// 20-3 leaves 17, draw 7 % 4 = 3, 14 left.
		{name: "draw remainder", draw: 7, count: 3, automated: 3, remaining: 14, status: TurnContinues},
		// draw 8 % 4 = 0 falls back to the max.
		{name: "zero remainder takes max", draw: 8, count: 1, automated: 4, remaining: 15, status: TurnContinues},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := pebblesfakes.NewSequenceSource(tc.draw)
			engine := newTestEngine(source, WithFirstActor(ActorHuman))
			if _, err := engine.Initialize(Config{Difficulty: DifficultyEasy, TotalPebbles: 20, MaxPerTurn: 4}); err != nil {
				t.Fatalf("initialize: %v", err)
			}

			outcome, err := engine.ApplyTurn(tc.count)
			if err != nil {
				t.Fatalf("turn: %v", err)
			}
			if outcome.Status != tc.status || outcome.AutomatedCount != tc.automated || outcome.Remaining != tc.remaining {
				t.Fatalf("outcome = %+v, want %v with %d taken and %d left", outcome, tc.status, tc.automated, tc.remaining)
			}
			if outcome.Session.Remaining != tc.remaining {
				t.Fatalf("session remaining = %d, want %d", outcome.Session.Remaining, tc.remaining)
			}
			if source.Calls != 1 {
				t.Fatalf("random calls = %d, want 1", source.Calls)
			}
		})
	}
}

func TestApplyTurnEasyReplyTakesLastPebble(t *testing.T) {
	// Human 3 leaves 1, so the bound shrinks to 1 and any draw takes it.
	var finished []Session
	engine := newTestEngine(pebblesfakes.NewSequenceSource(9),
		WithFirstActor(ActorHuman),
		WithObserver(ObserverFunc(func(s Session) { finished = append(finished, s) })),
	)
	if _, err := engine.Initialize(Config{Difficulty: DifficultyEasy, TotalPebbles: 4, MaxPerTurn: 3}); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	outcome, err := engine.ApplyTurn(3)
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if outcome.Status != TurnAutomatedWins || outcome.AutomatedCount != 1 || outcome.Remaining != 0 {
		t.Fatalf("outcome = %+v, want automated win taking 1", outcome)
	}
	if outcome.Session.Winner != ActorAutomated || outcome.Session.Remaining != 0 {
		t.Fatalf("session = %+v, want automated winner with empty pool", outcome.Session)
	}
	if len(finished) != 1 || finished[0].Winner != ActorAutomated {
		t.Fatalf("observer calls = %+v, want one automated win", finished)
	}
}

func TestApplyTurnOutcomeSurvivesRestartInObserver(t *testing.T) {
	var engine *Engine
	engine = newTestEngine(pebblesfakes.NewSequenceSource(),
		WithFirstActor(ActorHuman),
		WithObserver(ObserverFunc(func(Session) {
			if _, err := engine.Restart(hardConfig()); err != nil {
				t.Errorf("restart in observer: %v", err)
			}
		})),
	)
	if _, err := engine.Initialize(Config{Difficulty: DifficultyHard, TotalPebbles: 6, MaxPerTurn: 5}); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	// Human 5 leaves 1 and hard takes it.
	outcome, err := engine.ApplyTurn(5)
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if outcome.Status != TurnAutomatedWins {
		t.Fatalf("status = %v, want automated wins", outcome.Status)
	}
	got := outcome.Session
	if got.ID != "session-1" || got.Winner != ActorAutomated || got.Remaining != 0 || got.TotalPebbles != 6 {
		t.Fatalf("outcome session = %+v, want finished session-1", got)
	}

	current, _ := engine.Snapshot()
	if current.ID != "session-2" || current.Remaining != 72 {
		t.Fatalf("current session = %+v, want fresh session-2", current)
	}
}

func TestApplyTurnRandomFailureLeavesSessionUnchanged(t *testing.T) {
	source := pebblesfakes.NewSequenceSource()
	engine := newTestEngine(source, WithFirstActor(ActorHuman))
	if _, err := engine.Initialize(Config{Difficulty: DifficultyEasy, TotalPebbles: 10, MaxPerTurn: 3}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	before, _ := engine.Snapshot()

	source.Err = errors.New("entropy unavailable")
	_, err := engine.ApplyTurn(2)
	assertCode(t, err, apperrors.CodeRandomUnavailable)

	after, _ := engine.Snapshot()
	if after != before {
		t.Fatalf("session mutated on random failure: %+v -> %+v", before, after)
	}
}

func TestHumanTakesLastPebble(t *testing.T) {
	var finished []Session
	engine := newTestEngine(pebblesfakes.NewSequenceSource(),
		WithFirstActor(ActorHuman),
		WithObserver(ObserverFunc(func(s Session) { finished = append(finished, s) })),
	)
	if _, err := engine.Initialize(Config{Difficulty: DifficultyHard, TotalPebbles: 8, MaxPerTurn: 5}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := engine.ApplyTurn(2); err != nil {
		t.Fatalf("turn: %v", err)
	}

	outcome, err := engine.ApplyTurn(1)
	if err != nil {
		t.Fatalf("final turn: %v", err)
	}
	if outcome.Status != TurnHumanWins || outcome.Winner() != ActorHuman {
		t.Fatalf("outcome = %+v, want human wins", outcome)
	}
	if outcome.Remaining != 0 || outcome.Session.Winner != ActorHuman || outcome.Session.Remaining != 0 {
		t.Fatalf("outcome = %+v, want empty pool with human winner", outcome)
	}
	snap, _ := engine.Snapshot()
	if snap.Winner != ActorHuman || snap.Remaining != 0 || !snap.FinishedAt.Equal(fixedNow) {
		t.Fatalf("session = %+v, want human winner with empty pool", snap)
	}
	if len(finished) != 1 || finished[0].Winner != ActorHuman {
		t.Fatalf("observer calls = %+v, want one human win", finished)
	}
}

func TestEndToEndHardGame(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(), WithFirstActor(ActorHuman))
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	var last TurnOutcome
	for i := 0; i < 72; i++ {
		outcome, err := engine.ApplyTurn(5)
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		if outcome.Status == TurnRejected {
			snap, _ := engine.Snapshot()
			if snap.Finished() {
				break
			}
			// A 5 can exceed a small remaining pool; finish with what is left.
			outcome, err = engine.ApplyTurn(snap.Remaining)
			if err != nil {
				t.Fatalf("turn %d: %v", i, err)
			}
		}
		last = outcome
		snap, _ := engine.Snapshot()
		if snap.Remaining > snap.TotalPebbles {
			t.Fatalf("remaining %d exceeds total %d", snap.Remaining, snap.TotalPebbles)
		}
		if snap.Finished() {
			break
		}
		if snap.Winner != ActorUnspecified {
			t.Fatalf("winner set while pool is %d", snap.Remaining)
		}
	}

	snap, _ := engine.Snapshot()
	if !snap.Finished() || snap.Remaining != 0 {
		t.Fatalf("game did not finish: %+v", snap)
	}
	if snap.Winner != last.Winner() {
		t.Fatalf("winner = %v, last outcome names %v", snap.Winner, last.Winner())
	}
	// 72 is a multiple of 6, so hard play always answers back to a multiple of 6.
	if snap.Winner != ActorAutomated {
		t.Fatalf("winner = %v, want %v", snap.Winner, ActorAutomated)
	}
}

func TestTurnAfterGameOverIsRejected(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(), WithFirstActor(ActorHuman))
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := engine.ApplyGiveUp(); err != nil {
		t.Fatalf("give up: %v", err)
	}

	outcome, err := engine.ApplyTurn(1)
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if outcome.Status != TurnRejected || outcome.Reason != RejectGameOver {
		t.Fatalf("outcome = %+v, want game over rejection", outcome)
	}
}

func TestApplyGiveUp(t *testing.T) {
	calls := 0
	engine := newTestEngine(pebblesfakes.NewSequenceSource(),
		WithFirstActor(ActorHuman),
		WithObserver(ObserverFunc(func(Session) { calls++ })),
	)
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	session, err := engine.ApplyGiveUp()
	if err != nil {
		t.Fatalf("give up: %v", err)
	}
	if session.Winner != ActorAutomated || session.Remaining != 72 {
		t.Fatalf("session = %+v, want automated winner with untouched pool", session)
	}

	again, err := engine.ApplyGiveUp()
	if err != nil {
		t.Fatalf("second give up: %v", err)
	}
	if again != session {
		t.Fatalf("second give up changed session: %+v -> %+v", session, again)
	}
	if calls != 1 {
		t.Fatalf("observer calls = %d, want 1", calls)
	}
}

func TestRestartReplacesSession(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(0, 1))
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := engine.ApplyGiveUp(); err != nil {
		t.Fatalf("give up: %v", err)
	}

	opening, err := engine.Restart(hardConfig())
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	snap, _ := engine.Snapshot()
	if snap.ID != "session-2" || snap.Winner != ActorUnspecified {
		t.Fatalf("session = %+v, want fresh session", snap)
	}
	if snap.FirstActor != ActorAutomated || opening.AutomatedCount != 5 || snap.Remaining != 67 {
		t.Fatalf("restart = %+v / %+v, want automated opening of 5", opening, snap)
	}
}

func TestDefaultSessionIDsAreUnique(t *testing.T) {
	engine := NewEngine(pebblesfakes.NewSequenceSource(), WithFirstActor(ActorHuman))
	opening, err := engine.Initialize(hardConfig())
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	seen := map[string]bool{opening.Session.ID: true}
	for i := 0; i < 50; i++ {
		restarted, err := engine.Restart(hardConfig())
		if err != nil {
			t.Fatalf("restart %d: %v", i, err)
		}
		if len(restarted.Session.ID) != 26 {
			t.Fatalf("session id %q, want 26 characters", restarted.Session.ID)
		}
		if seen[restarted.Session.ID] {
			t.Fatalf("session id %q reused", restarted.Session.ID)
		}
		seen[restarted.Session.ID] = true
	}
}

func TestRestartRemainingDependsOnFirstActor(t *testing.T) {
	for _, first := range []Actor{ActorHuman, ActorAutomated} {
		engine := newTestEngine(pebblesfakes.NewSequenceSource(), WithFirstActor(first))
		if _, err := engine.Restart(hardConfig()); err != nil {
			t.Fatalf("restart: %v", err)
		}
		snap, _ := engine.Snapshot()
		if first == ActorHuman && snap.Remaining != snap.TotalPebbles {
			t.Fatalf("human first remaining = %d, want %d", snap.Remaining, snap.TotalPebbles)
		}
		if first == ActorAutomated && snap.Remaining >= snap.TotalPebbles {
			t.Fatalf("automated first remaining = %d, want below %d", snap.Remaining, snap.TotalPebbles)
		}
	}
}

func TestRestartInvalidConfigKeepsSession(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(), WithFirstActor(ActorHuman))
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	before, _ := engine.Snapshot()

	_, err := engine.Restart(Config{Difficulty: DifficultyEasy, TotalPebbles: 2, MaxPerTurn: 2})
	assertCode(t, err, apperrors.CodeInvalidConfiguration)

	after, _ := engine.Snapshot()
	if after != before {
		t.Fatalf("failed restart mutated session: %+v -> %+v", before, after)
	}
}

func TestSnapshotIsNonDestructive(t *testing.T) {
	engine := newTestEngine(pebblesfakes.NewSequenceSource(), WithFirstActor(ActorHuman))
	if _, err := engine.Initialize(hardConfig()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	first, err := engine.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	second, err := engine.Snapshot()
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if first != second {
		t.Fatalf("snapshots differ: %+v vs %+v", first, second)
	}
}

func TestParseEnums(t *testing.T) {
	if d, err := ParseDifficulty(" hard "); err != nil || d != DifficultyHard {
		t.Fatalf("ParseDifficulty = %v, %v", d, err)
	}
	if _, err := ParseDifficulty("medium"); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
	if a, err := ParseActor("automated"); err != nil || a != ActorAutomated {
		t.Fatalf("ParseActor = %v, %v", a, err)
	}
	if _, err := ParseActor("nobody"); err == nil {
		t.Fatal("expected error for unknown actor")
	}
}
