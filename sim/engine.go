package sim

import (
	"context"
	cryptoRand "crypto/rand"
	"encoding/binary"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"challengesim/internal/id"
	"challengesim/journal"
	"challengesim/profile"
	"challengesim/risk"
	"challengesim/strategy"
)

// WinRateEdge is the fixed edge over the break-even win rate that
// auto-simulate assumes, so a simulated run has positive expected
// drift toward the target.
const WinRateEdge = 0.10

var (
	ErrNotInitialized = errors.New("sim: engine not initialized")
	ErrBatchInFlight  = errors.New("sim: auto-simulate batch in flight")
	ErrInvalidDays    = errors.New("sim: days must be positive")
)

// Listener observes state changes. Callbacks are delivered after the
// engine lock is released, so a listener may call back into the engine
// (such calls see the batch guard like any other caller).
type Listener interface {
	// OnStateChange fires after every applied trade and after reset.
	OnStateChange(Snapshot)
	// OnPassed fires exactly once per attempt, when the balance first
	// touches the target.
	OnPassed(Snapshot)
}

// Engine owns exactly one State per challenge attempt and funnels all
// mutation through Initialize, ManualTrade, AutoSimulate and Reset.
type Engine struct {
	mu sync.Mutex

	prof      profile.Profile
	strat     strategy.Strategy
	attemptID string
	state     State

	// batch bookkeeping for auto-simulate
	running   bool
	remaining int

	stepDelay time.Duration
	rng       *rand.Rand
	journal   journal.Journal // optional
	listener  Listener        // optional
	now       func() time.Time
}

// NewEngine returns an engine recording to j. j may be nil when no
// journaling is wanted.
func NewEngine(j journal.Journal) *Engine {
	return &Engine{
		journal: j,
		rng:     rand.New(rand.NewSource(randomSeed())),
		now:     time.Now,
	}
}

// SetListener installs the state-change observer.
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

// SetStepDelay sets the pause between auto-simulate steps. Zero (the
// default) drains the batch synchronously; the net result is the same,
// only intermediate observability differs.
func (e *Engine) SetStepDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stepDelay = d
}

// Seed re-seeds the outcome generator. Runs with the same seed, profile
// and operations replay the same trade sequence.
func (e *Engine) Seed(seed int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng = rand.New(rand.NewSource(seed))
}

// Initialize starts a fresh attempt for the profile/strategy pair.
// Rejected while an auto-simulate batch is in flight.
func (e *Engine) Initialize(p profile.Profile, s strategy.Strategy) (Snapshot, error) {
	if err := p.Validate(); err != nil {
		return Snapshot{}, err
	}

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return Snapshot{}, ErrBatchInFlight
	}
	e.prof = p
	e.strat = s
	e.attemptID = id.New()
	e.state = newState(p.AccountBalance)
	snap := e.snapshotLocked()
	listener := e.listener
	e.mu.Unlock()

	if listener != nil {
		listener.OnStateChange(snap)
	}
	return snap, nil
}

// ManualTrade applies a single trade with a known outcome.
func (e *Engine) ManualTrade(win bool) (Snapshot, error) {
	e.mu.Lock()
	if e.attemptID == "" {
		e.mu.Unlock()
		return Snapshot{}, ErrNotInitialized
	}
	if e.running {
		e.mu.Unlock()
		return Snapshot{}, ErrBatchInFlight
	}

	snap, passedNow, err := e.applyTradeLocked(win)
	listener := e.listener
	e.mu.Unlock()

	if err != nil {
		return snap, err
	}
	notify(listener, snap, passedNow)
	return snap, nil
}

// AutoSimulate applies days*tradesPerDay independent trades, each won
// with probability breakEven+10pp, strictly one after another: trade
// i+1 always sees the balance left by trade i.
//
// While the batch has undelivered steps, every other engine operation
// is rejected with ErrBatchInFlight (rejection was chosen over
// queueing; see DESIGN.md). Cancelling ctx stops the batch between
// steps and leaves the partial progress applied — mid-batch state is
// observable by design.
func (e *Engine) AutoSimulate(ctx context.Context, days int) (Snapshot, error) {
	b, err := e.beginBatch(days)
	if err != nil {
		return e.CurrentSnapshot(), err
	}
	return e.runBatch(ctx, b)
}

// AutoSimulateStart reserves the batch under the engine's guard and
// runs it in the background. Once it returns nil the batch is in
// flight: every other engine operation is rejected until it drains, so
// two concurrent starts can never both succeed.
func (e *Engine) AutoSimulateStart(ctx context.Context, days int) error {
	b, err := e.beginBatch(days)
	if err != nil {
		return err
	}
	go func() {
		// Cancellation is a normal stop, not a failure.
		if _, err := e.runBatch(ctx, b); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("sim: auto-simulate batch: %v", err)
		}
	}()
	return nil
}

type batch struct {
	total   int
	winRate float64
	delay   time.Duration
}

// beginBatch validates the request and marks the batch in flight, all
// under the lock. After it returns nil the caller owns the batch and
// must run it to completion (runBatch clears the flag on every path).
func (e *Engine) beginBatch(days int) (batch, error) {
	if days <= 0 {
		return batch{}, ErrInvalidDays
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.attemptID == "" {
		return batch{}, ErrNotInitialized
	}
	if e.running {
		return batch{}, ErrBatchInFlight
	}

	total := days * e.prof.TradesPerDay
	winRate := e.strat.BreakEvenWinRate/100 + WinRateEdge
	if winRate > 1 {
		winRate = 1
	}
	e.running = true
	e.remaining = total
	return batch{total: total, winRate: winRate, delay: e.stepDelay}, nil
}

func (e *Engine) runBatch(ctx context.Context, b batch) (Snapshot, error) {
	for i := 0; i < b.total; i++ {
		if err := ctx.Err(); err != nil {
			e.endBatch()
			return e.CurrentSnapshot(), err
		}

		e.mu.Lock()
		win := e.rng.Float64() < b.winRate
		snap, passedNow, err := e.applyTradeLocked(win)
		listener := e.listener
		e.mu.Unlock()

		if err != nil {
			e.endBatch()
			return snap, err
		}
		notify(listener, snap, passedNow)

		if b.delay > 0 && i < b.total-1 {
			select {
			case <-ctx.Done():
				e.endBatch()
				return e.CurrentSnapshot(), ctx.Err()
			case <-time.After(b.delay):
			}
		}
	}

	e.endBatch()
	return e.CurrentSnapshot(), nil
}

// Reset starts the attempt over: same profile and strategy, fresh
// attempt ID, balance back at the starting account size, empty
// history. Rejected while a batch is in flight.
func (e *Engine) Reset() (Snapshot, error) {
	e.mu.Lock()
	if e.attemptID == "" {
		e.mu.Unlock()
		return Snapshot{}, ErrNotInitialized
	}
	if e.running {
		e.mu.Unlock()
		return Snapshot{}, ErrBatchInFlight
	}
	e.attemptID = id.New()
	e.state = newState(e.prof.AccountBalance)
	snap := e.snapshotLocked()
	listener := e.listener
	e.mu.Unlock()

	if listener != nil {
		listener.OnStateChange(snap)
	}
	return snap, nil
}

// CurrentSnapshot returns a copy of the live state.
func (e *Engine) CurrentSnapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Profile returns the profile of the live attempt.
func (e *Engine) Profile() profile.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prof
}

// Strategy returns the strategy of the live attempt.
func (e *Engine) Strategy() strategy.Strategy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.strat
}

// applyTradeLocked computes one trade, journals it, then commits it to
// the state. Journal writes happen before the mutation so a write
// failure leaves the state untouched.
func (e *Engine) applyTradeLocked(win bool) (Snapshot, bool, error) {
	riskAmt, rewardAmt := risk.Amounts(
		e.prof.AccountBalance,
		e.strat.RiskPerTradePct,
		e.strat.RewardRiskRatio,
	)

	amount := riskAmt
	newBalance := e.state.CurrentBalance - riskAmt
	if win {
		amount = rewardAmt
		newBalance = e.state.CurrentBalance + rewardAmt
	}

	result := TradeResult{
		ID:           id.New(),
		Win:          win,
		Amount:       amount,
		BalanceAfter: newBalance,
		Time:         e.now(),
	}

	passedNow := !e.state.Passed && newBalance >= e.prof.TargetBalance()

	if e.journal != nil {
		err := e.journal.RecordTrade(journal.TradeRecord{
			TradeID:      result.ID,
			AttemptID:    e.attemptID,
			Win:          win,
			Amount:       amount,
			BalanceAfter: newBalance,
			Time:         result.Time,
		})
		if err == nil {
			err = e.journal.RecordBalance(journal.BalanceSnapshot{
				AttemptID: e.attemptID,
				Time:      result.Time,
				Balance:   newBalance,
				Passed:    e.state.Passed || passedNow,
			})
		}
		if err != nil {
			return e.snapshotLocked(), false, err
		}
	}

	e.state.CurrentBalance = newBalance
	e.state.History = append(e.state.History, result)
	e.state.applyOutcome(win)
	if passedNow {
		e.state.Passed = true
	}
	if e.remaining > 0 {
		e.remaining--
	}

	return e.snapshotLocked(), passedNow, nil
}

func (e *Engine) snapshotLocked() Snapshot {
	trades := make([]TradeResult, len(e.state.History))
	copy(trades, e.state.History)

	return Snapshot{
		AttemptID:      e.attemptID,
		Balance:        e.state.CurrentBalance,
		TargetBalance:  e.prof.TargetBalance(),
		Trades:         trades,
		WinCount:       e.state.WinCount,
		LossCount:      e.state.LossCount,
		WinStreak:      e.state.WinStreak,
		LossStreak:     e.state.LossStreak,
		MaxWinStreak:   e.state.MaxWinStreak,
		MaxLossStreak:  e.state.MaxLossStreak,
		Passed:         e.state.Passed,
		BatchRemaining: e.remaining,
	}
}

func (e *Engine) endBatch() {
	e.mu.Lock()
	e.running = false
	e.remaining = 0
	e.mu.Unlock()
}

func notify(l Listener, snap Snapshot, passedNow bool) {
	if l == nil {
		return
	}
	l.OnStateChange(snap)
	if passedNow {
		l.OnPassed(snap)
	}
}

func randomSeed() int64 {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed
}
