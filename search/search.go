// Package search finds the noun and verb inputs that make an Intcode
// program produce a target output.
package search

import (
	"log"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/intcode"
)

const (
	ADDRESS_OUTPUT = int64(0) // Result cell read after each run.
	ADDRESS_NOUN   = int64(1) // Noun input cell.
	ADDRESS_VERB   = int64(2) // Verb input cell.
)

// Range is a half-open interval [Start, End) of input values.
type Range struct {
	Start int `toml:"start"`
	End   int `toml:"end"`
}

// DefaultRange is the input range [0, 100).
var DefaultRange = Range{Start: 0, End: 100}

// Len returns the number of values in the range.
func (r Range) Len() int {
	return max(0, r.End-r.Start)
}

// Trial is the outcome of running the program with one noun and verb.
type Trial struct {
	Noun   int
	Verb   int
	Status intcode.Status // Final machine status.
	Output int64          // Value at ADDRESS_OUTPUT, if halted.
	Fault  error          // Cause of the fault, if faulted.
}

// Matches returns true if the trial halted with the target output.
func (tr Trial) Matches(target int64) bool {
	return tr.Status == intcode.STATUS_HALTED && tr.Output == target
}

// Result is the outcome of a search. A search that finds no match is
// exhausted, which is a result and not an error.
type Result struct {
	Noun   int
	Verb   int
	Found  bool
	Trials int // Trials run.
	Faults int // Trials that faulted.
}

// Exhausted returns true if no pair matched.
func (res Result) Exhausted() bool {
	return !res.Found
}

// Err returns ErrExhausted if no pair matched.
func (res Result) Err() error {
	if res.Found {
		return nil
	}
	return ErrExhausted
}

// Harness runs a source program over a grid of noun and verb inputs.
// Every trial runs a private clone of the source on a fresh machine.
type Harness struct {
	Verbose bool           // If set, logs faulted trials and the outcome.
	Trace   bool           // If set, traces the instructions of every trial.
	Table   *intcode.Table // Instruction set; nil selects intcode.DefaultTable.
	Workers int            // Concurrent noun rows; zero or one is sequential.
	Nouns   Range          // Noun inputs, outer loop.
	Verbs   Range          // Verb inputs, inner loop.

	source intcode.Memory
}

// NewHarness creates a harness over a copy of source with the default
// [0, 100) ranges.
func NewHarness(source intcode.Memory) (h *Harness) {
	h = &Harness{
		Nouns:  DefaultRange,
		Verbs:  DefaultRange,
		source: source.Clone(),
	}

	return
}

// Find searches source for the first noun and verb, in ascending order
// with noun as the outer loop, that produces target.
func Find(source intcode.Memory, target int64, nouns, verbs Range) Result {
	h := NewHarness(source)
	h.Nouns = nouns
	h.Verbs = verbs
	return h.Find(target)
}

// Run patches a copy of the source with noun and verb, and runs it to
// completion on a fresh machine. The error is non-nil only if the source
// is too short to patch.
func (h *Harness) Run(noun, verb int) (m *intcode.Machine, err error) {
	mem := h.source.Clone()
	err = mem.Write(ADDRESS_NOUN, int64(noun))
	if err != nil {
		return
	}
	err = mem.Write(ADDRESS_VERB, int64(verb))
	if err != nil {
		return
	}

	m = intcode.NewMachine(h.Table)
	m.Verbose = h.Trace
	m.Load(mem)
	m.Run()

	return
}

// Trial runs the source program once with the given noun and verb.
func (h *Harness) Trial(noun, verb int) (trial Trial) {
	trial = Trial{
		Noun: noun,
		Verb: verb,
	}

	defer func() {
		if h.Verbose && trial.Status == intcode.STATUS_FAULTED {
			log.Printf("search: noun %d verb %d: %v", noun, verb, trial.Fault)
		}
	}()

	m, err := h.Run(noun, verb)
	if err != nil {
		trial.Status = intcode.STATUS_FAULTED
		trial.Fault = err
		return
	}

	trial.Status = m.Status()
	if trial.Status != intcode.STATUS_HALTED {
		trial.Fault = m.Fault()
		return
	}

	trial.Output, err = m.Peek(ADDRESS_OUTPUT)
	if err != nil {
		trial.Status = intcode.STATUS_FAULTED
		trial.Fault = err
	}

	return
}

// Find searches for the first noun and verb that produce target.
func (h *Harness) Find(target int64) (result Result) {
	if h.Verbose {
		log.Printf("search: target %d over %d pairs", target, h.Nouns.Len()*h.Verbs.Len())
	}

	if h.Workers > 1 {
		result = h.findParallel(target)
	} else {
		result = h.findSequential(target)
	}

	if h.Verbose {
		if result.Found {
			log.Printf("search: target %d: noun %d verb %d after %d trials", target, result.Noun, result.Verb, result.Trials)
		} else {
			log.Printf("search: target %d: exhausted after %d trials (%d faulted)", target, result.Trials, result.Faults)
		}
	}

	return
}

func (h *Harness) findSequential(target int64) (result Result) {
	for noun, verb := range internal.Grid(h.Nouns.Start, h.Nouns.End, h.Verbs.Start, h.Verbs.End) {
		trial := h.Trial(noun, verb)
		result.Trials++
		if trial.Status == intcode.STATUS_FAULTED {
			result.Faults++
			continue
		}
		if trial.Matches(target) {
			result.Noun = noun
			result.Verb = verb
			result.Found = true
			return
		}
	}

	return
}

// findParallel scans noun rows concurrently. Each row stops at its first
// matching verb, and the lowest matching noun wins, so the result is the
// same pair findSequential returns.
func (h *Harness) findParallel(target int64) (result Result) {
	var trials, faults atomic.Int64

	var bestNoun atomic.Int64
	bestNoun.Store(math.MaxInt64)

	var mutex sync.Mutex
	var best Result

	var g errgroup.Group
	g.SetLimit(h.Workers)

	for noun := range internal.Span(h.Nouns.Start, h.Nouns.End) {
		if int64(noun) > bestNoun.Load() {
			break
		}
		g.Go(func() error {
			for verb := range internal.Span(h.Verbs.Start, h.Verbs.End) {
				if int64(noun) > bestNoun.Load() {
					return nil
				}
				trial := h.Trial(noun, verb)
				trials.Add(1)
				if trial.Status == intcode.STATUS_FAULTED {
					faults.Add(1)
					continue
				}
				if !trial.Matches(target) {
					continue
				}

				mutex.Lock()
				if !best.Found || noun < best.Noun {
					best = Result{Noun: noun, Verb: verb, Found: true}
					bestNoun.Store(int64(noun))
				}
				mutex.Unlock()
				return nil
			}
			return nil
		})
	}

	// Rows never fail; Wait only joins them.
	_ = g.Wait()

	result = best
	result.Trials = int(trials.Load())
	result.Faults = int(faults.Load())

	return
}
