// Package random implements the stateless dice, quote and fraction helpers
// served by the query endpoint.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultSides is used when a die is asked for without a side count.
const DefaultSides = 6

// Quotes are the two possible answers of QuoteOfTheDay.
var Quotes = [2]string{"Take it easy", "Salvation lies within"}

// Generator produces random values. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator with a fixed seed.
func New(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// NewFromTime returns a Generator seeded from the wall clock.
func NewFromTime() *Generator {
	return New(time.Now().UnixNano())
}

func sidesOrDefault(numSides int) int {
	if numSides <= 0 {
		return DefaultSides
	}
	return numSides
}

// roll returns a value in [1, n].
func (g *Generator) roll(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return 1 + g.rnd.Intn(n)
}

// RollDice rolls numDice dice of numSides sides each.
func (g *Generator) RollDice(numDice, numSides int) []int {
	numSides = sidesOrDefault(numSides)
	if numDice < 0 {
		numDice = 0
	}
	out := make([]int, numDice)
	for i := range out {
		out[i] = g.roll(numSides)
	}
	return out
}

// QuoteOfTheDay picks one of Quotes with equal probability.
func (g *Generator) QuoteOfTheDay() string {
	if g.Fraction() < 0.5 {
		return Quotes[0]
	}
	return Quotes[1]
}

// Fraction returns a value in [0, 1).
func (g *Generator) Fraction() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64()
}

// Die returns a die with numSides sides (DefaultSides when numSides <= 0).
func (g *Generator) Die(numSides int) *Die {
	return &Die{NumSides: sidesOrDefault(numSides), gen: g}
}

// Die is a single die bound to the generator that created it.
type Die struct {
	NumSides int
	gen      *Generator
}

// RollOnce rolls the die.
func (d *Die) RollOnce() int {
	return d.gen.roll(d.NumSides)
}

// Roll rolls the die numRolls times.
func (d *Die) Roll(numRolls int) []int {
	if numRolls < 0 {
		numRolls = 0
	}
	out := make([]int, numRolls)
	for i := range out {
		out[i] = d.RollOnce()
	}
	return out
}
