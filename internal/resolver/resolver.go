// Package resolver holds the root resolver behind every query and mutation of
// the GraphQL endpoint.
package resolver

import (
	"context"

	"github.com/buker/go-graphql/internal/random"
	"github.com/buker/go-graphql/internal/records"
	"github.com/buker/go-graphql/internal/users"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Resolver has one method per operation exposed by the endpoint.
type Resolver interface {
	QuoteOfTheDay(ctx context.Context) string
	Random(ctx context.Context) float64
	RollDice(ctx context.Context, numDice, numSides int) []int
	GetDie(ctx context.Context, numSides int) *random.Die
	GetMessage(ctx context.Context, id string) (records.Record, error)
	CreateMessage(ctx context.Context, input records.Input) records.Record
	UpdateMessage(ctx context.Context, id string, input records.Input) (records.Record, error)
	User(ctx context.Context, id string) (users.User, bool)
	IP(ctx context.Context) string
}

// Root implements Resolver on top of a record store.
type Root struct {
	store   *records.Store
	rnd     *random.Generator
	users   users.Table
	metrics *Metrics
}

// Option configures a Root.
type Option func(*Root)

// WithGenerator replaces the random generator.
func WithGenerator(g *random.Generator) Option {
	return func(r *Root) { r.rnd = g }
}

// WithUsers replaces the user table.
func WithUsers(t users.Table) Option {
	return func(r *Root) { r.users = t }
}

// WithMetrics records operation counts into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Root) { r.metrics = m }
}

// NewRoot returns a Root serving records out of store.
func NewRoot(store *records.Store, opts ...Option) *Root {
	r := &Root{
		store: store,
		users: users.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rnd == nil {
		r.rnd = random.NewFromTime()
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(prometheus.NewRegistry(), store)
	}
	return r
}

var _ Resolver = (*Root)(nil)

func (r *Root) QuoteOfTheDay(ctx context.Context) string {
	r.metrics.observe("quoteOfTheDay", nil)
	return r.rnd.QuoteOfTheDay()
}

func (r *Root) Random(ctx context.Context) float64 {
	r.metrics.observe("random", nil)
	return r.rnd.Fraction()
}

func (r *Root) RollDice(ctx context.Context, numDice, numSides int) []int {
	r.metrics.observe("rollDice", nil)
	return r.rnd.RollDice(numDice, numSides)
}

func (r *Root) GetDie(ctx context.Context, numSides int) *random.Die {
	r.metrics.observe("getDie", nil)
	return r.rnd.Die(numSides)
}

func (r *Root) GetMessage(ctx context.Context, id string) (records.Record, error) {
	record, err := r.store.Get(id)
	r.metrics.observe("getMessage", err)
	return record, err
}

func (r *Root) CreateMessage(ctx context.Context, input records.Input) records.Record {
	record := r.store.Create(input)
	r.metrics.observe("createMessage", nil)
	log.WithFields(log.Fields{
		"id": record.ID,
		"ip": ClientIP(ctx),
	}).Info("Message created")
	return record
}

func (r *Root) UpdateMessage(ctx context.Context, id string, input records.Input) (records.Record, error) {
	record, err := r.store.Update(id, input)
	r.metrics.observe("updateMessage", err)
	if err != nil {
		log.WithFields(log.Fields{
			"id": id,
			"ip": ClientIP(ctx),
		}).Warn("Could not update message: ", err)
		return records.Record{}, err
	}
	log.WithFields(log.Fields{
		"id": id,
		"ip": ClientIP(ctx),
	}).Info("Message replaced")
	return record, nil
}

func (r *Root) User(ctx context.Context, id string) (users.User, bool) {
	r.metrics.observe("user", nil)
	return r.users.Lookup(id)
}

func (r *Root) IP(ctx context.Context) string {
	r.metrics.observe("ip", nil)
	return ClientIP(ctx)
}
