package pagination

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/webapi-methods/pkg/methods"
)

// Config holds paginator configuration.
type Config struct {
	// PageSize is merged into the base arguments of every session that does
	// not set one itself: as limit for cursor pagination, as count otherwise.
	// 0 leaves the page size to the server.
	PageSize int

	// MaxPages stops every session after this many pages. 0 means unlimited.
	MaxPages int

	// Logger receives session logs. The zero value uses the global logger.
	Logger *zerolog.Logger
}

// DefaultConfig returns the default paginator configuration: server page
// size, no page limit, global logger.
func DefaultConfig() Config {
	return Config{}
}

// Paginator runs pagination sessions against a Caller.
// It is safe for concurrent use; each session owns its own state.
type Paginator struct {
	registry *methods.Registry
	caller   Caller
	config   Config
	logger   zerolog.Logger
}

// New creates a paginator for the operations of registry.
func New(registry *methods.Registry, caller Caller, cfg Config) (*Paginator, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if caller == nil {
		return nil, fmt.Errorf("caller is required")
	}
	if cfg.PageSize < 0 {
		return nil, fmt.Errorf("page size must be >= 0 (got %d)", cfg.PageSize)
	}
	if cfg.MaxPages < 0 {
		return nil, fmt.Errorf("max pages must be >= 0 (got %d)", cfg.MaxPages)
	}

	logger := log.With().Str("component", "paginator").Logger()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "paginator").Logger()
	}

	return &Paginator{
		registry: registry,
		caller:   caller,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Registry returns the registry the paginator classifies operations with.
func (p *Paginator) Registry() *methods.Registry {
	return p.registry
}

// SessionOption customises a single session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	pageSize  int
	maxPages  int
	direction Direction
	stopWhen  func(*Page) bool
}

// WithPageSize overrides Config.PageSize for one session.
func WithPageSize(n int) SessionOption {
	return func(c *sessionConfig) { c.pageSize = n }
}

// WithMaxPages overrides Config.MaxPages for one session.
func WithMaxPages(n int) SessionOption {
	return func(c *sessionConfig) { c.maxPages = n }
}

// WithDirection sets the timeline walking direction. Backward is the default.
func WithDirection(d Direction) SessionOption {
	return func(c *sessionConfig) { c.direction = d }
}

// WithStopWhen ends the session after the first page for which fn returns
// true. That page is still produced.
func WithStopWhen(fn func(*Page) bool) SessionOption {
	return func(c *sessionConfig) { c.stopWhen = fn }
}

// session is the state of one pagination run. Only the goroutine ranging
// over the sequence touches it after construction.
type session struct {
	id         string
	operation  string
	capability methods.Capability
	base       Args
	options    methods.Options
	cfg        sessionConfig
	caller     Caller
	logger     zerolog.Logger
	consumed   atomic.Bool
}

// Pages starts a pagination session and returns its pages as a lazy,
// single-pass sequence. Unsupported operations and illegal pagination
// arguments are reported here, before any call is made.
//
// The sequence yields (page, nil) for every page and ends either silently
// when no more pages exist, or with one final (nil, err). Pages produced
// before an error remain valid. Ranging over the sequence a second time
// yields ErrSessionConsumed; call Pages again to start over.
func (p *Paginator) Pages(ctx context.Context, operation string, args Args, opts ...SessionOption) (iter.Seq2[*Page, error], error) {
	s, err := p.newSession(operation, args, opts)
	if err != nil {
		return nil, err
	}
	return s.run(ctx), nil
}

// Items is like Pages but flattens pages into their items.
func (p *Paginator) Items(ctx context.Context, operation string, args Args, opts ...SessionOption) (iter.Seq2[any, error], error) {
	pages, err := p.Pages(ctx, operation, args, opts...)
	if err != nil {
		return nil, err
	}
	return func(yield func(any, error) bool) {
		for page, err := range pages {
			if err != nil {
				yield(nil, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}, nil
}

// Collect runs a whole session and returns every page. On failure the
// pages fetched before the error are returned along with it.
func (p *Paginator) Collect(ctx context.Context, operation string, args Args, opts ...SessionOption) ([]*Page, error) {
	pages, err := p.Pages(ctx, operation, args, opts...)
	if err != nil {
		return nil, err
	}
	var out []*Page
	for page, err := range pages {
		if err != nil {
			return out, err
		}
		out = append(out, page)
	}
	return out, nil
}

// ForEach calls fn for every page. A non-nil error from fn ends the session
// without further calls and is returned unchanged.
func (p *Paginator) ForEach(ctx context.Context, operation string, args Args, fn func(*Page) error, opts ...SessionOption) error {
	pages, err := p.Pages(ctx, operation, args, opts...)
	if err != nil {
		return err
	}
	for page, err := range pages {
		if err != nil {
			return err
		}
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}

func (p *Paginator) newSession(operation string, args Args, opts []SessionOption) (*session, error) {
	capability := p.registry.Classify(operation)
	if !capability.Paginated() {
		sessionsTotal.WithLabelValues(operation, string(methods.StrategyNone), outcomeUnsupported).Inc()
		p.logger.Warn().
			Str("operation", operation).
			Msg("Pagination requested for unsupported operation")
		return nil, &Error{Kind: KindUnsupported, Operation: operation, Err: ErrUnsupportedOperation}
	}

	cfg := sessionConfig{
		pageSize:  p.config.PageSize,
		maxPages:  p.config.MaxPages,
		direction: Backward,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.direction != Backward && cfg.direction != Forward {
		return nil, p.invalid(operation, capability, fmt.Errorf("%w: direction %q", methods.ErrInvalidOptions, cfg.direction))
	}
	if cfg.pageSize < 0 || cfg.maxPages < 0 {
		return nil, p.invalid(operation, capability, fmt.Errorf("%w: page size %d, max pages %d", methods.ErrInvalidOptions, cfg.pageSize, cfg.maxPages))
	}

	base := args.Clone()
	if cfg.pageSize > 0 {
		key := methods.KeyCount
		if capability.Strategy == methods.StrategyCursor {
			key = methods.KeyLimit
		}
		if _, set := base[key]; !set {
			base[key] = cfg.pageSize
		}
	}
	options, err := methods.ParseOptions(base)
	if err != nil {
		return nil, p.invalid(operation, capability, err)
	}

	id := uuid.NewString()
	return &session{
		id:         id,
		operation:  operation,
		capability: capability,
		base:       base,
		options:    options,
		cfg:        cfg,
		caller:     p.caller,
		logger: p.logger.With().
			Str("session_id", id).
			Str("operation", operation).
			Str("strategy", string(capability.Strategy)).
			Logger(),
	}, nil
}

func (p *Paginator) invalid(operation string, c methods.Capability, err error) error {
	sessionsTotal.WithLabelValues(operation, string(c.Strategy), outcomeInvalid).Inc()
	return &Error{Kind: KindInvalidOptions, Operation: operation, Err: err}
}

func (s *session) run(ctx context.Context) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		if !s.consumed.CompareAndSwap(false, true) {
			yield(nil, ErrSessionConsumed)
			return
		}

		start := time.Now()
		outcome, pages, items := outcomeCompleted, 0, 0
		s.logStart()
		defer func() {
			sessionsTotal.WithLabelValues(s.operation, string(s.capability.Strategy), outcome).Inc()
			sessionDuration.WithLabelValues(s.operation).Observe(time.Since(start).Seconds())
			s.logger.Info().
				Str("outcome", outcome).
				Int("pages", pages).
				Int("items", items).
				Dur("duration", time.Since(start)).
				Msg("Pagination session finished")
		}()

		fail := func(kind Kind, number int, err error) {
			switch kind {
			case KindCancelled:
				outcome = outcomeCancelled
				s.logger.Debug().Int("page", number).Msg("Pagination cancelled before next call")
			case KindMalformed:
				outcome = outcomeMalformed
				s.logger.Error().Err(err).Int("page", number).Msg("Malformed paginated response")
			default:
				outcome = outcomeTransport
				s.logger.Warn().Err(err).Int("page", number).Msg("Page call failed")
			}
			yield(nil, &Error{Kind: kind, Operation: s.operation, Page: number, Err: err})
		}

		var prior *Page
		for number := 1; ; number++ {
			if err := ctx.Err(); err != nil {
				fail(KindCancelled, number, fmt.Errorf("%w: %w", ErrCancelled, err))
				return
			}

			args, err := BuildNextRequest(s.capability, s.cfg.direction, s.base, prior)
			if err != nil {
				fail(KindMalformed, number, err)
				return
			}

			callStart := time.Now()
			resp, err := s.caller.Call(ctx, s.operation, args)
			callDuration.WithLabelValues(s.operation).Observe(time.Since(callStart).Seconds())
			if err != nil {
				fail(KindTransport, number, err)
				return
			}
			if err := checkOK(resp); err != nil {
				kind := KindTransport
				if errors.Is(err, ErrMalformedResponse) {
					kind = KindMalformed
				}
				fail(kind, number, err)
				return
			}

			pageItems, err := ExtractItems(s.capability, resp)
			if err != nil {
				fail(KindMalformed, number, err)
				return
			}
			more, err := HasMore(s.capability, s.cfg.direction, args, resp)
			if err != nil {
				fail(KindMalformed, number, err)
				return
			}

			page := &Page{
				Number:    number,
				Operation: s.operation,
				Strategy:  s.capability.Strategy,
				Args:      args,
				Response:  resp,
				Items:     pageItems,
			}
			pages++
			items += len(pageItems)
			pagesTotal.WithLabelValues(s.operation, string(s.capability.Strategy)).Inc()
			itemsTotal.WithLabelValues(s.operation).Add(float64(len(pageItems)))
			s.logger.Debug().
				Int("page", number).
				Int("items", len(pageItems)).
				Bool("has_more", more).
				Dur("duration", time.Since(callStart)).
				Msg("Fetched page")

			if !yield(page, nil) {
				outcome = outcomeStopped
				return
			}
			if !more {
				return
			}
			if s.cfg.maxPages > 0 && number >= s.cfg.maxPages {
				outcome = outcomeLimited
				return
			}
			if s.cfg.stopWhen != nil && s.cfg.stopWhen(page) {
				outcome = outcomeStopped
				return
			}
			prior = page
		}
	}
}

// logStart logs the validated starting state of the session's strategy.
func (s *session) logStart() {
	event := s.logger.Info().Str("direction", string(s.cfg.direction))
	switch s.capability.Strategy {
	case methods.StrategyCursor:
		event = event.Int("limit", s.options.Cursor.Limit()).
			Bool("resumed", s.options.Cursor.Cursor() != "")
	case methods.StrategyTimeline:
		if oldest, ok := s.options.Timeline.Oldest(); ok {
			event = event.Stringer("oldest", oldest)
		}
		if latest, ok := s.options.Timeline.Latest(); ok {
			event = event.Stringer("latest", latest)
		}
		event = event.Bool("inclusive", s.options.Timeline.Inclusive())
	case methods.StrategyTraditional:
		event = event.Int("first_page", s.options.Paging.Page()).
			Int("count", s.options.Paging.Count())
	}
	event.Msg("Starting pagination session")
}
