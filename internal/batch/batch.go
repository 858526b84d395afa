// Package batch checks many addresses at once on a bounded number of
// goroutines.
package batch

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Sayan751/email-address-parser/internal/logging"
	"github.com/Sayan751/email-address-parser/internal/rfc5322/address"
)

type Request struct {
	Input string
	Mode  address.Mode
}

type Result struct {
	Input     string       `json:"input" yaml:"input"`
	Mode      address.Mode `json:"mode" yaml:"mode"`
	Valid     bool         `json:"valid" yaml:"valid"`
	LocalPart string       `json:"local_part,omitempty" yaml:"local_part,omitempty"`
	Domain    string       `json:"domain,omitempty" yaml:"domain,omitempty"`
}

type Checker struct {
	mode    address.Mode
	workers int
	logger  *slog.Logger
}

type OptionFunc func(*Checker) (*Checker, error)

// WithMode sets the mode used by Check and CheckAll.
func WithMode(mode address.Mode) OptionFunc {
	return func(c *Checker) (*Checker, error) {
		c.mode = mode
		return c, nil
	}
}

// WithWorkers bounds the number of addresses checked at the same time.
// A non-positive n means GOMAXPROCS.
func WithWorkers(n int) OptionFunc {
	return func(c *Checker) (*Checker, error) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
		return c, nil
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(c *Checker) (*Checker, error) {
		if logger == nil {
			logger = logging.Discard()
		}
		c.logger = logger
		return c, nil
	}
}

func NewChecker(options ...OptionFunc) (*Checker, error) {
	c := &Checker{
		mode:    address.Strict,
		workers: runtime.GOMAXPROCS(0),
		logger:  logging.Discard(),
	}
	for _, option := range options {
		var err error
		c, err = option(c)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Checker) Mode() address.Mode {
	return c.mode
}

func (c *Checker) Workers() int {
	return c.workers
}

func (c *Checker) Check(input string) Result {
	return c.check(Request{Input: input, Mode: c.mode})
}

func (c *Checker) check(req Request) Result {
	localPart, domain, ok := address.Parse(req.Input, req.Mode)
	c.logger.Debug(
		"checked address",
		slog.String("input", req.Input),
		slog.String("mode", req.Mode.String()),
		slog.Bool("valid", ok),
	)
	return Result{
		Input:     req.Input,
		Mode:      req.Mode,
		Valid:     ok,
		LocalPart: localPart,
		Domain:    domain,
	}
}

// CheckAll checks every input in the checker's mode. Results are in the
// order of inputs.
func (c *Checker) CheckAll(ctx context.Context, inputs []string) ([]Result, error) {
	reqs := make([]Request, len(inputs))
	for i, input := range inputs {
		reqs[i] = Request{Input: input, Mode: c.mode}
	}
	return c.CheckRequests(ctx, reqs)
}

// CheckRequests checks each request in its own mode. Results are in the
// order of reqs. It stops early and returns the context's error once ctx is
// done.
func (c *Checker) CheckRequests(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.check(req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.Debug("checked batch", slog.Int("count", len(reqs)), slog.Int("workers", c.workers))
	return results, nil
}
