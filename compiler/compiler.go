package compiler

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dream-lang/dream-go/ast"
	"github.com/dream-lang/dream-go/cfg"
)

// Compiler parses item headers and decides which items survive conditional
// compilation.
type Compiler struct {
	logger  *zap.Logger
	workers int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the compiler's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWorkers bounds the number of items evaluated concurrently.
func WithWorkers(n int) Option {
	return func(c *Compiler) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewCompiler creates a new compiler
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		logger:  zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseFile parses a file of item headers
func (c *Compiler) ParseFile(filename string) ([]ast.Item, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ast.ParseItems(filename, string(data))
}

// Decision is the outcome for a single item.
type Decision struct {
	Item     ast.Item
	Included bool
	Test     bool // carries #[test]
	TestOnly bool // gated by exactly #[cfg(test)]
}

// Plan partitions a set of items for one compilation run. All slices keep
// the input order.
type Plan struct {
	RunID     string
	Decisions []Decision
	Included  []ast.Item
	Excluded  []ast.Item
	Tests     []ast.Item
	TestOnly  []ast.Item
}

// Plan evaluates every item against opts. opts is shared read-only by all
// workers. The only error returned is a context error.
func (c *Compiler) Plan(ctx context.Context, items []ast.Item, opts cfg.Options) (*Plan, error) {
	runID := uuid.NewString()
	logger := c.logger.With(zap.String("run_id", runID))

	decisions := make([]Decision, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decisions[i] = decide(items[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan cancelled: %w", err)
	}

	plan := &Plan{RunID: runID, Decisions: decisions}
	for _, d := range decisions {
		if d.Included {
			plan.Included = append(plan.Included, d.Item)
		} else {
			plan.Excluded = append(plan.Excluded, d.Item)
			logger.Debug("Item excluded by cfg",
				zap.String("kind", d.Item.Kind),
				zap.String("name", d.Item.Name),
				zap.Int("line", d.Item.Span.Line))
		}
		if d.Test {
			plan.Tests = append(plan.Tests, d.Item)
		}
		if d.TestOnly {
			plan.TestOnly = append(plan.TestOnly, d.Item)
		}
	}

	logger.Info("Conditional compilation planned",
		zap.Int("items", len(items)),
		zap.Int("included", len(plan.Included)),
		zap.Int("excluded", len(plan.Excluded)),
		zap.Int("tests", len(plan.Tests)))
	return plan, nil
}

func decide(item ast.Item, opts cfg.Options) Decision {
	return Decision{
		Item:     item,
		Included: cfg.ShouldInclude(item.Attrs, opts),
		Test:     cfg.IsTest(item.Attrs),
		TestOnly: cfg.IsCfgTest(item.Attrs),
	}
}
