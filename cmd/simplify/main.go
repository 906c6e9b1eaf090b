// cmd/simplify runs the cost-directed rewrite search against a single
// expression given on the command line and prints the solved path.
//
// Usage:
//
//	simplify -- "-4 + 3*4 + x + y - 3 + 5y"
//	simplify --json --step-limit 500 "x^2 * x^3"
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/njchilds90/rewritesearch"
	"github.com/njchilds90/rewritesearch/cache"
	"github.com/njchilds90/rewritesearch/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		costCeiling int
		stepLimit   int
		timeout     time.Duration
		cachePath   string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "simplify [expression]",
		Short: "simplify an algebraic expression via cost-directed rewrite search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimplify(args[0], options{
				costCeiling: costCeiling,
				stepLimit:   stepLimit,
				timeout:     timeout,
				cachePath:   cachePath,
				asJSON:      asJSON,
			})
		},
	}

	cmd.Flags().IntVar(&costCeiling, "cost-ceiling", 0, "abandon the search once every frontier Model exceeds this cost (0 = unbounded)")
	cmd.Flags().IntVar(&stepLimit, "step-limit", 0, "abandon the search after this many expansions (0 = unbounded)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "cancel the search after this duration (0 = no timeout)")
	cmd.Flags().StringVar(&cachePath, "cache", "", "path to a SQLite memoization database (empty disables caching)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the solved path as JSON instead of text")

	return cmd
}

type options struct {
	costCeiling int
	stepLimit   int
	timeout     time.Duration
	cachePath   string
	asJSON      bool
}

func runSimplify(expr string, opts options) error {
	var store *cache.Store
	var key string
	if opts.cachePath != "" {
		s, err := cache.New(opts.cachePath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
		key = cache.Key(expr, cacheTag(opts))
		if entry, ok, err := store.Get(key); err != nil {
			return err
		} else if ok {
			fmt.Println(entry.PathText)
			return nil
		}
	}

	symCache := rewritesearch.NewSymbolCache()
	root, err := parser.ParseModel(symCache, expr)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	outcome := rewritesearch.SearchModel(root, rewritesearch.Options{
		MaxCost:  opts.costCeiling,
		MaxSteps: opts.stepLimit,
		Context:  ctx,
	})

	if !outcome.Solved {
		return fmt.Errorf("simplify: %w", outcomeError(outcome))
	}

	var out string
	if opts.asJSON {
		data, err := rewritesearch.FormatPathJSON(outcome.Path)
		if err != nil {
			return err
		}
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, data, "", "  "); err != nil {
			return err
		}
		out = pretty.String()
	} else {
		out = rewritesearch.FormatPath(outcome.Path)
	}

	fmt.Println(out)

	if store != nil {
		last := outcome.Path[len(outcome.Path)-1]
		if err := store.Put(key, out, true, last.TotalApproxCost()); err != nil {
			return err
		}
	}
	return nil
}

func outcomeError(o rewritesearch.Outcome) error {
	if o.Err != nil {
		return o.Err
	}
	return rewritesearch.ErrExhausted
}

// cacheTag fingerprints the options that change a search's result
// under the same expression text, so --step-limit 10 and --step-limit
// 10000 never collide in the memoization table.
func cacheTag(opts options) string {
	if opts.costCeiling == 0 && opts.stepLimit == 0 {
		return ""
	}
	return fmt.Sprintf("cc%d-sl%d", opts.costCeiling, opts.stepLimit)
}
