package engine_test

import (
	"sync"
	"testing"

	"csscompare/engine"
	"csscompare/syntax"
)

// TestEndToEnd_LiteralScenarios exercises spec §8's literal worked
// examples: pairs of stylesheets written differently that must compare
// equal once evaluated, plus one pair that must not.
func TestEndToEnd_LiteralScenarios(t *testing.T) {
	cases := []struct {
		name     string
		a, b     string
		wantSame bool
	}{
		{
			name:     "color equivalence across notations",
			a:        `a { color: #ff0000; }`,
			b:        `a { color: red; }`,
			wantSame: true,
		},
		{
			name:     "rgb/hsl color functions",
			a:        `a { color: rgb(255, 0, 0); }`,
			b:        `a { color: hsl(0, 100%, 50%); }`,
			wantSame: true,
		},
		{
			name:     "url normalization strips leading ./",
			a:        `a { background: url("./icon.png"); }`,
			b:        `a { background: url(icon.png); }`,
			wantSame: true,
		},
		{
			name:     "keyframes from/to keyword equivalence",
			a:        `@keyframes spin { from { opacity: 0; } to { opacity: 1; } }`,
			b:        `@keyframes spin { 0% { opacity: 0; } 100% { opacity: 1; } }`,
			wantSame: true,
		},
		{
			name:     "font-family case folding",
			a:        `@font-face { font-family: "Arial"; src: url(a.woff); }`,
			b:        `@font-face { font-family: "ARIAL"; src: url(a.woff); }`,
			wantSame: true,
		},
		{
			name:     "selector dedup/order invariance",
			a:        `.a.b.a { color: red; }`,
			b:        `.b.a { color: red; }`,
			wantSame: true,
		},
		{
			name:     "distinct colors differ",
			a:        `a { color: red; }`,
			b:        `a { color: green; }`,
			wantSame: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ma := evalSheet(t, c.a)
			mb := evalSheet(t, c.b)
			if got := ma.Equal(mb); got != c.wantSame {
				t.Errorf("Equal() = %v, want %v", got, c.wantSame)
			}
			if got := mb.Equal(ma); got != c.wantSame {
				t.Errorf("Equal() not symmetric: %v, want %v", got, c.wantSame)
			}
		})
	}
}

// TestConcurrentComparisons drives N goroutines each independently
// parsing and comparing their own non-aliased models, guarding against
// any shared-state data race in the evaluation or comparison path
// (SPEC_FULL §5's "concurrent comparisons" test-tooling expansion).
// Run with -race to be meaningful.
func TestConcurrentComparisons(t *testing.T) {
	const workers = 16
	ev := engine.NewEvaluator(nil, nil, 0)
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			css := `a { color: red; } @media (min-width: 10px) { b { x: 1; } }`
			sheetA, err := syntax.NewParser(nil).Parse([]byte(css))
			if err != nil {
				errs <- err
				return
			}
			sheetB, err := syntax.NewParser(nil).Parse([]byte(css))
			if err != nil {
				errs <- err
				return
			}
			modelA, err := ev.Evaluate(sheetA, "")
			if err != nil {
				errs <- err
				return
			}
			modelB, err := ev.Evaluate(sheetB, "")
			if err != nil {
				errs <- err
				return
			}
			if !modelA.Equal(modelB) {
				errs <- errNotEqual
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

var errNotEqual = errEqual("expected independently parsed identical sheets to compare equal")

type errEqual string

func (e errEqual) Error() string { return string(e) }
