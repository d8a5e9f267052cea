package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/orrollo/NxBRE/inference"
	"github.com/orrollo/NxBRE/inference/engine"
	"github.com/orrollo/NxBRE/inference/storage"
	"github.com/orrollo/NxBRE/inference/trace"
)

func main() {
	var dbPath string
	var verbose bool
	var maxCycles int

	flag.StringVar(&dbPath, "db", "", "persist working memory to this database path")
	flag.BoolVar(&verbose, "verbose", false, "verbose mode (show inference trace)")
	flag.IntVar(&maxCycles, "max-cycles", engine.DefaultMaxCycles, "maximum forward-chaining cycles")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A forward-chaining inference engine demo.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run the demo rule base in memory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -verbose           # Show the inference trace\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db facts.db       # Restore facts, run, snapshot back\n", os.Args[0])
	}
	flag.Parse()

	var handler trace.Handler
	if verbose {
		handler = trace.ConsoleHandler()
	}

	e := engine.NewEngine(engine.Options{
		MaxCycles: maxCycles,
		Handler:   handler,
	})
	loadRules(e)

	var store *storage.BadgerFactStore
	if dbPath != "" {
		var err error
		store, err = storage.NewBadgerFactStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer store.Close()

		if err := restoreFacts(e, store, handler); err != nil {
			log.Fatalf("Failed to restore facts: %v", err)
		}
	}

	if e.Memory().Count() == 0 {
		fmt.Println("Working memory is empty, loading demo facts...")
		loadFacts(e)
	}

	derived, err := e.Run()
	if err != nil {
		log.Fatalf("Inference failed: %v", err)
	}
	fmt.Printf("Derived %d changes.\n\n", derived)
	fmt.Println(trace.FactTable(e.Memory().Facts()))

	if store != nil {
		if err := snapshotFacts(e, store, handler); err != nil {
			log.Fatalf("Failed to snapshot facts: %v", err)
		}
	}
}

// loadRules installs the demo rule base: ancestry closure plus a
// binder-backed majority rule.
func loadRules(e *engine.Engine) {
	v := inference.NewVariable

	mustAdd(e, "direct ancestry", 10,
		inference.NewAtom("ancestor", v("X"), v("Y")),
		inference.NewAtom("parent", v("X"), v("Y")))

	mustAdd(e, "transitive ancestry", 5,
		inference.NewAtom("ancestor", v("X"), v("Z")),
		inference.NewAtom("ancestor", v("X"), v("Y")),
		inference.NewAtom("parent", v("Y"), v("Z")))

	binder := engine.NewMapBinder()
	binder.Register("GreaterThan", func(args map[string]interface{}) (interface{}, error) {
		n, ok := args["value"].(int64)
		if !ok {
			return false, nil
		}
		threshold, ok := args["arg0"].(string)
		if !ok {
			return false, nil
		}
		var limit int64
		if _, err := fmt.Sscanf(threshold, "%d", &limit); err != nil {
			return false, err
		}
		return n > limit, nil
	})

	mustAdd(e, "majority", 0,
		inference.NewAtom("adult", v("X")),
		inference.NewAtom("age", v("X"), engine.BinderFunction(binder, "GreaterThan", "18")))
}

func loadFacts(e *engine.Engine) {
	facts := []*inference.Atom{
		inference.NewAtom("parent", inference.NewIndividual("Abe"), inference.NewIndividual("Homer")),
		inference.NewAtom("parent", inference.NewIndividual("Homer"), inference.NewIndividual("Bart")),
		inference.NewAtom("parent", inference.NewIndividual("Homer"), inference.NewIndividual("Lisa")),
		inference.NewAtom("age", inference.NewIndividual("Homer"), inference.NewIndividual(int64(39))),
		inference.NewAtom("age", inference.NewIndividual("Bart"), inference.NewIndividual(int64(10))),
	}
	for _, fact := range facts {
		if _, err := e.Assert(fact); err != nil {
			log.Fatalf("Failed to assert %s: %v", fact, err)
		}
	}
}

func mustAdd(e *engine.Engine, label string, priority int, deduction *inference.Atom, antecedents ...*inference.Atom) {
	imp, err := engine.NewImplication(label, priority, deduction, antecedents...)
	if err != nil {
		log.Fatalf("Bad rule %q: %v", label, err)
	}
	e.AddImplication(imp)
}

func restoreFacts(e *engine.Engine, store *storage.BadgerFactStore, handler trace.Handler) error {
	start := time.Now()
	facts, err := store.Restore()
	if err != nil {
		return err
	}
	for _, fact := range facts {
		if _, err := e.Assert(fact); err != nil {
			return err
		}
	}
	trace.Emit(handler, trace.StoreRestore, start, map[string]interface{}{
		"facts.count": len(facts),
	})
	return nil
}

func snapshotFacts(e *engine.Engine, store *storage.BadgerFactStore, handler trace.Handler) error {
	start := time.Now()
	facts := e.Memory().Facts()
	if err := store.Snapshot(facts); err != nil {
		return err
	}
	trace.Emit(handler, trace.StoreSnapshot, start, map[string]interface{}{
		"facts.count": len(facts),
	})
	return nil
}
