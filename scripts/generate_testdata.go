//go:build ignore

// generate_testdata.go creates standard datasets for benchmarking.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/benchmark/small.json   (50 words, shallow trees)
//	testdata/benchmark/medium.json  (200 words)
//	testdata/benchmark/large.json   (1000 words, deep trees)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/wordtree/internal/datasource"
	"github.com/vanderheijden86/wordtree/pkg/testutil"
)

type datasetSpec struct {
	name    string
	words   int
	trees   int // words that get a tree
	depth   int
	breadth int
}

var datasets = []datasetSpec{
	{"small", 50, 10, 2, 3},
	{"medium", 200, 40, 3, 3},
	{"large", 1000, 100, 4, 4},
}

var sources = []string{"amazon", "yelp", "trustpilot"}

func main() {
	outputDir := "testdata/benchmark"
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%d words)...\n", ds.name, ds.words)

		gen := testutil.New(int64(ds.words)) // reproducible per size
		doc := datasource.Document{}
		nodes := 0
		for _, src := range sources {
			set := datasource.Dataset{
				Source:      src,
				Category:    "coffee",
				Frequencies: gen.Frequencies(ds.words, 500),
				Trees:       make(map[string]json.RawMessage, ds.trees),
			}
			for _, e := range set.Frequencies[:ds.trees] {
				tree := gen.Tree(e.Text, ds.depth, ds.breadth)
				nodes += tree.Count()
				raw, err := json.Marshal(tree)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Failed to encode tree %q: %v\n", e.Text, err)
					os.Exit(1)
				}
				set.Trees[e.Text] = raw
			}
			doc.Datasets = append(doc.Datasets, set)
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", ds.name, err)
			os.Exit(1)
		}
		outputPath := filepath.Join(outputDir, ds.name+".json")
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d bytes, %d tree nodes)\n", outputPath, len(data), nodes)
	}

	fmt.Println("\nDone! Datasets created in", outputDir)
}
