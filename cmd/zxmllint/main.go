// Command zxmllint runs zxml against a directory of XML files and reports
// conformance results, following the W3C XML Conformance Test Suite's
// directory convention: a file under a path component named "not-wf" must
// fail to parse; every other file must parse cleanly to EOF (spec.md §6
// "Conformance"). It takes no environment input (spec.md §6
// "Environment") - only the flags below.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/outerhaven/zxml"
	"github.com/outerhaven/zxml/encguess"
)

type result struct {
	path     string
	expected bool // true if the file is expected to be well-formed
	gotWF    bool
	err      error
}

func main() {
	dir := flag.String("dir", "", "root directory of XML files to parse (required)")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent parse workers")
	verbose := flag.Bool("v", false, "print every file's result, not just failures")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "zxmllint: -dir is required")
		flag.Usage()
		os.Exit(2)
	}

	files, err := collectFiles(*dir)
	if err != nil {
		log.Fatalf("zxmllint: walking %s: %v", *dir, err)
	}
	if len(files) == 0 {
		log.Printf("zxmllint: no .xml files found under %s", *dir)
		return
	}

	results := runPool(files, *workers)

	var pass, fail int
	for _, r := range results {
		ok := r.gotWF == r.expected
		if ok {
			pass++
		} else {
			fail++
		}
		if *verbose || !ok {
			status := "PASS"
			if !ok {
				status = "FAIL"
			}
			log.Printf("%s %s (expected-wf=%v got-wf=%v err=%v)", status, r.path, r.expected, r.gotWF, r.err)
		}
	}

	log.Printf("zxmllint: %d/%d files conformed", pass, pass+fail)
	if fail > 0 {
		os.Exit(1)
	}
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// runPool parses files across a bounded set of workers (spec.md §5: parsers
// over disjoint buffers require no coordination, so each worker owns its
// own *zxml.Parser).
func runPool(files []string, workers int) []result {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string, len(files))
	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	results := make([]result, len(files))
	var wg sync.WaitGroup
	var mu sync.Mutex
	idx := 0
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				r := parseFile(path)
				mu.Lock()
				results[idx] = r
				idx++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return results
}

func parseFile(path string) result {
	expected := !strings.Contains(filepath.ToSlash(path), "/not-wf/")

	raw, err := os.ReadFile(path)
	if err != nil {
		return result{path: path, expected: expected, gotWF: false, err: err}
	}

	_, body, err := encguess.Sniff(raw)
	if err != nil {
		return result{path: path, expected: expected, gotWF: false, err: err}
	}

	p := zxml.New(body)
	for {
		_, ok, perr := p.Next()
		if perr != nil {
			return result{path: path, expected: expected, gotWF: false, err: perr}
		}
		if !ok {
			return result{path: path, expected: expected, gotWF: true}
		}
	}
}
