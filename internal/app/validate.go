package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	payloadschema "horse.fit/paddock/schema"
)

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "validate requires at least one race document file")
		return 2
	}

	failed := 0
	for _, path := range files {
		payload, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		docs, err := payloadschema.ValidateBatch(payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("OK   %s: %d documents\n", path, len(docs))
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed validation\n", failed, len(files))
		return 1
	}
	return 0
}
