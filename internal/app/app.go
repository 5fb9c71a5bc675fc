package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "run", "run-once":
		return runOnce(args[1:])
	case "merge":
		return runMerge(args[1:])
	case "persistent":
		return runPersistent(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "serve":
		return runServe(args[1:])
	case "archive":
		return runArchive(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "paddock CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  paddock <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run         Collect from the configured sources, merge and rank")
	fmt.Fprintln(os.Stderr, "  run-once    Alias for run")
	fmt.Fprintln(os.Stderr, "  merge       Merge race document files into the daily cache")
	fmt.Fprintln(os.Stderr, "  persistent  Interactive paste-driven merge session")
	fmt.Fprintln(os.Stderr, "  validate    Validate race document JSON files against the v1 schema")
	fmt.Fprintln(os.Stderr, "  serve       Start the Echo API server over the daily cache")
	fmt.Fprintln(os.Stderr, "  archive     Write the current cache into the Postgres archive")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"paddock <command> -h\" for command-specific flags.")
}
