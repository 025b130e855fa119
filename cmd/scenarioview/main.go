package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/meenmo/mdscenario/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scenarioview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	envPath := fs.String("env", "", ".env file with MDS_* settings (optional)")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stdout)
		return 0
	}

	log.SetOutput(stderr)
	var envFiles []string
	if p := strings.TrimSpace(*envPath); p != "" {
		envFiles = append(envFiles, p)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to load config: %v", err))
	}
	if err := cfg.ApplyLogLevel(); err != nil {
		return writeError(stdout, err.Error())
	}
	config.SetConfig(cfg)

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if f, ok := stdin.(*os.File); ok {
			if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				usage(stderr)
				return 2
			}
		}
	}

	inputBytes, err := readInput(stdin, path)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read input: %v", err))
	}

	var input ViewInput
	if err := json.Unmarshal(inputBytes, &input); err != nil {
		return writeError(stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}

	output, err := evaluate(input)
	if err != nil {
		log.WithError(err).Warn("scenario view failed")
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  scenarioview < input.json")
	fmt.Fprintln(w, "  scenarioview -input /path/to/input.json [-env /path/to/.env]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read per-scenario discount factors as JSON, resolve them through the")
	fmt.Fprintln(w, "configured curve group and feed, and print each scenario's view as JSON.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: MDS_CURVE_GROUP, MDS_FEED, MDS_CURRENCIES, MDS_PARALLELISM, MDS_LOG_LEVEL")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	output := ViewOutput{Error: msg}
	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}
