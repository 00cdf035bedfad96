// Command timeline-replay folds a recorded packet log (one JSON packet per
// line) into a timeline and prints it, or lints the log against the packet
// wire schema. Useful for inspecting captured agent sessions offline and for
// debugging packet producers.
//
// Usage:
//
//	timeline-replay -f session.jsonl
//	timeline-replay -f session.jsonl -turns -format json
//	timeline-replay -f session.jsonl -lint
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"goa.design/clue/log"
	"gopkg.in/yaml.v3"

	"github.com/onyx-dot-app/agent-timeline/packet"
	"github.com/onyx-dot-app/agent-timeline/session"
	"github.com/onyx-dot-app/agent-timeline/telemetry"
	"github.com/onyx-dot-app/agent-timeline/timeline"
)

func main() {
	var (
		fileF     = flag.String("f", "", "Packet log file, one JSON packet per line (default: stdin)")
		formatF   = flag.String("format", "yaml", "Output format: yaml or json")
		turnsF    = flag.Bool("turns", false, "Print turn groups instead of the flat timeline")
		lintF     = flag.Bool("lint", false, "Validate packets against the wire schema instead of rendering")
		maxDepthF = flag.Int("max-depth", timeline.DefaultMaxSubagentDepth, "Sub-agent expansion depth bound")
		dbgF      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	if *dbgF {
		ctx = log.Context(ctx, log.WithDebug())
	}

	raws, err := readPackets(*fileF)
	if err != nil {
		log.Errorf(ctx, err, "read packet log")
		os.Exit(1)
	}

	if *lintF {
		os.Exit(lint(ctx, raws))
	}

	rec := session.NewRecorder(
		session.WithBuilder(timeline.New(timeline.WithMaxSubagentDepth(*maxDepthF))),
		session.WithLogger(telemetry.NewClueLogger()),
	)
	rec.Append(ctx, raws...)

	var doc any
	if *turnsF {
		doc = rec.Turns()
	} else {
		doc = rec.Items()
	}
	if err := render(os.Stdout, doc, *formatF); err != nil {
		log.Errorf(ctx, err, "render timeline")
		os.Exit(1)
	}
	if status := rec.Status(); status.ErrorMessage != "" {
		log.Print(ctx, log.KV{K: "run_error", V: status.ErrorMessage})
	}
}

// readPackets reads one raw JSON packet per non-empty line.
func readPackets(path string) ([]json.RawMessage, error) {
	var in io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		in = f
	}
	var raws []json.RawMessage
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		raws = append(raws, json.RawMessage(bytes.Clone(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan packet log: %w", err)
	}
	return raws, nil
}

// lint validates every record against the wire schema and reports
// violations. Returns the process exit code: zero when the log is clean.
func lint(ctx context.Context, raws []json.RawMessage) int {
	v, err := packet.NewValidator()
	if err != nil {
		log.Errorf(ctx, err, "compile packet schema")
		return 1
	}
	bad := 0
	for i, raw := range raws {
		if err := v.Validate(raw); err != nil {
			bad++
			log.Print(ctx, log.KV{K: "line", V: i + 1}, log.KV{K: "violation", V: err.Error()})
		}
	}
	log.Print(ctx, log.KV{K: "packets", V: len(raws)}, log.KV{K: "violations", V: bad})
	if bad > 0 {
		return 1
	}
	return 0
}

func render(w io.Writer, doc any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
