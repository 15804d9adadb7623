package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"kelp.dev/kelp/cesr"
	"kelp.dev/kelp/cidutil"
	"kelp.dev/kelp/kel"
	"kelp.dev/kelp/said"
	"kelp.dev/kelp/sources"

	_ "kelp.dev/kelp/sources/grpckel"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "parse":
		return cmdParse(args[1:], out, errOut)
	case "fetch":
		return cmdFetch(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "digest":
		return cmdDigest(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "kelp: KERI key event log decoder")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  kelp parse [--aid <aid>] [--json] <file>")
	fmt.Fprintln(w, "  kelp fetch --source <name> [--aid <aid>] [--json] [source flags ...]")
	fmt.Fprintln(w, "  kelp fetch --list-sources")
	fmt.Fprintln(w, "  kelp cid <file>")
	fmt.Fprintln(w, "  kelp digest [--code E] <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - parse decodes a CESR stream file; malformed spans are skipped, never fatal")
	fmt.Fprintln(w, "  - fetch retrieves a KEL through a registered source (file, oobi, grpc)")
	fmt.Fprintln(w, "  - cid prints the CIDv1 (raw, sha2-256) of the file bytes")
	fmt.Fprintln(w, "  - digest prints a CESR self-addressing digest of the file bytes")
}

func cmdParse(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var aid string
	var asJSON bool
	fs.StringVar(&aid, "aid", "", "Only show events for this identifier prefix")
	fs.BoolVar(&asJSON, "json", false, "Emit events as a JSON array")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: kelp parse [--aid <aid>] [--json] <file>")
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(fs.Arg(0)), err)
		return 1
	}

	events := kel.Parse(data)
	events = filterEvents(events, aid)
	return printEvents(events, asJSON, out, errOut)
}

func cmdFetch(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var source string
	var aid string
	var asJSON bool
	var listSources bool
	var timeout time.Duration
	fs.StringVar(&source, "source", "file", "Source name")
	fs.StringVar(&aid, "aid", "", "Only show events for this identifier prefix")
	fs.BoolVar(&asJSON, "json", false, "Emit events as a JSON array")
	fs.BoolVar(&listSources, "list-sources", false, "List registered sources and exit")
	fs.DurationVar(&timeout, "timeout", 60*time.Second, "Overall fetch timeout")

	sources.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if listSources {
		for _, f := range sources.List() {
			if f.Description == "" {
				fmt.Fprintf(out, "%s\n", f.Name)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", f.Name, f.Description)
		}
		return 0
	}

	src, err := sources.Open(source)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	events, err := src.FetchEvents(ctx, aid)
	if err != nil {
		fmt.Fprintf(errOut, "fetch: %v\n", err)
		return 1
	}
	return printEvents(events, asJSON, out, errOut)
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: kelp cid <file>")
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(fs.Arg(0)), err)
		return 1
	}
	id, err := cidutil.StreamCID(data)
	if err != nil {
		fmt.Fprintf(errOut, "cid: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, id.String())
	return 0
}

func cmdDigest(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var code string
	fs.StringVar(&code, "code", cesr.CodeBlake3_256, "CESR digest code (E, F, H, I, 0D, 0E, 0F, 0G)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: kelp digest [--code E] <file>")
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(fs.Arg(0)), err)
		return 1
	}
	qb64, err := said.Derive(data, code)
	if err != nil {
		fmt.Fprintf(errOut, "digest: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, qb64)
	return 0
}

func filterEvents(events []kel.Event, aid string) []kel.Event {
	if aid == "" {
		return events
	}
	var kept []kel.Event
	for _, ev := range events {
		if ev.Identifier() == aid {
			kept = append(kept, ev)
		}
	}
	return kept
}

// eventView is the JSON shape of one decoded event.
type eventView struct {
	Version     string           `json:"version"`
	Type        string           `json:"type"`
	TypeLabel   string           `json:"type_label"`
	Digest      string           `json:"digest"`
	Identifier  string           `json:"identifier"`
	Sequence    uint64           `json:"sequence"`
	Attachments []kel.Attachment `json:"attachments"`
}

func printEvents(events []kel.Event, asJSON bool, out io.Writer, errOut io.Writer) int {
	if asJSON {
		views := make([]eventView, 0, len(events))
		for _, ev := range events {
			views = append(views, eventView{
				Version:     ev.Version(),
				Type:        ev.Type(),
				TypeLabel:   ev.TypeLabel(),
				Digest:      ev.Digest(),
				Identifier:  ev.Identifier(),
				Sequence:    ev.Sequence(),
				Attachments: ev.Attachments,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			fmt.Fprintf(errOut, "encode: %v\n", err)
			return 1
		}
		return 0
	}

	for i, ev := range events {
		fmt.Fprintf(out, "#%d %s (%s) sn=%s\n", i, ev.TypeLabel(), ev.Type(), ev.SequenceHex())
		fmt.Fprintf(out, "  i: %s\n", ev.Identifier())
		fmt.Fprintf(out, "  d: %s\n", ev.Digest())
		if p := ev.Prior(); p != "" {
			fmt.Fprintf(out, "  p: %s\n", p)
		}
		for _, att := range ev.Attachments {
			fmt.Fprintf(out, "  + %s (%s) count=%d materials=%d\n",
				att.Name, att.Code, att.Count, len(att.Materials))
		}
	}
	fmt.Fprintf(out, "%d event(s)\n", len(events))
	return 0
}
