// cmd/tools/ask/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"voice-assistant/internal/common/logger"
	"voice-assistant/internal/store"
	"voice-assistant/internal/voice/interpreter"
	"voice-assistant/internal/voice/session"
)

func main() {
	snapshotPath := flag.String("snapshot", "", "Path to a JSON snapshot with customers, products and payments")
	localeTag := flag.String("locale", "es", "Command language (es or en)")
	sessionID := flag.String("session", "", "Session id; a new one is generated when empty")
	speech := flag.Bool("speech", false, "Print the spoken form instead of the display text")
	verbose := flag.Bool("verbose", false, "Log interpretation details to stderr")
	flag.Usage = usage
	flag.Parse()

	if *snapshotPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -snapshot is required.")
		usage()
		os.Exit(1)
	}

	locale, ok := interpreter.ParseLocale(*localeTag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported locale %q\n", *localeTag)
		os.Exit(1)
	}

	log := logger.NewNoOpLogger()
	if *verbose {
		log = logger.NewZapAdapter(logger.NewWithOutput("debug", "console", "stderr"))
	}

	assistant := session.NewAssistant(session.Dependencies{
		Interpreter: interpreter.New(interpreter.WithDefaultLocale(locale), interpreter.WithLogger(log)),
		Snapshots:   store.NewFileSnapshotLoader(*snapshotPath),
		Responses:   store.NewMemoryResponseStore(16, time.Hour),
	}, locale, log)

	id := *sessionID
	if id == "" {
		id = session.NewSession()
	}

	if flag.NArg() > 0 {
		if err := ask(assistant, id, strings.Join(flag.Args(), " "), locale, *speech, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := repl(assistant, id, locale, *speech, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func ask(assistant *session.Assistant, sessionID, command string, locale interpreter.Locale, speech bool, out io.Writer) error {
	reply, err := assistant.Ask(context.Background(), sessionID, command, locale)
	if err != nil {
		return err
	}
	if speech {
		fmt.Fprintln(out, reply.Speech)
	} else {
		fmt.Fprintln(out, reply.Response)
	}
	return nil
}

// repl answers one command per input line until EOF or a stop phrase.
func repl(assistant *session.Assistant, sessionID string, locale interpreter.Locale, speech bool, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}

		reply, err := assistant.Ask(context.Background(), sessionID, command, locale)
		if err != nil {
			return err
		}
		if speech {
			fmt.Fprintln(out, reply.Speech)
		} else {
			fmt.Fprintln(out, reply.Response)
		}
		if reply.Action == session.ActionStop {
			return nil
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `
Usage: ask -snapshot <file> [flags] [command]

Answers a business question against a snapshot file. Without a command,
reads one command per line until EOF or "deja de escuchar" / "stop listening".

Flags:
  -snapshot  JSON snapshot file (required)
  -locale    es or en (default es)
  -session   session id for "repite" / "repeat"
  -speech    print the spoken form
  -verbose   log to stderr

Examples:
  ask -snapshot configs/snapshot.example.json "¿Cuánto me debe Juan?"
  ask -snapshot configs/snapshot.example.json -locale en -speech "Which products are low on stock?"`)
}
