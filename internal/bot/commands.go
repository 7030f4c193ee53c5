package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmunix/kinobot/internal/watchlist"
)

// Reply texts.
const (
	replyPong      = "pong!"
	replyAdded     = "added"
	replyEmptyList = "the watchlist is empty"
	replyFailed    = "something went wrong"

	// The dataset carries no crew information.
	unknownDirector = "<unknown>"

	// suggestLimit caps the search command's results.
	suggestLimit = 5

	// messageLimit keeps replies under Discord's 2000 character cap.
	messageLimit = 1900
)

type command struct {
	run  func(ctx context.Context, r *Router, req Request, log *slog.Logger) Response
	slow bool
}

var commands = map[string]command{
	"ping":   {run: runPing},
	"add":    {run: runAdd},
	"list":   {run: runList},
	"lookup": {run: runLookup, slow: true},
	"search": {run: runSearch, slow: true},
	"help":   {run: runHelp},
}

var helpLines = []struct{ usage, text string }{
	{"ping", "check the bot is alive"},
	{"add <title>", "add a film to the watchlist"},
	{"list", "show the watchlist"},
	{"lookup <title>", "find a film by its exact title"},
	{"search <title>", "list films with a similar title"},
	{"help", "show this message"},
}

// titleFromArgs rebuilds a title from its words, lower-cased.
func titleFromArgs(args []string) string {
	return strings.ToLower(strings.Join(args, " "))
}

func runPing(context.Context, *Router, Request, *slog.Logger) Response {
	return Response{Text: replyPong}
}

func runAdd(ctx context.Context, r *Router, req Request, log *slog.Logger) Response {
	title := titleFromArgs(req.Args)
	_, err := r.list.Append(ctx, watchlist.Entry{Title: title, AddedBy: req.Author})
	switch {
	case errors.Is(err, watchlist.ErrValidation):
		return Response{Text: fmt.Sprintf("usage: %sadd <title>", r.prefix), Reply: true}
	case err != nil:
		log.Error("add failed", "title", title, "error", err)
		return Response{Text: replyFailed, Reply: true}
	}
	log.Info("added to watchlist", "title", title)
	return Response{Text: replyAdded, Reply: true}
}

func runList(_ context.Context, r *Router, _ Request, _ *slog.Logger) Response {
	snap := r.list.Snapshot()
	if len(snap) == 0 {
		return Response{Text: replyEmptyList, Reply: true}
	}
	return Response{Text: codeBlock(snap.Titles()), Reply: true}
}

func runLookup(_ context.Context, r *Router, req Request, _ *slog.Logger) Response {
	title := titleFromArgs(req.Args)
	if strings.TrimSpace(title) == "" {
		return Response{Text: fmt.Sprintf("usage: %slookup <title>", r.prefix), Reply: true}
	}
	rec, ok := r.titles.Find(title)
	if !ok {
		return Response{Text: fmt.Sprintf("couldn't find %s", title), Reply: true}
	}
	name := rec.OriginalTitle
	if name == "" {
		name = rec.PrimaryTitle
	}
	return Response{
		Text:  fmt.Sprintf("%s (%d) -- directed by %s", name, rec.StartYear, unknownDirector),
		Reply: true,
	}
}

func runSearch(_ context.Context, r *Router, req Request, _ *slog.Logger) Response {
	title := titleFromArgs(req.Args)
	if strings.TrimSpace(title) == "" {
		return Response{Text: fmt.Sprintf("usage: %ssearch <title>", r.prefix), Reply: true}
	}
	matches := r.titles.Suggest(title, suggestLimit)
	if len(matches) == 0 {
		return Response{Text: fmt.Sprintf("no titles resemble %s", title), Reply: true}
	}
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("%s (%d)", m.Record.PrimaryTitle, m.Record.StartYear)
	}
	return Response{Text: codeBlock(lines), Reply: true}
}

func runHelp(_ context.Context, r *Router, _ Request, _ *slog.Logger) Response {
	lines := make([]string, len(helpLines))
	for i, h := range helpLines {
		lines[i] = fmt.Sprintf("%s%-16s %s", r.prefix, h.usage, h.text)
	}
	return Response{Text: codeBlock(lines)}
}

// codeBlock renders lines in a preformatted block. Lines that would push the
// message past messageLimit are replaced by a count.
func codeBlock(lines []string) string {
	var b strings.Builder
	b.WriteString("```\n")
	for i, line := range lines {
		rest := len(lines) - i
		if b.Len()+len(line)+len("\n```")+len("… 0000 more\n") > messageLimit {
			fmt.Fprintf(&b, "… %d more\n", rest)
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("```")
	return b.String()
}
