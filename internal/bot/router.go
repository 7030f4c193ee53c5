// Package bot turns chat commands into watchlist and title lookups and
// renders the reply text.
package bot

//go:generate mockgen -source=router.go -destination=mocks/mock_router.go -package=mocks

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/kinobot/internal/titles"
	"github.com/vmunix/kinobot/internal/watchlist"
)

// Watchlist is the shared list the add and list commands work on.
type Watchlist interface {
	Snapshot() watchlist.Watchlist
	Append(ctx context.Context, e watchlist.Entry) (watchlist.Watchlist, error)
}

// TitleFinder answers lookup and search commands.
type TitleFinder interface {
	Find(title string) (titles.Record, bool)
	Suggest(query string, n int) []titles.Match
}

// Request is a parsed command.
type Request struct {
	Name   string   // lower-cased command name without the prefix
	Args   []string // whitespace-separated arguments
	Author string   // display name of the sender, may be empty
}

// Response is the text to send back.
type Response struct {
	Text string
	// Reply marks the response as a reply to the triggering message rather
	// than a plain channel message.
	Reply bool
}

// ParseCommand strips prefix from content and splits the rest into a
// command name and arguments. It reports false when content is not a command.
func ParseCommand(prefix, content string) (Request, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return Request{}, false
	}
	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return Request{}, false
	}
	return Request{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, true
}

// Router dispatches commands. It is safe for concurrent use; all shared
// state lives behind the Watchlist and TitleFinder.
type Router struct {
	list   Watchlist
	titles TitleFinder
	prefix string
	logger *slog.Logger
}

// NewRouter creates a router. prefix is only used to render help text.
func NewRouter(list Watchlist, finder TitleFinder, prefix string, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		list:   list,
		titles: finder,
		prefix: prefix,
		logger: logger,
	}
}

// Dispatch runs the command in req. It reports false for unknown commands,
// which callers should ignore. Failures are rendered into the response text.
func (r *Router) Dispatch(ctx context.Context, req Request) (Response, bool) {
	cmd, ok := commands[req.Name]
	if !ok {
		return Response{}, false
	}

	start := time.Now()
	log := r.logger.With(
		"request_id", uuid.NewString(),
		"command", req.Name,
		"author", req.Author,
	)

	resp := cmd.run(ctx, r, req, log)
	log.Info("command handled",
		"args", len(req.Args),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, true
}

// Slow reports whether the named command may take long enough to warrant a
// typing indicator.
func Slow(name string) bool {
	cmd, ok := commands[name]
	return ok && cmd.slow
}
