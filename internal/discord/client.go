// Package discord connects the command router to a Discord bot session.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/vmunix/kinobot/internal/bot"
)

// ErrNoToken indicates the client was created without a bot token.
var ErrNoToken = errors.New("discord token is empty")

const greeting = "もしもし"

// Dispatcher runs parsed commands. *bot.Router implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req bot.Request) (bot.Response, bool)
}

// sender is the part of *discordgo.Session used to answer messages.
type sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
}

// Client is a Discord gateway connection that feeds messages to a router.
type Client struct {
	session *discordgo.Session
	router  Dispatcher
	prefix  string
	logger  *slog.Logger

	// inflight tracks message handlers so shutdown can wait for them.
	mu       sync.Mutex
	draining bool
	inflight sync.WaitGroup
}

// New creates a client for the given bot token. The connection is opened by Run.
func New(token, prefix string, router Dispatcher, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoToken
	}
	if logger == nil {
		logger = slog.Default()
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	return &Client{
		session: session,
		router:  router,
		prefix:  prefix,
		logger:  logger,
	}, nil
}

// Name returns the component name for logging.
func (c *Client) Name() string {
	return "discord"
}

// Run opens the gateway connection and blocks until ctx is canceled.
// discordgo calls each message handler on its own goroutine, so commands
// from different users run concurrently.
func (c *Client) Run(ctx context.Context) error {
	removeReady := c.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		c.logger.Info("connected", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	defer removeReady()

	removeMessage := c.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		selfID := ""
		if s.State != nil && s.State.User != nil {
			selfID = s.State.User.ID
		}
		if !c.track() {
			return
		}
		defer c.inflight.Done()
		c.handleMessage(ctx, s, selfID, m.Message)
	})
	defer removeMessage()

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	c.logger.Info("session opened", "prefix", c.prefix)

	<-ctx.Done()

	if err := c.session.Close(); err != nil {
		c.logger.Warn("close discord session", "error", err)
	}
	c.drain()
	c.logger.Info("session closed")
	return ctx.Err()
}

// track registers an in-flight handler. It reports false once draining has
// begun; callers that get true must call c.inflight.Done.
func (c *Client) track() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draining {
		return false
	}
	c.inflight.Add(1)
	return true
}

// drain refuses new handlers and waits for running ones, so the watchlist
// and bus outlive every command that uses them.
func (c *Client) drain() {
	c.mu.Lock()
	c.draining = true
	c.mu.Unlock()
	c.inflight.Wait()
}

// handleMessage answers one inbound message.
func (c *Client) handleMessage(ctx context.Context, s sender, selfID string, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot || m.Author.ID == selfID {
		return
	}

	if strings.HasPrefix(strings.ToLower(m.Content), "hello") {
		if _, err := s.ChannelMessageSend(m.ChannelID, greeting); err != nil {
			c.logger.Error("send greeting failed", "channel", m.ChannelID, "error", err)
		}
		return
	}

	req, ok := bot.ParseCommand(c.prefix, m.Content)
	if !ok {
		return
	}
	req.Author = displayName(m.Author)

	if bot.Slow(req.Name) {
		if err := s.ChannelTyping(m.ChannelID); err != nil {
			c.logger.Debug("typing indicator failed", "channel", m.ChannelID, "error", err)
		}
	}

	resp, ok := c.router.Dispatch(ctx, req)
	if !ok {
		return
	}

	var err error
	if resp.Reply {
		_, err = s.ChannelMessageSendReply(m.ChannelID, resp.Text, m.Reference())
	} else {
		_, err = s.ChannelMessageSend(m.ChannelID, resp.Text)
	}
	if err != nil {
		c.logger.Error("send reply failed", "channel", m.ChannelID, "command", req.Name, "error", err)
	}
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
