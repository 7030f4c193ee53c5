package discord

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/kinobot/internal/bot"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sent struct {
	channel string
	content string
	reply   *discordgo.MessageReference
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []sent
	typing  []string
	sendErr error
}

func (f *fakeSender) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{channel: channelID, content: content})
	return &discordgo.Message{}, f.sendErr
}

func (f *fakeSender) ChannelMessageSendReply(channelID, content string, ref *discordgo.MessageReference, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{channel: channelID, content: content, reply: ref})
	return &discordgo.Message{}, f.sendErr
}

func (f *fakeSender) ChannelTyping(channelID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing = append(f.typing, channelID)
	return nil
}

type fakeRouter struct {
	mu   sync.Mutex
	reqs []bot.Request
	resp bot.Response
	ok   bool
}

func (f *fakeRouter) Dispatch(_ context.Context, req bot.Request) (bot.Response, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.resp, f.ok
}

func newTestClient(router Dispatcher) *Client {
	return &Client{router: router, prefix: "/", logger: testLogger()}
}

func message(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   content,
		Author:    &discordgo.User{ID: "u1", Username: "kiko"},
	}
}

func TestHandleMessage_DispatchesAndReplies(t *testing.T) {
	router := &fakeRouter{resp: bot.Response{Text: "added", Reply: true}, ok: true}
	s := &fakeSender{}
	c := newTestClient(router)

	c.handleMessage(context.Background(), s, "self", message("/add The Thing"))

	require.Len(t, router.reqs, 1)
	assert.Equal(t, bot.Request{Name: "add", Args: []string{"The", "Thing"}, Author: "kiko"}, router.reqs[0])

	require.Len(t, s.sent, 1)
	assert.Equal(t, "c1", s.sent[0].channel)
	assert.Equal(t, "added", s.sent[0].content)
	require.NotNil(t, s.sent[0].reply)
	assert.Equal(t, "m1", s.sent[0].reply.MessageID)
	assert.Empty(t, s.typing)
}

func TestHandleMessage_PlainChannelMessage(t *testing.T) {
	router := &fakeRouter{resp: bot.Response{Text: "pong!"}, ok: true}
	s := &fakeSender{}

	newTestClient(router).handleMessage(context.Background(), s, "self", message("/ping"))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "pong!", s.sent[0].content)
	assert.Nil(t, s.sent[0].reply)
}

func TestHandleMessage_TypingForSlowCommands(t *testing.T) {
	router := &fakeRouter{resp: bot.Response{Text: "x", Reply: true}, ok: true}
	s := &fakeSender{}

	newTestClient(router).handleMessage(context.Background(), s, "self", message("/lookup parasite"))

	assert.Equal(t, []string{"c1"}, s.typing)
}

func TestHandleMessage_PrefersGlobalName(t *testing.T) {
	router := &fakeRouter{ok: true}
	m := message("/add x")
	m.Author.GlobalName = "Kiko K."

	newTestClient(router).handleMessage(context.Background(), &fakeSender{}, "self", m)

	require.Len(t, router.reqs, 1)
	assert.Equal(t, "Kiko K.", router.reqs[0].Author)
}

func TestHandleMessage_Ignored(t *testing.T) {
	tests := []struct {
		name string
		msg  *discordgo.Message
	}{
		{"nil message", nil},
		{"no author", &discordgo.Message{Content: "/ping"}},
		{"bot author", &discordgo.Message{Content: "/ping", Author: &discordgo.User{ID: "b", Bot: true}}},
		{"self", &discordgo.Message{Content: "/ping", Author: &discordgo.User{ID: "self"}}},
		{"not a command", message("just chatting")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := &fakeRouter{ok: true}
			s := &fakeSender{}
			newTestClient(router).handleMessage(context.Background(), s, "self", tt.msg)
			assert.Empty(t, router.reqs)
			assert.Empty(t, s.sent)
		})
	}
}

func TestHandleMessage_UnknownCommandSendsNothing(t *testing.T) {
	router := &fakeRouter{ok: false}
	s := &fakeSender{}

	newTestClient(router).handleMessage(context.Background(), s, "self", message("/dance"))

	assert.Len(t, router.reqs, 1)
	assert.Empty(t, s.sent)
}

func TestHandleMessage_Greeting(t *testing.T) {
	router := &fakeRouter{ok: true}
	s := &fakeSender{}

	newTestClient(router).handleMessage(context.Background(), s, "self", message("Hello there"))

	assert.Empty(t, router.reqs)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "もしもし", s.sent[0].content)
}

func TestHandleMessage_SendErrorIsLogged(t *testing.T) {
	router := &fakeRouter{resp: bot.Response{Text: "added", Reply: true}, ok: true}
	s := &fakeSender{sendErr: errors.New("rate limited")}

	// Must not panic; the failure is only logged.
	newTestClient(router).handleMessage(context.Background(), s, "self", message("/add x"))
	assert.Len(t, s.sent, 1)
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := New("  ", "/", &fakeRouter{}, nil)
	require.ErrorIs(t, err, ErrNoToken)
}

func TestNew_SetsIntents(t *testing.T) {
	c, err := New("token", "/", &fakeRouter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "discord", c.Name())
	assert.NotZero(t, c.session.Identify.Intents&discordgo.IntentMessageContent)
	assert.Equal(t, "Bot token", c.session.Token)
}

type blockingRouter struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRouter) Dispatch(_ context.Context, _ bot.Request) (bot.Response, bool) {
	close(r.entered)
	<-r.release
	return bot.Response{Text: "added", Reply: true}, true
}

func TestDrain_WaitsForInFlightHandlers(t *testing.T) {
	router := &blockingRouter{entered: make(chan struct{}), release: make(chan struct{})}
	c := newTestClient(router)
	s := &fakeSender{}

	require.True(t, c.track())
	go func() {
		defer c.inflight.Done()
		c.handleMessage(context.Background(), s, "bot", message("/add alien"))
	}()
	<-router.entered

	drained := make(chan struct{})
	go func() {
		c.drain()
		close(drained)
	}()

	select {
	case <-drained:
		t.Fatal("drain returned while a handler was running")
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, c.track(), "no new handlers once draining")

	close(router.release)
	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for drain")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.sent, 1)
	assert.Equal(t, "added", s.sent[0].content)
}
