package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupilot/edupilot/internal/client/apitest"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/logging"
)

const chatMessageRoute = "/api/chat/message"

func TestChatService_LoadAndSend(t *testing.T) {
	env := newEnv(t)
	user := env.signIn(t)
	svc := NewChatService(env.client, logging.NewNop())
	ctx := context.Background()

	msgs, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	reply, err := svc.Send(ctx, "  what is a goroutine?  ")
	require.NoError(t, err)
	assert.Equal(t, models.ChatRoleAssistant, reply.Role)
	assert.Equal(t, apitest.ChatReply("what is a goroutine?"), reply.Content)

	msgs = svc.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.ChatRoleUser, msgs[0].Role)
	assert.Equal(t, "what is a goroutine?", msgs[0].Content)
	assert.Equal(t, reply, msgs[1])

	assert.Len(t, env.srv.ChatHistory(user), 2)

	reloaded, err := NewChatService(env.client, logging.NewNop()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 2)
	assert.NotZero(t, reloaded[0].ID)
	assert.Equal(t, reply.ID, reloaded[1].ID)
}

func TestChatService_BlankMessageRejected(t *testing.T) {
	env := newEnv(t)
	env.signIn(t)
	svc := NewChatService(env.client, logging.NewNop())

	_, err := svc.Send(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, "Please type a message", Message(err, MsgSendChat))
	assert.Empty(t, svc.Messages())
	assert.Zero(t, env.srv.Calls(http.MethodPost, chatMessageRoute))
}

func TestChatService_SendFailureKeepsUserMessage(t *testing.T) {
	env := newEnv(t)
	env.signIn(t)
	svc := NewChatService(env.client, logging.NewNop())

	env.srv.FailNext(http.MethodPost, chatMessageRoute, http.StatusInternalServerError, "model offline")
	_, err := svc.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, MsgSendChat, Message(err, MsgSendChat))

	msgs := svc.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.ChatRoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
}

func TestChatService_LoadFailureKeepsTranscript(t *testing.T) {
	env := newEnv(t)
	env.signIn(t)
	svc := NewChatService(env.client, logging.NewNop())
	ctx := context.Background()

	_, err := svc.Send(ctx, "hello")
	require.NoError(t, err)

	env.srv.FailNext(http.MethodGet, "/api/chat/session", http.StatusInternalServerError, "db down")
	msgs, err := svc.Load(ctx)
	require.Error(t, err)
	assert.Equal(t, MsgLoadChat, Message(err, MsgLoadChat))
	assert.Len(t, msgs, 2)
	assert.Len(t, svc.Messages(), 2)
}

func TestChatService_ClearHistory(t *testing.T) {
	env := newEnv(t)
	user := env.signIn(t)
	svc := NewChatService(env.client, logging.NewNop())
	ctx := context.Background()

	_, err := svc.Send(ctx, "hello")
	require.NoError(t, err)

	env.srv.FailNext(http.MethodDelete, "/api/chat/clear", http.StatusInternalServerError, "boom")
	err = svc.ClearHistory(ctx)
	require.Error(t, err)
	assert.Equal(t, MsgClearChat, Message(err, MsgClearChat))
	assert.Len(t, svc.Messages(), 2)
	assert.Len(t, env.srv.ChatHistory(user), 2)

	require.NoError(t, svc.ClearHistory(ctx))
	assert.Empty(t, svc.Messages())
	assert.Empty(t, env.srv.ChatHistory(user))
}

func TestChatService_ReplyAfterClearIsDropped(t *testing.T) {
	env := newEnv(t)
	env.signIn(t)
	svc := NewChatService(env.client, logging.NewNop())
	ctx := context.Background()

	started, release := env.srv.Hold(http.MethodPost, chatMessageRoute)
	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(ctx, "hello")
		done <- err
	}()

	<-started
	svc.Clear()
	release()

	require.NoError(t, <-done)
	assert.Empty(t, svc.Messages())
}
