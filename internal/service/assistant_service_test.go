package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/pkg/ai"
)

func TestAssistantHistorySeedsGreetingOnce(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	history, err := h.assistants.History(ctx, h.studentID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, models.AssistantRoleModel, history[0].Role)
	require.True(t, strings.HasPrefix(history[0].Text, "Hi Alex!"))

	history, err = h.assistants.History(ctx, h.studentID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

type recordingResponder struct {
	prompts []ai.Prompt
	reply   string
}

func (r *recordingResponder) Respond(_ context.Context, prompt ai.Prompt) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.reply, nil
}

func TestAssistantSendAppendsOneReply(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	exchange, err := h.assistants.Send(ctx, h.studentID, dto.AssistantMessageRequest{Text: "Where is my class?"})
	require.NoError(t, err)
	require.Equal(t, "Where is my class?", exchange.UserMessage.Text)
	require.Equal(t, "Linear Algebra is on now in Hall B.", exchange.ModelMessage.Text)
	require.False(t, exchange.ModelMessage.Fallback)

	history, err := h.assistants.History(ctx, h.studentID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, models.AssistantRoleUser, history[1].Role)
	require.Equal(t, models.AssistantRoleModel, history[2].Role)
}

func TestAssistantSendKeepsTextAsTyped(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	recorder := &recordingResponder{reply: "It pulls in the standard I/O header."}
	h.assistants.responder = recorder

	text := "What does #include <stdio.h> do? Is 3 <4 and x<y>z?"
	exchange, err := h.assistants.Send(ctx, h.studentID, dto.AssistantMessageRequest{Text: text})
	require.NoError(t, err)
	require.Equal(t, text, exchange.UserMessage.Text)

	require.Len(t, recorder.prompts, 1)
	require.Equal(t, text, recorder.prompts[0].User)

	history, err := h.assistants.History(ctx, h.studentID)
	require.NoError(t, err)
	require.Equal(t, text, history[1].Text)
}

func TestAssistantMarksCannedRepliesAsFallback(t *testing.T) {
	h := newPortalHarness(t)
	h.assistants.responder = ai.NewOfflineResponder("The assistant is offline.")

	exchange, err := h.assistants.Send(context.Background(), h.studentID, dto.AssistantMessageRequest{Text: "hello"})
	require.NoError(t, err)
	require.Equal(t, "The assistant is offline.", exchange.ModelMessage.Text)
	require.True(t, exchange.ModelMessage.Fallback)
}

func TestAssistantFallbackReplies(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	h.responder.Err = errors.New("connection refused")
	exchange, err := h.assistants.Send(ctx, h.studentID, dto.AssistantMessageRequest{Text: "hello"})
	require.NoError(t, err)
	require.Equal(t, AssistantErrorFallback, exchange.ModelMessage.Text)
	require.True(t, exchange.ModelMessage.Fallback)

	h.responder.Err = nil
	h.responder.Reply = "   "
	exchange, err = h.assistants.Send(ctx, h.studentID, dto.AssistantMessageRequest{Text: "hello again"})
	require.NoError(t, err)
	require.Equal(t, AssistantEmptyFallback, exchange.ModelMessage.Text)
}

func TestAssistantRejectsBlankAndBusy(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	_, err := h.assistants.Send(ctx, h.studentID, dto.AssistantMessageRequest{Text: " \n\t "})
	require.ErrorIs(t, err, ErrEmptyAssistantMessage)

	h.assistants.inFlight[h.studentID] = struct{}{}
	_, err = h.assistants.Send(ctx, h.studentID, dto.AssistantMessageRequest{Text: "anyone there?"})
	require.ErrorIs(t, err, ErrAssistantBusy)

	h.assistants.release(h.studentID)
	_, err = h.assistants.Send(ctx, h.studentID, dto.AssistantMessageRequest{Text: "anyone there?"})
	require.NoError(t, err)
}

func TestBuildAssistantPrompt(t *testing.T) {
	prompt := BuildAssistantPrompt("Alex", []string{"Data Structures (Done)", "Linear Algebra (Now)"})
	require.Contains(t, prompt, "student named Alex.")
	require.True(t, strings.HasSuffix(prompt, "You have access to their schedule: Data Structures (Done), Linear Algebra (Now)."))

	require.NotContains(t, BuildAssistantPrompt("Alex", nil), "schedule:")
}
