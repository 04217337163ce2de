package conversation

import (
	"context"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
)

func newConversationService(completer *fakeCompleter, maxRounds int) (*Service, *Registry) {
	directoryService, bookingService, _ := newTestStack(activeHospital("City General Hospital"))
	dispatcher := NewDispatcher(directoryService, bookingService, zap.NewNop())
	registry := NewRegistry()
	svc := NewService(completer, dispatcher, registry, directoryService, maxRounds, zap.NewNop())
	return svc, registry
}

func TestStartSession_SeedsTranscript(t *testing.T) {
	svc, _ := newConversationService(&fakeCompleter{script: []openai.ChatCompletionMessage{textMessage("hi")}}, 3)

	session := svc.StartSession(context.Background(), "CA1", "+15550100")

	transcript := session.Transcript()
	require.GreaterOrEqual(t, len(transcript), 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, transcript[0].Role)
	assert.Contains(t, transcript[0].Content, "hospital booking voice assistant")
	assert.Contains(t, transcript[1].Content, "Caller Number: +15550100")
	assert.Equal(t, openai.ChatMessageRoleAssistant, transcript[2].Role)
	assert.Contains(t, transcript[2].Content, "Here are the available hospitals: City General Hospital")
}

func TestHandleUtterance_PlainReply(t *testing.T) {
	completer := &fakeCompleter{script: []openai.ChatCompletionMessage{
		textMessage("We are open until five."),
	}}
	svc, _ := newConversationService(completer, 3)
	svc.StartSession(context.Background(), "CA1", "+15550100")

	reply, err := svc.HandleUtterance(context.Background(), "CA1", "When do you close?")

	require.NoError(t, err)
	assert.Equal(t, "We are open until five.", reply)
	assert.Equal(t, 1, completer.callCount())
}

func TestHandleUtterance_UnknownCallSidIsNoop(t *testing.T) {
	completer := &fakeCompleter{script: []openai.ChatCompletionMessage{textMessage("hi")}}
	svc, _ := newConversationService(completer, 3)

	_, err := svc.HandleUtterance(context.Background(), "CA-unknown", "hello?")

	require.ErrorIs(t, err, usecaseErrors.ErrSessionNotFound)
	assert.Equal(t, 0, completer.callCount())
}

func TestHandleUtterance_ToolRoundThenReply(t *testing.T) {
	completer := &fakeCompleter{script: []openai.ChatCompletionMessage{
		toolCallMessage(ToolGetAllHospitals, `{"limit": 5}`),
		textMessage("I found City General Hospital."),
	}}
	svc, _ := newConversationService(completer, 3)
	session := svc.StartSession(context.Background(), "CA1", "+15550100")

	reply, err := svc.HandleUtterance(context.Background(), "CA1", "What hospitals are there?")

	require.NoError(t, err)
	assert.Equal(t, "I found City General Hospital.", reply)
	assert.Equal(t, 2, completer.callCount())

	// Transcript carries the tool call, its result and the final reply
	transcript := session.Transcript()
	var toolResults int
	for _, m := range transcript {
		if m.Role == openai.ChatMessageRoleTool {
			toolResults++
			assert.Equal(t, "call_0", m.ToolCallID)
			assert.Contains(t, m.Content, "City General Hospital")
		}
	}
	assert.Equal(t, 1, toolResults)
	assert.Equal(t, "I found City General Hospital.", transcript[len(transcript)-1].Content)
}

func TestHandleUtterance_RoundBoundForcesFinalReply(t *testing.T) {
	// The model keeps asking for tools; the loop must still terminate
	completer := &fakeCompleter{script: []openai.ChatCompletionMessage{
		toolCallMessage(ToolGetAllHospitals, `{}`),
		toolCallMessage(ToolGetAllHospitals, `{}`),
		toolCallMessage(ToolGetAllHospitals, `{}`),
		textMessage("Here is what I found."),
	}}
	svc, _ := newConversationService(completer, 3)
	svc.StartSession(context.Background(), "CA1", "+15550100")

	reply, err := svc.HandleUtterance(context.Background(), "CA1", "keep going")

	require.NoError(t, err)
	assert.Equal(t, "Here is what I found.", reply)
	// Three tool rounds plus the forced no-tool round
	require.Equal(t, 4, completer.callCount())
	for i := 0; i < 3; i++ {
		assert.NotEmpty(t, completer.toolsSeen[i], "round %d should offer tools", i)
	}
	assert.Nil(t, completer.toolsSeen[3], "final round must not offer tools")
}

func TestHandleUtterance_InterruptCancelsTurn(t *testing.T) {
	completer := &fakeCompleter{block: true}
	svc, _ := newConversationService(completer, 3)
	svc.StartSession(context.Background(), "CA1", "+15550100")

	done := make(chan error, 1)
	go func() {
		_, err := svc.HandleUtterance(context.Background(), "CA1", "long question")
		done <- err
	}()

	// Wait for the turn to reach the completer before interrupting
	require.Eventually(t, func() bool { return completer.callCount() > 0 },
		time.Second, 5*time.Millisecond)
	svc.Interrupt("CA1")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, usecaseErrors.ErrTurnInterrupted)
	case <-time.After(time.Second):
		t.Fatal("interrupted turn did not finish")
	}
}

func TestEndSession_SubsequentPromptIsNoop(t *testing.T) {
	completer := &fakeCompleter{script: []openai.ChatCompletionMessage{textMessage("hi")}}
	svc, registry := newConversationService(completer, 3)
	svc.StartSession(context.Background(), "CA1", "+15550100")

	svc.EndSession("CA1")

	assert.Equal(t, 0, registry.Len())
	_, err := svc.HandleUtterance(context.Background(), "CA1", "anyone there?")
	assert.ErrorIs(t, err, usecaseErrors.ErrSessionNotFound)
}

func TestInterrupt_UnknownCallSidIsNoop(t *testing.T) {
	svc, _ := newConversationService(&fakeCompleter{script: []openai.ChatCompletionMessage{textMessage("hi")}}, 3)
	svc.Interrupt("CA-unknown")
}
