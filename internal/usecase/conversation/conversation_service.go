package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/internal/usecase/directory"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
	"github.com/hospitalvoice/booking-agent/pkg/ai"
)

const systemPromptTemplate = `
You are a helpful and friendly hospital booking voice assistant. This conversation is happening over a phone call, so your responses will be spoken aloud.

Information:
Today date is %s %s

Your role is to:
1. Help customers find nearby hospitals based on their location
2. Provide information about hospital specialties and availability
3. Book appointments for patients
4. Answer questions about hospital services

Please adhere to these rules:
1. Provide clear, concise, and direct answers
2. Spell out all numbers
3. Do not use any special characters
4. Keep the conversation natural and engaging
5. Ask for location (city, state, or coordinates) when helping find hospitals
6. Confirm important details before booking appointments
`

// Service drives LLM chat sessions for phone calls
type Service struct {
	completer  ai.ChatCompleter
	dispatcher *Dispatcher
	registry   *Registry
	directory  *directory.DirectoryService
	logger     *zap.Logger
	maxRounds  int
	now        func() time.Time
}

// NewService creates a conversation service
func NewService(
	completer ai.ChatCompleter,
	dispatcher *Dispatcher,
	registry *Registry,
	directoryService *directory.DirectoryService,
	maxRounds int,
	logger *zap.Logger,
) *Service {
	if maxRounds <= 0 {
		maxRounds = 3
	}
	return &Service{
		completer:  completer,
		dispatcher: dispatcher,
		registry:   registry,
		directory:  directoryService,
		logger:     logger,
		maxRounds:  maxRounds,
		now:        time.Now,
	}
}

// StartSession registers a session for a call and seeds its transcript with
// the system prompt, the caller number and a best-effort directory snapshot
func (s *Service) StartSession(ctx context.Context, callSid, callerNumber string) *Session {
	now := s.now()
	seed := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(systemPromptTemplate, now.Format("1/2/2006"), now.Format("Monday")),
		},
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("Caller Number: %s", callerNumber),
		},
	}

	// Snapshot failures only cost the model its directory head start
	if entries, err := s.directory.ActiveSnapshot(ctx); err == nil && len(entries) > 0 {
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			line := e.Name
			if e.City != "" {
				line += " - " + e.City
			}
			if len(e.Specialties) > 0 {
				line += ", Specialties: " + strings.Join(e.Specialties, ", ")
			}
			line += ", Availability: " + e.Availability
			lines = append(lines, line)
		}
		seed = append(seed, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleAssistant,
			Content: fmt.Sprintf("Here are the available hospitals: %s\n\nI'm ready to help you book an appointment. Which hospital would you like to visit?\n",
				strings.Join(lines, "; ")),
		})
	} else if err != nil {
		s.logger.Warn("failed to load directory snapshot on setup",
			zap.String("call_sid", callSid),
			zap.Error(err))
	}

	s.logger.Info("call session started",
		zap.String("call_sid", callSid),
		zap.String("caller", callerNumber))
	return s.registry.Create(callSid, callerNumber, seed)
}

// HandleUtterance runs one conversation turn and returns the spoken reply.
// A turn for an unknown call SID is a no-op returning ErrSessionNotFound.
// The turn is cancellable via Interrupt.
func (s *Service) HandleUtterance(ctx context.Context, callSid, userText string) (string, error) {
	session, ok := s.registry.Get(callSid)
	if !ok {
		return "", usecaseErrors.ErrSessionNotFound
	}

	turnCtx, cancel := context.WithCancel(ctx)
	seq := session.beginTurn(cancel)
	defer session.endTurn(seq)
	defer cancel()

	session.Append(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	reply, err := s.runToolLoop(turnCtx, session)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Info("turn abandoned after interrupt", zap.String("call_sid", callSid))
			return "", usecaseErrors.ErrTurnInterrupted
		}
		return "", err
	}

	session.Append(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: reply,
	})
	return reply, nil
}

// runToolLoop requests completions until the model stops asking for tools or
// the round bound is reached. The final round offers no tools so the model
// must produce spoken text.
func (s *Service) runToolLoop(ctx context.Context, session *Session) (string, error) {
	for round := 0; ; round++ {
		tools := s.dispatcher.Tools()
		if round >= s.maxRounds {
			tools = nil
		}

		message, err := s.completer.Complete(ctx, session.Transcript(), tools)
		if err != nil {
			return "", fmt.Errorf("chat completion failed: %w", err)
		}

		if len(message.ToolCalls) == 0 || tools == nil {
			return message.Content, nil
		}

		session.Append(message)
		for _, call := range message.ToolCalls {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			result := s.dispatcher.Dispatch(ctx, session, call)
			session.Append(openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}
}

// Interrupt cancels the in-flight turn of a call, if any
func (s *Service) Interrupt(callSid string) {
	if session, ok := s.registry.Get(callSid); ok {
		s.logger.Info("barge-in detected", zap.String("call_sid", callSid))
		session.Interrupt()
	}
}

// EndSession tears down the session for a call
func (s *Service) EndSession(callSid string) {
	s.logger.Info("call ended", zap.String("call_sid", callSid))
	s.registry.Remove(callSid)
}
