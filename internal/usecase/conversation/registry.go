package conversation

import (
	"context"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Session holds the transcript and turn state of one phone call
type Session struct {
	CallSid      string
	CallerNumber string

	mu         sync.Mutex
	messages   []openai.ChatCompletionMessage
	cancelTurn context.CancelFunc
	turnSeq    uint64
}

// Append adds messages to the transcript
func (s *Session) Append(msgs ...openai.ChatCompletionMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
}

// Transcript returns a copy of the transcript
func (s *Session) Transcript() []openai.ChatCompletionMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]openai.ChatCompletionMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// beginTurn installs the cancel function for an in-flight turn, cancelling
// any previous one first, and returns the turn's sequence number
func (s *Session) beginTurn(cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelTurn != nil {
		s.cancelTurn()
	}
	s.turnSeq++
	s.cancelTurn = cancel
	return s.turnSeq
}

// endTurn clears the in-flight turn. A superseded turn finishing late must
// not clear the turn that replaced it, hence the sequence check.
func (s *Session) endTurn(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.turnSeq == seq {
		s.cancelTurn = nil
	}
}

// Interrupt cancels the in-flight turn, if any
func (s *Session) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelTurn != nil {
		s.cancelTurn()
		s.cancelTurn = nil
	}
}

// Registry tracks active call sessions by call SID
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create registers a session for the call SID, replacing any existing one
func (r *Registry) Create(callSid, callerNumber string, seed []openai.ChatCompletionMessage) *Session {
	session := &Session{
		CallSid:      callSid,
		CallerNumber: callerNumber,
		messages:     seed,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[callSid] = session
	return session
}

// Get retrieves the session for a call SID
func (r *Registry) Get(callSid string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[callSid]
	return session, ok
}

// Remove interrupts and removes the session for a call SID
func (r *Registry) Remove(callSid string) {
	r.mu.Lock()
	session, ok := r.sessions[callSid]
	delete(r.sessions, callSid)
	r.mu.Unlock()

	if ok {
		session.Interrupt()
	}
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
