package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/internal/usecase/conversation"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
	"github.com/hospitalvoice/booking-agent/pkg/ai"
	"github.com/hospitalvoice/booking-agent/pkg/config"
)

const voiceResponseTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Response>
  <Connect>
    <ConversationRelay
      url="%s"
      welcomeGreeting="%s"
      ttsProvider="%s"
      voice="%s"
    />
  </Connect>
</Response>`

// relayFrame is one JSON frame of the conversation relay protocol
type relayFrame struct {
	Type        string `json:"type"`
	CallSid     string `json:"callSid,omitempty"`
	VoicePrompt string `json:"voicePrompt,omitempty"`
	Token       string `json:"token,omitempty"`
	Last        bool   `json:"last,omitempty"`
}

// Telephony handles the provider voice webhook and the WebSocket relay
type Telephony struct {
	conversationService *conversation.Service
	cfg                 *config.TelephonyConfig
	upgrader            websocket.Upgrader
	logger              *zap.Logger
}

// NewTelephony creates a new telephony handler
func NewTelephony(conversationService *conversation.Service, cfg *config.TelephonyConfig, logger *zap.Logger) *Telephony {
	return &Telephony{
		conversationService: conversationService,
		cfg:                 cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The telephony provider connects from its own origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Voice answers the provider's incoming-call webhook with a call-control
// document pointing the conversation relay at our WebSocket endpoint
// POST /v1/telephony/voice
func (h *Telephony) Voice(c echo.Context) error {
	if h.cfg.WebhookSecret != "" {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		signature := c.Request().Header.Get("X-Telephony-Signature")
		if !ai.VerifyHMAC(h.cfg.WebhookSecret, body, signature) {
			h.logger.Warn("rejected voice webhook with bad signature")
			return c.NoContent(http.StatusForbidden)
		}
		// Restore the body so FormValue can still parse it
		c.Request().Body = io.NopCloser(bytes.NewReader(body))
	}

	caller := c.FormValue("From")
	wsURL := fmt.Sprintf("wss://%s/ws?caller=%s", h.cfg.Domain, url.QueryEscape(caller))

	h.logger.Info("incoming call",
		zap.String("caller", caller),
		zap.String("ws_url", wsURL))

	xml := fmt.Sprintf(voiceResponseTemplate, wsURL, h.cfg.WelcomeGreeting, h.cfg.TTSProvider, h.cfg.Voice)
	return c.Blob(http.StatusOK, "text/xml", []byte(xml))
}

// Relay upgrades the connection and runs the conversation relay protocol.
// One connection maps to exactly one phone call.
// GET /ws?caller=<number>
func (h *Telephony) Relay(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	callerNumber := c.QueryParam("caller")
	callSid := ""

	// gorilla allows one concurrent writer per connection
	var writeMu sync.Mutex

	defer func() {
		if callSid != "" {
			h.conversationService.EndSession(callSid)
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("relay connection error",
					zap.String("call_sid", callSid),
					zap.Error(err))
			}
			return nil
		}

		var frame relayFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.logger.Warn("dropping malformed relay frame",
				zap.String("call_sid", callSid),
				zap.Error(err))
			continue
		}

		switch frame.Type {
		case "setup":
			callSid = frame.CallSid
			h.conversationService.StartSession(ctx, callSid, callerNumber)

		case "prompt":
			if callSid == "" {
				continue
			}
			// The turn runs off the read loop so interrupt frames can
			// still be routed while the model is working; a newer turn
			// supersedes an unfinished one via the session's turn state
			go h.runTurn(ctx, conn, &writeMu, callSid, frame.VoicePrompt)

		case "interrupt":
			if callSid != "" {
				h.conversationService.Interrupt(callSid)
			}
		}
	}
}

// runTurn executes one conversation turn and writes the spoken reply
func (h *Telephony) runTurn(ctx context.Context, conn *websocket.Conn, writeMu *sync.Mutex, callSid, prompt string) {
	reply, err := h.conversationService.HandleUtterance(ctx, callSid, prompt)
	if err != nil {
		// Interrupted or failed turns produce no spoken reply
		if !stdErrors.Is(err, usecaseErrors.ErrTurnInterrupted) &&
			!stdErrors.Is(err, usecaseErrors.ErrSessionNotFound) {
			h.logger.Error("conversation turn failed",
				zap.String("call_sid", callSid),
				zap.Error(err))
		}
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	if err := conn.WriteJSON(relayFrame{Type: "text", Token: reply, Last: true}); err != nil {
		h.logger.Warn("failed to write relay reply",
			zap.String("call_sid", callSid),
			zap.Error(err))
	}
}
