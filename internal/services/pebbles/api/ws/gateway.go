// Package ws exposes the pebbles game over a JSON websocket. Each request
// frame receives exactly one reply frame.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	pebblesv1 "github.com/louisbranch/pebbles/api/pebbles/v1"
	apperrors "github.com/louisbranch/pebbles/internal/platform/errors"
	"github.com/louisbranch/pebbles/internal/platform/errors/i18n"
	"github.com/louisbranch/pebbles/internal/platform/requestctx"
	"github.com/louisbranch/pebbles/internal/platform/timeouts"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Request frame types.
const (
	FrameInit    = "INIT"
	FrameTurn    = "TURN"
	FrameGiveUp  = "GIVE_UP"
	FrameRestart = "RESTART"
	FrameState   = "STATE"
)

// Reply frame types.
const (
	ReplyEvent = "event"
	ReplyState = "state"
	ReplyError = "error"
)

// Path is where the gateway is mounted.
const Path = "/ws"

// Frame is one client request.
type Frame struct {
	Type              string               `json:"type"`
	ID                string               `json:"id,omitempty"`
	Count             uint32               `json:"count,omitempty"`
	Difficulty        pebblesv1.Difficulty `json:"difficulty,omitempty"`
	PebblesCount      uint32               `json:"pebbles_count,omitempty"`
	MaxPebblesPerTurn uint32               `json:"max_pebbles_per_turn,omitempty"`
}

// Reply is the single answer to a Frame. ID echoes the request ID.
type Reply struct {
	Type  string                  `json:"type"`
	ID    string                  `json:"id,omitempty"`
	Event *pebblesv1.PebblesEvent `json:"event,omitempty"`
	State *pebblesv1.GameState    `json:"state,omitempty"`
	Error *ErrorBody              `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Handler upgrades HTTP requests and serves frames against a game service.
type Handler struct {
	service  pebblesv1.PebblesServiceServer
	upgrader websocket.Upgrader
	idle     time.Duration
}

// NewHandler creates a gateway handler for service.
func NewHandler(service pebblesv1.PebblesServiceServer) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		idle: timeouts.WebSocketIdle,
	}
}

// NewMux mounts handler at Path.
func NewMux(handler *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Path, handler)
	return mux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "game service is not configured", http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx := requestctx.WithLocale(r.Context(), i18n.MatchLocale(r.Header.Get("Accept-Language")))
	log.Printf("websocket connected from %s", r.RemoteAddr)
	for {
		if h.idle > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(h.idle))
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
		// A complete message that fails to decode is answered, never fatal.
		var (
			frame Frame
			reply Reply
		)
		if err := json.Unmarshal(data, &frame); err != nil {
			reply = errorReply("", status.Error(codes.InvalidArgument, "malformed frame"))
		} else {
			reply = h.Dispatch(ctx, frame)
		}
		if err := h.write(conn, reply); err != nil {
			log.Printf("websocket write: %v", err)
			return
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, reply Reply) error {
	_ = conn.SetWriteDeadline(time.Now().Add(timeouts.WebSocketWrite))
	return conn.WriteJSON(reply)
}

// Dispatch maps a frame onto the game service and shapes the reply.
func (h *Handler) Dispatch(ctx context.Context, frame Frame) Reply {
	var (
		reply Reply
		err   error
	)
	switch strings.ToUpper(strings.TrimSpace(frame.Type)) {
	case FrameInit:
		var resp *pebblesv1.InitResponse
		resp, err = h.service.Init(ctx, &pebblesv1.InitRequest{
			Difficulty:        frame.Difficulty,
			PebblesCount:      frame.PebblesCount,
			MaxPebblesPerTurn: frame.MaxPebblesPerTurn,
		})
		if err == nil {
			reply = Reply{Type: ReplyEvent, Event: resp.Event, State: resp.State}
		}
	case FrameTurn:
		var resp *pebblesv1.TurnResponse
		resp, err = h.service.Turn(ctx, &pebblesv1.TurnRequest{Count: frame.Count})
		if err == nil {
			reply = Reply{Type: ReplyEvent, Event: resp.Event, State: resp.State}
		}
	case FrameGiveUp:
		var resp *pebblesv1.GiveUpResponse
		resp, err = h.service.GiveUp(ctx, &pebblesv1.GiveUpRequest{})
		if err == nil {
			reply = Reply{Type: ReplyEvent, Event: resp.Event, State: resp.State}
		}
	case FrameRestart:
		var resp *pebblesv1.RestartResponse
		resp, err = h.service.Restart(ctx, &pebblesv1.RestartRequest{
			Difficulty:        frame.Difficulty,
			PebblesCount:      frame.PebblesCount,
			MaxPebblesPerTurn: frame.MaxPebblesPerTurn,
		})
		if err == nil {
			reply = Reply{Type: ReplyEvent, Event: resp.Event, State: resp.State}
		}
	case FrameState:
		var resp *pebblesv1.GetStateResponse
		resp, err = h.service.GetState(ctx, &pebblesv1.GetStateRequest{})
		if err == nil {
			reply = Reply{Type: ReplyState, State: resp.State}
		}
	default:
		err = status.Errorf(codes.InvalidArgument, "unknown frame type %q", frame.Type)
	}
	if err != nil {
		return errorReply(frame.ID, err)
	}
	reply.ID = frame.ID
	return reply
}

func errorReply(id string, err error) Reply {
	body := &ErrorBody{
		Status:  status.Code(err).String(),
		Message: apperrors.LocalizedMessageFromStatus(err),
	}
	if code := apperrors.CodeFromStatus(err); code != apperrors.CodeUnknown {
		body.Code = string(code)
	}
	return Reply{Type: ReplyError, ID: id, Error: body}
}
