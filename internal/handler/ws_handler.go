package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/middleware"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/response"
	"github.com/stemsi/unicatalog/internal/service"
	"github.com/stemsi/unicatalog/internal/state"
	"github.com/stemsi/unicatalog/internal/view"
	ws "github.com/stemsi/unicatalog/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler keeps every open tab's comparison panel in sync.
type WSHandler struct {
	catalog  *service.CatalogService
	compare  *service.CompareService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(catalog *service.CatalogService, compare *service.CompareService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		catalog:  catalog,
		compare:  compare,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// wsConn serializes writes; gorilla allows one writer at a time and both the
// read loop and the subscription goroutine write.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) write(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ws.WriteTyped(w.conn, v)
}

func (w *wsConn) writeError(code response.ErrCode) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ws.WriteError(w.conn, string(code), response.GetMessage(code))
}

// CompareStream godoc
// WS /ws/v1/compare
// Accepts toggle, clear and ping actions. Every change made by any connection
// of the same client is pushed to all of them as a compare_panel event.
func (h *WSHandler) CompareStream(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsLog := h.log.With().Str("client_id", clientID).Logger()
	out := &wsConn{conn: conn}

	updates, err := h.compare.Subscribe(ctx, clientID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Subscribe compare updates")
		out.writeError(response.ErrInternal)
		return
	}

	if set, err := h.compare.Get(ctx, clientID); err != nil {
		wsLog.Error().Err(err).Msg("Load compare set")
		out.writeError(response.ErrInternal)
	} else {
		out.write(h.panelEvent(set))
	}

	go func() {
		for ids := range updates {
			if err := out.write(h.panelEvent(h.compare.Members(ids))); err != nil {
				cancel()
				return
			}
		}
	}()

	wsLog.Debug().Msg("Compare stream connected")

	for {
		req, err := ws.ReadRequest(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch req.Action {
		case ws.ActionToggle:
			h.handleToggle(ctx, out, wsLog, clientID, req.ID)
		case ws.ActionClear:
			if _, err := h.compare.Clear(ctx, clientID); err != nil {
				wsLog.Error().Err(err).Msg("Clear compare")
				out.writeError(response.ErrInternal)
			}
		case ws.ActionPing:
			out.write(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(req.Action)).Msg("Unknown action")
			out.writeError(response.ErrInvalidPayload)
		}
	}
}

// handleToggle reports failures to the caller only; successes reach every
// connection, this one included, through the subscription.
func (h *WSHandler) handleToggle(ctx context.Context, out *wsConn, wsLog zerolog.Logger, clientID string, id int) {
	if id <= 0 {
		out.writeError(response.ErrInvalidID)
		return
	}

	_, err := h.compare.Toggle(ctx, clientID, id)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrCompareCapacity):
		out.writeError(response.ErrCompareCapacity)
	case errors.Is(err, service.ErrUniversityNotFound):
		out.writeError(response.ErrNotFound)
	default:
		wsLog.Error().Err(err).Int("id", id).Msg("Toggle compare")
		out.writeError(response.ErrInternal)
	}
}

func (h *WSHandler) panelEvent(set model.CompareSet) ws.ComparePanelResponse {
	return ws.ComparePanelResponse{
		Event: ws.EventComparePanel,
		Panel: view.RenderComparePanel(set, h.catalog.Dataset(), state.New(), catalogPath),
	}
}
