// Package server exposes the hand engine over a websocket feed for
// visualizers and AI clients. Clients drive one hand per connection through
// the validated mutators and receive snapshot/state events after every
// applied command.
package server

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"nlhe-lite/handlog"
	"nlhe-lite/holdem"
	"nlhe-lite/storage"
)

// Error codes sent in error envelopes.
const (
	codeBadMessage   = 1
	codeUnauthorized = 2
	codeNoHand       = 3
	codeIllegal      = 4
	codeStorage      = 5
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Gateway manages websocket connections. Each connection hosts at most one
// live hand.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	nextConnID  uint64

	store storage.Store
	gate  *SessionGate
	log   *logrus.Entry
}

func New(store storage.Store, gate *SessionGate, log *logrus.Logger) *Gateway {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Gateway{
		connections: make(map[string]*Connection),
		store:       store,
		gate:        gate,
		log:         log.WithField("component", "gateway"),
	}
}

// Connection is one websocket client with its hosted hand.
type Connection struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	Gateway  *Gateway
	LastPing time.Time

	authorized bool
	nextSeq    uint64

	game *holdem.Game
	rng  *rand.Rand
}

// Handler returns the HTTP mux with the websocket and health endpoints.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// HandleWebSocket handles websocket upgrade and connection.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade failed")
		return
	}

	g.mu.Lock()
	g.nextConnID++
	connID := fmt.Sprintf("conn_%d", g.nextConnID)
	c := &Connection{
		ID:         connID,
		Conn:       conn,
		Send:       make(chan []byte, 256),
		Gateway:    g,
		LastPing:   time.Now(),
		authorized: !g.gate.Enabled(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.connections[connID] = c
	total := len(g.connections)
	g.mu.Unlock()

	g.log.WithFields(logrus.Fields{
		"conn_id": connID,
		"total":   total,
	}).Info("client connected")

	c.sendEvent(&ServerEnvelope{Type: EvtWelcome})
	go c.readPump()
	go c.writePump()
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Gateway.log.WithError(err).Warn("read failed")
			}
			break
		}
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	cmd, err := decodeCommand(data)
	if err != nil {
		c.sendError(codeBadMessage, err.Error())
		return
	}

	if cmd.Type == CmdAuth {
		c.handleAuth(cmd)
		return
	}
	if !c.authorized && !c.Gateway.gate.Resolve(cmd.Token) {
		c.sendError(codeUnauthorized, "not authenticated")
		return
	}

	switch cmd.Type {
	case CmdNewHand:
		c.handleNewHand(cmd)
	case CmdAction:
		c.handleAction(cmd)
	case CmdDraw:
		c.handleDraw()
	case CmdShowdown:
		c.handleShowdown(cmd)
	case CmdState:
		c.sendState()
	case CmdUndo:
		c.handleUndo()
	case CmdSave:
		c.handleSave()
	case CmdLoad:
		c.handleLoad(cmd)
	case CmdList:
		c.handleList()
	case CmdDelete:
		c.handleDelete(cmd)
	case CmdValidate:
		c.handleValidate()
	default:
		c.sendError(codeBadMessage, fmt.Sprintf("unknown command %q", cmd.Type))
	}
}

func (c *Connection) handleAuth(cmd *ClientEnvelope) {
	token, err := c.Gateway.gate.Authenticate(cmd.Password)
	if err != nil {
		c.sendError(codeUnauthorized, err.Error())
		return
	}
	c.authorized = true
	c.sendEvent(&ServerEnvelope{Type: EvtSession, Token: token})
}

func (c *Connection) handleNewHand(cmd *ClientEnvelope) {
	if cmd.Hand == nil {
		c.sendError(codeBadMessage, "new_hand needs a hand record")
		return
	}
	game, err := cmd.Hand.ToGame()
	if err != nil {
		c.sendError(codeIllegal, err.Error())
		return
	}
	if len(game.Actions()) == 0 {
		if err := game.PostBlinds(); err != nil {
			c.sendError(codeIllegal, err.Error())
			return
		}
	}
	c.game = game
	if cmd.Seed != nil {
		c.rng = rand.New(rand.NewSource(*cmd.Seed))
	}

	c.Gateway.log.WithFields(logrus.Fields{
		"conn_id": c.ID,
		"players": game.PlayerCount(),
	}).Info("hand started")
	c.sendSnapshot()
}

func (c *Connection) handleAction(cmd *ClientEnvelope) {
	if c.game == nil {
		c.sendError(codeNoHand, "no live hand")
		return
	}
	if cmd.Action == nil {
		c.sendError(codeBadMessage, "action command needs an action")
		return
	}
	action, err := handlog.ActionFromRecord(*cmd.Action)
	if err != nil {
		c.sendError(codeBadMessage, err.Error())
		return
	}

	if action.Kind == holdem.ActionPost {
		err = c.game.AdditionalPost(action.Player, action.Amount, action.Dead)
	} else {
		err = c.game.ApplyAction(action)
	}
	if err != nil {
		c.sendError(codeIllegal, err.Error())
		return
	}
	c.sendSnapshot()
}

func (c *Connection) handleDraw() {
	if c.game == nil {
		c.sendError(codeNoHand, "no live hand")
		return
	}
	if err := c.game.DrawNextStreet(c.rng); err != nil {
		c.sendError(codeIllegal, err.Error())
		return
	}
	c.sendSnapshot()
}

func (c *Connection) handleShowdown(cmd *ClientEnvelope) {
	if c.game == nil {
		c.sendError(codeNoHand, "no live hand")
		return
	}
	var err error
	if cmd.Stacks != nil {
		err = c.game.ShowdownStacks(cmd.Stacks)
	} else {
		err = c.game.ShowdownSimple()
	}
	if err != nil {
		c.sendError(codeIllegal, err.Error())
		return
	}
	c.sendSnapshot()
}

func (c *Connection) handleUndo() {
	if c.game == nil {
		c.sendError(codeNoHand, "no live hand")
		return
	}
	if err := c.game.Undo(); err != nil {
		c.sendError(codeIllegal, err.Error())
		return
	}
	c.sendSnapshot()
}

func (c *Connection) handleSave() {
	if c.game == nil {
		c.sendError(codeNoHand, "no live hand")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := c.Gateway.store.SaveHand(ctx, handlog.FromGame(c.game))
	if err != nil {
		c.sendError(codeStorage, err.Error())
		return
	}
	c.sendEvent(&ServerEnvelope{Type: EvtSaved, HandID: id})
}

func (c *Connection) handleLoad(cmd *ClientEnvelope) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	record, err := c.Gateway.store.LoadHand(ctx, cmd.HandID)
	if err != nil {
		c.sendError(codeStorage, err.Error())
		return
	}
	game, err := record.ToGame()
	if err != nil {
		c.sendError(codeStorage, err.Error())
		return
	}
	c.game = game
	c.sendSnapshot()
}

func (c *Connection) handleList() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	summaries, err := c.Gateway.store.ListHands(ctx)
	if err != nil {
		c.sendError(codeStorage, err.Error())
		return
	}
	c.sendEvent(&ServerEnvelope{Type: EvtHandList, Hands: summaries})
}

func (c *Connection) handleDelete(cmd *ClientEnvelope) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Gateway.store.DeleteHand(ctx, cmd.HandID); err != nil {
		c.sendError(codeStorage, err.Error())
		return
	}
	c.sendEvent(&ServerEnvelope{Type: EvtDeleted, HandID: cmd.HandID})
}

func (c *Connection) handleValidate() {
	if c.game == nil {
		c.sendError(codeNoHand, "no live hand")
		return
	}
	c.sendEvent(&ServerEnvelope{Type: EvtValidate, Validation: handlog.Validation(c.game)})
}

// sendSnapshot pushes the full record followed by the legality view at the
// new position.
func (c *Connection) sendSnapshot() {
	c.sendEvent(&ServerEnvelope{Type: EvtSnapshot, Snapshot: handlog.FromGame(c.game)})
	c.sendState()
}

func (c *Connection) sendState() {
	if c.game == nil {
		c.sendError(codeNoHand, "no live hand")
		return
	}
	entry := handlog.StateEntry(c.game)
	c.sendEvent(&ServerEnvelope{Type: EvtState, State: &entry})
}

func (c *Connection) sendError(code int, msg string) {
	c.sendEvent(&ServerEnvelope{Type: EvtError, Code: code, Message: msg})
}

func (c *Connection) sendEvent(env *ServerEnvelope) {
	env.Seq = atomic.AddUint64(&c.nextSeq, 1)
	env.TsMs = time.Now().UnixMilli()
	select {
	case c.Send <- env.encode():
	default:
		// Drop if buffer full
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	g.log.WithFields(logrus.Fields{
		"conn_id": c.ID,
		"total":   len(g.connections),
	}).Info("client disconnected")
}
