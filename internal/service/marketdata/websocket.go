package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"WealthSim/internal/domain/models"
	drepo "WealthSim/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// WSClient implements a SignalFeed backed by a quote WebSocket.
type WSClient struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// NewWSClient creates a WebSocket SignalFeed.
func NewWSClient(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration) drepo.SignalFeed {
	return &WSClient{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *WSClient) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("marketdata connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	return nil
}

// Subscribe subscribes to configured symbols.
func (c *WSClient) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("marketdata not connected")
	}
	for _, s := range c.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": s}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
	}
	return nil
}

type wsQuote struct {
	S   string  `json:"s"`
	N   string  `json:"n"`
	P   float64 `json:"p"`
	C   float64 `json:"c"`
	CP  float64 `json:"cp"`
	Cur string  `json:"cur"`
	T   int64   `json:"t"` // ms
}

type wsMessage struct {
	Type string    `json:"type"`
	Data []wsQuote `json:"data"`
}

// Read streams MarketSignal events and errors.
func (c *WSClient) Read(ctx context.Context) (<-chan *models.MarketSignal, <-chan error) {
	signals := make(chan *models.MarketSignal, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(signals)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("marketdata conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("marketdata read: %w", err)
					return
				}
				var m wsMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-quote frames
					continue
				}
				if m.Type != "quote" {
					continue
				}
				for _, d := range m.Data {
					sig := &models.MarketSignal{
						Symbol:        d.S,
						Name:          d.N,
						Price:         d.P,
						Change:        d.C,
						ChangePercent: d.CP,
						Currency:      models.Currency(d.Cur),
						ObservedAt:    time.UnixMilli(d.T),
					}
					select {
					case signals <- sig:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return signals, errs
}

// Reconnect closes and reconnects.
func (c *WSClient) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *WSClient) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *WSClient) IsConnected() bool { return c.connected }
