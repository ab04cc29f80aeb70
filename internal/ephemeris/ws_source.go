package ephemeris

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"alchm-engine/internal/domain"
)

// Default deadlines for a single WebSocket fetch.
const (
	DefaultWSHandshakeTimeout = 3 * time.Second
	DefaultWSReadTimeout      = 3 * time.Second
	DefaultWSWriteTimeout     = 2 * time.Second
)

// WSFeedSource fetches positions from a live ephemeris feed over
// WebSocket. It is the secondary resolution tier: one request, one frame,
// then the connection is closed. The feed pushes the same envelope the
// HTTP API answers with.
type WSFeedSource struct {
	name     string
	endpoint string
	dialer   *websocket.Dialer

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// wsPositionsRequest is the single request frame sent after dialing.
type wsPositionsRequest struct {
	Action string `json:"action"`
	Date   string `json:"date"`
}

// NewWSFeedSource creates a WebSocket position source for the given ws://
// or wss:// endpoint.
func NewWSFeedSource(name, endpoint string) *WSFeedSource {
	return &WSFeedSource{
		name:     name,
		endpoint: endpoint,
		dialer: &websocket.Dialer{
			HandshakeTimeout: DefaultWSHandshakeTimeout,
		},
		readTimeout:  DefaultWSReadTimeout,
		writeTimeout: DefaultWSWriteTimeout,
	}
}

// Name identifies the source in logs and metrics.
func (s *WSFeedSource) Name() string {
	return s.name
}

// Fetch dials the feed, requests positions for the date and reads a single
// response frame under a read deadline.
func (s *WSFeedSource) Fetch(ctx context.Context, date time.Time) (map[domain.Body]domain.PlanetaryPosition, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return nil, fmt.Errorf("set write deadline: %w", err)
	}
	req := wsPositionsRequest{Action: "positions", Date: domain.DateKeyFor(date)}
	if err := conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("request positions: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}
	_, frame, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read feed frame: %w", err)
	}

	return decodeSnapshotPayload(frame)
}

// Verify interface compliance at compile time.
var _ PositionSource = (*WSFeedSource)(nil)
