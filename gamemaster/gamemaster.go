package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"natecon/catalog"
	"natecon/game"
	"natecon/meta"

	"github.com/rs/zerolog/log"
)

var ErrClosed = errors.New("host is closed")

// Update is what a subscriber receives after every accepted move. State is redacted for the subscriber.
type Update struct {
	Seq   int             `json:"seq"`
	Move  *game.Move      `json:"move"` // nil for the snapshot sent on subscription
	State *game.GameState `json:"state"`
}

type subscriber struct {
	player int
	ch     chan Update
}

// Host owns one game and serializes the moves submitted by its players.
type Host struct {
	mu          sync.Mutex
	state       *game.GameState
	seq         int
	subscribers []subscriber
	done        chan struct{}
	closed      bool
}

func NewHost(cat *catalog.Catalog, numPlayers int, opts game.Options) (*Host, error) {
	gs, err := game.Setup(cat, numPlayers, opts, nil)
	if err != nil {
		return nil, err
	}
	return &Host{
		state: gs,
		done:  make(chan struct{}),
	}, nil
}

// ID returns the id of the hosted game.
func (h *Host) ID() string {
	return h.state.ID
}

// Done is closed once the game is over.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Submit applies a move. The error wraps game.ErrInvalidMove when the move is illegal in the current state.
func (h *Host) Submit(m game.Move) error {
	_, err := h.submit(m)
	return err
}

// submit applies a move and returns the sequence number of the update it published.
func (h *Host) submit(m game.Move) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrClosed
	}
	if err := h.state.Apply(m); err != nil {
		return 0, err
	}
	h.seq++
	h.publish(&m)
	if h.state.Phase == game.GameEndPhase {
		log.Info().Str("game", h.state.ID).Int("winner", h.state.FinalScores[0].Player).Msg("game over")
		close(h.done)
		h.closeSubscribers()
	}
	return h.seq, nil
}

// Subscribe returns a channel of updates for the player, starting with the current snapshot. When
// the subscriber falls behind, stale updates are dropped in favour of the newest one.
func (h *Host) Subscribe(player int) (<-chan Update, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.state.Player(player) == nil {
		return nil, fmt.Errorf("unknown player %d", player)
	}
	sub := subscriber{player: player, ch: make(chan Update, meta.UPDATE_BUFFER)}
	sub.ch <- Update{Seq: h.seq, State: game.View(h.state, player)}
	h.subscribers = append(h.subscribers, sub)
	return sub.ch, nil
}

// Snapshot returns the state as the player may see it.
func (h *Host) Snapshot(player int) *game.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return game.View(h.state, player)
}

// Scores returns the final scores, or nil while the game is running.
func (h *Host) Scores() []game.ScoreResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]game.ScoreResult(nil), h.state.FinalScores...)
}

// Close ends every subscription. Moves submitted afterwards fail with ErrClosed.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeSubscribers()
}

func (h *Host) publish(m *game.Move) {
	for _, sub := range h.subscribers {
		u := Update{Seq: h.seq, Move: m, State: game.View(h.state, sub.player)}
		select {
		case sub.ch <- u:
		default:
			// Drop the oldest update to make room.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- u
		}
	}
}

func (h *Host) closeSubscribers() {
	if h.closed {
		return
	}
	h.closed = true
	for _, sub := range h.subscribers {
		close(sub.ch)
	}
	h.subscribers = nil
}

// Lobby keeps the hosts of running games by game id.
type Lobby struct {
	mu    sync.RWMutex
	cat   *catalog.Catalog
	hosts map[string]*Host
}

func NewLobby(cat *catalog.Catalog) *Lobby {
	return &Lobby{
		cat:   cat,
		hosts: make(map[string]*Host),
	}
}

// Create starts a game from loosely typed options, e.g. a decoded JSON request body.
func (l *Lobby) Create(numPlayers int, raw map[string]any) (*Host, error) {
	opts, err := game.DecodeOptions(raw)
	if err != nil {
		return nil, err
	}
	h, err := NewHost(l.cat, numPlayers, opts)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.hosts[h.ID()] = h
	log.Info().Str("game", h.ID()).Int("players", numPlayers).Str("version", string(opts.Version)).Msg("game created")
	return h, nil
}

func (l *Lobby) Get(id string) (*Host, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	h, ok := l.hosts[id]
	return h, ok
}

// Remove closes the host and forgets it.
func (l *Lobby) Remove(id string) {
	l.mu.Lock()
	h, ok := l.hosts[id]
	delete(l.hosts, id)
	l.mu.Unlock()
	if ok {
		h.Close()
	}
}

func (l *Lobby) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.hosts)
}
