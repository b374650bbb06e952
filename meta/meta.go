// meta/meta.go
package meta

// GO_ROUTINES defines the number of games an experiment plays in parallel.
const GO_ROUTINES = 8

// GAMES_PER_MATCHUP defines the number of games played per experiment match-up.
const GAMES_PER_MATCHUP = 30

// MAX_MOVES caps the moves of one engine game, toggles included.
const MAX_MOVES = 20000

// STUCK_THRESHOLD is the number of consecutive steps without an accepted move after which a game is declared stuck.
const STUCK_THRESHOLD = 50

// UPDATE_BUFFER is the capacity of a host subscription channel.
const UPDATE_BUFFER = 16
