package ipc

import "github.com/nstehr/brood/model"

// Message types understood by both sides.
const (
	TypeHello       = "hello"
	TypeAck         = "ack"
	TypeObservation = "observation"
	TypeActions     = "actions"
	TypeGameEnd     = "game_end"
)

// HelloMessage opens a match. The bridge sends it once, before the first
// observation.
type HelloMessage struct {
	Player    string         `json:"player"`
	Race      model.Race     `json:"race"`
	EnemyRace model.Race     `json:"enemyRace"`
	Info      model.GameInfo `json:"info"`
	// Seed makes random picks reproducible; zero means seed from the clock.
	Seed int64 `json:"seed,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// ActionsMessage is the batch of one step. The bridge applies it as a whole
// and then runs GameStep loops before the next observation.
type ActionsMessage struct {
	Loop     int           `json:"loop"`
	GameStep int           `json:"gameStep"`
	Orders   []model.Order `json:"orders"`
}

type GameEndMessage struct {
	Loop   int    `json:"loop"`
	Result string `json:"result"` // victory, defeat, tie
}
