package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"natecon/utils"
)

type GameRecord struct {
	ID     int
	Agents []int // AgentConfig.ID by seat
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type RoundRecord struct {
	Game int // GameRecord.ID
	RoundMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every file of the experiment there.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// write creates a CSV file with a header row followed by rows.
func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := utils.Map(configs, func(config AgentConfig) []string {
		return []string{strconv.Itoa(config.ID), config.Difficulty}
	})
	return w.write("agent_configs.csv", []string{"id", "difficulty"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "game_id", "agents", "players", "version", "outcome", "starting_player", "winner", "scores", "start_time", "end_time", "duration", "total_moves", "rejected"}
	rows := utils.Map(records, func(record GameRecord) []string {
		return []string{
			strconv.Itoa(record.ID),
			record.GameID,
			joinInts(record.Agents),
			strconv.Itoa(record.Players),
			record.Version,
			string(record.Outcome),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			joinInts(record.Scores),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Rejected),
		}
	})
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "round", "player", "phase", "move", "duration"}
	rows := utils.Map(records, func(record MoveRecord) []string {
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Player),
			record.Phase,
			record.Move,
			record.Duration.String(),
		}
	})
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteRoundRecords(records []RoundRecord) error {
	header := []string{"game", "round", "player", "total", "buildings", "bonus", "money", "debt", "tokens"}
	rows := utils.Map(records, func(record RoundRecord) []string {
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Total),
			strconv.Itoa(record.Buildings),
			strconv.Itoa(record.Bonus),
			strconv.Itoa(record.Money),
			strconv.Itoa(record.Debt),
			strconv.Itoa(record.Tokens),
		}
	})
	return w.write("round_records.csv", header, rows)
}

func joinInts(values []int) string {
	return strings.Join(utils.Map(values, strconv.Itoa), " ")
}
