package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting outcomes from many goroutines", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		outcomes := []Outcome{Finished, Finished, Stuck, Aborted, Capped}
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c.AddGame(GameMetric{Outcome: outcomes[i%len(outcomes)], TotalMoves: 10})
			}(i)
		}
		wg.Wait()

		s := c.Complete()
		require.Equal(t, 20, s.Games)
		require.Equal(t, 8, s.Finished)
		require.Equal(t, 4, s.Stuck)
		require.Equal(t, 4, s.Aborted)
		require.Equal(t, 4, s.Capped)
		require.Equal(t, 200, s.Moves)
	})

	t.Run("ignoring everything in the dummy", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddGame(GameMetric{Outcome: Finished})
		require.Equal(t, Summary{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	t.Run("writing records with a header", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "unit")
		require.NoError(t, err)

		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err = w.WriteGameRecords([]GameRecord{{
			ID:     1,
			Agents: []int{1, 0},
			GameMetric: GameMetric{
				GameID:     "g",
				Players:    2,
				Version:    "base",
				Outcome:    Finished,
				Winner:     1,
				Scores:     []int{12, 30},
				StartTime:  start,
				EndTime:    start.Add(time.Second),
				Duration:   time.Second,
				TotalMoves: 80,
			},
		}})
		require.NoError(t, err)
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 0, Difficulty: "random"}}))
		require.NoError(t, w.WriteRoundRecords(nil))

		f, err := os.Open(filepath.Join(w.Dir(), "game_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"1", "g", "1 0", "2", "base", "finished", "0", "1", "12 30",
			"2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "80", "0"}, rows[1])

		require.FileExists(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.FileExists(t, filepath.Join(w.Dir(), "round_records.csv"))
	})
}
