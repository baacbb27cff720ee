package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sente/engine"
	"sente/game"
	"sente/player"
	"sente/searcher"
)

// maxTurns bounds runaway games; no variant here needs more actions.
const maxTurns = 600

type agentConfig struct {
	kind     string
	budget   time.Duration
	episodes int
	cutoff   int
	seed     uint64
}

type gameRecord struct {
	id         int
	winner     string
	moves      int
	blackScore float64
	whiteScore float64
	startTime  time.Time
	endTime    time.Time
}

type moveRecord struct {
	game         int
	step         int
	player       string
	move         string
	duration     time.Duration
	episodes     int
	fullPlayouts int
}

func main() {
	variantFlag := flag.String("variant", "reversi", "game variant: gomoku, go or reversi")
	sizeFlag := flag.Int("size", 0, "board size (0 uses the variant default)")
	gamesFlag := flag.Int("games", 10, "number of games to play")
	blackFlag := flag.String("black", "mcts", "black selector: random, greedy or mcts")
	whiteFlag := flag.String("white", "greedy", "white selector: random, greedy or mcts")
	budgetFlag := flag.Duration("budget", 100*time.Millisecond, "search budget per move")
	episodesFlag := flag.Int("episodes", 0, "fixed episodes per move instead of a time budget")
	cutoffFlag := flag.Int("cutoff", 0, "rollout ply bound (0 uses the searcher default)")
	seedFlag := flag.Uint64("seed", 0, "base seed for the selectors (0 seeds from the clock)")
	outFlag := flag.String("out", "experiments", "base directory for result files")
	debugFlag := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	variant, err := game.ParseVariant(*variantFlag)
	if err != nil {
		log.Fatal().Msgf("bad -variant: %v", err)
	}

	writer, err := newWriter(*outFlag)
	if err != nil {
		log.Fatal().Msgf("failed to create result writer: %v", err)
	}

	base := agentConfig{budget: *budgetFlag, episodes: *episodesFlag, cutoff: *cutoffFlag}
	gameRecords := []gameRecord{}
	moveRecords := []moveRecord{}

	log.Info().Msgf("starting %d %s games: %s vs %s...", *gamesFlag, variant, *blackFlag, *whiteFlag)

	for i := 0; i < *gamesFlag; i++ {
		blackCfg := base
		blackCfg.kind = *blackFlag
		whiteCfg := base
		whiteCfg.kind = *whiteFlag
		if *seedFlag != 0 {
			blackCfg.seed = *seedFlag + uint64(2*i)
			whiteCfg.seed = *seedFlag + uint64(2*i+1)
		}

		log.Info().Msgf("starting game %d of %d...", i+1, *gamesFlag)
		rec, moves, err := runGame(i+1, variant, *sizeFlag, blackCfg, whiteCfg)
		if err != nil {
			log.Fatal().Msgf("game %d failed: %v", i+1, err)
		}
		gameRecords = append(gameRecords, rec)
		moveRecords = append(moveRecords, moves...)
		log.Info().Msgf("completed game %d of %d: %s after %d moves", i+1, *gamesFlag, rec.winner, rec.moves)
	}

	if err := writer.writeGames(gameRecords); err != nil {
		log.Fatal().Msgf("failed to write game records: %v", err)
	}
	if err := writer.writeMoves(moveRecords); err != nil {
		log.Fatal().Msgf("failed to write move records: %v", err)
	}
	log.Info().Msgf("stored results under %s", writer.baseDir)
}

// runGame plays one full game and collects per-move search statistics.
func runGame(id int, variant game.Variant, size int, blackCfg, whiteCfg agentConfig) (gameRecord, []moveRecord, error) {
	black, err := createAgent(blackCfg, game.Black)
	if err != nil {
		return gameRecord{}, nil, err
	}
	white, err := createAgent(whiteCfg, game.White)
	if err != nil {
		return gameRecord{}, nil, err
	}
	match, err := engine.NewMatch(engine.Settings{Variant: variant, Size: size}, black, white)
	if err != nil {
		return gameRecord{}, nil, err
	}

	start := time.Now()
	moves := []moveRecord{}
	for turn := 0; turn < maxTurns && !match.Status().Over(); turn++ {
		mover := match.Mover()
		agent := match.CurrentAgent()
		turnStart := time.Now()
		if !match.Tick() {
			break
		}
		last := match.History()[match.Moves()-1]
		record := moveRecord{
			game:     id,
			step:     match.Moves(),
			player:   mover.String(),
			move:     last.String(),
			duration: time.Since(turnStart),
		}
		if search, ok := agent.(*player.SearchAgent); ok && !last.IsPass() {
			metric := search.Metric()
			record.duration = metric.Duration
			record.episodes = metric.Episodes
			record.fullPlayouts = metric.FullPlayouts
		}
		moves = append(moves, record)
	}

	blackScore, whiteScore := match.Scores()
	rec := gameRecord{
		id:         id,
		winner:     match.Status().String(),
		moves:      match.Moves(),
		blackScore: blackScore,
		whiteScore: whiteScore,
		startTime:  start,
		endTime:    time.Now(),
	}
	return rec, moves, nil
}

func createAgent(cfg agentConfig, color game.Cell) (player.Agent, error) {
	kind, err := player.ParseKind(cfg.kind)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s-%s", kind, color)
	if kind != player.Search {
		return player.New(kind, name, color, player.Config{Seed: cfg.seed}), nil
	}

	options := []searcher.Option{}
	if cfg.seed != 0 {
		options = append(options, searcher.WithSeed(cfg.seed))
	}
	if cfg.episodes > 0 {
		options = append(options, searcher.WithEpisodes(cfg.episodes))
	}
	if cfg.budget > 0 {
		options = append(options, searcher.WithDuration(cfg.budget))
	}
	if cfg.cutoff > 0 {
		options = append(options, searcher.WithCutoff(cfg.cutoff))
	}
	options = append(options, searcher.WithMetrics())
	return player.NewSearch(name, color, options...), nil
}

type writer struct {
	baseDir string
}

func newWriter(base string) (*writer, error) {
	// Subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(base, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &writer{baseDir: baseDir}, nil
}

func (w *writer) writeGames(records []gameRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "games.csv"))
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{"id", "winner", "moves", "black_score", "white_score", "start_time", "end_time", "duration"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.id),
			record.winner,
			strconv.Itoa(record.moves),
			strconv.FormatFloat(record.blackScore, 'f', 2, 64),
			strconv.FormatFloat(record.whiteScore, 'f', 2, 64),
			record.startTime.Format(time.RFC3339),
			record.endTime.Format(time.RFC3339),
			record.endTime.Sub(record.startTime).String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}
	return nil
}

func (w *writer) writeMoves(records []moveRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "moves.csv"))
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := []string{"game", "step", "player", "move", "duration", "episodes", "full_playouts"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.game),
			strconv.Itoa(record.step),
			record.player,
			record.move,
			record.duration.String(),
			strconv.Itoa(record.episodes),
			strconv.Itoa(record.fullPlayouts),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}
	return nil
}
