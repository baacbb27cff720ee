package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sente/engine"
	"sente/game"
	"sente/player"
	"sente/server"
	"sente/store"
)

func main() {
	variantFlag := flag.String("variant", "gomoku", "game variant: gomoku, go or reversi")
	sizeFlag := flag.Int("size", 0, "board size (0 uses the variant default)")
	blackFlag := flag.String("black", "human", "black selector: human, random, greedy or mcts")
	whiteFlag := flag.String("white", "mcts", "white selector: human, random, greedy or mcts")
	budgetFlag := flag.Duration("budget", 0, "search budget per move (0 uses the searcher default)")
	episodesFlag := flag.Int("episodes", 0, "fixed episodes per move instead of a time budget")
	seedFlag := flag.Uint64("seed", 0, "selector seed (0 seeds from the clock)")
	saveFlag := flag.String("save", "match.json", "path for save, load and replay")
	loadFlag := flag.Bool("load", false, "resume the match saved at -save")
	replayFlag := flag.Bool("replay", false, "replay the match saved at -save move by move")
	serveFlag := flag.String("serve", "", "serve the match over HTTP on this address instead of the console")
	usersFlag := flag.String("users", "", "path of the player stats file")
	userFlag := flag.String("user", "", "player name to record the result for")
	passFlag := flag.String("pass", "", "password for -user")
	debugFlag := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	level := zerolog.WarnLevel
	if *serveFlag != "" {
		level = zerolog.InfoLevel
	}
	if *debugFlag {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if *replayFlag {
		if err := runReplay(*saveFlag); err != nil {
			log.Fatal().Msgf("replay failed: %v", err)
		}
		return
	}

	variant, err := game.ParseVariant(*variantFlag)
	if err != nil {
		log.Fatal().Msgf("bad -variant: %v", err)
	}
	cfg := player.Config{
		Seed:     *seedFlag,
		Duration: *budgetFlag,
		Episodes: *episodesFlag,
	}
	black, err := buildAgent(*blackFlag, game.Black, cfg)
	if err != nil {
		log.Fatal().Msgf("bad -black: %v", err)
	}
	if cfg.Seed != 0 {
		cfg.Seed++
	}
	white, err := buildAgent(*whiteFlag, game.White, cfg)
	if err != nil {
		log.Fatal().Msgf("bad -white: %v", err)
	}

	var match *engine.Match
	if *loadFlag {
		rec, err := store.Load(*saveFlag)
		if err != nil {
			log.Fatal().Msgf("load failed: %v", err)
		}
		match, err = engine.Restore(rec, black, white)
		if err != nil {
			log.Fatal().Msgf("load failed: %v", err)
		}
	} else {
		match, err = engine.NewMatch(engine.Settings{Variant: variant, Size: *sizeFlag}, black, white)
		if err != nil {
			log.Fatal().Msgf("new match failed: %v", err)
		}
	}

	if *serveFlag != "" {
		runServe(match, *serveFlag)
		return
	}

	users := setupUser(*usersFlag, *userFlag, *passFlag)
	runConsole(match, *saveFlag)

	if users != nil {
		recordResult(users, *userFlag, match)
	}
}

func buildAgent(kind string, color game.Cell, cfg player.Config) (player.Agent, error) {
	k, err := player.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return player.New(k, fmt.Sprintf("%s-%s", k, color), color, cfg), nil
}

func setupUser(path, name, password string) *store.Users {
	if path == "" || name == "" {
		return nil
	}
	users, err := store.OpenUsers(path)
	if err != nil {
		log.Fatal().Msgf("failed to open %s: %v", path, err)
	}
	if err := users.Register(name, password); err != nil {
		if !errors.Is(err, store.ErrUserExists) {
			log.Fatal().Msgf("register failed: %v", err)
		}
		if err := users.Login(name, password); err != nil {
			log.Fatal().Msgf("login failed: %v", err)
		}
	}
	if stats, ok := users.Stats(name); ok && stats.Games > 0 {
		fmt.Printf("welcome back %s: %d games, %.0f%% wins\n", name, stats.Games, stats.WinRate()*100)
	}
	return users
}

// recordResult credits the player with the human seat's outcome.
func recordResult(users *store.Users, name string, match *engine.Match) {
	if !match.Status().Over() {
		return
	}
	blackHuman := match.Agent(game.Black).Kind() == player.Human
	whiteHuman := match.Agent(game.White).Kind() == player.Human
	if !blackHuman && !whiteHuman {
		return
	}
	color := game.Black
	if !blackHuman {
		color = game.White
	}
	winner, decided := match.Status().Winner()
	if err := users.RecordResult(name, decided && winner == color); err != nil {
		log.Error().Msgf("failed to record result: %v", err)
	}
}

func runConsole(match *engine.Match, savePath string) {
	fmt.Printf("%s: %s vs %s\n", match.Variant(), match.Agent(game.Black).Name(), match.Agent(game.White).Name())
	fmt.Println(`commands: "row col" (one-based), pass, undo, save, quit`)
	render(match.Board())

	scanner := bufio.NewScanner(os.Stdin)
	for !match.Status().Over() {
		mover := match.Mover()
		if match.ForcedPass() {
			fmt.Printf("%s has no move, forced pass\n", mover)
			render(match.Board())
			continue
		}
		agent := match.CurrentAgent()
		if agent.Kind() == player.Human {
			if !promptHuman(match, scanner, savePath) {
				return
			}
			continue
		}
		if !match.Tick() {
			return
		}
		last := match.History()[match.Moves()-1]
		fmt.Printf("%s plays (%d, %d)\n", agent.Name(), last.Row+1, last.Col+1)
		render(match.Board())
	}

	black, white := match.Scores()
	fmt.Printf("result: %s (black %.2f, white %.2f)\n", match.Status(), black, white)
}

// promptHuman reads and applies one console command. It reports false
// when the session should end.
func promptHuman(match *engine.Match, scanner *bufio.Scanner, savePath string) bool {
	fmt.Printf("%s (%s)> ", match.CurrentAgent().Name(), match.Mover())
	if !scanner.Scan() {
		return false
	}
	line := strings.TrimSpace(scanner.Text())
	switch line {
	case "":
		return true
	case "quit":
		return false
	case "pass":
		if err := match.Pass(); err != nil {
			fmt.Println(err)
			return true
		}
	case "undo":
		if err := match.Undo(); err != nil {
			fmt.Println(err)
			return true
		}
	case "save":
		if err := store.Save(savePath, match.Snapshot()); err != nil {
			fmt.Println(err)
			return true
		}
		fmt.Printf("saved to %s\n", savePath)
		return true
	default:
		var row, col int
		if _, err := fmt.Sscanf(line, "%d %d", &row, &col); err != nil {
			fmt.Println("unknown command")
			return true
		}
		if ok, reason := match.Play(game.Move{Row: row - 1, Col: col - 1}); !ok {
			fmt.Println(reason)
			return true
		}
	}
	render(match.Board())
	return true
}

func runReplay(path string) error {
	rec, err := store.Load(path)
	if err != nil {
		return err
	}
	replay, err := engine.NewReplay(rec)
	if err != nil {
		return err
	}
	_, total := replay.Progress()
	fmt.Printf("replaying %s (%d moves), press enter to step\n", replay.Variant(), total)
	render(replay.Board())

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		mv, ok := replay.Step()
		if !ok {
			break
		}
		done, _ := replay.Progress()
		fmt.Printf("move %d of %d: %s\n", done, total, mv)
		render(replay.Board())
	}
	return nil
}

func runServe(match *engine.Match, addr string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.New(match).Run(ctx, addr); err != nil {
		log.Fatal().Msgf("server failed: %v", err)
	}
}

func render(board *game.Board) {
	size := board.Size()
	var sb strings.Builder
	sb.WriteString("  ")
	for c := 1; c <= size; c++ {
		fmt.Fprintf(&sb, "%3d", c)
	}
	sb.WriteByte('\n')
	for r := 0; r < size; r++ {
		fmt.Fprintf(&sb, "%2d", r+1)
		for c := 0; c < size; c++ {
			sb.WriteString("  ")
			sb.WriteByte(glyph(board.At(r, c)))
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

func glyph(cell game.Cell) byte {
	switch cell {
	case game.Black:
		return 'X'
	case game.White:
		return 'O'
	default:
		return '.'
	}
}
