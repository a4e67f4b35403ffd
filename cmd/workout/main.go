package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/operatorprotocol/internal/audio"
	"github.com/2beens/operatorprotocol/internal/auth"
	"github.com/2beens/operatorprotocol/internal/logging"
	"github.com/2beens/operatorprotocol/internal/missionlog"
	"github.com/2beens/operatorprotocol/internal/telemetry/metrics"
	"github.com/2beens/operatorprotocol/internal/workout"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// printingNavigator reports the redirect target and releases main.
type printingNavigator struct {
	done chan string
}

func (n *printingNavigator) Navigate(path string) {
	select {
	case n.done <- path:
	default:
	}
}

func main() {
	serviceURL := flag.String("service", "http://localhost:9000", "operator protocol service base URL")
	routineID := flag.String("routine", "strength", "routine id to run")
	routinesPath := flag.String("routines", "", "routines catalog YAML, built-in catalog when empty")
	username := flag.String("user", "", "operator username, password from OPERATOR_PASSWORD")
	listRoutines := flag.Bool("list", false, "list routines and exit")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		Binary:   "workout",
		LogLevel: *logLevel,
	})

	catalog, err := workout.LoadCatalog(*routinesPath)
	if err != nil {
		log.Fatalf("load routines: %s", err)
	}

	if *listRoutines {
		for _, r := range catalog.List() {
			steps, err := r.Steps()
			if err != nil {
				log.Fatalf("routine %s: %s", r.ID, err)
			}
			fmt.Printf("%-12s %-24s %4ds  %s\n", r.ID, r.Name, workout.TotalDuration(steps), r.Category)
		}
		return
	}

	routine, err := catalog.Get(*routineID)
	if err != nil {
		log.Fatalf("%s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var token string
	if !routine.SkipLog {
		if *username == "" {
			log.Fatalln("operator username not set, use -user")
		}
		token, err = auth.Login(ctx, *serviceURL, auth.Credentials{
			Username: *username,
			Password: os.Getenv("OPERATOR_PASSWORD"),
		})
		if err != nil {
			log.Fatalf("login: %s", err)
		}
	}

	metricsManager := metrics.NewManager("workout", "cli", prometheus.NewRegistry())
	navigator := &printingNavigator{done: make(chan string, 1)}
	session, err := workout.NewSession(workout.NewSessionParams{
		Routine: routine,
		Sink: audio.Tee{
			audio.NewTerminalSink(os.Stdout),
			audio.NewLogSink(metricsManager),
		},
		LogWriter:      missionlog.NewClient(*serviceURL, token),
		Navigator:      navigator,
		MetricsManager: metricsManager,
	})
	if err != nil {
		log.Fatalf("new session: %s", err)
	}
	defer session.Close()

	fmt.Printf("== %s ==\n", routine.Name)
	if routine.Briefing != "" {
		fmt.Println(routine.Briefing)
	}
	fmt.Println("[enter] start  [p] pause  [m] mute  [q] exit")

	commands := make(chan string)
	go readCommands(commands)

	for {
		select {
		case <-ctx.Done():
			_ = session.Exit()
			fmt.Println()
			return
		case path := <-navigator.done:
			fmt.Printf("\n-> %s\n", path)
			return
		case cmd, ok := <-commands:
			if !ok {
				// stdin closed
				commands = nil
				_ = session.Exit()
				continue
			}
			handleCommand(session, cmd)
		}
	}
}

func readCommands(commands chan<- string) {
	defer close(commands)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		commands <- strings.TrimSpace(strings.ToLower(scanner.Text()))
	}
}

func handleCommand(session *workout.Session, cmd string) {
	var err error
	switch cmd {
	case "":
		if session.State().State == workout.StateIdle {
			err = session.Start()
		}
	case "p":
		var state workout.State
		state, err = session.TogglePause()
		if err == nil {
			fmt.Printf("[%s]\n", strings.ToUpper(string(state)))
		}
	case "m":
		if session.ToggleMute() {
			fmt.Println("[MUTED]")
		} else {
			fmt.Println("[SOUND ON]")
		}
	case "q":
		err = session.Exit()
	case "s":
		snapshot := session.State()
		fmt.Printf("%s %d/%d %s %ds\n", snapshot.State, snapshot.StepIndex+1, snapshot.TotalSteps, snapshot.Step.Label, snapshot.SecondsRemaining)
	}
	if err != nil {
		log.Warnf("%s: %s", cmd, err)
	}
}
