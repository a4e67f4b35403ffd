package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	_ "time/tzdata" // embedded zoneinfo for the configured timezone

	"github.com/2beens/operatorprotocol/internal"
	"github.com/2beens/operatorprotocol/internal/config"
	"github.com/2beens/operatorprotocol/internal/logging"
	"github.com/2beens/operatorprotocol/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	registerUser := flag.String("register-user", "", "register a new operator (password from OPERATOR_REGISTER_PASSWORD) and exit")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		Binary:        "service",
		Environment:   cfg.Environment,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		Rotation: logging.RotationParams{
			MaxAgeDays: cfg.LogMaxAgeDays,
			MaxBackups: cfg.LogMaxBackups,
		},
		SentryEnabled:    cfg.SentryEnabled && sentryDSN != "",
		SentryDSN:        sentryDSN,
		SentryServerName: "operator-protocol",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	postgresPassword := os.Getenv("OPERATOR_POSTGRES_PASS")
	if postgresPassword == "" {
		log.Warnln("postgres password not set. use OPERATOR_POSTGRES_PASS")
	}

	redisPassword := os.Getenv("OPERATOR_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use OPERATOR_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			PostgresPassword:        postgresPassword,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	if *registerUser != "" {
		password := os.Getenv("OPERATOR_REGISTER_PASSWORD")
		if password == "" {
			log.Fatalln("operator password not set. use OPERATOR_REGISTER_PASSWORD")
		}
		userID, err := server.Register(ctx, *registerUser, password)
		if err != nil {
			log.Fatalf("register operator %s: %s", *registerUser, err)
		}
		log.Infof("operator %s registered with id %d", *registerUser, userID)
		cancel()
		server.GracefulShutdown()
		return
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
