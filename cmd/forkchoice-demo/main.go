// Command forkchoice-demo boots a fork-choice engine against an on-disk
// block/state store and logs the current head on every SIGHUP, in the
// style of the wider codebase's single-binary services.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eth2-clients/lmd-ghost/beacon-chain/blockchain/forkchoice"
	"github.com/eth2-clients/lmd-ghost/beacon-chain/db/forkchoicedb"
	"github.com/eth2-clients/lmd-ghost/shared/params"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	_ "go.uber.org/automaxprocs"
)

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "path to the BoltDB file backing block and state storage",
		Value: "forkchoice.db",
	}
	justifiedRootFlag = &cli.StringFlag{
		Name:  "justified-root",
		Usage: "hex-encoded root to run find_head from",
	}
	maxDepthFlag = &cli.IntFlag{
		Name:  "max-depth",
		Usage: "maximum descent depth before find_head aborts with an error; 0 means unlimited",
		Value: 0,
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "log output format: text or json",
		Value: "text",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "logging verbosity (debug, info, warn, error)",
		Value: "info",
	}
)

var log = logrus.WithField("prefix", "main")

func main() {
	app := &cli.App{
		Name:  "forkchoice-demo",
		Usage: "runs the LMD-GHOST fork-choice engine against a BoltDB-backed store",
		Flags: []cli.Flag{dataDirFlag, justifiedRootFlag, maxDepthFlag, logFormatFlag, verbosityFlag},
		Before: func(ctx *cli.Context) error {
			return configureLogging(ctx.String(logFormatFlag.Name), ctx.String(verbosityFlag.Name))
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func configureLogging(format, verbosity string) error {
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return fmt.Errorf("invalid verbosity %q: %w", verbosity, err)
	}
	logrus.SetLevel(level)

	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		logrus.SetFormatter(formatter)
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func run(ctx *cli.Context) error {
	store, err := forkchoicedb.NewStore(ctx.String(dataDirFlag.Name))
	if err != nil {
		return fmt.Errorf("could not open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("Failed to close store")
		}
	}()

	var opts []forkchoice.Option
	if depth := ctx.Int(maxDepthFlag.Name); depth > 0 {
		opts = append(opts, forkchoice.WithMaxDepth(depth))
	}
	engine := forkchoice.New(store, params.BeaconConfig(), opts...)

	justifiedRoot, err := parseRoot(ctx.String(justifiedRootFlag.Name))
	if err != nil {
		return err
	}

	log.Info("Fork-choice engine ready")
	waitForHeadRequests(engine, justifiedRoot)
	return nil
}

func parseRoot(hexRoot string) (forkchoice.BlockRoot, error) {
	var root forkchoice.BlockRoot
	if hexRoot == "" {
		return root, nil
	}
	decoded, err := hex.DecodeString(hexRoot)
	if err != nil || len(decoded) != len(root) {
		return root, fmt.Errorf("invalid justified root %q", hexRoot)
	}
	copy(root[:], decoded)
	return root, nil
}

// waitForHeadRequests logs the current head once on startup and again on
// every SIGHUP, until the process receives SIGINT or SIGTERM.
func waitForHeadRequests(engine *forkchoice.Engine, justifiedRoot forkchoice.BlockRoot) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	logHead(engine, justifiedRoot)
	for sig := range sigc {
		if sig == syscall.SIGHUP {
			logHead(engine, justifiedRoot)
			continue
		}
		log.Info("Got interrupt, shutting down")
		return
	}
}

func logHead(engine *forkchoice.Engine, justifiedRoot forkchoice.BlockRoot) {
	head, err := engine.FindHead(context.Background(), justifiedRoot)
	if err != nil {
		log.WithError(err).Error("Could not compute head")
		return
	}
	log.WithField("head", head.String()).Info("Current head")
}
