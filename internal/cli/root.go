// Package cli wires the checksum engine, the snapshot store and configuration
// into the lthash command line.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iamNilotpal/lthash/config"
	"github.com/iamNilotpal/lthash/internal/core/services/lthash"
	"github.com/iamNilotpal/lthash/internal/core/services/snapshot"
	"github.com/iamNilotpal/lthash/pkg/logger"
)

const serviceName = "lthash"

type app struct {
	configPath string
	statePath  string
	logLevel   string

	cfg   *config.Config
	log   *zap.SugaredLogger
	store *snapshot.Store
}

// NewRootCommand returns the lthash command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "lthash",
		Short:         "Maintain an order-independent checksum of a set of byte strings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a YAML configuration file")
	flags.StringVarP(&a.statePath, "state", "s", "", "snapshot file holding the checksum (overrides snapshot.path)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log.level)")

	root.AddCommand(
		newSumCommand(a),
		newAddCommand(a),
		newRemoveCommand(a),
		newUpdateCommand(a),
		newResetCommand(a),
		newVerifyCommand(a),
		newShowCommand(a),
	)

	return root
}

// run wraps a command body so configuration, logger and store are set up
// before it and released after it, whether or not it fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.setup(); err != nil {
			return err
		}
		defer func() {
			if closeErr := a.teardown(); err == nil {
				err = closeErr
			}
		}()

		return fn(cmd, args)
	}
}

func (a *app) setup() error {
	a.cfg = config.DefaultConfig()
	if a.configPath != "" {
		cfg, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if a.statePath != "" {
		a.cfg.Snapshot.Path = a.statePath
	}
	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.NewWithLevel(serviceName, a.cfg.Log.Level, a.cfg.Log.Development)
	if err != nil {
		return err
	}
	a.log = log

	store, err := snapshot.NewStore(a.cfg.SnapshotOptions(), a.log)
	if err != nil {
		return err
	}
	a.store = store

	return nil
}

func (a *app) teardown() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
	}
	if a.log != nil {
		// Syncing stderr fails on some platforms; nothing useful to do about it.
		_ = a.log.Sync()
	}
	return err
}

// newEngine builds an empty engine from the configured digest and byte order.
func (a *app) newEngine() (*lthash.LtHash, error) {
	opts := a.cfg.EngineOptions()
	opts.Logger = a.log
	return lthash.New(opts)
}

// loadEngine restores the engine from the state file, or returns a fresh one
// when no state has been saved yet.
func (a *app) loadEngine(ctx context.Context) (*lthash.LtHash, error) {
	h, err := a.newEngine()
	if err != nil {
		return nil, err
	}

	snap, err := a.store.Load(ctx)
	if stderrors.Is(err, snapshot.ErrNotFound) {
		a.log.Debugw("no saved state, starting from an empty set", "path", a.store.Path())
		return h, nil
	}
	if err != nil {
		return nil, err
	}

	if err := snapshot.Restore(h, snap); err != nil {
		return nil, fmt.Errorf("restore %s: %w", a.store.Path(), err)
	}
	return h, nil
}

// mutate loads the saved state, applies fn and saves the result.
func (a *app) mutate(ctx context.Context, operation string, fn func(h *lthash.LtHash)) error {
	h, err := a.loadEngine(ctx)
	if err != nil {
		return err
	}

	fn(h)

	if err := a.store.Save(ctx, snapshot.Capture(h)); err != nil {
		return err
	}

	a.log.Infow("state updated", "operation", operation, "path", a.store.Path(), "algorithm", h.Algorithm())
	return nil
}
