package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/errmsg"
)

func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// withCatalog loads the configuration, opens the catalog it names and hands
// it to fn. The returned value is the process exit code.
func withCatalog(stderr io.Writer, fn func(cat *catalog.Catalog) int) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return 1
	}

	cat, err := catalog.Open(cfg.Database)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}
	defer cat.Close()

	return fn(cat)
}

// setupLogging sends the default slog logger to a text log file. The
// terminal belongs to the TUI while it runs.
func setupLogging(path string, debug bool) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, f.Close, nil
}
