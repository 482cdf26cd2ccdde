package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/chatsync/internal/client/app"
	"github.com/iudanet/chatsync/internal/client/cli"
	"github.com/iudanet/chatsync/internal/client/iocli"
	"github.com/iudanet/chatsync/internal/config"
	"github.com/iudanet/chatsync/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewClientViper(), open, cli.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// open собирает клиент: логгер в файл, локальную базу и выбранное хранилище
func open(ctx context.Context, cfg *config.ClientConfig) (*cli.Cli, io.Closer, error) {
	logger, logCloser, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.Open(ctx, cfg, logger, app.Options{})
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	return a.Cli(iocli.NewStdio()), closers{a, logCloser}, nil
}

// closers закрывает по порядку, лог последним
type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, closer := range c {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
