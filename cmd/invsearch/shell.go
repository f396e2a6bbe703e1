package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/display"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/middleware"
)

const menuText = `
-----------------------------------------
            INVERTED SEARCH MENU
-----------------------------------------
1. Create Database
2. Display Database
3. Search a Word
4. Save Database
5. Update Database
6. Exit
-----------------------------------------
Enter your choice: `

func newShellCmd(a *app) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "shell [file.txt]...",
		Short: "Run the interactive menu over the given files",
		Long: `Run the interactive menu. Create Database indexes the files given on the
command line; Update Database reloads the index from the backup store
instead. Only one of the two may run per session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if len(args) > 0 {
				var err error
				if files, err = validateFiles(cmd.OutOrStdout(), args); err != nil {
					return err
				}
			}
			engine, closeStore, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			if metricsAddr == "" && a.cfg.Metrics.Enabled {
				metricsAddr = a.cfg.Metrics.Addr
			}
			sh := &shell{
				engine: engine,
				files:  files,
				in:     bufio.NewScanner(cmd.InOrStdin()),
				out:    cmd.OutOrStdout(),
			}
			if metricsAddr == "" {
				return sh.run(cmd.Context())
			}
			checker := health.NewChecker(a.cfg.Backup.Timeout)
			checker.Register("backup", engine.PingStore)
			srv := metrics.NewServer(metricsAddr, a.registry, checker.Handler())
			srv.Handler = middleware.Metrics(a.metrics)(srv.Handler)
			return runWithMetrics(cmd.Context(), srv, sh)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the shell runs")
	return cmd
}

// runWithMetrics serves metrics and health until the shell exits. The server
// goroutine only reads collectors and pings the store; the index stays on
// the shell goroutine.
func runWithMetrics(ctx context.Context, srv *http.Server, sh *shell) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("metrics server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown", "error", err)
			}
		}()
		return sh.run(gctx)
	})
	return g.Wait()
}

type shell struct {
	engine *indexer.Engine
	files  []string
	in     *bufio.Scanner
	out    io.Writer
}

func (s *shell) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, menuText)
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out, "\nExiting program...")
			return nil
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.out, "Invalid choice! Try again.")
			continue
		}
		switch choice {
		case 1:
			s.create(ctx)
		case 2:
			s.report(s.engine.Display(s.out))
		case 3:
			s.search()
		case 4:
			if err := s.engine.Save(ctx); err != nil {
				s.report(err)
			} else {
				fmt.Fprintln(s.out, "Saved Successfully.")
			}
		case 5:
			if err := s.engine.Load(ctx); err != nil {
				s.report(err)
			} else {
				fmt.Fprintln(s.out, "Database updated successfully.")
			}
		case 6:
			fmt.Fprintln(s.out, "Exiting program...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice! Try again.")
		}
	}
}

func (s *shell) create(ctx context.Context) {
	if len(s.files) == 0 && s.engine.State() == indexer.StateEmpty {
		fmt.Fprintln(s.out, "ERROR : No valid files were given on the command line.")
		return
	}
	report, err := s.engine.Build(ctx, s.files)
	if err != nil {
		s.report(err)
		return
	}
	printBuildReport(s.out, report, s.engine.Index().Len())
}

func (s *shell) search() {
	fmt.Fprint(s.out, "Enter the word to search: ")
	word, ok := s.readLine()
	if !ok {
		return
	}
	res, err := s.engine.Query(word)
	if err != nil {
		s.report(err)
		return
	}
	s.report(display.Result(s.out, res))
}

func (s *shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// report prints a failed operation; the menu keeps running regardless.
func (s *shell) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrIndexNotReady):
		fmt.Fprintln(s.out, "Please create the database first!")
	case errors.Is(err, apperrors.ErrBackupNotFound):
		fmt.Fprintln(s.out, "ERROR : backup not found!")
	case errors.Is(err, apperrors.ErrInvalidInput):
		fmt.Fprintln(s.out, "Please Provide a valid word !")
	default:
		fmt.Fprintf(s.out, "ERROR : %v\n", err)
	}
}
