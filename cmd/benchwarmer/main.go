package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/benchwarmer/internal/api/espn"
	"github.com/omarshaarawi/benchwarmer/internal/api/fantasy"
	"github.com/omarshaarawi/benchwarmer/internal/bot"
	"github.com/omarshaarawi/benchwarmer/internal/config"
	"github.com/omarshaarawi/benchwarmer/internal/report"
	"github.com/omarshaarawi/benchwarmer/internal/repository/memory"
	"github.com/omarshaarawi/benchwarmer/internal/scheduler"
	"github.com/omarshaarawi/benchwarmer/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "benchwarmer",
		Usage: "audit fantasy football lineups against the best lineup that could have been set",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "log per-team audit details"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			if err := godotenv.Load(); err != nil {
				slog.Error("Error loading .env file", "error", err)
			}
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			auditCommand(),
			cleanCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func newAuditService(cfg *config.Config) *service.AuditService {
	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI)

	repo := memory.NewRepository()
	return service.NewAuditService(fantasyAPI, repo, cfg.Audit)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the Telegram bot and the weekly audit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":80", Usage: "health check listen address"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			if err := cfg.RequireTelegram(); err != nil {
				return err
			}

			auditService := newAuditService(cfg)

			telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, auditService)
			if err != nil {
				return err
			}

			sched, err := scheduler.NewScheduler(auditService, telegramBot.SendMessage, cfg.Audit)
			if err != nil {
				return err
			}

			if err := sched.Start(); err != nil {
				return err
			}
			defer func() {
				err := sched.Stop()
				if err != nil {
					slog.Error("Error stopping scheduler", "error", err)
				}
			}()

			mux := http.NewServeMux()
			mux.HandleFunc("/", healthCheckHandler)
			server := &http.Server{Addr: c.String("addr"), Handler: mux}

			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("Error starting HTTP server", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				if err := telegramBot.Start(ctx); err != nil {
					slog.Error("Error running telegram bot", "error", err)
				}
			}()

			<-ctx.Done()
			slog.Info("Shutting down gracefully...")

			return server.Shutdown(context.Background())
		},
	}
}

func auditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "audit the season and write CSV reports",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "weeks", Aliases: []string{"w"}, Usage: "audit weeks 1 through `N` (default: last completed week)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "report directory (default: OUTPUT_DIR)"},
			&cli.BoolFlag{Name: "xlsx", Usage: "also write every report into one workbook"},
			&cli.BoolFlag{Name: "clean", Aliases: []string{"r"}, Usage: "remove old reports first"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}

			out := c.String("out")
			if out == "" {
				out = cfg.Audit.OutputDir
			}
			if c.Bool("clean") {
				if err := report.Clean(out); err != nil {
					return err
				}
			}

			auditService := newAuditService(cfg)

			weeks := c.Int("weeks")
			if weeks == 0 {
				weeks, err = auditService.LastCompletedWeek()
				if err != nil {
					return err
				}
			}

			season, err := auditService.AuditSeason(weeks)
			if err != nil {
				return err
			}

			if err := report.WriteCSV(out, season); err != nil {
				return err
			}
			if c.Bool("xlsx") {
				path := filepath.Join(out, fmt.Sprintf("audit-%s.xlsx", cfg.ESPNAPI.Year))
				if err := report.WriteWorkbook(path, season); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "remove generated reports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "results", EnvVars: []string{"OUTPUT_DIR"}, Usage: "report directory"},
		},
		Action: func(c *cli.Context) error {
			return report.Clean(c.String("out"))
		},
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
