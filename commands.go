package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kova98/rivalwatch/config"
	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/models"
	"github.com/kova98/rivalwatch/notifiers"
	"github.com/kova98/rivalwatch/trends"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations, then monitor, detect trends and email notifications on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			defer stop()

			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.migrate(); err != nil {
				return err
			}

			m, err := a.newMonitor()
			if err != nil {
				return err
			}
			go m.Start(ctx, config.Config.MonitorTick)
			go a.newAnalyzer().Start(ctx, config.Config.TrendTick, config.Config.TrendWindowDays)

			if config.Config.EmailEnabled() {
				mailer := notifiers.NewMailer(
					config.Config.SMTPHost,
					config.Config.SMTPPort,
					config.Config.SMTPFrom,
					config.Config.SMTPPassword,
					config.Config.AppBaseURL,
				)
				go NewNotifier(mailer, a.notifications).Start(ctx)
			} else {
				slog.Info("SMTP_HOST not set, email notifications disabled")
			}

			return serveHTTP(ctx, a)
		},
	}
}

func serveHTTP(ctx context.Context, a *app) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              config.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting metrics server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func monitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Run one monitoring pass and print the new updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.newMonitor()
			if err != nil {
				return err
			}
			updates, err := m.RunPass(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(models.NewPassResponse(updates))
		},
	}
}

func trendsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Detect trends over recent updates and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = config.Config.TrendWindowDays
			}
			days = trends.WindowDays(days)

			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			detected, err := a.newAnalyzer().DetectTrends(days)
			if err != nil {
				return err
			}
			return printJSON(models.TrendsResponse{WindowDays: days, Trends: detected})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Window in days (defaults to TREND_WINDOW_DAYS)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every stored trend, most recently detected first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			stored, err := a.trends.ListTrends()
			if err != nil {
				return err
			}
			if stored == nil {
				stored = []data.Trend{}
			}
			return printJSON(models.TrendsResponse{Trends: stored})
		},
	})

	return cmd
}

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Manage user notifications",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "read <user-id> [notification-id...]",
		Short: "Mark a user's notifications as read, all of them when no id is given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			ids := make([]int64, 0, len(args)-1)
			for _, arg := range args[1:] {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid notification id %q", arg)
				}
				ids = append(ids, id)
			}

			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			marked, err := markNotificationsRead(a.notifications, userID, ids)
			if err != nil {
				return err
			}
			return printJSON(models.ReadResponse{UserID: userID, Marked: marked})
		},
	})

	return cmd
}

type readMarker interface {
	MarkRead(userID uuid.UUID, id int64) (bool, error)
	MarkAllRead(userID uuid.UUID) (int64, error)
}

// markNotificationsRead marks the given notifications, or every unread one when
// ids is empty. Ids that do not belong to the user are logged and skipped.
func markNotificationsRead(store readMarker, userID uuid.UUID, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return store.MarkAllRead(userID)
	}

	var marked int64
	for _, id := range ids {
		ok, err := store.MarkRead(userID, id)
		if err != nil {
			return marked, err
		}
		if !ok {
			slog.Warn("notification not found for user", "user_id", userID, "notification_id", id)
			continue
		}
		marked++
	}
	return marked, nil
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.updates.GetStats(time.Now().AddDate(0, 0, -7))
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.migrate(); err != nil {
				return err
			}
			slog.Info("migrations applied")
			return nil
		},
	}
}

func competitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "competitor",
		Short: "Manage monitored competitors",
	}

	var (
		competitor    data.Competitor
		intervalHours int
		keywords      []string
		disabled      bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a competitor with a default monitoring config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if intervalHours <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			competitor.IsActive = true
			id, err := a.competitors.CreateCompetitor(competitor, data.MonitoringConfig{
				CheckIntervalHours: intervalHours,
				IsEnabled:          !disabled,
				Keywords:           strings.Join(keywords, ","),
			})
			if err != nil {
				return err
			}
			slog.Info("competitor added", "competitor_id", id, "competitor", competitor.Name)
			return printJSON(models.CompetitorModel{
				ID:                 id,
				Name:               competitor.Name,
				Website:            competitor.Website,
				Industry:           competitor.Industry,
				CheckIntervalHours: intervalHours,
				MonitoringEnabled:  !disabled,
				Keywords:           keywords,
			})
		},
	}
	add.Flags().StringVar(&competitor.Name, "name", "", "Competitor name")
	add.Flags().StringVar(&competitor.Website, "website", "", "Website to monitor")
	add.Flags().StringVar(&competitor.Description, "description", "", "Free-form description")
	add.Flags().StringVar(&competitor.Industry, "industry", "", "Industry")
	add.Flags().IntVar(&intervalHours, "interval", 24, "Minimum hours between two checks")
	add.Flags().StringSliceVar(&keywords, "keywords", nil, "Keywords of interest")
	add.Flags().BoolVar(&disabled, "disabled", false, "Create the config with monitoring disabled")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("website")

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Stop monitoring a competitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid competitor id %q", args[0])
			}

			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			return a.competitors.DeactivateCompetitor(id)
		},
	}

	cmd.AddCommand(add, deactivate)
	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage notified users",
	}

	var user data.User
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a user who receives high-impact notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(slog.Default())
			if err != nil {
				return err
			}
			defer a.Close()

			user.ID = uuid.New()
			if user.DisplayName == "" {
				user.DisplayName = user.Name
			}
			id, err := a.users.InsertUser(user)
			if err != nil {
				return err
			}
			slog.Info("user added", "user_id", id)
			return printJSON(models.UserModel{
				ID:          id,
				Name:        user.Name,
				DisplayName: user.DisplayName,
				Email:       user.Email,
			})
		},
	}
	add.Flags().StringVar(&user.Name, "name", "", "User name")
	add.Flags().StringVar(&user.DisplayName, "display-name", "", "Display name")
	add.Flags().StringVar(&user.Email, "email", "", "Email for notification delivery")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(add)
	return cmd
}
