package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/twinbot/core/internal/adapters/repository"
	"github.com/twinbot/core/internal/adapters/webfetch"
	"github.com/twinbot/core/internal/application/services"
	"github.com/twinbot/core/internal/infrastructure/config"
	"github.com/twinbot/core/internal/infrastructure/database"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TwinBot API server",
		Long:  "Start the TwinBot API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewBriefCommand creates the brief command
func NewBriefCommand() *cobra.Command {
	briefCmd := &cobra.Command{
		Use:   "brief",
		Short: "Print today's briefing",
		Long:  "Assemble the daily briefing from the local stores and print it to the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			date, _ := cmd.Flags().GetString("date")
			runBrief(date)
		},
	}
	briefCmd.Flags().String("date", "", "Build the briefing for a specific date (YYYY-MM-DD)")
	return briefCmd
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print quick stats across all stores",
		Run: func(cmd *cobra.Command, args []string) {
			runStats()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Research database migration commands",
		Long:  "Manage research database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TwinBot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("TwinBot Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Research)
	if err != nil {
		appLogger.Fatal("Failed to open research database", "error", err)
	}
	defer db.Close()

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("Server shutdown failed", "error", err)
		}
	}()

	appLogger.Info("Starting TwinBot API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

// briefingStack wires the local stores into the briefing service
// without starting the HTTP server.
func briefingStack() (*services.BriefingService, *database.DB, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.New(cfg.Research)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open research database: %w", err)
	}

	store, err := repository.NewStore(cfg.Data.Dir, appLogger)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to open data store: %w", err)
	}

	fetchClient := webfetch.NewClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	researchService := services.NewResearchService(repository.NewResearchRepository(db), fetchClient, appLogger)

	briefingService := services.NewBriefingService(
		repository.NewStudentRepository(store),
		repository.NewSecretaryRepository(store),
		repository.NewFamilyRepository(store),
		repository.NewProfileRepository(store),
		researchService,
		appLogger,
	)
	return briefingService, db, appLogger, nil
}

func runBrief(date string) {
	briefingService, db, appLogger, err := briefingStack()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()
	defer appLogger.Sync()

	now := time.Now()
	if date != "" {
		now, err = time.Parse("2006-01-02", date)
		if err != nil {
			log.Fatalf("Invalid date %q, expected YYYY-MM-DD", date)
		}
	}

	briefing, err := briefingService.BuildBriefing(context.Background(), now)
	if err != nil {
		log.Fatalf("Failed to build briefing: %v", err)
	}

	printBriefing(briefing)
}

func runStats() {
	briefingService, db, appLogger, err := briefingStack()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()
	defer appLogger.Sync()

	stats, err := briefingService.Stats(context.Background())
	if err != nil {
		log.Fatalf("Failed to compute stats: %v", err)
	}

	fmt.Printf("Classes:              %d\n", stats.Classes)
	fmt.Printf("Assignments pending:  %d (done: %d)\n", stats.PendingAssignments, stats.DoneAssignments)
	fmt.Printf("Todos pending:        %d (done: %d)\n", stats.PendingTodos, stats.DoneTodos)
	fmt.Printf("Exams scheduled:      %d\n", stats.Exams)
	fmt.Printf("Notes saved:          %d\n", stats.Notes)
	fmt.Printf("Errands pending:      %d\n", stats.PendingErrands)
	fmt.Printf("GPA:                  %.2f\n", stats.GPA)
}

func printBriefing(b *services.Briefing) {
	fmt.Printf("%s\n", b.Greeting)
	fmt.Printf("%s\n\n", b.Date)

	if b.Weather != "" {
		fmt.Printf("Weather: %s\n\n", b.Weather)
	}

	fmt.Println("Today's classes:")
	if b.FreeDay {
		fmt.Println("  No classes today. Free day!")
	}
	for _, c := range b.Classes {
		line := fmt.Sprintf("  %s - %s", c.Time, c.Course)
		if c.Room != "" {
			line += fmt.Sprintf(" (%s)", c.Room)
		}
		fmt.Println(line)
	}
	fmt.Println()

	if len(b.UrgentDeadlines) > 0 {
		fmt.Println("Urgent deadlines:")
		for _, a := range b.UrgentDeadlines {
			fmt.Printf("  %s (%s) - due %s\n", a.Title, a.Course, a.Deadline)
		}
	} else if b.CaughtUp {
		fmt.Println("No pending assignments. You're all caught up!")
	} else {
		fmt.Println("Upcoming assignments:")
		for _, a := range b.UpcomingAssignments {
			fmt.Printf("  %s (%s) - due %s\n", a.Title, a.Course, a.Deadline)
		}
	}
	fmt.Println()

	if len(b.Exams) > 0 {
		fmt.Println("Upcoming exams:")
		for _, e := range b.Exams {
			fmt.Printf("  %s (%s) - %s [%s]\n", e.Title, e.Course, e.Deadline, e.Urgency)
		}
		fmt.Println()
	}

	if len(b.Reminders) > 0 {
		fmt.Println("Today's reminders:")
		for _, r := range b.Reminders {
			fmt.Printf("  %s\n", r.Text)
		}
		fmt.Println()
	}

	if b.PendingTodoCount > 0 {
		fmt.Printf("Pending todos: %d\n", b.PendingTodoCount)
		for _, t := range b.HighPriorityTodos {
			fmt.Printf("  [high] %s\n", t.Task)
		}
		fmt.Println()
	}

	if len(b.FamilyEvents) > 0 {
		fmt.Println("Family events coming up:")
		for _, e := range b.FamilyEvents {
			fmt.Printf("  %s - %s\n", e.Title, e.Deadline)
		}
		fmt.Println()
	}
	if b.PendingErrands > 0 {
		fmt.Printf("Family errands waiting: %d\n\n", b.PendingErrands)
	}

	fmt.Printf("Quote of the day: %s\n", b.Quote)
}

func runMigration(direction string) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Research)
	if err != nil {
		log.Fatalf("Failed to open research database: %v", err)
	}

	driver, err := migratesqlite.WithInstance(db.DB.DB, &migratesqlite.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"sqlite",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	return m
}
