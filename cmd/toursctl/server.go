package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/demotours/tours-backend/pkg/config"
	"github.com/demotours/tours-backend/pkg/db"
	"github.com/demotours/tours-backend/pkg/media"
	"github.com/demotours/tours-backend/pkg/server"
	"github.com/demotours/tours-backend/pkg/server/endpoints"
	gormstore "github.com/demotours/tours-backend/pkg/server/store/gorm"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the tours backend server",
	Long: `Run the tours backend server.

Requires DATABASE_URL and the Cloudinary credentials
(CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET).

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		appConfig := config.Read()

		logger := newLogger(appConfig.LogLevel)
		zap.ReplaceGlobals(logger)
		defer func() { _ = logger.Sync() }()

		// Fail fast on missing required configuration
		if appConfig.DatabaseURL == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}
		if appConfig.CloudinaryCloudName == "" || appConfig.CloudinaryAPIKey == "" || appConfig.CloudinaryAPISecret == "" {
			fmt.Fprintln(os.Stderr, "CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET environment variables are required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			zap.L().Info("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		gormDB, err := db.Connect(db.Config{
			URL:      appConfig.DatabaseURL,
			LogLevel: appConfig.LogLevel,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		mediaClient, err := media.NewCloudinaryClient(
			appConfig.CloudinaryCloudName,
			appConfig.CloudinaryAPIKey,
			appConfig.CloudinaryAPISecret,
			appConfig.CloudinaryUploadFolder,
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to create media client:", err)
			os.Exit(1)
		}

		itinerariesStore := gormstore.NewItinerariesStore(gormDB)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(gormDB, itinerariesStore, mediaClient, host, port, appConfig.Origins())

		endpoints.RegisterAll(s)

		zap.L().Info("Running server", zap.String("host", host), zap.String("port", port))
		zap.L().Fatal("Server stopped", zap.Error(s.Start()))
	},
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Errorf("failed to build logger: %w", err))
	}
	return logger
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}
