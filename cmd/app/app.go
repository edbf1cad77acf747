package main

import (
	"os"

	"github.com/DRSN-tech/storefront/internal/app"
	config "github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel       string
	migrateDownArg int
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Esoteric products storefront backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP and gRPC servers with the outbox worker",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations (or roll back with --down N)",
	Args:  cobra.NoArgs,
	RunE:  migrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "debug, info, warn or error")
	migrateCmd.Flags().IntVar(&migrateDownArg, "down", 0, "roll back N migrations instead of applying")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

//	@title						Universo Dual Storefront API
//	@version					1.0
//	@description				Каталог, корзина и оформление заказов магазина эзотерических товаров
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(_ *cobra.Command, _ []string) error {
	log := logger.NewZapLogger(logLevel)

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		return err
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		return err
	}

	return application.Run()
}

func migrate(_ *cobra.Command, _ []string) error {
	log := logger.NewZapLogger(logLevel)

	dbCfg, err := config.LoadDB(log)
	if err != nil {
		return err
	}

	if err := app.Migrate(dbCfg, log, migrateDownArg); err != nil {
		log.Errorf(err, "migration failed")
		return err
	}

	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
