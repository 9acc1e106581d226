package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zakaryaxali/geoffray-sub000/internal/api"
	"github.com/zakaryaxali/geoffray-sub000/internal/auth"
	"github.com/zakaryaxali/geoffray-sub000/internal/config"
	"github.com/zakaryaxali/geoffray-sub000/internal/logging"
	"github.com/zakaryaxali/geoffray-sub000/internal/storage"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

var warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

// Container holds the wired dependencies for CLI commands. It is populated
// once per invocation, after flags are parsed.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Auth     *auth.Service
	Client   *api.Client
	Events   *api.EventsService
	Gifts    *api.GiftsService
	Messages *api.MessagesService
	Chat     *api.ChatService
	Profile  *api.ProfileService
}

// NewRootCommand builds the base command and wires the container before
// any subcommand runs.
func NewRootCommand(container *Container) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geoffray",
		Short: "Geoffray CLI - event planning with gift suggestions",
		Long: `Geoffray CLI is a client for the Geoffray event-planning platform.

It manages your session (login, registration, token refresh) and gives
command-line access to events, participants, gift suggestions and the
event message board.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupContainer(cmd, container)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is geoffray-config.json)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides configuration)")

	rootCmd.AddCommand(newLoginCommand(container))
	rootCmd.AddCommand(newRegisterCommand(container))
	rootCmd.AddCommand(newLogoutCommand(container))
	rootCmd.AddCommand(newWhoamiCommand(container))
	rootCmd.AddCommand(newStatusCommand(container))
	rootCmd.AddCommand(newEventsCommand(container))
	rootCmd.AddCommand(newGiftsCommand(container))
	rootCmd.AddCommand(newChatCommand(container))
	rootCmd.AddCommand(newProfileCommand(container))

	return rootCmd
}

// setupContainer loads configuration, applies flag overrides and wires the
// auth service, API client and resource services.
func setupContainer(cmd *cobra.Command, container *Container) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("api-url") {
		if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
			cfg.APIBaseURL = apiURL
		}
	}
	if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(cfg.Environment, cfg.LogLevel)

	store, err := storage.NewSecureFileStore(cfg.CredentialsDir)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}

	authService := auth.NewService(cfg.APIBaseURL, cfg.Timeout(), store, logger)
	client := api.NewClient(cfg.APIBaseURL, cfg.Timeout(), authService, logger)

	// Session-level errors surface once, on stderr, wherever they strike.
	client.SetNotifier(api.NotifierFunc(func(signal api.Signal) {
		fmt.Fprintln(os.Stderr, warningStyle.Render("⚠ "+signal.Message))
		if signal.Kind == api.SignalExpired {
			fmt.Fprintln(os.Stderr, "  Run 'geoffray login' to start a new session")
		}
	}))

	container.Config = cfg
	container.Logger = logger
	container.Auth = authService
	container.Client = client
	container.Events = api.NewEventsService(client)
	container.Gifts = api.NewGiftsService(client)
	container.Messages = api.NewMessagesService(client)
	container.Chat = api.NewChatService(client)
	container.Profile = api.NewProfileService(client)
	return nil
}

// goVersion returns the Go version used to build the binary.
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command.
func Execute() {
	container := &Container{}
	rootCmd := NewRootCommand(container)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
