package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/koso-app/koso/cmd/card"
	"github.com/koso-app/koso/cmd/goal"
	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/config"
	"github.com/koso-app/koso/internal/constants"
	"github.com/koso-app/koso/internal/errhandler"
	"github.com/koso-app/koso/internal/service"
	"github.com/koso-app/koso/internal/store"
	"github.com/koso-app/koso/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// skipAccount marks commands that never touch the ledger.
const skipAccount = "koso/skip-account"

var (
	cfgFile     string
	accountName string
	assumeYes   bool
	cfg         *config.Config
	application = &app.App{}
	cleanup     func()
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	rootCmd := &cobra.Command{
		Use:           "koso",
		Short:         "koso is a savings ledger for your terminal",
		Long:          `koso keeps one savings balance, your savings goals and every deposit, withdrawal and goal contribution.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, migrations)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "A", "", "account to operate on (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmations and the first-run wizard")

	rootCmd.AddCommand(NewDashboardCmd(application))
	rootCmd.AddCommand(NewDepositCmd(application))
	rootCmd.AddCommand(NewWithdrawCmd(application))
	rootCmd.AddCommand(NewHistoryCmd(application))
	rootCmd.AddCommand(goal.NewGoalCmd(application))
	rootCmd.AddCommand(card.NewCardCmd(application))
	rootCmd.AddCommand(withoutAccount(NewSignupCmd(application)))
	rootCmd.AddCommand(withoutAccount(NewLoginCmd(application)))
	rootCmd.AddCommand(withoutAccount(NewForgotPasswordCmd(application)))
	rootCmd.AddCommand(withoutAccount(NewInfoCmd(application)))
	rootCmd.AddCommand(withoutAccount(NewServeCmd(application)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		errhandler.HandleError(err)
	}
}

func withoutAccount(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipAccount] = "true"
	return cmd
}

func setup(cmd *cobra.Command, migrations fs.FS) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	if err := initConfig(); err != nil {
		return err
	}

	built, done, err := app.NewApp(cfg, migrations)
	if err != nil {
		return err
	}
	*application = *built
	application.AssumeYes = assumeYes
	cleanup = done

	if cmd.Annotations[skipAccount] == "true" {
		return nil
	}

	name := accountName
	if name == "" {
		name = cfg.Defaults.Account
	}
	acc, err := initAccount(application.Service, name)
	if err != nil {
		return err
	}
	application.Account = acc
	return nil
}

// initAccount returns the named account, opening it on first use.
func initAccount(svc *service.Service, name string) (*store.Account, error) {
	acc, err := svc.Ledger.GetAccountByName(name)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	seedDemo := false
	if !assumeYes {
		choice, err := initWizard()
		if err != nil {
			return nil, err
		}
		seedDemo = choice.SeedDemo
	}

	var opening int64
	var goals []service.GoalSeed
	if seedDemo {
		opening = constants.DemoOpeningBalance
		for _, g := range constants.DemoGoals {
			goals = append(goals, service.GoalSeed{
				Name:      g.Name,
				Target:    g.Target,
				Current:   g.Current,
				Frequency: g.Frequency,
			})
		}
	}

	acc, err = svc.Ledger.OpenAccount(name, cfg.Defaults.Currency, opening, goals)
	if err != nil {
		return nil, fmt.Errorf("failed to create account '%s': %w", name, err)
	}
	pterm.Success.Printf("Account '%s' is ready\n", acc.Name)
	return acc, nil
}

func initWizard() (prompts.SetupChoice, error) {
	choice, err := prompts.PromptInitSetup(cfg.Defaults.Currency)
	if err != nil {
		return prompts.SetupChoice{}, err
	}

	cfg.Defaults.Currency = choice.Currency
	cfg.Defaults.Symbol = choice.Symbol
	viper.Set("defaults.currency", choice.Currency)
	viper.Set("defaults.symbol", choice.Symbol)

	if err := viper.WriteConfig(); err != nil {
		return prompts.SetupChoice{}, fmt.Errorf("failed to save config to file: %w", err)
	}
	pterm.Success.Printf("Configuration saved. Currency set to: %s\n", choice.Currency)

	return choice, nil
}

func initConfig() error {
	setDefaults(config.NewDefault())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if err := createDefaultConfig(appDir); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("KOSO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	dbPath, err := expandPath(cfg.Database.Path)
	if err != nil {
		return err
	}
	cfg.Database.Path = dbPath
	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

// setDefaults registers every key so env overrides and the written config
// file cover the whole struct.
func setDefaults(d *config.Config) {
	viper.SetDefault("database.path", d.Database.Path)
	viper.SetDefault("defaults.account", d.Defaults.Account)
	viper.SetDefault("defaults.currency", d.Defaults.Currency)
	viper.SetDefault("defaults.symbol", d.Defaults.Symbol)
	viper.SetDefault("ledger.withdrawal_fee", d.Ledger.WithdrawalFee)
	viper.SetDefault("ledger.minimum_deposit", d.Ledger.MinimumDeposit)
	viper.SetDefault("ledger.history_window", d.Ledger.HistoryWindow)
	viper.SetDefault("ledger.monthly_fee", d.Ledger.MonthlyFee)
	viper.SetDefault("ledger.monthly_fee_threshold", d.Ledger.MonthlyFeeThreshold)
	viper.SetDefault("auth.base_url", d.Auth.BaseURL)
	viper.SetDefault("auth.login_path", d.Auth.LoginPath)
	viper.SetDefault("auth.forgot_path", d.Auth.ForgotPath)
	viper.SetDefault("auth.signup_path", d.Auth.SignupPath)
	viper.SetDefault("auth.timeout", d.Auth.Timeout)
	viper.SetDefault("auth.retries", d.Auth.Retries)
	viper.SetDefault("auth.backoff", d.Auth.Backoff)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.redis_addr", d.Server.RedisAddr)
	viper.SetDefault("server.idempotency_ttl", d.Server.IdempotencyTTL)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
