package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/curlrequests/toneget/internal/utils"
	"github.com/curlrequests/toneget/pkg/export"
	"github.com/curlrequests/toneget/pkg/tonal"
	"github.com/curlrequests/toneget/pkg/whttp"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = ` _____                   ____      _
|_   _|__  _ __   ___   / ___| ___| |_
  | |/ _ \| '_ \ / _ \ | |  _ / _ \ __|
  | | (_) | | | |  __/ | |_| |  __/ |_
  |_|\___/|_| |_|\___|  \____|\___|\__|

`
)

// rootCmd is the whole program: toneget has no subcommands, running it
// performs an export.
var rootCmd = &cobra.Command{
	Use:   "toneget",
	Short: "Export your Tonal workout data to a local JSON file.",
	Long: LOGO + `ToneGet downloads your personal Tonal workout history, strength scores and
custom workouts to a local JSON file for backup, analysis, or use with
third-party tools.

This is an unofficial tool, not affiliated with Tonal Systems, Inc.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

// Execute runs the root command. This is called by main.main(). A run
// cancelled with ctrl-c exits cleanly, anything else that fails exits 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			fmt.Println("\nCancelled by user")
			os.Exit(0)
		}
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.toneget.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")

	rootCmd.Flags().BoolP("full", "f", false, "Export all raw data (no trimming, larger file)")
	rootCmd.Flags().BoolP("no-gzip", "", false, "Skip gzip compression")
	rootCmd.Flags().BoolP("json-only", "", false, "Only output JSON (no gzip), same as --no-gzip")
	rootCmd.Flags().StringP("output", "o", "", "Base filename for the export (default: tonal_workouts_<timestamp>)")
	rootCmd.Flags().IntP("concurrency", "", tonal.DEFAULT_CONCURRENCY, "Concurrency for custom workout template fetches")

	rootCmd.Flags().StringP("email", "E", "", "Tonal account email")
	viper.BindPFlag("tonal.email", rootCmd.Flags().Lookup("email"))

	rootCmd.Flags().StringP("password", "P", "", "Tonal account password")
	viper.BindPFlag("tonal.password", rootCmd.Flags().Lookup("password"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".toneget")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.toneget.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("tonal.email", "")
	viper.SetDefault("tonal.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

func runExport(cmd *cobra.Command, args []string) error {
	proxy, _ := cmd.Flags().GetString("proxy")
	full, _ := cmd.Flags().GetBool("full")
	noGzip, _ := cmd.Flags().GetBool("no-gzip")
	jsonOnly, _ := cmd.Flags().GetBool("json-only")
	output, _ := cmd.Flags().GetString("output")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	if proxy != "" {
		if err := whttp.SetupProxy(proxy); err != nil {
			return err
		}
	}

	fmt.Print(LOGO)
	fmt.Printf("ToneGet v%s - Export your Tonal workout data\n", export.ExporterVersion)
	if full {
		fmt.Println("\nMode: full (all raw data, larger file)")
	} else {
		fmt.Println("\nMode: optimized (trimmed for smaller files)")
	}
	fmt.Println("\nDisclaimer: unofficial tool, not affiliated with Tonal Systems, Inc.")

	email, password, err := credentials()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	cfg := tonal.DefaultConfig()
	cfg.Concurrency = concurrency
	client := tonal.NewClient(cfg)

	utils.Log.Info("Authenticating with Tonal...")
	if err := client.Login(ctx, email, password); err != nil {
		return err
	}
	utils.Log.Info("Authentication successful")

	userInfo, err := client.GetUserInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to get user info: %w", err)
	}
	userID := userInfo.Get("id").String()
	if userID == "" {
		return errors.New("user info is missing the user ID")
	}

	fmt.Printf("\nLogged in as: %s %s\n", userInfo.Get("firstName").String(), userInfo.Get("lastName").String())

	profile, err := client.GetUserProfile(ctx, userID)
	if err != nil {
		return err
	}
	if total := profile.Get("totalWorkouts"); total.Exists() {
		fmt.Printf("Total workouts on record: %s\n", total.String())
	}

	workouts, err := client.DownloadWorkouts(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch workouts: %w", err)
	}
	if len(workouts) == 0 {
		fmt.Println("No workouts to export")
		return nil
	}

	customWorkouts := client.FetchCustomWorkouts(ctx, workouts)
	if err := ctx.Err(); err != nil {
		return err
	}

	history, err := client.GetStrengthScoreHistory(ctx, userID)
	if err != nil {
		return err
	}
	current, err := client.GetCurrentStrengthScores(ctx, userID)
	if err != nil {
		return err
	}

	envelope := export.Assemble(userInfo, profile, workouts, customWorkouts, history, current)
	if !full {
		utils.Log.Info("Trimming unused fields to reduce file size...")
		envelope = export.DefaultTrimProfile().Apply(envelope)
	}

	if output == "" {
		output = "tonal_workouts_" + time.Now().Format("20060102_150405")
	}

	result, err := export.Save(envelope, output, !noGzip && !jsonOnly)
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	printSummary(export.Summarize(envelope))
	printFiles(result)

	return nil
}

// credentials resolves the account email and password from flags, the config
// file, or an interactive prompt, in that order.
func credentials() (string, string, error) {
	email := strings.TrimSpace(viper.GetViper().GetString("tonal.email"))
	password := viper.GetViper().GetString("tonal.password")

	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("Tonal email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", errors.New("email is required")
	}

	if password == "" {
		fmt.Print("Tonal password: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", err
		}
		password = string(secret)
	}
	if password == "" {
		return "", "", errors.New("password is required")
	}

	return email, password, nil
}

func printSummary(s export.Summary) {
	line := strings.Repeat("=", 50)

	fmt.Println("\n" + line)
	fmt.Println("YOUR DATA")
	fmt.Println(line)
	fmt.Printf("   Workouts:        %d\n", s.Workouts)
	if s.CustomWorkouts > 0 {
		fmt.Printf("   Custom Workouts: %d\n", s.CustomWorkouts)
	}
	fmt.Printf("   Total Volume:    %s lbs\n", humanize.Commaf(s.TotalVolume))
	fmt.Printf("   Total Reps:      %s\n", humanize.Comma(s.TotalReps))
	if s.FirstWorkout != "" {
		fmt.Printf("   Date Range:      %s -> %s\n", s.FirstWorkout, s.LastWorkout)
	}

	if s.HasStrengthScore {
		fmt.Printf("\n   Strength Score: %s\n", s.Overall)
		fmt.Printf("      Upper: %s | Lower: %s | Core: %s\n", s.Upper, s.Lower, s.Core)
	}
}

func printFiles(result *export.SaveResult) {
	line := strings.Repeat("=", 50)

	fmt.Println("\n" + line)
	fmt.Println("FILES CREATED")
	fmt.Println(line)

	fmt.Printf("\n   %s\n", result.JSON.Filename)
	fmt.Printf("      Size: %s\n", humanize.Bytes(uint64(result.JSON.Size)))

	if result.Gzip != nil {
		fmt.Printf("\n   %s (recommended)\n", result.Gzip.Filename)
		fmt.Printf("      Size: %s\n", humanize.Bytes(uint64(result.Gzip.Size)))
		fmt.Printf("      Compression: %.0f%% smaller\n", result.CompressionRatio)
	}

	fmt.Println("\nExport complete. This is your data - do with it what you will.")
}
