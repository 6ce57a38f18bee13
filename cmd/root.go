package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sw33tLie/renumber/internal/utils"
	"github.com/sw33tLie/renumber/pkg/entry"
	"github.com/sw33tLie/renumber/pkg/plan"
	"github.com/sw33tLie/renumber/pkg/renamer"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "renumber [dir]",
	Short: "Shift numbered files up by one and slot their unnumbered sibling in at 1.",
	Long: `renumber groups the files of a directory by the name in front of their trailing number
(a_1.txt, a_2.txt and a.txt form the group "a"), renames every numbered file to number+1
with a zero-padding width shared by the group, and gives the unnumbered file number 1.

Groups without any numbered file are left alone. Without arguments the current directory is used.

Flag defaults can be changed in $HOME/.renumber.yaml (or the file given with --config) and
through RENUMBER_* environment variables, e.g. RENUMBER_WIDTH=3 or RENUMBER_DRY_RUN=true.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		return utils.SetLogLevel(viper.GetString("loglevel"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		width := viper.GetInt("width")
		if width < 0 {
			return fmt.Errorf("invalid width %d: must not be negative", width)
		}

		return run(afero.NewOsFs(), dir, runOptions{
			DryRun: viper.GetBool("dry-run"),
			Plan: plan.Options{
				MinWidth:        width,
				PreservePadding: viper.GetBool("preserve-padding"),
			},
		}, cmd.ErrOrStderr())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.renumber.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error, fatal")

	rootCmd.Flags().BoolP("dry-run", "n", false, "Print the renames without performing them")
	rootCmd.Flags().Int("width", 0, "Minimum zero-padding width (0 = digits of the largest new number)")
	rootCmd.Flags().Bool("preserve-padding", false, "Never pad narrower than the widest existing number of a group")
}

// configPath is swapped out in tests.
var configPath = utils.ConfigPath

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix("renumber")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	path, err := configPath(cfgFile)
	if err != nil {
		if cfgFile != "" {
			return err
		}
		utils.Log.Debugf("[config] no default config file: %v", err)
		return nil
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	// The default config file is optional; an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return nil
}

type runOptions struct {
	DryRun bool
	Plan   plan.Options
}

// run renumbers dir: scan, plan, check the plan for collisions, then rename.
// Progress lines go to out.
func run(fsys afero.Fs, dir string, opts runOptions, out io.Writer) error {
	entries, all, err := renamer.Scan(fsys, dir, entry.NewParser())
	if err != nil {
		return err
	}

	renames := plan.Build(entries, opts.Plan)
	utils.Log.Debugf("[plan] %d renames for %d files in %s", len(renames), len(entries), dir)

	if err := plan.Verify(renames, all); err != nil {
		return fmt.Errorf("nothing renamed: %w", err)
	}

	if opts.DryRun {
		for _, r := range renames {
			renamer.Report(out, r)
		}
		return nil
	}

	n, err := renamer.Apply(fsys, renames, out)
	if err != nil {
		return err
	}
	utils.Log.Infof("renamed %d files", n)
	return nil
}
