package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mattsolo1/nothing/pkg/filer"
	"github.com/mattsolo1/nothing/pkg/ledger"
	"github.com/mattsolo1/nothing/pkg/models"
	"github.com/mattsolo1/nothing/pkg/notify"
	"github.com/mattsolo1/nothing/pkg/reschedule"
)

var (
	cfgFile string
	verbose bool
	rootDir string
	dataDir string
)

// globalKeys maps persistent flags to the viper keys they override.
var globalKeys = map[string]string{
	"root":     "root",
	"data-dir": "data_dir",
}

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "nothing"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("NOTHING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper) {
	d := filer.DefaultConfig()

	automations := make([]string, 0, len(d.Automations))
	for _, a := range d.Automations {
		automations = append(automations, string(a))
	}

	v.SetDefault("root", ".")
	v.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "nothing"))
	v.SetDefault("dirs.later", d.LaterDir)
	v.SetDefault("dirs.done", d.DoneDir)
	v.SetDefault("dirs.push_prefix", d.PushPrefix)
	v.SetDefault("markers.overdue", d.OverdueMarker)
	v.SetDefault("markers.amnesia", d.AmnesiaMarker)
	v.SetDefault("amnesia.grace_days", d.AmnesiaGraceDays)
	v.SetDefault("amnesia.max_marks", d.AmnesiaMaxMarks)
	v.SetDefault("amnesia.archive_after_days", d.AmnesiaArchiveDays)
	v.SetDefault("housekeep.max_age", d.HousekeepMaxAge.String())
	v.SetDefault("push.dirs", d.PushDirs)
	v.SetDefault("push.rand_max_days", d.PushRandMaxDays)
	v.SetDefault("default_time", d.TimePolicy.String())
	v.SetDefault("extensions", automations)
	v.SetDefault("notify.command", "")
}

// LoadFilerConfig builds the filer configuration from v.
func LoadFilerConfig(v *viper.Viper) (*filer.Config, error) {
	policy, err := reschedule.ParsePolicy(v.GetString("default_time"))
	if err != nil {
		return nil, fmt.Errorf("default_time: %w", err)
	}

	automations, unknown := models.ParseAutomations(v.GetStringSlice("extensions"))
	if len(unknown) > 0 {
		return nil, fmt.Errorf("extensions: unknown automation(s): %s", strings.Join(unknown, ", "))
	}

	maxAge := v.GetDuration("housekeep.max_age")
	if maxAge <= 0 {
		return nil, fmt.Errorf("housekeep.max_age: must be a positive duration, got %q", v.GetString("housekeep.max_age"))
	}

	c := &filer.Config{
		LaterDir:           v.GetString("dirs.later"),
		DoneDir:            v.GetString("dirs.done"),
		PushPrefix:         v.GetString("dirs.push_prefix"),
		PushDirs:           v.GetStringSlice("push.dirs"),
		OverdueMarker:      v.GetString("markers.overdue"),
		AmnesiaMarker:      v.GetString("markers.amnesia"),
		AmnesiaGraceDays:   v.GetInt("amnesia.grace_days"),
		AmnesiaMaxMarks:    v.GetInt("amnesia.max_marks"),
		AmnesiaArchiveDays: v.GetInt("amnesia.archive_after_days"),
		HousekeepMaxAge:    maxAge,
		PushRandMaxDays:    v.GetInt("push.rand_max_days"),
		TimePolicy:         policy,
		Automations:        automations,
	}
	if c.LaterDir == "" || c.DoneDir == "" || c.PushPrefix == "" {
		return nil, fmt.Errorf("dirs: later, done and push_prefix must not be empty")
	}
	if c.PushRandMaxDays < 1 {
		return nil, fmt.Errorf("push.rand_max_days: must be at least 1")
	}
	return c, nil
}

// Root returns the absolute task directory.
func Root() (string, error) {
	return filepath.Abs(viper.GetString("root"))
}

// NewLogger returns a stderr logger, quiet unless --verbose is set.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if verbose || viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// InitService wires the filer with the ledger, the system notifier and
// the logger. Callers must Close the service.
func InitService() (*filer.Service, error) {
	cfg, err := LoadFilerConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	l, err := OpenLedger()
	if err != nil {
		return nil, err
	}

	return filer.New(afero.NewOsFs(), cfg,
		filer.WithLedger(l),
		filer.WithNotifier(notify.NewSystem(viper.GetString("notify.command"))),
		filer.WithLogger(NewLogger()),
	), nil
}

// OpenLedger opens the activity ledger under data_dir.
func OpenLedger() (*ledger.Ledger, error) {
	l, err := ledger.Open(filepath.Join(viper.GetString("data_dir"), "ledger.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return l, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/nothing/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log every action to stderr")
	flags.StringVarP(&rootDir, "root", "C", "", "Task directory (default is the current directory)")
	flags.StringVar(&dataDir, "data-dir", "", "Directory holding the activity ledger")
	cobra.CheckErr(BindFlags(viper.GetViper(), flags, globalKeys))
}

// BindFlags binds each named flag in flags to its viper key. A bound
// flag only overrides the config when it is set on the command line.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("no flag named %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
