package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/nothing/pkg/filer"
	"github.com/mattsolo1/nothing/pkg/models"
	"github.com/mattsolo1/nothing/pkg/reschedule"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadFilerConfigDefaults(t *testing.T) {
	c, err := LoadFilerConfig(newViper())
	require.NoError(t, err)
	assert.Equal(t, filer.DefaultConfig(), c)
}

func TestLoadFilerConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dirs:
  later: later
markers:
  overdue: "!"
amnesia:
  grace_days: 5
housekeep:
  max_age: 720h
push:
  dirs: [2d, rand]
default_time: midnight
extensions: [nlp, move]
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := LoadFilerConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "later", c.LaterDir)
	assert.Equal(t, "_done", c.DoneDir)
	assert.Equal(t, "!", c.OverdueMarker)
	assert.Equal(t, 5, c.AmnesiaGraceDays)
	assert.Equal(t, 4, c.AmnesiaMaxMarks)
	assert.Equal(t, 720*time.Hour, c.HousekeepMaxAge)
	assert.Equal(t, []string{"2d", "rand"}, c.PushDirs)
	assert.Equal(t, reschedule.TimeFromMidnight, c.TimePolicy)
	assert.Equal(t, []models.Automation{models.AutomationNormalize, models.AutomationMove}, c.Automations)
}

func TestLoadFilerConfigRejects(t *testing.T) {
	tests := map[string]struct {
		key   string
		value any
	}{
		"unknown automation": {"extensions", []string{"normalize", "teleport"}},
		"bad policy":         {"default_time", "noon"},
		"bad max age":        {"housekeep.max_age", "forever"},
		"empty later dir":    {"dirs.later", ""},
		"rand range":         {"push.rand_max_days", 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)
			_, err := LoadFilerConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestBindFlags(t *testing.T) {
	v := newViper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	require.NoError(t, BindFlags(v, flags, map[string]string{"root": "root"}))

	assert.Equal(t, ".", v.GetString("root"), "unset flag keeps the default")

	require.NoError(t, flags.Parse([]string{"--root", "/tmp/tasks"}))
	assert.Equal(t, "/tmp/tasks", v.GetString("root"))

	assert.Error(t, BindFlags(v, flags, map[string]string{"missing": "x"}))
}
