package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/nothing/cmd/config"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	config.SetDefaults(viper.GetViper())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := execute(t, NewParseCmd(), "■friday+1800+.■my task.1w-mo-we.txt", "--today", "2024-12-20")
	require.NoError(t, err)
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "my task")
	assert.Contains(t, out, "2024-12-27")
	assert.Contains(t, out, "every week on mon, wed")
	assert.Contains(t, out, "■2024-12-27+1800+.■my task.1w-mo-we.txt")
}

func TestParseCmdJSON(t *testing.T) {
	out, err := execute(t, NewParseCmd(), "tomorrow.call mom.txt", "--today", "2024-12-20", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "call mom", got["title"])
	assert.Equal(t, "tomorrow", got["date"])
	assert.Equal(t, "2024-12-21", got["resolved_date"])
	assert.Equal(t, "2024-12-21.call mom.txt", got["canonical"])
}

func TestParseCmdYAML(t *testing.T) {
	out, err := execute(t, NewParseCmd(), "2024-12-20.call mom.txt", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "title: call mom\n")
	assert.Contains(t, out, "canonical: 2024-12-20.call mom.txt\n")
}

func TestParseCmdRejectsBadNames(t *testing.T) {
	_, err := execute(t, NewParseCmd(), "2024-02-30.my task.txt")
	assert.Error(t, err)

	out, err := execute(t, NewParseCmd(), "today-ish.call.txt", "--dateless")
	require.NoError(t, err)
	assert.Contains(t, out, "today-ish")
}

func TestResolveCmd(t *testing.T) {
	tests := map[string]string{
		"friday":     "2024-12-27\n",
		"3w":         "2025-01-10\n",
		"tomorrow":   "2024-12-21\n",
		"2025-03-01": "2025-03-01\n",
	}
	for expr, want := range tests {
		t.Run(expr, func(t *testing.T) {
			out, err := execute(t, NewResolveCmd(), expr, "--today", "2024-12-20")
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}

	_, err := execute(t, NewResolveCmd(), "someday", "--today", "2024-12-20")
	assert.Error(t, err)
}

func TestModifyCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"2024-12-20.call mom.txt", "1w"}, "2024-12-27.call mom.txt\n"},
		{[]string{"2024-12-20+1600.standup", "2h"}, "2024-12-20+1800.standup\n"},
		{[]string{"call mom.txt", "tomorrow+0930"}, "2024-12-21+0930.call mom.txt\n"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0]+" "+tt.args[1], func(t *testing.T) {
			out, err := execute(t, NewModifyCmd(), append(tt.args, "--now", "2024-12-20T10:00")...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := execute(t, NewModifyCmd(), "2024-12-20.call mom.txt", "soon", "--now", "2024-12-20T10:00")
	assert.Error(t, err)
}

func TestNextCmd(t *testing.T) {
	out, err := execute(t, NewNextCmd(), "2024-12-20.water plants.@8d.md", "--now", "2024-12-20T10:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-28.water plants.@8d.md\n", out)

	out, err = execute(t, NewNextCmd(), "pay rent.1m-1.txt", "--anchor", "2025-01-01", "--now", "2024-12-20T10:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01.pay rent.1m-1.txt\n", out)

	out, err = execute(t, NewNextCmd(), "■2024-12-13.»weekly review.1w", "--now", "2024-12-20T10:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-20.weekly review.1w\n", out)

	out, err = execute(t, NewNextCmd(), "2024-12-20.meds.@4h.txt", "--now", "2024-12-20T10:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-20+0400.meds.@4h.txt\n", out, "hours count from midnight, not from now")

	_, err = execute(t, NewNextCmd(), "2024-12-20.no rule.txt")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(), "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "version")
	assert.Contains(t, got, "goVersion")
}
