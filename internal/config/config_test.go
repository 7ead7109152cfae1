package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strata/schema/field"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPackage, cfg.Package)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Equal(t, DefaultSchema, cfg.Schema)
	assert.Equal(t, DatetimeUnixMillis, cfg.Datetime)
	assert.False(t, cfg.Verbose)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
package: generated
out_dir: out
schema: defs/*.sql
datetime: text
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "generated", cfg.Package)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, "defs/*.sql", cfg.Schema)
	assert.Equal(t, DatetimeText, cfg.Datetime)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: fromfile\n"), 0o644))
	t.Setenv("STRATA_PACKAGE", "fromenv")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Package)
}

func TestLoadFlagsWinOverEverything(t *testing.T) {
	t.Setenv("STRATA_OUT_DIR", "fromenv")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out-dir", "", "")
	flags.String("package", "", "")
	require.NoError(t, flags.Parse([]string{"--out-dir", "fromflag"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "fromflag", cfg.OutDir)
	// Unchanged flags do not override lower layers.
	assert.Equal(t, DefaultPackage, cfg.Package)
}

func TestLoadRejectsUnknownDatetimeMode(t *testing.T) {
	t.Setenv("STRATA_DATETIME", "iso")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid datetime mode")
}

func TestSerializerSelection(t *testing.T) {
	t.Parallel()
	cfg := &Config{Datetime: DatetimeUnixMillis}
	assert.IsType(t, field.UnixMilliSerializer{}, cfg.Serializer())
	cfg.Datetime = DatetimeText
	assert.IsType(t, field.TextTimeSerializer{}, cfg.Serializer())
}
