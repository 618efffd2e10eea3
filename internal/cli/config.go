package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/collapsr/collapsr/pkg/errors"
)

// config holds optional defaults read from the user config file. Flags given
// on the command line always win; there is no precedence chain beyond this
// single file.
type config struct {
	Tolerance string `toml:"tolerance"` // same syntax as --tolerance
	Stats     bool   `toml:"stats"`     // default for --stats
}

// configPath returns the fixed config file location,
// e.g. ~/.config/collapsr/config.toml on Linux.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the config file at path. A missing file is not an error
// and yields zero-value defaults.
func loadConfig(path string) (config, error) {
	var cfg config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return config{}, nil
		}
		return config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, errors.New(errors.ErrCodeInternal, "unknown key %q in config %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// applyConfig fills in options the user did not set on the command line from
// the config file, if one exists.
func (o *mergeOpts) applyConfig(cmd *cobra.Command) error {
	path, err := configPath()
	if err != nil {
		return nil // no config dir on this system, nothing to apply
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	if cfg.Tolerance != "" && !cmd.Flags().Changed("tolerance") {
		o.tolerance = cfg.Tolerance
	}
	if cfg.Stats && !cmd.Flags().Changed("stats") {
		o.stats = true
	}
	return nil
}
