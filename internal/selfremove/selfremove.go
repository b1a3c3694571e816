// Package selfremove implements temporary-mode cleanup: after a one-shot
// run, repmt removes its own executable and its config and data
// directories, leaving no trace in the environment.
package selfremove

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Paths names everything the uninstall step removes.
type Paths struct {
	Executable string
	ConfigDir  string
	DataDir    string
}

// Resolve locates the running executable (symlinks resolved) and the
// standard config/data directories.
func Resolve(configDir, dataDir string) (Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return Paths{}, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return Paths{
		Executable: exe,
		ConfigDir:  configDir,
		DataDir:    dataDir,
	}, nil
}

// Run removes the executable and the tool's directories. Every removal
// is attempted; the first error is returned after all attempts, so a
// locked file does not leave everything else behind.
func Run(p Paths, log *logrus.Logger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var firstErr error
	record := func(what string, err error) {
		if err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warnf("could not remove %s", what)
			if firstErr == nil {
				firstErr = fmt.Errorf("remove %s: %w", what, err)
			}
			return
		}
		log.Debugf("removed %s", what)
	}

	if p.DataDir != "" {
		record(p.DataDir, os.RemoveAll(p.DataDir))
	}
	if p.ConfigDir != "" {
		record(p.ConfigDir, os.RemoveAll(p.ConfigDir))
	}
	if p.Executable != "" {
		record(p.Executable, os.Remove(p.Executable))
	}
	return firstErr
}
