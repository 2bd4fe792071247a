// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	statusFileName string
	logFileName    string
	workoutsDir    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	statusFilePath string
	logFilePath    string
	workoutsPath   string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "reps",
			configFileName: "config.yml",
			dbFileName:     "reps.db",
			statusFileName: "status.json",
			logFileName:    "reps.log",
			workoutsDir:    "workouts",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func StatusFilePath() string {
	return Must().statusFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

// WorkoutsDir is the directory searched for workout files.
func WorkoutsDir() string {
	return Must().workoutsPath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv("REPS_ENV"))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("reps_%s.db", env)
		p.statusFileName = fmt.Sprintf("status_%s.json", env)
		p.logFileName = fmt.Sprintf("reps_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	dataDir, err := xdg.DataFile(p.configDir)
	if err != nil {
		return fmt.Errorf("resolving data dir: %w", err)
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.statusFilePath = filepath.Join(dataDir, p.statusFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	p.workoutsPath = filepath.Join(dataDir, p.workoutsDir)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
