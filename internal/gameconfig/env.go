package gameconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadEnv reads KEY=VALUE lines from path (e.g. ".env") into the process
// environment. Blank lines and # comments are skipped, surrounding quotes
// are stripped. A missing file is not an error.
func LoadEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// Path returns TANK_CONFIG when set, otherwise ConfigPath.
func Path() string {
	if p := os.Getenv("TANK_CONFIG"); p != "" {
		return p
	}
	return ConfigPath
}

// ApplyEnv overrides cfg from TANK_MAP, TANK_SEED, TANK_LOG_LEVEL and
// TANK_SHOW_BOXES when they are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("TANK_MAP"); ok {
		cfg.Map.Path = v
	}
	if v, ok := os.LookupEnv("TANK_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TANK_SEED: %w", err)
		}
		cfg.Map.Seed = seed
	}
	if v, ok := os.LookupEnv("TANK_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("TANK_SHOW_BOXES"); ok {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TANK_SHOW_BOXES: %w", err)
		}
		cfg.Debug.ShowBoxes = show
	}
	return nil
}
