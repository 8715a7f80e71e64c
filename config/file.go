package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dilshat/wa-sender/util"
	"github.com/joho/godotenv"
)

const settingsFileName = "app_settings.env"

// SettingsPath returns the settings file location inside the per-user app directory.
func SettingsPath() (string, error) {
	dir, err := util.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

// ReadFile returns the raw key-value pairs of the settings file.
// A missing file yields an empty map.
func ReadFile(path string) (map[string]string, error) {
	if !util.FileExists(path) {
		return map[string]string{}, nil
	}
	return godotenv.Read(path)
}

func Load(path string) (Config, error) {
	m, err := ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return FromMap(m)
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, []byte(marshal(cfg.ToMap())), 0600); err != nil {
		return err
	}
	// settings hold the api token
	return os.Chmod(path, 0600)
}

// same escapes godotenv.Read undoes inside double quotes
var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, `"`, `\"`, "!", `\!`, "$", `\$`, "`", "\\`")

// marshal quotes every value. godotenv.Marshal writes integer-looking values
// bare, which drops leading zeros and a leading plus sign.
func marshal(m map[string]string) string {
	lines := make([]string, 0, len(m))
	for k, v := range m {
		lines = append(lines, fmt.Sprintf(`%s="%s"`, k, escaper.Replace(v)))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}
