package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dilshat/wa-sender/util"
)

// Persisted setting keys.
const (
	ULTRAMSG_TOKEN       = "ULTRAMSG_TOKEN"
	ULTRAMSG_INSTANCE_ID = "ULTRAMSG_INSTANCE_ID"
	SPREADSHEET_ID       = "SPREADSHEET_ID"
	SERVICE_ACCOUNT_FILE = "SERVICE_ACCOUNT_FILE"
	MESSAGE_DELAY        = "MESSAGE_DELAY"
	SHEET_NUMBER         = "SHEET_NUMBER"
)

var Keys = []string{
	ULTRAMSG_TOKEN,
	ULTRAMSG_INSTANCE_ID,
	SPREADSHEET_ID,
	SERVICE_ACCOUNT_FILE,
	MESSAGE_DELAY,
	SHEET_NUMBER,
}

type InvalidSettingErr struct {
	Key     string
	message string
}

func (e *InvalidSettingErr) Error() string {
	return e.message
}

func NewInvalidSettingError(key, msg string) *InvalidSettingErr {
	return &InvalidSettingErr{Key: key, message: msg}
}

// Config is the set of user settings a dispatch run works with.
// It is a value: callers get copies, never shared state.
type Config struct {
	UltramsgToken      string `json:"ultramsg_token"`
	UltramsgInstanceId string `json:"ultramsg_instance_id"`
	SpreadsheetId      string `json:"spreadsheet_id"`
	ServiceAccountFile string `json:"service_account_file"`
	MessageDelay       int    `json:"message_delay"`
	SheetNumber        int    `json:"sheet_number"`
}

func Default() Config {
	return Config{MessageDelay: 1, SheetNumber: 1}
}

// FromMap builds a Config from setting key-value pairs. Missing keys fall back
// to the process environment and then to the defaults.
func FromMap(m map[string]string) (Config, error) {
	get := func(key, def string) string {
		if v, ok := m[key]; ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(util.GetEnv(key, def))
	}

	cfg := Config{
		UltramsgToken:      get(ULTRAMSG_TOKEN, ""),
		UltramsgInstanceId: get(ULTRAMSG_INSTANCE_ID, ""),
		SpreadsheetId:      get(SPREADSHEET_ID, ""),
		ServiceAccountFile: get(SERVICE_ACCOUNT_FILE, ""),
	}

	var err error
	if cfg.MessageDelay, err = digits(MESSAGE_DELAY, get(MESSAGE_DELAY, "1")); err != nil {
		return Config{}, err
	}
	if cfg.SheetNumber, err = digits(SHEET_NUMBER, get(SHEET_NUMBER, "1")); err != nil {
		return Config{}, err
	}
	if cfg.SheetNumber < 1 {
		return Config{}, NewInvalidSettingError(SHEET_NUMBER, SHEET_NUMBER+" must be 1 or greater")
	}

	return cfg, nil
}

func digits(key, value string) (int, error) {
	if !util.IsDigits(value) {
		return 0, NewInvalidSettingError(key, key+" must contain digits only")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewInvalidSettingError(key, key+" is out of range")
	}
	return n, nil
}

func (c Config) ToMap() map[string]string {
	return map[string]string{
		ULTRAMSG_TOKEN:       c.UltramsgToken,
		ULTRAMSG_INSTANCE_ID: c.UltramsgInstanceId,
		SPREADSHEET_ID:       c.SpreadsheetId,
		SERVICE_ACCOUNT_FILE: c.ServiceAccountFile,
		MESSAGE_DELAY:        strconv.Itoa(c.MessageDelay),
		SHEET_NUMBER:         strconv.Itoa(c.SheetNumber),
	}
}

// Validate checks that everything needed to run a dispatch is set.
func (c Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{ULTRAMSG_TOKEN, c.UltramsgToken},
		{ULTRAMSG_INSTANCE_ID, c.UltramsgInstanceId},
		{SPREADSHEET_ID, c.SpreadsheetId},
		{SERVICE_ACCOUNT_FILE, c.ServiceAccountFile},
	}
	for _, r := range required {
		if util.IsBlank(r.value) {
			return NewInvalidSettingError(r.key, fmt.Sprintf("%s is not set, check your settings", r.key))
		}
	}
	if c.SheetNumber < 1 {
		return NewInvalidSettingError(SHEET_NUMBER, SHEET_NUMBER+" must be 1 or greater")
	}
	if c.MessageDelay < 0 {
		return NewInvalidSettingError(MESSAGE_DELAY, MESSAGE_DELAY+" must not be negative")
	}
	return nil
}
