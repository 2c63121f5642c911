package testkit

import (
	"errors"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/viper"
)

// ExpExt is the extension of expected-output baselines.
const ExpExt = ".exp"

const updateHint = "Run with `env UPDATE_BASELINE=1` (or `env UB=1`) to save the current output as the new baseline."

var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// UpdateBaseline reports whether UPDATE_BASELINE or UB is set to a true value.
func UpdateBaseline() bool {
	return env.GetBool("UPDATE_BASELINE") || env.GetBool("UB")
}

// CheckExpected compares result with the baseline at path. In update mode it
// overwrites the baseline instead.
func CheckExpected(path, result string) error {
	if UpdateBaseline() {
		return os.WriteFile(path, []byte(result), 0o600)
	}
	// #nosec G304 -- baseline paths are derived from test data
	expected, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return withUpdateHint("No baseline file found.")
	}
	if err != nil {
		return err
	}
	if string(expected) == result {
		return nil
	}
	return withUpdateHint("Expected output differ from actual output:\n" + FormatDiff(result, string(expected)))
}

// FormatDiff renders a unified diff from expected to actual.
func FormatDiff(actual, expected string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("<diff failed: %v>", err)
	}
	return diff
}

func withUpdateHint(msg string) error {
	return fmt.Errorf("%s\n%s", msg, updateHint)
}
