// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile loads the operator's personal header details (name,
// address, email) from a directory of plain-text files kept out of the
// shared config file. Each file holds one field: the filename is the
// Cabrillo tag in lower case and the trimmed contents are the value.
//
// Supported files: club, operators, name, address, address-city,
// address-state-province, address-postalcode, address-country, email.
package profile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// DefaultDir is the profile directory read when none is configured.
const DefaultDir = ".station/"

// Fields lists the recognized profile file names in header order.
var Fields = []string{
	"club",
	"operators",
	"name",
	"address",
	"address-city",
	"address-state-province",
	"address-postalcode",
	"address-country",
	"email",
}

func known(key string) bool {
	for _, f := range Fields {
		if f == key {
			return true
		}
	}
	return false
}

// Load reads the field files in dir and returns their values keyed by
// lower-cased file name. A ".txt" extension is ignored, so "name.txt"
// fills NAME. Header values are single lines: line breaks inside a file
// are collapsed to single spaces.
//
// A missing directory yields an empty map. Unknown or unreadable files are
// skipped with a warning on warn; empty files and dotfiles are skipped
// silently.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	if warn == nil {
		warn = io.Discard
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading profile directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		key := strings.TrimSuffix(strings.ToLower(name), ".txt")
		if !known(key) {
			fmt.Fprintf(warn, "warning: ignoring unknown profile field %s (known: %s)\n", name, strings.Join(Fields, ", "))
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read profile field %s: %v\n", name, err)
			continue
		}

		value := strings.Join(strings.Fields(string(data)), " ")
		if value == "" {
			continue
		}
		if prev, dup := values[key]; dup {
			fmt.Fprintf(warn, "warning: profile field %s set twice, keeping %q\n", key, prev)
			continue
		}
		values[key] = value
	}

	return values, nil
}

// Apply fills blank fields of op from values and returns the keys it used,
// sorted. Fields already set in op win; unknown keys are ignored.
func Apply(op *types.OperatorConfig, values map[string]string) []string {
	fields := map[string]*string{
		"club":                   &op.Club,
		"operators":              &op.Operators,
		"name":                   &op.Name,
		"address":                &op.Address,
		"address-city":           &op.AddressCity,
		"address-state-province": &op.AddressStateProvince,
		"address-postalcode":     &op.AddressPostalCode,
		"address-country":        &op.AddressCountry,
		"email":                  &op.Email,
	}

	var used []string
	for key, value := range values {
		field, ok := fields[key]
		if !ok || *field != "" {
			continue
		}
		*field = value
		used = append(used, key)
	}
	sort.Strings(used)
	return used
}
