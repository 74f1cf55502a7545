// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// maxConfigFileSize bounds config files read from disk.
const maxConfigFileSize = 1 << 20

// loadFileIntoViper reads a CUE or TOML config file, validates it against
// the #Config schema, and merges its contents into Viper.
//
// Config decodes to map[string]any rather than a struct so Viper keeps
// precedence over defaults and environment bindings. Validation uses
// Concrete(false) because every field is optional.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	var userValue cue.Value
	if strings.EqualFold(filepath.Ext(path), "."+TOMLFileExt) {
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		userValue = ctx.Encode(raw)
	} else {
		userValue = ctx.CompileBytes(data, cue.Filename(path))
	}
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// formatCUEError renders CUE errors as "<file>: <path>: <message>", one
// per line when there are several.
func formatCUEError(err error, filePath string) error {
	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		path := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
			lines = append(lines, path+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}
