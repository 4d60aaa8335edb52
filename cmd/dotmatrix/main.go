// seehuhn.de/go/dotmatrix - dot-matrix image rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


// Command dotmatrix renders images as grids of dots.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"seehuhn.de/go/dotmatrix/internal/log"
)

// Log holds the logging flags.
type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"DOTMATRIX_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"DOTMATRIX_LOG_FILE"`
}

// CLI is the root command structure for kong.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Config string `help:"Configuration file (JSON, YAML or TOML)." type:"path" env:"DOTMATRIX_CONFIG"`

	Render   Render   `cmd:"" help:"Render an image file to a PNG dot matrix."`
	Variants Variants `cmd:"" help:"List the render variants and their grid sizes."`
	Targets  Targets  `cmd:"" help:"List the output size presets."`
}

func main() {
	jsonPaths, yamlPaths, tomlPaths := configPaths(findUserConfig(os.Args[1:]))

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dotmatrix"),
		kong.Description("Render images as wallpapers, widgets and prints made of dots."),
		kong.UsageOnError(),
		// flags override config values
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// findUserConfig returns the value of the --config flag, which must be
// known before kong parses the command line.
func findUserConfig(args []string) string {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("DOTMATRIX_CONFIG")
}

// configPaths returns the candidate configuration files in priority
// order: the user's file, then the user configuration directory, then
// the current directory.
func configPaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	switch strings.ToLower(filepath.Ext(userCfg)) {
	case ".json":
		jsonPaths = append(jsonPaths, userCfg)
	case ".yaml", ".yml":
		yamlPaths = append(yamlPaths, userCfg)
	case ".toml":
		tomlPaths = append(tomlPaths, userCfg)
	}

	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "dotmatrix"))
	}
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(dir, "dotmatrix.json"))
		yamlPaths = append(yamlPaths,
			filepath.Join(dir, "dotmatrix.yaml"),
			filepath.Join(dir, "dotmatrix.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "dotmatrix.toml"))
	}
	return jsonPaths, yamlPaths, tomlPaths
}
