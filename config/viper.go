/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"github.com/spf13/viper"
)

// ApplyViper overlays values bound in v (CLI flags, environment) onto cfg.
// Flags take precedence over the config file only when actually set.
func ApplyViper(cfg *Config, v *viper.Viper) *Config {
	if v.IsSet("indent") {
		cfg.Indent = v.GetString("indent")
	}
	if v.IsSet("c-comments") {
		cfg.Extensions.CComments = v.GetBool("c-comments")
	}
	if v.IsSet("triple-quotes") {
		cfg.Extensions.TripleQuotes = v.GetBool("triple-quotes")
	}
	if v.IsSet("expression-arguments") {
		cfg.Extensions.ExpressionArguments = v.GetBool("expression-arguments")
	}
	if v.IsSet("bidi") {
		cfg.Extensions.Bidi = v.GetBool("bidi")
	}
	if v.IsSet("punctuators") {
		cfg.Punctuators = v.GetString("punctuators")
	}
	if v.IsSet("max-depth") {
		cfg.MaxDepth = v.GetInt("max-depth")
	}
	if v.IsSet("max-directives") {
		cfg.MaxDirectives = v.GetInt("max-directives")
	}
	if v.IsSet("max-arguments") {
		cfg.MaxArguments = v.GetInt("max-arguments")
	}
	return cfg
}
