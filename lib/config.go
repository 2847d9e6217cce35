/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lib

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const ConfigFlag = "config"

type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// AddConfigFlag registers the --config flag on flags. It must be called before the flags are parsed.
func AddConfigFlag(flags *pflag.FlagSet, defaultPath string) {
	flags.String(ConfigFlag, defaultPath, "The config file path.")
}

/**
	InitializeConfig standardises config initialization across all apps.

	Usage:

	Config can be specified in a yml file. By default this is located at the default of the --config flag
	(see AddConfigFlag), which should contain a filepath. For example, if the default is "./config/kegg-marker.yml",
	then a k8s config map with a kegg-marker.yml key could be mounted to $(pwd)/config so that the config map
	is available at the path.

	Keys which exist on defaultConfig but NOT on the config yaml will also be used.

	Env vars can be used to overwrite config keys IF the env var has the same name as the key you want to
	overwrite (the env var must be uppercased, with "." replaced by "_").

	Flags which were set on the command line take precedence over everything else. Flags which were not
	set are only used when neither the yaml, an env var nor defaultConfig provide the key.

	Args:
	flags must already be parsed. Every flag is bound to the viper key of the same name.

	defaultConfig is the default config, defined as a map[string]interface{} within the code itself.
	It should be defined close to the "main" function and should be set up for local development.

	targetStruct should be a pointer to a struct which the config can be unmarshalled to.
**/

func InitializeConfig(flags *pflag.FlagSet, defaultConfig map[string]interface{}, targetStruct interface{}) error {
	v := viper.New()

	err := v.BindPFlags(flags)
	if err != nil {
		return err
	}

	// set viper's default config using defaultConfig
	for k, val := range defaultConfig {
		v.SetDefault(k, val)
	}

	// tell viper to prefer env vars over config keys. An env var must ALSO exist as a key in
	// viper's config for viper to be able to read the env var.
	v.AutomaticEnv()

	// rewrite env var names to use "_" instead of "." when reading env vars
	// this means that the env var KEGG_REST_URL is used in the config struct as Kegg.RestURL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load the config filepath from viper
	configFile := v.GetString(ConfigFlag)
	if configFile != "" {
		if !filepath.IsAbs(configFile) {
			configFile, err = filepath.Abs(configFile)
			if err != nil {
				return err
			}
		}

		v.SetConfigName(strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)))
		v.AddConfigPath(filepath.Dir(configFile))

		err = v.ReadInConfig()
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Err(err).Msg("default settings applied")
		} else if err != nil {
			return err
		}
	}

	var bc BaseConfig
	if err := v.Unmarshal(&bc); err != nil {
		return err
	}

	if bc.LogLevel != "" {
		lvl, err := zerolog.ParseLevel(bc.LogLevel)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(lvl)
	}

	// unmarshal config into struct
	return v.Unmarshal(targetStruct)
}
