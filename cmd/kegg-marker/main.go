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

package main

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache/backend"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache/remote"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/kegg"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/marker"
)

// config structure
type markerConfig struct {
	lib.BaseConfig `mapstructure:",squash"`
	Verbose        bool
	Quiet          bool
	KoNumber       bool   `mapstructure:"ko_number"`
	AllPath        bool   `mapstructure:"allpath"`
	OutputDir      string `mapstructure:"output_dir"`
	Workers        int
	Kegg           kegg.Config
	Cache          backend.Config
	Redis          remote.RedisConfig
	Elasticsearch  remote.ElasticsearchConfig
}

var defaultConfig = map[string]interface{}{
	"log_level":  "info",
	"output_dir": ".",
	"workers":    1,
	"kegg": map[string]interface{}{
		"rest_url":   kegg.DefaultRestURL,
		"mapper_url": kegg.DefaultMapperURL,
		"mark_color": kegg.DefaultMarkColor,
		"timeout":    "0s",
	},
	"cache": map[string]interface{}{
		"backend": cache.None,
	},
	"redis": map[string]interface{}{
		"host": "localhost",
		"port": 6379,
		"ttl":  "0s",
	},
	"elasticsearch": map[string]interface{}{
		"host":  "localhost",
		"port":  9200,
		"index": "kegg-lookups",
	},
}

// markerOptions resolves the run options. Quiet wins over verbose.
func (c markerConfig) markerOptions() marker.Options {
	return marker.Options{
		Verbose:   c.Verbose && !c.Quiet,
		Kind:      enzyme.KindOf(c.KoNumber),
		AllPaths:  c.AllPath,
		OutputDir: c.OutputDir,
		Workers:   c.Workers,
	}
}

func newService(conf markerConfig) (kegg.Service, error) {
	var svc kegg.Service = kegg.NewClient(conf.Kegg)
	c, err := backend.New(conf.Cache, conf.Redis, conf.Elasticsearch)
	if err != nil {
		return nil, err
	}
	if c != nil {
		svc = kegg.NewCachedService(svc, c)
	}
	return svc, nil
}

// run parses args and marks the pathways of the input file. Unparseable options and a missing
// input file argument print usage and return nil without doing anything else.
func run(ctx context.Context, args []string, stdout io.Writer, serviceFactory func(markerConfig) (kegg.Service, error)) error {
	flags, opts := newFlagSet()
	if err := flags.Parse(args); err != nil {
		printUsage(stdout, flags)
		return nil
	}

	switch {
	case opts.help:
		printVersion(stdout)
		printUsage(stdout, flags)
		return nil
	case opts.version:
		printVersion(stdout)
		return nil
	case flags.NArg() < 1:
		printUsage(stdout, flags)
		return nil
	}

	// .env only feeds the config, so it is read once there is something to run
	dotenvErr := godotenv.Load()

	var conf markerConfig
	if err := lib.InitializeConfig(flags, defaultConfig, &conf); err != nil {
		return err
	}
	if dotenvErr != nil {
		log.Debug().Err(dotenvErr).Msg("no .env file loaded")
	}

	svc, err := serviceFactory(conf)
	if err != nil {
		return err
	}

	runID := uuid.New()
	runLogger := log.With().Str("run_id", runID.String()).Logger()
	ctx = runLogger.WithContext(ctx)
	log.Ctx(ctx).Debug().Interface("config", conf).Msg("configured")

	summary, err := marker.New(svc, conf.markerOptions(), stdout).Run(ctx, flags.Arg(0))
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Int("identifiers", len(summary.Identifiers)).
		Int("pathways", len(summary.Pathways)).
		Dur("took", summary.Finished.Sub(summary.Started)).
		Msg("done")
	return nil
}

func main() {
	lib.UseConsoleLogger(os.Stderr)

	ctx, cancel := lib.NotifyInterrupt(context.Background())
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, newService); err != nil {
		cancel()
		log.Fatal().Err(err).Send()
	}
}
