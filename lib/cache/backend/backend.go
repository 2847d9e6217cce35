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

package backend

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache/local"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache/remote"
)

type Config struct {
	Backend cache.Type
}

// New returns the lookup cache selected by conf, or nil when caching is disabled.
func New(conf Config, redisConf remote.RedisConfig, esConf remote.ElasticsearchConfig) (cache.Client, error) {
	switch conf.Backend {
	case "", cache.None:
		return nil, nil
	case cache.Local:
		return local.New(), nil
	case cache.Redis:
		c := remote.NewRedisClient(redisConf)
		warnIfNotReady(c, conf.Backend)
		return c, nil
	case cache.Elasticsearch:
		c, err := remote.NewElasticsearchClient(esConf)
		if err != nil {
			return nil, err
		}
		warnIfNotReady(c, conf.Backend)
		return c, nil
	default:
		return nil, fmt.Errorf("invalid cache backend %q", conf.Backend)
	}
}

func warnIfNotReady(c remote.Client, backend cache.Type) {
	if !c.Ready() {
		log.Warn().Str("backend", string(backend)).Msg("cache backend not reachable, lookups will go to KEGG")
	}
}
