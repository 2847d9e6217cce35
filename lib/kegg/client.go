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

package kegg

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib"
)

const (
	DefaultRestURL   = "https://rest.kegg.jp"
	DefaultMapperURL = "https://www.kegg.jp"
	DefaultMarkColor = "red"

	userAgent = "kegg-pathway-marker"
)

type Config struct {
	RestURL   string `mapstructure:"rest_url"`
	MapperURL string `mapstructure:"mapper_url"`
	MarkColor string `mapstructure:"mark_color"`
	Timeout   time.Duration
}

// Client talks to the KEGG REST API for lookups and to KEGG Mapper for marked diagrams.
type Client struct {
	restURL    string
	mapperURL  string
	markColor  string
	httpClient lib.HttpClient
}

func NewClient(conf Config) *Client {
	return NewClientWithHttp(conf, &http.Client{Timeout: conf.Timeout})
}

func NewClientWithHttp(conf Config, httpClient lib.HttpClient) *Client {
	c := &Client{
		restURL:    strings.TrimSuffix(conf.RestURL, "/"),
		mapperURL:  strings.TrimSuffix(conf.MapperURL, "/"),
		markColor:  conf.MarkColor,
		httpClient: httpClient,
	}
	if c.restURL == "" {
		c.restURL = DefaultRestURL
	}
	if c.mapperURL == "" {
		c.mapperURL = DefaultMapperURL
	}
	if c.markColor == "" {
		c.markColor = DefaultMarkColor
	}
	return c
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	log.Debug().Str("url", url).Msg("kegg request")
	return c.httpClient.Do(req)
}
