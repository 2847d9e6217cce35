package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache/backend"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache/remote"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/kegg"
)

// config structure
type pathwayAPIConfig struct {
	lib.BaseConfig `mapstructure:",squash"`
	Server         struct {
		HttpPort int `mapstructure:"http_port"`
	}
	Kegg          kegg.Config
	Cache         backend.Config
	Redis         remote.RedisConfig
	Elasticsearch remote.ElasticsearchConfig
}

var config pathwayAPIConfig

func initConfig() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	lib.AddConfigFlag(flags, "./config/pathway-api.yml")
	_ = flags.Parse(os.Args[1:])

	err := lib.InitializeConfig(flags, map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"http_port": 8080,
		},
		"kegg": map[string]interface{}{
			"rest_url":   kegg.DefaultRestURL,
			"mapper_url": kegg.DefaultMapperURL,
			"mark_color": kegg.DefaultMarkColor,
			"timeout":    "60s",
		},
		"cache": map[string]interface{}{
			"backend": cache.Local,
		},
		"redis": map[string]interface{}{
			"host": "localhost",
			"port": 6379,
			"ttl":  "24h",
		},
		"elasticsearch": map[string]interface{}{
			"host":  "localhost",
			"port":  9200,
			"index": "kegg-lookups",
		},
	}, &config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newRouter(c controller) *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithFormatter(lib.JsonLogFormatter), gin.Recovery(), requestLogger)
	s := server{controller: c}
	s.RegisterRoutes(r)
	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	initConfig()

	client := kegg.NewClient(config.Kegg)
	var service kegg.Service = client
	lookupCache, err := backend.New(config.Cache, config.Redis, config.Elasticsearch)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if lookupCache != nil {
		service = kegg.NewCachedService(client, lookupCache)
	}

	ctx, cancel := lib.NotifyInterrupt(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Server.HttpPort),
		Handler: newRouter(controller{service: service, images: client}),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Int("port", config.Server.HttpPort).Msg("starting pathway api")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Send()
	}
}
