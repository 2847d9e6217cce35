package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/elastic/go-elasticsearch/v7"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/cache"
)

type ElasticsearchConfig struct {
	Host  string
	Port  int
	Index string
}

type esGetResponse struct {
	Found  bool         `json:"found"`
	Source cache.Lookup `json:"_source"`
}

func NewElasticsearchClient(conf ElasticsearchConfig) (Client, error) {
	c, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)},
	})
	if err != nil {
		return nil, err
	}
	return &esClient{
		Client: c,
		index:  conf.Index,
	}, nil
}

type esClient struct {
	*elasticsearch.Client
	index string
}

func (e *esClient) Ready() bool {
	res, err := e.Info()
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}

// documentID makes a cache key safe to use in a request path.
func documentID(key string) string {
	return url.PathEscape(key)
}

func (e *esClient) Get(key string) (*cache.Lookup, error) {
	res, err := e.Client.Get(e.index, documentID(key))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	} else if res.IsError() {
		return nil, errors.New(res.String())
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var response esGetResponse
	if err := json.Unmarshal(b, &response); err != nil {
		return nil, err
	}
	if !response.Found {
		return nil, nil
	}
	return &response.Source, nil
}

func (e *esClient) Set(key string, lookup *cache.Lookup) error {
	b, err := json.Marshal(lookup)
	if err != nil {
		return err
	}
	res, err := e.Index(e.index, bytes.NewReader(b), e.Index.WithDocumentID(documentID(key)))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.New(res.String())
	}
	return nil
}
