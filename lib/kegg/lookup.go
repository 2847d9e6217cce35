package kegg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"
)

func (c *Client) LookupPathwaysByEnzyme(ctx context.Context, ecID string) ([]string, error) {
	return c.lookup(ctx, enzyme.EC, ecID)
}

func (c *Client) LookupPathwaysByKO(ctx context.Context, koID string) ([]string, error) {
	return c.lookup(ctx, enzyme.KO, koID)
}

// lookup resolves an identifier with the REST "link" operation. KEGG orders the links itself;
// the order is passed through untouched.
func (c *Client) lookup(ctx context.Context, kind enzyme.Kind, id string) ([]string, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}

	u := c.restURL + "/link/pathway/" + url.PathEscape(kind.Qualify(id))
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, newStatusError(u, resp)
	}

	return parseLinks(resp.Body)
}

// parseLinks reads "<source>\t<target>" lines and returns the targets.
func parseLinks(r io.Reader) ([]string, error) {
	var pathways []string
	scn := bufio.NewScanner(r)
	for scn.Scan() {
		line := strings.TrimSpace(scn.Text())
		if line == "" {
			continue
		}
		record := strings.Split(line, "\t")
		if len(record) < 2 {
			return nil, fmt.Errorf("malformed link record %q", line)
		}
		pathways = append(pathways, strings.TrimSpace(record[1]))
	}
	if err := scn.Err(); err != nil {
		return nil, err
	}
	return pathways, nil
}
