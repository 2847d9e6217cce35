package kegg

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const pathwayImageName = "pathwayimage"

// MarkPathway requests a KEGG Mapper diagram with every object coloured and returns the
// absolute URL of the rendered image.
func (c *Client) MarkPathway(ctx context.Context, pathwayID string, objects []string) (string, error) {
	u, err := url.Parse(c.mapperURL + "/kegg-bin/show_pathway")
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("map", mapName(pathwayID))
	q.Set("multi_query", c.multiQuery(objects))
	u.RawQuery = q.Encode()

	resp, err := c.get(ctx, u.String())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newStatusError(u.String(), resp)
	}

	src, err := findPathwayImage(resp.Body)
	if err != nil {
		return "", err
	}

	ref, err := u.Parse(src)
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}

// mapName strips the database prefix, "path:map00010" becomes "map00010".
func mapName(pathwayID string) string {
	if i := strings.Index(pathwayID, ":"); i >= 0 {
		return pathwayID[i+1:]
	}
	return pathwayID
}

func (c *Client) multiQuery(objects []string) string {
	var b strings.Builder
	for _, object := range objects {
		object = strings.TrimSpace(object)
		if object == "" {
			continue
		}
		b.WriteString(object)
		b.WriteByte(' ')
		b.WriteString(c.markColor)
		b.WriteByte('\n')
	}
	return b.String()
}

// findPathwayImage returns the src of the first <img> named or identified as the pathway image.
func findPathwayImage(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return "", err
			}
			return "", ErrNoImage
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := tokenizer.TagName()
			if string(tn) != "img" || !hasAttr {
				continue
			}
			var src string
			var isPathwayImage bool
			for more := true; more; {
				var key, val []byte
				key, val, more = tokenizer.TagAttr()
				switch string(key) {
				case "src":
					src = string(val)
				case "name", "id":
					if string(val) == pathwayImageName {
						isPathwayImage = true
					}
				}
			}
			if isPathwayImage && src != "" {
				return src, nil
			}
		}
	}
}
