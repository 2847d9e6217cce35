package main

import (
	"bytes"
	"context"
	"io"

	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/kegg"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/marker"
)

const defaultImageContentType = "image/png"

type imageFetcher interface {
	FetchImage(ctx context.Context, imageRef string, w io.Writer) (string, error)
}

type pathwaysResponse struct {
	Identifiers []string `json:"identifiers"`
	Pathways    []string `json:"pathways"`
}

type controller struct {
	service kegg.Service
	images  imageFetcher
}

func (c controller) Pathways(ctx context.Context, body io.Reader, kind enzyme.Kind, allPaths bool) (pathwaysResponse, error) {
	identifiers, err := enzyme.ReadIdentifiers(body)
	if err != nil {
		return pathwaysResponse{}, err
	}

	m := marker.New(c.service, marker.Options{Kind: kind, AllPaths: allPaths}, nil)
	queryPathways, err := m.Resolve(ctx, identifiers)
	if err != nil {
		return pathwaysResponse{}, err
	}

	res := pathwaysResponse{
		Identifiers: identifiers,
		Pathways:    marker.CollectUniquePathways(queryPathways),
	}
	// encode empty results as [] rather than null
	if res.Identifiers == nil {
		res.Identifiers = []string{}
	}
	if res.Pathways == nil {
		res.Pathways = []string{}
	}
	return res, nil
}

// MarkedImage marks every identifier in body on pathwayID and returns the image with its content type.
func (c controller) MarkedImage(ctx context.Context, pathwayID string, body io.Reader) ([]byte, string, error) {
	identifiers, err := enzyme.ReadIdentifiers(body)
	if err != nil {
		return nil, "", err
	}

	imageRef, err := c.service.MarkPathway(ctx, pathwayID, identifiers)
	if err != nil {
		return nil, "", &marker.ServiceError{Op: "mark", ID: pathwayID, Err: err}
	}

	var buf bytes.Buffer
	contentType, err := c.images.FetchImage(ctx, imageRef, &buf)
	if err != nil {
		return nil, "", &marker.ServiceError{Op: "save", ID: pathwayID, Err: err}
	}
	if contentType == "" {
		contentType = defaultImageContentType
	}
	return buf.Bytes(), contentType, nil
}
