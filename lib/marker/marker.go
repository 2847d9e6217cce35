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

// Package marker finds the KEGG pathways a list of enzymes belongs to and saves a diagram of
// each pathway with the enzymes highlighted.
//
// A run is three phases executed in order: load the identifiers, resolve each identifier to
// its pathways, then mark and save every unique pathway.
package marker

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/gedex/inflector"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/kegg"
	"golang.org/x/sync/errgroup"
)

// ImageExtension is appended to the pathway identifier to name saved diagrams.
const ImageExtension = ".gif"

// Options is the configuration of a single run.
type Options struct {
	// Verbose prints progress to the marker's writer. Quiet has already been applied.
	Verbose bool
	Kind    enzyme.Kind
	// AllPaths keeps every pathway an enzyme belongs to instead of only the first one.
	AllPaths  bool
	OutputDir string
	// Workers bounds concurrent mark and save calls. Values below 2 run them one at a time.
	Workers int
}

// Summary describes a completed run.
type Summary struct {
	Identifiers []string
	Pathways    []string
	Started     time.Time
	Finished    time.Time
}

type Marker struct {
	service kegg.Service
	opts    Options
	out     io.Writer
	outMut  sync.Mutex
	now     func() time.Time
}

func New(service kegg.Service, opts Options, out io.Writer) *Marker {
	if opts.Kind == "" {
		opts.Kind = enzyme.EC
	}
	if out == nil {
		out = io.Discard
	}
	return &Marker{
		service: service,
		opts:    opts,
		out:     out,
		now:     time.Now,
	}
}

// LoadIdentifiers reads one enzyme identifier per line from path.
func LoadIdentifiers(path string) ([]string, error) {
	rc, err := enzyme.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer rc.Close()

	ids, err := enzyme.ReadIdentifiers(rc)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return ids, nil
}

// ResolvePathways looks up the pathways containing identifier. Unless AllPaths is set only the
// first, most specific, pathway is returned. An empty lookup gives an empty result.
func (m *Marker) ResolvePathways(ctx context.Context, identifier string) ([]string, error) {
	var pathways []string
	var err error
	switch m.opts.Kind {
	case enzyme.KO:
		pathways, err = m.service.LookupPathwaysByKO(ctx, identifier)
	default:
		pathways, err = m.service.LookupPathwaysByEnzyme(ctx, identifier)
	}
	if err != nil {
		return nil, &ServiceError{Op: "lookup", ID: identifier, Err: err}
	}

	m.printf("%s is a member of %d %s\n", identifier, len(pathways), pathwayNoun(len(pathways)))
	log.Ctx(ctx).Debug().Str("identifier", identifier).Strs("pathways", pathways).Msg("resolved")

	if m.opts.AllPaths || len(pathways) == 0 {
		return pathways, nil
	}
	return []string{pathways[0]}, nil
}

// Resolve resolves every identifier in order and returns the concatenated results, duplicates included.
func (m *Marker) Resolve(ctx context.Context, identifiers []string) ([]string, error) {
	var queryPathways []string
	for _, identifier := range identifiers {
		pathways, err := m.ResolvePathways(ctx, identifier)
		if err != nil {
			return nil, err
		}
		queryPathways = append(queryPathways, pathways...)
	}
	return queryPathways, nil
}

// CollectUniquePathways concatenates results and drops repeated pathways, keeping first-seen order.
func CollectUniquePathways(results ...[]string) []string {
	seen := make(map[string]struct{})
	var unique []string
	for _, pathways := range results {
		for _, pathway := range pathways {
			if _, ok := seen[pathway]; ok {
				continue
			}
			seen[pathway] = struct{}{}
			unique = append(unique, pathway)
		}
	}
	return unique
}

// ImagePath is where the diagram of pathwayID is saved.
func (m *Marker) ImagePath(pathwayID string) string {
	return filepath.Join(m.opts.OutputDir, pathwayID+ImageExtension)
}

// MarkAndSave asks for pathwayID with every identifier highlighted, whether or not the identifier
// resolved to that pathway, and saves the image.
func (m *Marker) MarkAndSave(ctx context.Context, pathwayID string, identifiers []string) error {
	m.printf("marking enzymes in %s\n", pathwayID)

	imageRef, err := m.service.MarkPathway(ctx, pathwayID, identifiers)
	if err != nil {
		return &ServiceError{Op: "mark", ID: pathwayID, Err: err}
	}

	path := m.ImagePath(pathwayID)
	if err := m.service.FetchAndSaveImage(ctx, imageRef, path); err != nil {
		return &ServiceError{Op: "save", ID: pathwayID, Err: err}
	}
	log.Ctx(ctx).Debug().Str("pathway", pathwayID).Str("file", path).Msg("saved")
	return nil
}

// MarkAll runs MarkAndSave for every pathway. The first failure stops the remaining pathways.
func (m *Marker) MarkAll(ctx context.Context, pathways []string, identifiers []string) error {
	if m.opts.Workers < 2 {
		for _, pathway := range pathways {
			if err := m.MarkAndSave(ctx, pathway, identifiers); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Workers)
	for _, pathway := range pathways {
		pathway := pathway
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return m.MarkAndSave(gctx, pathway, identifiers)
		})
	}
	return g.Wait()
}

// Run loads the identifiers at path, resolves them and marks every unique pathway.
func (m *Marker) Run(ctx context.Context, path string) (*Summary, error) {
	summary := &Summary{Started: m.now()}
	m.printf("Started at %s\n", summary.Started.Format(time.RFC3339))

	identifiers, err := LoadIdentifiers(path)
	if err != nil {
		return nil, err
	}
	summary.Identifiers = identifiers
	log.Ctx(ctx).Info().Int("identifiers", len(identifiers)).Str("kind", m.opts.Kind.String()).Msg("loaded identifiers")

	queryPathways, err := m.Resolve(ctx, identifiers)
	if err != nil {
		return nil, err
	}
	summary.Pathways = CollectUniquePathways(queryPathways)
	log.Ctx(ctx).Info().Int("pathways", len(summary.Pathways)).Msg("resolved pathways")

	if len(summary.Pathways) > 0 {
		m.printf("querying KEGG for pathway images. This will take a lot of time!\n")
	}
	if err := m.MarkAll(ctx, summary.Pathways, identifiers); err != nil {
		return nil, err
	}

	summary.Finished = m.now()
	m.printf("Finished at %s\n", summary.Finished.Format(time.RFC3339))
	return summary, nil
}

func (m *Marker) printf(format string, a ...interface{}) {
	if !m.opts.Verbose {
		return
	}
	m.outMut.Lock()
	defer m.outMut.Unlock()
	_, _ = fmt.Fprintf(m.out, format, a...)
}

func pathwayNoun(n int) string {
	if n == 1 {
		return "pathway"
	}
	return inflector.Pluralize("pathway")
}
