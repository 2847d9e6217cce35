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

package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	mocks "gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/gen/mocks/lib/kegg"
	"gitlab.mdcatapult.io/informatics/software-engineering/kegg-pathway-marker/lib/enzyme"

	"github.com/stretchr/testify/mock"
)

// WriteIdentifiers writes one identifier per line to a file in a fresh temp dir and returns its path.
func WriteIdentifiers(t testing.TB, identifiers ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "enzymes.txt")
	var data string
	if len(identifiers) > 0 {
		data = strings.Join(identifiers, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ExpectLookups registers one lookup per identifier of the given kind on service.
func ExpectLookups(service *mocks.Service, kind enzyme.Kind, lookups map[string][]string) {
	method := "LookupPathwaysByEnzyme"
	if kind == enzyme.KO {
		method = "LookupPathwaysByKO"
	}
	for identifier, pathways := range lookups {
		service.On(method, mock.Anything, identifier).Return(pathways, nil).Once()
	}
}

// ExpectMarks registers a successful mark and save of every pathway with objects, saved under dir.
func ExpectMarks(service *mocks.Service, dir string, objects []string, pathways ...string) {
	for _, pathway := range pathways {
		ref := "ref-" + pathway
		service.On("MarkPathway", mock.Anything, pathway, objects).Return(ref, nil).Once()
		service.On("FetchAndSaveImage", mock.Anything, ref, filepath.Join(dir, pathway+".gif")).Return(nil).Once()
	}
}
