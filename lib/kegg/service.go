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
)

// Service is the pathway database capability the marker is built on.
type Service interface {
	// LookupPathwaysByEnzyme returns the pathways containing an EC number, most specific first.
	LookupPathwaysByEnzyme(ctx context.Context, ecID string) ([]string, error)
	// LookupPathwaysByKO returns the pathways containing a KO number, most specific first.
	LookupPathwaysByKO(ctx context.Context, koID string) ([]string, error)
	// MarkPathway asks for a diagram of pathwayID with objects highlighted and returns a reference to the image.
	MarkPathway(ctx context.Context, pathwayID string, objects []string) (string, error)
	// FetchAndSaveImage downloads imageRef to filePath.
	FetchAndSaveImage(ctx context.Context, imageRef, filePath string) error
}
