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

package enzyme

import "strings"

// Kind selects how an identifier is interpreted when looking up pathways.
type Kind string

const (
	EC Kind = "ec"
	KO Kind = "ko"
)

// KindOf returns KO when koNumbers is set and EC otherwise.
func KindOf(koNumbers bool) Kind {
	if koNumbers {
		return KO
	}
	return EC
}

func (k Kind) String() string {
	return string(k)
}

// Qualify prefixes id with the database prefix ("ec:" or "ko:") unless it already carries it.
func (k Kind) Qualify(id string) string {
	prefix := string(k) + ":"
	if strings.HasPrefix(strings.ToLower(id), prefix) {
		return id
	}
	return prefix + id
}
