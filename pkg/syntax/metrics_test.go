// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestParserMetrics_ParseFileIncrementsCounters(t *testing.T) {
	p := NewTreeSitterParser(nil)

	_, err := p.ParseFile("main.go", []byte("package main\n\nfunc main() {}\n"))
	assert.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(p.metrics.filesParsed.WithLabelValues(LangGo)))
}

func TestParserMetrics_UnsupportedExtensionDoesNotRecord(t *testing.T) {
	p := NewTreeSitterParser(nil)

	_, err := p.ParseFile("README.md", []byte("# hi"))
	assert.NoError(t, err)

	assert.Equal(t, float64(0), testutil.ToFloat64(p.metrics.filesParsed.WithLabelValues(LangGo)))
}

func TestParserMetrics_SyntaxErrorRecordsParseError(t *testing.T) {
	p := NewTreeSitterParser(nil)

	_, err := p.ParseFile("broken.go", []byte("package main\n\nfunc main( {\n"))
	assert.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(p.metrics.parseErrors.WithLabelValues(LangGo)))
}
