package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const maxFuzzInput = 1 << 16 // 64 KiB

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// languageSeeds cover constructs the golden cases leave out.
var languageSeeds = []string{
	"",
	"#!/usr/bin/env lua\nprint(1)\n",
	"local s = [==[\nlong ]] string\n]==] --[[ block ]] x = 0x1p4 + 1e-3\n",
	"t = {f = function(...) return select('#', ...) end; [1] = 'a\\tb', \"c\\\"d\"}\n",
	"a = not b and c or d .. e ^ -f // 2 << 1 & 3 | ~4\n",
	"::top:: for i = 10, 1, -1 do if i % 2 == 0 then goto top end end\n",
	"obj:method 'x' {y = 1} (z)\n",
	"local a <const> = 1\n",
	"f(\n-- inside\n)\n",
	"x = (((1)))\n",
	"if a then -- c1\nelseif b then --[[ c2 ]] else end\n",
	"return\n",
	"local s = 'unterminated\n",
	"\xef\xbb\xbfprint('bom')\r\n",
}

func addCorpusSeeds(f *testing.F) {
	addGoldenSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

// addGoldenSeeds adds the inputs and outputs of the formatter's golden cases.
func addGoldenSeeds(f *testing.F) {
	path := filepath.Join("..", "format", "testdata", "cases.yaml")
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var cases []struct {
		Input  string `yaml:"input"`
		Output string `yaml:"output"`
	}
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return
	}
	for _, c := range cases {
		f.Add(clampSeed([]byte(c.Input)))
		if c.Output != "" {
			f.Add(clampSeed([]byte(c.Output)))
		}
	}
}

func clampSeed(data []byte) []byte {
	if len(data) > maxSeedBytes {
		data = data[:maxSeedBytes]
	}
	return append([]byte(nil), data...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
