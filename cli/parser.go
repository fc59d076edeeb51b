/*
Copyright © 2026 amictl contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cli

import (
	"fmt"
	"strings"
)

// ParseKeyValue splits a single "key=value" string. The value may itself
// contain '='; only the first one separates key from value.
func ParseKeyValue(input string) (key, value string, err error) {
	parts := strings.SplitN(input, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid key=value format: %q", input)
	}
	return parts[0], parts[1], nil
}

// ParseKeyValuePairs parses a list of "key=value" strings into a map.
// Later duplicates override earlier ones.
func ParseKeyValuePairs(inputs []string) (map[string]string, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	pairs := make(map[string]string, len(inputs))
	for _, input := range inputs {
		key, value, err := ParseKeyValue(input)
		if err != nil {
			return nil, err
		}
		pairs[key] = value
	}
	return pairs, nil
}
