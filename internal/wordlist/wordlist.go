// Package wordlist loads the target word list: one whitespace-delimited
// record per line, first token is the lookup key.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads target words from path, preserving input order. Blank lines
// and header/separator lines (starting with "WORD" or "-") are skipped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "WORD") || strings.HasPrefix(line, "-") {
			continue
		}
		words = append(words, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan word list: %w", err)
	}
	return words, nil
}
