// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/verte-zerg/typedojo/internal/model"
)

// Load reads words from path. Files ending in .json hold dictionary records
// (or a plain array of strings); anything else holds one word per line.
// Words rejected by keep are dropped. A nil keep accepts everything.
func Load(path string, keep FilterFunc) ([]model.Word, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []model.Word
	if strings.EqualFold(filepath.Ext(path), ".json") {
		words, err = decodeJSON(file)
	} else {
		words, err = decodeLines(file)
	}
	if err != nil {
		return nil, err
	}
	words = Normalize(words, keep)
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func decodeJSON(r io.Reader) ([]model.Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	var records []model.Word
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	var plain []string
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	records = make([]model.Word, 0, len(plain))
	for _, text := range plain {
		records = append(records, model.Word{Text: text})
	}
	return records, nil
}

func decodeLines(r io.Reader) ([]model.Word, error) {
	var words []model.Word
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		words = append(words, model.Word{Text: string(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}
