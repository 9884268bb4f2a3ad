// Package charset parses the character-set files shipped with recognition
// models.
package charset

import (
	"bufio"
	"fmt"
	"os"
)

// spaceToken is the placeholder used in charset files for the space
// character, which would otherwise be stripped as trailing whitespace.
const spaceToken = "<space>"

// Read parses a charset file into the CTC alphabet and its inverse index.
// Index 0 is reserved for the CTC blank and holds the empty string; each
// subsequent index maps to one line of the file. A <space> line is
// replaced by a literal space.
func Read(path string) ([]string, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open charset file %s: %w", path, err)
	}
	defer file.Close()

	alphabet := []string{""} // index 0 is the CTC blank
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		alphabet = append(alphabet, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read charset file %s: %w", path, err)
	}

	for i, ch := range alphabet {
		if ch == spaceToken {
			alphabet[i] = " "
			break
		}
	}

	inverse := make(map[string]int, len(alphabet))
	for i, ch := range alphabet {
		inverse[ch] = i
	}

	return alphabet, inverse, nil
}
