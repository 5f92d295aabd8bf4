package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed starters.txt thesaurus.json
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// StarterList returns the embedded seed words.
func StarterList() ([]string, error) {
	return readLines("starters.txt")
}

// Thesaurus returns the raw embedded thesaurus JSON used by the offline lookup.
func Thesaurus() ([]byte, error) {
	return FS.ReadFile("thesaurus.json")
}
