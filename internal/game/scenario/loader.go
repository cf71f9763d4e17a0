package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/detective/internal/game/mansion"
	"github.com/cory-johannsen/detective/internal/game/suspect"
)

// maxRoomDepth bounds nesting in case files so a malformed file cannot
// exhaust the stack.
const maxRoomDepth = 64

// yamlCaseFile is the top-level YAML structure for case files.
type yamlCaseFile struct {
	Case yamlCase `yaml:"case"`
}

// yamlCase is the YAML representation of a case.
type yamlCase struct {
	Title    string        `yaml:"title"`
	Intro    string        `yaml:"intro"`
	Mansion  *yamlRoom     `yaml:"mansion"`
	Suspects []yamlSuspect `yaml:"suspects"`
}

// yamlRoom is the YAML representation of a room and its subtree.
type yamlRoom struct {
	Name  string    `yaml:"name"`
	Clue  string    `yaml:"clue"`
	Left  *yamlRoom `yaml:"left"`
	Right *yamlRoom `yaml:"right"`
}

// yamlSuspect lists the clues that implicate one suspect.
type yamlSuspect struct {
	Name  string   `yaml:"name"`
	Clues []string `yaml:"clues"`
}

// LoadFromFile reads and validates a single case YAML file.
//
// Precondition: path must point to a valid YAML case file.
// Postcondition: Returns a validated Case or a non-nil error.
func LoadFromFile(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case file %s: %w", path, err)
	}
	c, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading case file %s: %w", path, err)
	}
	return c, nil
}

// LoadFromBytes parses and validates a case from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the case schema.
// Postcondition: Returns a validated Case or a non-nil error.
func LoadFromBytes(data []byte) (*Case, error) {
	var file yamlCaseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing case YAML: %w", err)
	}

	yc := file.Case
	if strings.TrimSpace(yc.Title) == "" {
		return nil, fmt.Errorf("validating case: title must not be empty")
	}
	if yc.Mansion == nil {
		return nil, fmt.Errorf("validating case %q: mansion must not be empty", yc.Title)
	}

	root, err := convertYAMLRoom(yc.Mansion, 0)
	if err != nil {
		return nil, fmt.Errorf("validating case %q: %w", yc.Title, err)
	}

	var assocs []suspect.Association
	for i, ys := range yc.Suspects {
		name := strings.TrimSpace(ys.Name)
		if name == "" {
			return nil, fmt.Errorf("validating case %q: suspect %d: name must not be empty", yc.Title, i)
		}
		for _, clue := range ys.Clues {
			assocs = append(assocs, suspect.Association{Clue: strings.TrimSpace(clue), Suspect: name})
		}
	}

	return Build(yc.Title, strings.TrimSpace(yc.Intro), root, assocs)
}

// LoadFromDir loads every YAML file in dir as a case, keyed by file name
// without extension.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all validated cases or the first error encountered.
func LoadFromDir(dir string) (map[string]*Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading case directory %s: %w", dir, err)
	}

	cases := make(map[string]*Case)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		c, err := LoadFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		cases[strings.TrimSuffix(name, ext)] = c
	}

	if len(cases) == 0 {
		return nil, fmt.Errorf("no case files found in %s", dir)
	}
	return cases, nil
}

// convertYAMLRoom converts the parsed YAML subtree into domain rooms.
func convertYAMLRoom(yr *yamlRoom, depth int) (*mansion.Room, error) {
	if depth > maxRoomDepth {
		return nil, fmt.Errorf("mansion nests deeper than %d rooms", maxRoomDepth)
	}
	room := &mansion.Room{
		Name: strings.TrimSpace(yr.Name),
		Clue: strings.TrimSpace(yr.Clue),
	}
	var err error
	if yr.Left != nil {
		if room.Left, err = convertYAMLRoom(yr.Left, depth+1); err != nil {
			return nil, err
		}
	}
	if yr.Right != nil {
		if room.Right, err = convertYAMLRoom(yr.Right, depth+1); err != nil {
			return nil, err
		}
	}
	return room, nil
}
