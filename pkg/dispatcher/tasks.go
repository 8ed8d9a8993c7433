package dispatcher

import (
	"os"

	"github.com/arthur-debert/dotbrew/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DirectiveDefaults is the host directive that replaces option defaults
const DirectiveDefaults = "defaults"

// Task is one directive entry of a task file
type Task struct {
	Directive string

	// Items is the directive data; empty for defaults
	Items []string

	// Defaults is only set for the defaults directive
	Defaults map[string]map[string]interface{}

	// Line is the task's position in the file, for error messages
	Line int
}

// LoadTasks reads and parses a task file
func LoadTasks(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTaskFile, "failed to read task file %s", path).
			WithDetail("path", path)
	}

	tasks, err := ParseTasks(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTaskFile, "invalid task file %s", path).
			WithDetail("path", path)
	}
	return tasks, nil
}

// ParseTasks parses a task list: a sequence of mappings from directive name
// to data. Directives keep file order, including several in one mapping.
//
//	- defaults:
//	    brew:
//	      stdout: true
//	- tap: [homebrew/cask-fonts]
//	- brew:
//	    - git
//	    - neovim --HEAD
func ParseTasks(data []byte) ([]Task, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrTaskFile, "failed to parse task file")
	}

	// Empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, taskError(root, "task file must be a list of directives")
	}

	var tasks []Task
	for _, entry := range root.Content {
		if entry.Kind != yaml.MappingNode {
			return nil, taskError(entry, "each task must be a mapping of directive to data")
		}
		for i := 0; i+1 < len(entry.Content); i += 2 {
			task, err := parseTask(entry.Content[i], entry.Content[i+1])
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func parseTask(key, value *yaml.Node) (Task, error) {
	if key.Kind != yaml.ScalarNode || key.Value == "" {
		return Task{}, taskError(key, "directive name must be a non-empty string")
	}
	task := Task{Directive: key.Value, Line: key.Line}

	if task.Directive == DirectiveDefaults {
		defaults, err := parseDefaults(value)
		if err != nil {
			return Task{}, err
		}
		task.Defaults = defaults
		return task, nil
	}

	items, err := parseItems(value)
	if err != nil {
		return Task{}, err
	}
	task.Items = items
	return task, nil
}

func parseDefaults(value *yaml.Node) (map[string]map[string]interface{}, error) {
	defaults := map[string]map[string]interface{}{}
	if isNull(value) {
		return defaults, nil
	}
	if value.Kind != yaml.MappingNode {
		return nil, taskError(value, "defaults must map directive names to options")
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		name, opts := value.Content[i], value.Content[i+1]
		if isNull(opts) {
			defaults[name.Value] = map[string]interface{}{}
			continue
		}
		if opts.Kind != yaml.MappingNode {
			return nil, taskError(opts, "defaults for "+name.Value+" must be a mapping")
		}
		var decoded map[string]interface{}
		if err := opts.Decode(&decoded); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTaskFile, "line %d: invalid defaults for %s", opts.Line, name.Value)
		}
		defaults[name.Value] = decoded
	}
	return defaults, nil
}

func parseItems(value *yaml.Node) ([]string, error) {
	switch {
	case isNull(value):
		return nil, nil
	case value.Kind == yaml.ScalarNode:
		return []string{value.Value}, nil
	case value.Kind == yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, taskError(item, "directive items must be strings")
			}
			items = append(items, item.Value)
		}
		return items, nil
	}
	return nil, taskError(value, "directive data must be a string or a list of strings")
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func taskError(n *yaml.Node, msg string) error {
	return errors.Newf(errors.ErrTaskFile, "line %d: %s", n.Line, msg).
		WithDetail("line", n.Line)
}
