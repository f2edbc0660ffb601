// Package component turns a bash script into an image build component
// document.
package component

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder is replaced with the script text.
const Placeholder = "{{ place-holder }}"

//go:embed templates/bash_component.yaml
var defaultTemplate []byte

// DefaultTemplate returns a copy of the built-in component template.
func DefaultTemplate() []byte {
	return append([]byte(nil), defaultTemplate...)
}

// ErrNoCommand is returned when the template has no
// phases[0].steps[0].inputs.commands[0] entry.
var ErrNoCommand = errors.New("template has no phases[0].steps[0].inputs.commands[0]")

// Render substitutes the script into the first command of the first step of
// the first phase and returns the resulting document.
func Render(template, script []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(template, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse component template: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrNoCommand
	}

	cmd, err := firstCommand(doc.Content[0])
	if err != nil {
		return nil, err
	}
	cmd.Value = strings.ReplaceAll(cmd.Value, Placeholder, string(script))
	if strings.Contains(cmd.Value, "\n") {
		cmd.Style = yaml.LiteralStyle
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode component: %w", err)
	}
	return out, nil
}

func firstCommand(root *yaml.Node) (*yaml.Node, error) {
	n := root
	for _, step := range []string{"phases", "0", "steps", "0", "inputs", "commands", "0"} {
		if step == "0" {
			if n.Kind != yaml.SequenceNode || len(n.Content) == 0 {
				return nil, ErrNoCommand
			}
			n = n.Content[0]
			continue
		}
		n = mappingValue(n, step)
		if n == nil {
			return nil, ErrNoCommand
		}
	}
	if n.Kind != yaml.ScalarNode {
		return nil, ErrNoCommand
	}
	return n, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
