package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// Command is a command bar entry.
type Command struct {
	Name        string
	Usage       string
	Description string
	MinArgs     int
	run         func(m *Model, args []string) (string, error)
}

var commands = []Command{
	{
		Name:        "size",
		Usage:       "size <view> <cells>",
		Description: "Resize a view",
		MinArgs:     2,
		run:         (*Model).cmdSize,
	},
	{
		Name:        "direction",
		Usage:       "direction [row|column]",
		Description: "Set or toggle the layout direction",
		run:         (*Model).cmdDirection,
	},
	{
		Name:        "reset",
		Usage:       "reset [view]",
		Description: "Give every view an equal share",
		run:         (*Model).cmdReset,
	},
	{
		Name:        "remove",
		Usage:       "remove <view>",
		Description: "Remove a view from the layout",
		MinArgs:     1,
		run:         (*Model).cmdRemove,
	},
}

// LookupCommand resolves name to a command, exactly or by fuzzy match.
func LookupCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	names := make([]string, len(commands))
	for i, c := range commands {
		if c.Name == name {
			return c, nil
		}
		names[i] = c.Name
	}
	if name != "" {
		if matches := fuzzy.Find(name, names); len(matches) > 0 {
			return commands[matches[0].Index], nil
		}
	}
	return Command{}, core.ErrNotFound("command", name)
}

// resolveView finds a linked view by id, exact name or fuzzy name match.
func resolveView(c *splitview.Container, key string) (*splitview.View, error) {
	views := c.Views()
	names := make([]string, len(views))
	for i, v := range views {
		if v.ID() == key || (v.Name() != "" && v.Name() == key) {
			return v, nil
		}
		names[i] = v.Name()
	}
	if key != "" {
		if matches := fuzzy.Find(key, names); len(matches) > 0 {
			return views[matches[0].Index], nil
		}
	}
	return nil, core.ErrNotFound("view", key)
}

// execute runs one command bar line and returns a status message.
func (m *Model) execute(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, err := LookupCommand(fields[0])
	if err != nil {
		return "", err
	}
	args := fields[1:]
	if len(args) < cmd.MinArgs {
		return "", core.ErrValidation(core.CodeInvalidArgument, "usage: "+cmd.Usage)
	}
	return cmd.run(m, args)
}

func (m *Model) cmdSize(args []string) (string, error) {
	v, err := resolveView(m.container, args[0])
	if err != nil {
		return "", err
	}
	cells, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", core.ErrValidation(core.CodeInvalidArgument,
			fmt.Sprintf("invalid size %q", args[1])).WithCause(err)
	}
	unresolved, err := v.SetSize(cells)
	if err != nil {
		return "", err
	}
	status := fmt.Sprintf("%s: %d", viewLabel(v), v.Size())
	if unresolved > 0 {
		status += fmt.Sprintf(" (%d unresolved)", unresolved)
	}
	return status, nil
}

func (m *Model) cmdDirection(args []string) (string, error) {
	d := toggled(m.container.Direction())
	if len(args) > 0 {
		var err error
		if d, err = splitview.ParseDirection(args[0]); err != nil {
			return "", err
		}
	}
	if err := m.setDirection(d); err != nil {
		return "", err
	}
	return "direction " + d.String(), nil
}

func (m *Model) cmdReset(args []string) (string, error) {
	v := m.focusedView()
	if len(args) > 0 {
		var err error
		if v, err = resolveView(m.container, args[0]); err != nil {
			return "", err
		}
	}
	if v == nil {
		return "", core.ErrNotFound("view", "")
	}
	if err := m.requestReset(v); err != nil {
		return "", err
	}
	return "reset requested", nil
}

func (m *Model) cmdRemove(args []string) (string, error) {
	v, err := resolveView(m.container, args[0])
	if err != nil {
		return "", err
	}
	if _, err := m.container.RemoveView(v); err != nil {
		return "", err
	}
	delete(m.panes, v.ID())
	if m.focus == v.ID() {
		m.focus = ""
	}
	return "removed " + viewLabel(v), nil
}

func viewLabel(v *splitview.View) string {
	if v.Name() != "" {
		return v.Name()
	}
	return v.ID()
}

func toggled(d splitview.Direction) splitview.Direction {
	if d == splitview.Row {
		return splitview.Column
	}
	return splitview.Row
}
