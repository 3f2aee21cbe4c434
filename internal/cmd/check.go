package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Alia5/xremap/internal/rules"
)

// Check validates a rule file without touching the X server.
type Check struct {
	Rules string `arg:"" optional:"" help:"Rule file to validate" type:"path"`

	out io.Writer `kong:"-"`
}

func (c *Check) Run() error {
	path := rulesPath(c.Rules)
	t, err := loadTable(path)
	if err != nil {
		return err
	}
	w := c.out
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "%s: %d window groups, %d bindings, unknown_class=%s\n",
		path, len(t.Groups()), t.BindingCount(), t.Policy())
	for i, g := range t.Groups() {
		fmt.Fprintf(w, "  windows[%d] %s: %d remaps\n", i, g.Filter, len(g.Bindings))
	}
	return nil
}

// Resolve prints the effective mapping for a window class.
type Resolve struct {
	Class    string `arg:"" optional:"" help:"Window class; omit for a window whose class is unknown"`
	Instance string `help:"WM_CLASS instance name, matched like the class"`
	Rules    string `help:"Rule file" type:"path"`

	out io.Writer `kong:"-"`
}

func (r *Resolve) Run() error {
	t, err := loadTable(rulesPath(r.Rules))
	if err != nil {
		return err
	}
	w := r.out
	if w == nil {
		w = os.Stdout
	}
	printMapping(w, t, r.Class, r.Instance)
	return nil
}

func printMapping(w io.Writer, t *rules.Table, class, instance string) {
	groups := rules.Applicable(t, class, instance)
	label := class
	if label == "" {
		label = "<unknown>"
	}
	if instance != "" {
		label += " (" + instance + ")"
	}
	idx := make([]string, len(groups))
	for i, g := range groups {
		idx[i] = fmt.Sprintf("%d", g)
	}
	fmt.Fprintf(w, "class %s: groups [%s]\n", label, strings.Join(idx, " "))
	for _, b := range rules.Resolve(t, class, instance).Bindings() {
		fmt.Fprintf(w, "  %s -> %s\n", b.From, b.To)
	}
}
