package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/xremap/internal/configpaths"
	"github.com/Alia5/xremap/internal/log"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init  ConfigInit  `cmd:"" help:"Generate a settings template for the run command"`
	Rules ConfigRules `cmd:"" help:"Write an example rule file"`
}

// ConfigInit scaffolds a settings file whose keys mirror the run flags.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to the user config directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	dest := c.Output
	if dest == "" {
		dest = configpaths.DefaultSettingsPath(format)
	}
	root := buildMapFromStruct(reflect.TypeOf(Run{}))
	root["log"] = buildMapFromStruct(reflect.TypeOf(log.Config{}))
	data, err := marshal(format, root)
	if err != nil {
		return err
	}
	return writeNew(dest, data, c.Force)
}

// ConfigRules writes an example rule file.
type ConfigRules struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to the default rule file)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigRules) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	dest := c.Output
	if dest == "" {
		dest = strings.TrimSuffix(configpaths.DefaultRulesPath(), ".yml") + "." + map[string]string{
			"yaml": "yml", "json": "json", "toml": "toml",
		}[format]
	}
	data, err := marshal(format, exampleRules())
	if err != nil {
		return err
	}
	return writeNew(dest, data, c.Force)
}

func exampleRules() map[string]any {
	return map[string]any{
		"unknown_class": "any-only",
		"windows": []map[string]any{
			{"remaps": []map[string]any{{"C-b": "Left"}, {"C-f": "Right"}}},
			{"class_only": []string{"firefox", "chromium"}, "remaps": []map[string]any{{"C-b": "Home"}}},
			{"class_not": []string{"urxvt"}, "remaps": []map[string]any{{"C-w": []string{"C-S-Left", "C-x"}}}},
		},
	}
}

func writeNew(dest string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func marshal(format string, v any) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(v, "", "  ")
	case "yaml":
		return yaml.Marshal(v)
	case "toml":
		if m, ok := v.(map[string]any); ok {
			tree, err := toml.TreeFromMap(m)
			if err != nil {
				return nil, err
			}
			return []byte(tree.String()), nil
		}
		return toml.Marshal(v)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// flagName turns a field name into its kong flag spelling, e.g.
// "RawFile" -> "raw-file".
func flagName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			prefix := strings.TrimSuffix(f.Tag.Get("prefix"), ".")
			sub := buildMapFromStruct(f.Type)
			if prefix != "" {
				out[prefix] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}
		if val := defaultValueForField(f.Type, f.Tag.Get("default")); val != nil {
			out[flagName(f.Name)] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeOf(time.Duration(0)) {
		if def != "" {
			return def
		}
		return "0s"
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 10, 64)
		return n
	case reflect.Struct:
		return buildMapFromStruct(t)
	default:
		return nil
	}
}
