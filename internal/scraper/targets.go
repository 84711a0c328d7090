package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Target describes one company careers site. ListURL may contain a %d
// placeholder for the page number.
type Target struct {
	Name               string `mapstructure:"name"`
	Company            string `mapstructure:"company"`
	ListURL            string `mapstructure:"list_url"`
	LinkSelector       string `mapstructure:"link_selector"`
	TitleSelector      string `mapstructure:"title_selector"`
	LocationSelector   string `mapstructure:"location_selector"`
	DetailBodySelector string `mapstructure:"detail_body_selector"`
	Headless           bool   `mapstructure:"headless"`
}

func (t Target) withDefaults() Target {
	if strings.TrimSpace(t.Company) == "" {
		t.Company = t.Name
	}
	if strings.TrimSpace(t.LinkSelector) == "" {
		t.LinkSelector = "a"
	}
	if strings.TrimSpace(t.TitleSelector) == "" {
		t.TitleSelector = "h1"
	}
	if strings.TrimSpace(t.DetailBodySelector) == "" {
		t.DetailBodySelector = "body"
	}
	return t
}

func (t Target) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("target name is empty")
	}
	if hostFromURL(t.ListURL) == "" {
		return fmt.Errorf("target %s: list_url must be an absolute URL", t.Name)
	}
	return nil
}

// LoadTargets reads the "targets" list from a YAML, JSON or TOML file.
func LoadTargets(path string) ([]Target, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	var raw []Target
	if err := v.UnmarshalKey("targets", &raw); err != nil {
		return nil, fmt.Errorf("decode targets: %w", err)
	}

	out := make([]Target, 0, len(raw))
	seen := map[string]struct{}{}
	for _, t := range raw {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("duplicate target %s", t.Name)
		}
		seen[t.Name] = struct{}{}
		out = append(out, t.withDefaults())
	}
	return out, nil
}
