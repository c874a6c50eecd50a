package guardrails

import (
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/config"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownGuardrail = errors.New("unknown guardrail")
	ErrInvalidPosition  = errors.New("invalid guardrail position")
)

// Factory creates a rule from a resolved spec. A nil rule with a nil error
// means the guardrail contributes nothing to the stage.
type Factory func(spec models.GuardrailSpec) (Rule, error)

// Entry describes one guardrail that callers may enable.
type Entry struct {
	Name         string `json:"name" description:"Guardrail name used in requests"`
	Kind         string `json:"kind" description:"Rule kind (substring, placeholder)"`
	Label        string `json:"label" description:"Display label"`
	DefaultParam string `json:"default_param,omitempty" description:"Parameter used when the request does not send one"`
}

// Catalog builds per-run guardrail stages from the configured entries.
type Catalog struct {
	entries   []Entry
	factories map[string]Factory
	logger    *zerolog.Logger
}

func NewCatalog(cfg []config.GuardrailConfig, logger *zerolog.Logger) *Catalog {
	entries := make([]Entry, 0, len(cfg))
	for _, g := range cfg {
		entries = append(entries, Entry{
			Name:         g.Name,
			Kind:         g.Kind,
			Label:        g.Label,
			DefaultParam: g.DefaultParam,
		})
	}

	c := &Catalog{
		entries:   entries,
		factories: map[string]Factory{},
		logger:    logger,
	}
	c.Register(config.KindSubstring, c.newSubstringRule)
	c.Register(config.KindPlaceholder, func(models.GuardrailSpec) (Rule, error) { return nil, nil })

	return c
}

// Register adds or replaces the factory for a rule kind.
func (c *Catalog) Register(kind string, factory Factory) {
	c.factories[kind] = factory
}

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Validate reports the first requested name missing from the catalog.
func (c *Catalog) Validate(names []string) error {
	for _, name := range names {
		if _, ok := c.lookup(name); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGuardrail, name)
		}
	}
	return nil
}

// Resolve turns the enabled names into specs, in catalog order.
func (c *Catalog) Resolve(position models.Position, enabled []string, params map[string]string) ([]models.GuardrailSpec, error) {
	if position != models.PositionInput && position != models.PositionOutput {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, position)
	}
	if err := c.Validate(enabled); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		wanted[name] = true
	}

	var specs []models.GuardrailSpec
	for _, entry := range c.entries {
		if !wanted[entry.Name] {
			continue
		}

		param, ok := params[entry.Name]
		if !ok {
			param = entry.DefaultParam
		}

		specs = append(specs, models.GuardrailSpec{
			Name:     entry.Name,
			Kind:     entry.Kind,
			Position: position,
			Param:    param,
		})
	}

	return specs, nil
}

// BuildStage creates a fresh stage for one run.
func (c *Catalog) BuildStage(position models.Position, enabled []string, params map[string]string) (*Stage, error) {
	specs, err := c.Resolve(position, enabled, params)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		factory, ok := c.factories[spec.Kind]
		if !ok {
			return nil, fmt.Errorf("%w: no factory for kind %q (%s)", ErrUnknownGuardrail, spec.Kind, spec.Name)
		}

		rule, err := factory(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to create guardrail %s: %w", spec.Name, err)
		}
		if rule == nil {
			c.logger.Debug().
				Str("guardrail", spec.Name).
				Str("kind", spec.Kind).
				Str("position", string(position)).
				Msg("guardrail builds no rule, skipping")
			continue
		}

		rules = append(rules, rule)
	}

	return NewStage(position, rules), nil
}

func (c *Catalog) lookup(name string) (Entry, bool) {
	for _, entry := range c.entries {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// newSubstringRule uses the term exactly as given. An empty term is contained
// in every text, so the rule always fires.
func (c *Catalog) newSubstringRule(spec models.GuardrailSpec) (Rule, error) {
	if strings.TrimSpace(spec.Param) == "" {
		c.logger.Debug().
			Str("guardrail", spec.Name).
			Str("position", string(spec.Position)).
			Msg("blank forbidden term matches every text")
	}

	return NewSubstringGuardrail(spec.Name, spec.Position, spec.Param), nil
}
