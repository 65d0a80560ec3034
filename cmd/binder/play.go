package main

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-binder/internal/prompt"
	"github.com/goliatone/go-binder/pkg/component"
	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/reactive"
)

const (
	optionNew  = "[new variable]"
	optionDone = "[done]"
)

// play lets the user pick a variable, assign it and see the re-rendered
// component until they choose done or abort.
func play(ctx context.Context, c *component.Component, driver prompt.Driver) error {
	if err := driver.Info(ctx, dom.OuterHTML(c.Root())); err != nil {
		return err
	}
	for {
		names := c.Names()
		sort.Strings(names)
		options := append(append([]string{}, names...), optionNew, optionDone)

		choice, err := driver.Select(ctx, prompt.SelectConfig{
			Message:      "Variable to change",
			Options:      options,
			DefaultIndex: len(options) - 1,
		})
		if err != nil {
			return ignoreAbort(err)
		}
		if choice < 0 || choice >= len(options) || options[choice] == optionDone {
			return nil
		}

		name := options[choice]
		if name == optionNew {
			name, err = driver.Input(ctx, prompt.InputConfig{
				Message:   "Variable name",
				Validator: validateName,
			})
			if err != nil {
				return ignoreAbort(err)
			}
			name = strings.TrimSpace(name)
		}

		raw, err := driver.Input(ctx, prompt.InputConfig{
			Message: "Value for " + name,
			Default: currentValue(c, name),
			Help:    "JSON literals are decoded; anything else is used as a string",
		})
		if err != nil {
			return ignoreAbort(err)
		}
		c.Set(name, parseValue(raw))

		if err := driver.Info(ctx, dom.OuterHTML(c.Root())); err != nil {
			return err
		}
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	return nil
}

func currentValue(c *component.Component, name string) string {
	value, ok := c.Get(name)
	if !ok {
		return ""
	}
	value = reactive.Unwrap(value)
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

func ignoreAbort(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	return err
}
