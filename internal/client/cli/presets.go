package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iudanet/chatsync/internal/models"
)

type presetAddOptions struct {
	Name     string
	Settings string
	File     string
}

func (c *Cli) runPresetAdd(ctx context.Context, opts presetAddOptions) error {
	if opts.Name == "" {
		return errors.New("preset name is required (--name)")
	}
	if opts.Settings != "" && opts.File != "" {
		return errors.New("use either --settings or --file")
	}

	settings := []byte(opts.Settings)
	if opts.File != "" {
		content, err := os.ReadFile(opts.File)
		if err != nil {
			return fmt.Errorf("failed to read settings file: %w", err)
		}
		settings = content
	}
	if len(bytes.TrimSpace(settings)) == 0 {
		settings = []byte("{}")
	}
	if !json.Valid(settings) {
		return errors.New("preset settings must be valid JSON")
	}

	created, err := c.data.CreatePreset(ctx, &models.Preset{
		Name:     opts.Name,
		Settings: json.RawMessage(settings),
	})
	if err != nil {
		return fmt.Errorf("failed to add preset: %w", err)
	}

	c.io.Printf("✓ Preset %q added (id %d)\n", created.Name, created.LocalID)
	return nil
}

func (c *Cli) runPresetList(ctx context.Context) error {
	presets, err := c.data.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}
	return c.render(presetListTemplate, presets)
}

type presetView struct {
	*models.Preset
	Pretty string
}

func (c *Cli) runPresetShow(ctx context.Context, arg string, asJSON bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	preset, err := c.data.GetPreset(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get preset %d: %w", id, err)
	}

	if asJSON {
		return c.writeJSON(preset)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, preset.Settings, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(preset.Settings)
	}
	return c.render(presetTemplate, presetView{Preset: preset, Pretty: pretty.String()})
}

func (c *Cli) runPresetRename(ctx context.Context, arg, name string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := c.data.RenamePreset(ctx, id, name); err != nil {
		return fmt.Errorf("failed to rename preset %d: %w", id, err)
	}
	c.io.Printf("✓ Preset %d renamed to %q\n", id, name)
	return nil
}

func (c *Cli) runPresetDuplicate(ctx context.Context, arg, name string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	dup, err := c.data.DuplicatePreset(ctx, id, name)
	if err != nil {
		return fmt.Errorf("failed to duplicate preset %d: %w", id, err)
	}
	c.io.Printf("✓ Preset duplicated as %q (id %d)\n", dup.Name, dup.LocalID)
	return nil
}

func (c *Cli) runPresetDelete(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := c.data.DeletePreset(ctx, id); err != nil {
		return fmt.Errorf("failed to delete preset %d: %w", id, err)
	}
	c.io.Printf("✓ Preset %d deleted\n", id)
	return nil
}
