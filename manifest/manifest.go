package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/bootdat/boot"
)

const (
	// DefaultVariant is used by entries that do not name
	// a loader variant.
	DefaultVariant = "insane"

	// DefaultOutput is the output pattern used by entries
	// that do not name one.
	DefaultOutput = "{name}.boot.dat"
)

// Manifest describes a batch of container builds.
type Manifest struct {
	Builds []Entry `yaml:"builds"`
}

// Entry describes a single container build.
type Entry struct {
	// Name identifies the entry in logs, reports, and
	// {name} output placeholders. Required, unique
	// within the manifest.
	Name string `yaml:"name"`

	// Payload is the path of the stage-2 image file.
	// Required.
	Payload string `yaml:"payload"`

	// Variant is the loader variant name, "insane" or
	// "ctcaer". Defaults to "insane".
	Variant string `yaml:"variant"`

	// Output is the output path pattern. {name},
	// {variant}, and {vers} expand from the entry.
	// Defaults to "{name}.boot.dat".
	Output string `yaml:"output"`
}

// Load reads a YAML manifest from path, applies entry
// defaults, and validates the result.
func Load(path string) (*Manifest, error) {
	const errCtx = "loading manifest"

	data, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var man Manifest

	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf(
			"%s: decoding yaml: %w", errCtx, err,
		)
	}

	applyDefaults(&man)

	if err := validate(&man); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &man, nil
}

// OutputPath expands the entry's output pattern. The
// entry's own name, variant, and vers tags are always
// available; extra holds caller-supplied variables. A
// placeholder left unexpanded in the result is an error.
func (en Entry) OutputPath(
	extra map[string]string,
) (string, error) {
	const errCtx = "expanding output path"

	vr, err := boot.VariantByName(en.Variant)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	vars := map[string]interface{}{
		"name":    en.Name,
		"variant": en.Variant,
		"vers":    string(vr.Vers[:]),
	}

	for key, val := range extra {
		vars[key] = val
	}

	out := fasttemplate.ExecuteStringStd(
		en.Output, "{", "}", vars,
	)

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf(
			"%s: unresolved placeholder in %q",
			errCtx, out,
		)
	}

	return out, nil
}

// applyDefaults fills optional entry fields.
func applyDefaults(man *Manifest) {
	for i := range man.Builds {
		en := &man.Builds[i]

		if en.Variant == "" {
			en.Variant = DefaultVariant
		}

		if en.Output == "" {
			en.Output = DefaultOutput
		}
	}
}

// validate checks entry names, payload paths, and variant
// names.
func validate(man *Manifest) error {
	const errCtx = "validating manifest"

	if len(man.Builds) == 0 {
		return fmt.Errorf("%s: no builds defined", errCtx)
	}

	seen := make(map[string]struct{}, len(man.Builds))

	for i, en := range man.Builds {
		if en.Name == "" {
			return fmt.Errorf(
				"%s: build %d: missing name", errCtx, i,
			)
		}

		if _, ok := seen[en.Name]; ok {
			return fmt.Errorf(
				"%s: duplicate name %q", errCtx, en.Name,
			)
		}

		seen[en.Name] = struct{}{}

		if en.Payload == "" {
			return fmt.Errorf(
				"%s: build %q: missing payload",
				errCtx, en.Name,
			)
		}

		if _, err := boot.VariantByName(
			en.Variant,
		); err != nil {
			return fmt.Errorf(
				"%s: build %q: %w", errCtx, en.Name, err,
			)
		}
	}

	return nil
}
