// Command songgen composes a song offline and writes it as a .mid file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"github.com/Conceptual-Machines/songsmith-api/internal/models"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("songgen: "+err.Error()))
		os.Exit(1)
	}
}

type options struct {
	out     string
	ceiling int
	req     models.CompositionRequest
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	params, err := opts.req.ToParams(opts.ceiling)
	if err != nil {
		return err
	}

	comp, err := composer.Generate(params)
	if err != nil {
		return err
	}

	path := opts.out
	if !strings.HasSuffix(path, ".mid") {
		path += ".mid"
	}
	if err := os.WriteFile(path, comp.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintln(stdout, renderSummary(comp, path))
	return nil
}

// parseFlags maps command-line flags onto a request. Numeric and section flags
// are only copied when given so request defaults still apply.
func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("songgen", flag.ContinueOnError)

	var (
		out         = fs.String("out", "song", "output file name; .mid is appended when missing")
		key         = fs.String("key", composer.DefaultKey, "tonal center, e.g. C, F#, Bb, Am")
		scale       = fs.String("scale", composer.DefaultScale, "scale or mode name")
		tempo       = fs.Int("tempo", composer.DefaultTempo, "beats per minute")
		verses      = fs.Int("verses", models.DefaultVerses, "number of verses")
		choruses    = fs.Int("choruses", models.DefaultChoruses, "number of choruses")
		noIntro     = fs.Bool("no-intro", false, "skip the intro")
		noOutro     = fs.Bool("no-outro", false, "skip the outro")
		buildup     = fs.Bool("buildup", false, "add a buildup")
		drop        = fs.Bool("drop", false, "add a drop")
		breakdown   = fs.Bool("breakdown", false, "add a breakdown")
		bridge      = fs.Bool("bridge", false, "add a bridge")
		humanize    = fs.Int("humanize", models.DefaultHumanization, "timing and velocity variation, 0-100")
		swing       = fs.Int("swing", models.DefaultSwing, "swing amount, 0-100")
		density     = fs.Int("density", models.DefaultDensity, "lead note density, 0-100")
		drums       = fs.String("drums", string(composer.DrumsMedium), "drum complexity: simple, medium, complex")
		bass        = fs.String("bass", string(composer.BassRoot), "bass pattern: root, walking, rhythmic, melodic")
		voicing     = fs.String("voicing", string(composer.VoicingTriad), "chord voicing: triad, seventh, extended")
		fills       = fs.Bool("fills", false, "add drum fills at section ends")
		dynamic     = fs.Bool("dynamic", false, "scale velocities by section energy")
		progression = fs.String("progression", "", "comma separated roman numerals, e.g. I,V,vi,IV")
		preset      = fs.String("preset", "", "named progression: "+strings.Join(composer.PresetNames(), ", "))
		tracks      = fs.String("tracks", "", "comma separated tracks to render (default all)")
		seed        = fs.Uint64("seed", 0, "random seed for reproducible output")
		ceiling     = fs.Int("ceiling", composer.DefaultNoteCeiling, "maximum notes across all tracks")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	req := models.CompositionRequest{
		Key:                *key,
		Scale:              *scale,
		DrumComplexity:     *drums,
		BassPattern:        *bass,
		Voicing:            *voicing,
		AddFills:           *fills,
		DynamicArrangement: *dynamic,
		IncludeIntro:       boolPtr(!*noIntro),
		IncludeOutro:       boolPtr(!*noOutro),
		IncludeBuildup:     buildup,
		IncludeDrop:        drop,
		IncludeBreakdown:   breakdown,
		IncludeBridge:      bridge,
		ProgressionPreset:  *preset,
	}

	intFlags := map[string]struct {
		val *int
		dst **int
	}{
		"tempo":    {tempo, &req.Tempo},
		"verses":   {verses, &req.NumVerses},
		"choruses": {choruses, &req.NumChorus},
		"humanize": {humanize, &req.Humanization},
		"swing":    {swing, &req.Swing},
		"density":  {density, &req.Density},
	}
	for name, f := range intFlags {
		if set[name] {
			*f.dst = f.val
		}
	}

	if set["seed"] {
		req.Seed = seed
	}
	if *progression != "" {
		req.ChordProgression = splitList(*progression)
	}
	if *tracks != "" {
		req.Tracks = map[string]bool{}
		for _, kind := range composer.AllTracks {
			req.Tracks[string(kind)] = false
		}
		for _, name := range splitList(*tracks) {
			req.Tracks[strings.ToLower(name)] = true
		}
	}

	return &options{out: *out, ceiling: *ceiling, req: req}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func boolPtr(v bool) *bool { return &v }
