// Command labelkit renders a label template to a printer command stream or a
// preview image.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/inkmill/labelkit"
	"github.com/inkmill/labelkit/fonts"
	"github.com/inkmill/labelkit/internal/config"
	"github.com/inkmill/labelkit/internal/logging"
	"github.com/inkmill/labelkit/label"
)

func main() {
	godotenv.Load()
	logging.Setup()
	log := logging.Component(logging.ComponentCLI)

	var (
		templatePath = flag.String("template", "", "label template file (YAML or JSON)")
		contextPath  = flag.String("context", "", `context JSON file ("-" for stdin)`)
		format       = flag.String("format", config.Get("LABELKIT_FORMAT", "zpl"), "output format: zpl, epl2, png, jpeg")
		output       = flag.String("o", "-", `output file ("-" for stdout)`)
		fontDir      = flag.String("fonts", config.Get("LABELKIT_FONT_DIR", ""), "directory of extra .ttf/.otf fonts")
	)
	flag.Parse()

	if *templatePath == "" {
		log.Error("no template given, use -template")
		flag.Usage()
		os.Exit(2)
	}

	def, err := label.LoadFile(*templatePath)
	if err != nil {
		log.Error("loading template", "path", *templatePath, "error", err)
		os.Exit(1)
	}

	ctx := label.Context{}
	if *contextPath != "" {
		data, err := readInput(*contextPath)
		if err != nil {
			log.Error("reading context", "path", *contextPath, "error", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &ctx); err != nil {
			log.Error("parsing context", "path", *contextPath, "error", err)
			os.Exit(1)
		}
	}

	lib := fonts.NewLibrary()
	if *fontDir != "" {
		if err := lib.RegisterDir(*fontDir); err != nil {
			log.Warn("loading font directory", "dir", *fontDir, "error", err)
		}
	}
	registerTemplateFonts(lib, def, log.Warn)

	engine := labelkit.New(lib)

	var out []byte
	switch *format {
	case "png", "jpeg":
		out, err = engine.RenderPreview(def, ctx, labelkit.PreviewFormat(*format))
	default:
		var f labelkit.Format
		f, err = labelkit.ParseFormat(*format)
		if err == nil {
			out, err = engine.Render(def, ctx, f)
		}
	}
	if err != nil {
		log.Error("rendering", "template", def.Name, "format", *format, "error", err)
		os.Exit(1)
	}

	if err := writeOutput(*output, out); err != nil {
		log.Error("writing output", "path", *output, "error", err)
		os.Exit(1)
	}
	log.Info("rendered", "template", def.Name, "format", *format, "bytes", len(out))
}

// registerTemplateFonts loads the template's font_paths entries, which may
// be files or directories.
func registerTemplateFonts(lib *fonts.Library, def *label.Definition, warn func(string, ...any)) {
	for _, p := range def.FontPaths {
		info, err := os.Stat(p)
		if err != nil {
			warn("font path not found", "path", p, "error", err)
			continue
		}
		if info.IsDir() {
			err = lib.RegisterDir(p)
		} else {
			err = lib.RegisterFile(p)
		}
		if err != nil {
			warn("loading template font", "path", p, "error", err)
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
