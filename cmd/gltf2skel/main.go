// gltf2skel is a CLI that converts glTF animation documents into a
// skeleton and per-animation joint keyframe tracks, written as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/gltf2skel/internal/config"
	"github.com/Faultbox/gltf2skel/internal/importer"
	"github.com/Faultbox/gltf2skel/internal/logger"
	"github.com/Faultbox/gltf2skel/pkg/gltf"
)

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := logger.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.File = cfg.Logging.LogFile
	if err := logger.Init(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(args)
	case "skeleton":
		cmdSkeleton(cfg, args)
	case "anim":
		cmdAnim(cfg, args)
	case "convert":
		cmdConvert(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gltf2skel - glTF skeleton and animation converter

Usage:
  gltf2skel [flags] <command> [args]

Commands:
  info <file.gltf|file.glb>        Show document summary
  skeleton <file>                  Extract the skeleton, write JSON
  anim <file> <animation>          Import one animation, write JSON
  convert <file>                   Skeleton plus every animation

Flags:
  -rate N      Cubic-spline sampling rate in Hz (0 = default 30)
  -out DIR     Output directory (default current directory)
  -pretty      Indent JSON output
  -config PATH Config file path
  -debug       Debug logging

Examples:
  gltf2skel info model.glb
  gltf2skel -out ./export convert model.glb
  gltf2skel -rate 60 anim model.gltf Run`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fail("info: missing input file")
	}
	doc := loadDocument(args[0])

	fmt.Printf("Asset:      glTF %s", doc.Asset.Version)
	if doc.Asset.Generator != "" {
		fmt.Printf(" (%s)", doc.Asset.Generator)
	}
	fmt.Println()
	fmt.Printf("Scenes:     %d\n", len(doc.Scenes))
	fmt.Printf("Nodes:      %d\n", len(doc.Nodes))
	fmt.Printf("Skins:      %d\n", len(doc.Skins))
	fmt.Printf("Animations: %d\n", len(doc.Animations))
	for i := range doc.Animations {
		name := doc.Animations[i].Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  [%d] %s (%d channels)\n", i, name, len(doc.Animations[i].Channels))
	}
}

func cmdSkeleton(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fail("skeleton: missing input file")
	}
	doc := loadDocument(args[0])
	im := newImporter(cfg, doc)

	sk, err := im.Skeleton()
	if err != nil {
		fail("building skeleton: %v", err)
	}

	out := outputPath(cfg, args[0], "skeleton.json")
	writeJSON(cfg, out, sk)
	logger.Sugar.Infof("Wrote skeleton with %d joints to %s", sk.NumJoints(), out)
}

func cmdAnim(cfg *config.Config, args []string) {
	if len(args) < 2 {
		fail("anim: need input file and animation name")
	}
	doc := loadDocument(args[0])
	im := newImporter(cfg, doc)

	sk, err := im.Skeleton()
	if err != nil {
		fail("building skeleton: %v", err)
	}
	clip, err := im.Animation(args[1], sk)
	if err != nil {
		fail("importing animation: %v", err)
	}

	out := outputPath(cfg, args[0], fileName(clip.Name)+".anim.json")
	writeJSON(cfg, out, clip)
	logger.Sugar.Infof("Wrote animation %q (%.2fs) to %s", clip.Name, clip.Duration, out)
}

func cmdConvert(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fail("convert: missing input file")
	}
	doc := loadDocument(args[0])
	im := newImporter(cfg, doc)

	sk, err := im.Skeleton()
	if err != nil {
		fail("building skeleton: %v", err)
	}
	out := outputPath(cfg, args[0], "skeleton.json")
	writeJSON(cfg, out, sk)
	logger.Sugar.Infof("Wrote skeleton with %d joints to %s", sk.NumJoints(), out)

	for i, name := range im.AnimationNames() {
		clip, err := im.Animation(name, sk)
		if err != nil {
			fail("importing animation %q: %v", name, err)
		}
		base := fileName(clip.Name)
		if base == "" {
			base = fmt.Sprintf("animation_%d", i)
		}
		out := outputPath(cfg, args[0], base+".anim.json")
		writeJSON(cfg, out, clip)
		logger.Sugar.Infof("Wrote animation %q (%.2fs) to %s", clip.Name, clip.Duration, out)
	}
}

// loadDocument parses a .gltf/.glb file and resolves its buffers.
func loadDocument(path string) *gltf.Document {
	doc, err := gltf.ParseFile(path)
	if err != nil {
		fail("loading %s: %v", path, err)
	}
	return doc
}

func newImporter(cfg *config.Config, doc *gltf.Document) *importer.Importer {
	return importer.New(doc,
		importer.WithSampleRate(cfg.Import.SampleRate),
		importer.WithLogger(logger.Log))
}

// outputPath joins the output directory, the input file's base name and a
// suffix: model.glb -> <dir>/model.<suffix>.
func outputPath(cfg *config.Config, input, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(cfg.Output.Dir, base+"."+suffix)
}

// fileName strips characters that do not belong in a file name.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

// writeJSON writes v to path, creating the output directory if needed.
func writeJSON(cfg *config.Config, path string, v any) {
	var (
		data []byte
		err  error
	)
	if cfg.Output.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		fail("encoding %s: %v", path, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fail("creating output directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fail("writing %s: %v", path, err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	logger.Sync()
	os.Exit(1)
}
