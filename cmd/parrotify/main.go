// parrotify - Party parrot compositor.
//
// Usage:
//
//	parrotify -o <file> [--parrot <name|dir|bundle>] [options]
//	parrotify list [--parrots <dir>]
//	parrotify serve [--port 8080] [--parrots <dir>]
//	parrotify init [--dir <dir>]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/kataras/golog"

	"github.com/xob0t/GoParrot/clients/server"
	"github.com/xob0t/GoParrot/pkg/config"
	"github.com/xob0t/GoParrot/pkg/generator"
	"github.com/xob0t/GoParrot/pkg/media"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "serve":
		err = server.RunServe(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		err = run(os.Args[1:])
	}
	if err != nil {
		fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("parrotify", flag.ExitOnError)

	var (
		output   string
		name     string
		root     string
		colors   string
		delay    int
		timeout  time.Duration
		verbose  bool
		overlays overlayFlags
	)

	fs.StringVar(&output, "o", "", "Output file path (.gif, .png, .avi or .zip)")
	fs.StringVar(&output, "output", "", "Output file path (.gif, .png, .avi or .zip)")
	fs.StringVar(&name, "parrot", "parrot", "Character name, directory or .parrot bundle")
	fs.StringVar(&root, "parrots", "./parrots", "Directory of characters")
	fs.StringVar(&colors, "colors", "", "Comma-separated tint colors: hex or 'random'")
	fs.IntVar(&delay, "delay", 0, "Frame delay in milliseconds (default 40)")
	fs.DurationVar(&timeout, "timeout", 15*time.Second, "Timeout for fetching overlay URLs")
	fs.BoolVar(&verbose, "verbose", false, "Debug logging")
	overlays.register(fs)

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if verbose {
		golog.SetLevel("debug")
	}

	if output == "" {
		printUsage()
		return fmt.Errorf("output file is required (-o)")
	}

	p, cleanup, err := resolveParrot(name, root)
	if err != nil {
		return fmt.Errorf("load parrot: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Generating: %s (%s, %d frames)\n", output, p.Name, p.Frames)
	res, err := generator.Generate(ctx, output, generator.Config{
		Parrot:   p,
		Colors:   splitColors(colors),
		Delay:    delay,
		Overlays: overlays.list,
		Loader:   media.NewLoader(timeout),
	})
	if err != nil {
		return err
	}

	if res.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d overlay frames skipped\n", res.Skipped)
	}
	fmt.Printf("Done: %s (%d frames)\n", output, res.Frames)
	return nil
}

// resolveParrot accepts a character directory, a .parrot bundle or a name
// in the catalog under root.
func resolveParrot(name, root string) (*config.Parrot, func(), error) {
	noop := func() {}
	if strings.EqualFold(filepath.Ext(name), config.BundleExt) {
		return config.LoadBundle(name)
	}
	if fi, err := os.Stat(name); err == nil && fi.IsDir() {
		p, err := config.Load(name)
		return p, noop, err
	}

	c := config.NewCatalog(root)
	p, err := c.Get(name)
	if err != nil {
		c.Close()
		return nil, noop, err
	}
	return p, func() { c.Close() }, nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	root := fs.String("parrots", "./parrots", "Directory of characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := config.NewCatalog(*root)
	defer c.Close()
	if _, err := c.Names(); err != nil {
		return err
	}

	list := c.List()
	if len(list) == 0 {
		fmt.Printf("No parrots in %s\n", *root)
		return nil
	}
	for _, p := range list {
		fmt.Printf("  %-20s %dx%d  %d frames\n", p.Name, p.Width, p.Height, p.Frames)
	}
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var dir string
	fs.StringVar(&dir, "dir", filepath.Join("parrots", "parrot"), "Character directory to create")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfgPath := filepath.Join(dir, config.FileNames[0])
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}
	for _, sub := range []string{"frames", "white"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("create %s: %w", sub, err)
		}
	}
	if err := os.WriteFile(cfgPath, []byte(config.ExampleYAML), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Created: %s\n", cfgPath)
	fmt.Printf("Add frame images to %s, then run: parrotify -o out.gif --parrot %s\n",
		filepath.Join(dir, "frames"), dir)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`parrotify — Party Parrot Compositor

USAGE:
    parrotify -o <file> [--parrot <name>] [options]
    parrotify list [--parrots <dir>]
    parrotify serve [--port 8080] [--parrots <dir>]
    parrotify init [--dir <dir>]

GENERATE:
    -o, --output <path>       Output file (.gif, .png, .avi or .zip)
    --parrot <name|path>      Character name, directory or .parrot bundle (default: parrot)
    --parrots <dir>           Character directory (default: ./parrots)
    --colors <list>           Comma-separated tints, e.g. "#ff0000,#00ff00" or "random"
    --delay <ms>              Frame delay (default: 40)
    --timeout <dur>           Overlay URL fetch timeout (default: 15s)
    --verbose                 Debug logging

OVERLAYS (repeatable, options apply to the preceding --overlay):
    --overlay <src>           Image, animated GIF, or http(s) URL
    --overlay-width <px>      Overlay width (default: image width)
    --overlay-height <px>     Overlay height (default: image height)
    --overlay-x <px>          Horizontal offset
    --overlay-y <px>          Vertical offset
    --overlay-flip-x          Mirror horizontally
    --overlay-flip-y          Mirror vertically

API SERVER:
    parrotify serve [--port 8080]     Start the HTTP API

EXAMPLES:
    parrotify init
    parrotify list
    parrotify -o party.gif
    parrotify -o rainbow.gif --colors "#ff0000,#ffa500,#ffff00,#00ff00,#0000ff"
    parrotify -o hat.gif --overlay hat.png --overlay-width 40 --overlay-y -5
    parrotify -o deal.avi --parrot ./parrots/deal --overlay sunglasses.gif
`)
}
