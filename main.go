package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/heathj/gobrowse/layout"
	"github.com/heathj/gobrowse/page"
	"github.com/heathj/gobrowse/parser"
	"github.com/heathj/gobrowse/parser/dom"
	"github.com/heathj/gobrowse/render"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

var log = logrus.WithField("component", "main")

type options struct {
	Width    int64  `toml:"width"`
	Out      string `toml:"out"`
	Tree     bool   `toml:"tree"`
	LogLevel string `toml:"log_level"`
	Debug    bool   `toml:"debug"`
	Watch    bool   `toml:"watch"`
}

func defaultOptions() options {
	return options{Width: layout.ContentAreaWidth, LogLevel: "info"}
}

// parseOptions reads the optional TOML file named by -config, then lets
// flags given on the command line override it.
func parseOptions(args []string) (options, string, error) {
	opts := defaultOptions()
	fs := flag.NewFlagSet("gobrowse", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML file with default options")
	width := fs.Int64("width", opts.Width, "content area width in pixels")
	out := fs.String("out", "", "write the painted page to this PNG file")
	tree := fs.Bool("tree", false, "print the DOM and layout trees")
	logLevel := fs.String("log-level", opts.LogLevel, "logrus level")
	debug := fs.Bool("debug", false, "trace the HTML tokenizer and tree builder")
	watch := fs.Bool("watch", false, "render again whenever the file changes")
	if err := fs.Parse(args); err != nil {
		return opts, "", err
	}
	if fs.NArg() != 1 {
		return opts, "", errors.New("usage: gobrowse [flags] file.html")
	}

	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &opts); err != nil {
			return opts, "", errors.Wrapf(err, "reading config %s", *configPath)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			opts.Width = *width
		case "out":
			opts.Out = *out
		case "tree":
			opts.Tree = *tree
		case "log-level":
			opts.LogLevel = *logLevel
		case "debug":
			opts.Debug = *debug
		case "watch":
			opts.Watch = *watch
		}
	})
	if opts.Width <= 0 {
		return opts, "", errors.Errorf("invalid width %d", opts.Width)
	}
	return opts, fs.Arg(0), nil
}

// decode converts raw file contents to UTF-8 using the BOM or <meta>
// charset, falling back to windows-1252 like a browser would.
func decode(raw []byte) (string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, "text/html")
	body, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Wrapf(err, "decoding %s", name)
	}
	return string(body), nil
}

// loadPage hands body to the active page of a new browser.
func loadPage(opts options, body string) (*page.Page, error) {
	b := page.NewBrowser(page.WithContentWidth(opts.Width), page.WithParserConfig(parser.Config{Debug: opts.Debug}))
	p := b.CurrentPage()
	if err := p.ReceiveResponse(body); err != nil {
		return nil, err
	}
	return p, nil
}

func renderFile(opts options, path string, w io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	body, err := decode(raw)
	if err != nil {
		return err
	}

	p, err := loadPage(opts, body)
	if err != nil {
		return err
	}

	if opts.Tree {
		fmt.Fprintln(w, dom.Dump(p.Window().Document()))
		fmt.Fprintln(w, p.LayoutView().Dump())
	}
	for _, item := range p.DisplayItems() {
		fmt.Fprintln(w, item)
	}

	if opts.Out != "" {
		painter := render.NewPainter(render.CanvasSize(p.LayoutView()))
		painter.Paint(p.DisplayItems())
		if err := painter.SavePNG(opts.Out); err != nil {
			return errors.Wrapf(err, "writing %s", opts.Out)
		}
		log.WithField("out", opts.Out).Info("wrote png")
	}
	return nil
}

// watchFile renders path again on every write until the watcher fails.
func watchFile(opts options, path string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WithStack(err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return errors.Wrapf(err, "watching %s", path)
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.WithField("file", ev.Name).Info("file changed")
			if err := renderFile(opts, path, w); err != nil {
				log.WithError(err).Warn("render failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.WithStack(err)
		}
	}
}

func main() {
	opts, path, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logrus.SetLevel(level)

	if err := renderFile(opts, path, os.Stdout); err != nil {
		log.WithError(err).Error("render failed")
		if !opts.Watch {
			os.Exit(1)
		}
	}
	if opts.Watch {
		if err := watchFile(opts, path, os.Stdout); err != nil {
			log.WithError(err).Fatal("watch failed")
		}
	}
}
