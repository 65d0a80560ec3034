package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/goliatone/go-binder/internal/prompt"
	"github.com/goliatone/go-binder/pkg/component"
	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/manifest"
)

func main() {
	var sets assignments
	manifestPath := flag.String("manifest", "component.yaml", "component manifest (JSON or YAML)")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for variable changes and print each render")
	debug := flag.Bool("debug", false, "log binding maintenance")
	flag.Var(&sets, "set", "assign a variable as name=value; JSON values are decoded (repeatable)")
	flag.Parse()

	ctx := context.Background()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}
	opts, err := m.Options()
	if err != nil {
		log.Fatalf("Invalid manifest: %v", err)
	}
	opts = append(opts, component.WithLogger(logger))

	root := dom.NewElement("div")
	if m.Name != "" {
		root.SetAttr("data-component", m.Name)
	}
	c := component.New(root, opts...)
	if err := c.Mount(ctx); err != nil {
		log.Fatalf("Failed to mount component: %v", err)
	}
	defer c.Dispose()

	for _, a := range sets {
		c.Set(a.name, a.value)
	}

	if *interactive {
		if err := play(ctx, c, prompt.NewSurveyDriver(os.Stdout)); err != nil {
			log.Fatalf("Interactive session failed: %v", err)
		}
	}

	html := dom.OuterHTML(root)
	if *output != "" {
		if err := os.WriteFile(*output, []byte(html+"\n"), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Component written to %s\n", *output)
		return
	}
	fmt.Println(html)
}
