// Command plhub is the PohLang development hub: it runs source files
// against the PohLang runtime, manages projects, and serves tooling
// integrations.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	plhub "github.com/pohlang/plhub"
	"github.com/pohlang/plhub/internal/config"
	"github.com/pohlang/plhub/internal/hub"
	hubmcp "github.com/pohlang/plhub/internal/mcp"
	"github.com/pohlang/plhub/internal/release"
	"github.com/pohlang/plhub/internal/scaffold"
	"github.com/pohlang/plhub/internal/ui"
	"github.com/pohlang/plhub/internal/watch"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("plhub: ")

	// Project-local .env, best effort.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "test":
		err = testMain(args)
	case "create":
		err = createMain(args)
	case "doctor":
		err = doctorMain(args)
	case "watch":
		err = watchMain(args)
	case "release":
		err = releaseMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(plhub.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "plhub: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: plhub <command> [flags] [args]

Commands:
  run         Run a .poh file (default: the project's main file)
  test        Run the project's test suite
  create      Scaffold a new PohLang project
  doctor      Check runtime installation and project health
  watch       Run the main file and restart it on source changes
  release     Tag the repository for a release
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

Use "plhub <command> -h" for command-specific flags.`)
}

// newEngine loads configuration from the current directory.
func newEngine() (*hub.Engine, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining workspace: %w", err)
	}
	loaded, err := config.Load(workspace)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return hub.New(loaded), nil
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	jsonFlag := fs.Bool("json", false, "output the run record as JSON")
	timeoutFlag := fs.Duration("timeout", 0, "override configured runtime timeout (e.g. 1m)")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine()
	if err != nil {
		return err
	}
	if *timeoutFlag > 0 {
		eng.Invoker.Timeout = *timeoutFlag
	}

	file := eng.MainFile()
	var extra []string
	if rest := fs.Args(); len(rest) > 0 {
		file = rest[0]
		extra = rest[1:]
	}

	rec, err := eng.RunFile(ctx, file, extra)
	if err != nil {
		// Persistence failure only; the run still completed.
		log.Print(err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return err
		}
	} else {
		if rec.Stdout != "" {
			ui.Plain("%s", rec.Stdout)
		}
		if len(rec.Diagnostics) > 0 {
			for _, d := range rec.Diagnostics {
				switch {
				case d.Column > 0:
					ui.Error("%d:%d %s", d.Line, d.Column, d.Message)
				case d.Line > 0:
					ui.Error("line %d: %s", d.Line, d.Message)
				default:
					ui.Error("%s", d.Message)
				}
			}
		} else if !rec.Success && rec.Stderr != "" {
			fmt.Fprintln(os.Stderr, rec.Stderr)
		}
	}

	if !rec.Success {
		os.Exit(1)
	}
	return nil
}

// --- test ---

func testMain(args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	filterFlag := fs.String("filter", "", "regexp filter on test file paths")
	jsonFlag := fs.Bool("json", false, "output the suite record as JSON")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	suite, rec, err := eng.RunTests(ctx, *filterFlag)
	if err != nil {
		return fmt.Errorf("test: %w", err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return err
		}
	} else {
		fmt.Print(suite.String())
	}

	if suite.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// --- create ---

func createMain(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	templateFlag := fs.String("template", "basic", "project template (basic, console, web)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: plhub create [-template name] <project-name>")
	}
	name := fs.Arg(0)

	ui.Step("Creating PohLang project %q with template %q", name, *templateFlag)
	root, err := scaffold.Create(scaffold.Options{Name: name, Template: *templateFlag})
	if err != nil {
		return err
	}
	ui.Success("Project created at %s", root)
	ui.Plain("To run it: cd %s && plhub run", name)
	return nil
}

// --- doctor ---

func doctorMain(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	rep, derr := eng.Doctor(ctx)

	ui.Header("PLHub %s", plhub.Version)
	if rep.Binary != "" {
		ui.Success("Runtime: %s", rep.Binary)
		if rep.RuntimeVersion != "" {
			ui.Plain("  %s", rep.RuntimeVersion)
		}
	} else {
		ui.Error("Runtime: not found")
		ui.Plain("Probed locations:")
		for _, c := range rep.Candidates {
			ui.Plain("  %s", c)
		}
	}
	if rep.ManifestOK {
		ui.Success("Project manifest: ok")
	}

	if derr != nil {
		ui.Warning("Problems:")
		fmt.Println(derr)
		os.Exit(1)
	}
	return nil
}

// --- watch ---

func watchMain(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	entry := eng.MainFile()
	if fs.NArg() > 0 {
		entry = fs.Arg(0)
	}

	ui.Step("Watching %s (ctrl-c to stop)", eng.ProjectRoot)
	srv := &watch.Server{
		ProjectRoot: eng.ProjectRoot,
		Entry:       entry,
		Invoker:     eng.Invoker,
		Debounce:    eng.Config.Debounce(),
		Log:         log.Default(),
	}
	return srv.Run(ctx)
}

// --- release ---

func releaseMain(args []string) error {
	fs := flag.NewFlagSet("release", flag.ExitOnError)
	pushFlag := fs.Bool("push", false, "push the tag to origin")
	msgFlag := fs.String("m", "", "tag annotation message")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: plhub release [-push] [-m message] <tag>")
	}
	tag := fs.Arg(0)

	workspace, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := release.Tag(release.Options{
		RepoPath: workspace,
		Tag:      tag,
		Message:  *msgFlag,
		Push:     *pushFlag,
	}); err != nil {
		return err
	}
	ui.Success("Tagged %s", tag)
	return nil
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(hubmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine()
	if err != nil {
		return err
	}
	server := hubmcp.NewServer(eng)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
