// vredit-sim is a desktop harness for the VR object editor: mouse and
// keyboard stand in for the headset and controllers so the whole edit-mode
// stack can be exercised without VR hardware.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	Scene   string `short:"s" long:"scene" description:"Scene file to load" default:"assets/scenes/bench.json"`
	Config  string `short:"c" long:"config" description:"Editor config file" default:"vredit.yaml"`
	Changes string `long:"changes" description:"Changed-object registry file" default:"vredit-changes.yaml"`
	Verbose bool   `short:"v" long:"verbose" description:"Debug logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	app, err := newApp(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	app.Run()
}
