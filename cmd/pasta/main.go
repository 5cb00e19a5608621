package main

import (
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

// newParser resets the global options and returns a parser with every
// command registered.
func newParser() *flags.Parser {
	cfg = defaultConfig()

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	parser := flags.NewNamedParser(appName, flags.HelpFlag|flags.PassDoubleDash)
	_, _ = parser.AddGroup("Application Options", "", cfg)
	for _, c := range commands() {
		_, _ = parser.AddCommand(c.name, c.short, c.long, c.data)
	}
	return parser
}

// run parses args, including any config file they name, and invokes the
// selected command.
func run(args []string) error {
	parser := newParser()
	if err := loadConfigFile(parser, args); err != nil {
		return err
	}
	_, err := parser.ParseArgs(args)
	return err
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	if err := run(os.Args[1:]); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Stderr.WriteString(e.Message + "\n")
			return nil
		}
		log.Error(err)
		return err
	}
	return nil
}

func main() {
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
