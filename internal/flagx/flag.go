// Package flagx lets each component parse only the command-line flags it
// owns, so the client and the dev server configs can share one os.Args.
package flagx

import (
	"flag"
	"io"
	"os"
	"slices"
	"strings"
)

// FilterArgs keeps the flags listed in allowed, with their values, in
// their original order. Both "-f value" and "-f=value" are recognised. An
// argument starting with "-" is never taken as a value.
func FilterArgs(args []string, allowed []string) []string {
	kept := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if slices.Contains(allowed, name) {
				kept = append(kept, arg)
			}
			continue
		}

		if !slices.Contains(allowed, arg) {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			kept = append(kept, args[i+1])
			i++
		}
	}

	return kept
}

// ConfigPath returns the JSON config file given by -c or -config in args.
// When neither is present the value of the environment variable envVar is
// used; an empty envVar disables that fallback. The last flag wins.
func ConfigPath(args []string, envVar string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to the JSON config file")
	fs.StringVar(&path, "c", "", "path to the JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	if path == "" && envVar != "" {
		path = os.Getenv(envVar)
	}
	return path
}
