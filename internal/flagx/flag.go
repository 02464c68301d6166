// Package flagx lets several independent flag sets share one command line.
// Each loader picks out only the flags it owns and parses them on its own
// FlagSet, so unknown flags belonging to another loader never cause errors.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// normalize strips the leading dashes so that "-c" and "--c" compare equal,
// matching the behavior of the standard flag package.
func normalize(name string) string {
	return strings.TrimLeft(name, "-")
}

// FilterArgs returns the subset of args that belong to allowedFlags, keeping
// their values. Both "-name value" and "-name=value" forms are recognized,
// and a flag may be written with one or two leading dashes regardless of how
// it is listed in allowedFlags.
//
// A token following an allowed flag is treated as its value unless it starts
// with a dash.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[normalize(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, known := allowed[normalize(name)]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, known := allowed[normalize(arg)]; !known {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath extracts the JSON config file path given via -c or -config.
// The last occurrence wins; an empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
