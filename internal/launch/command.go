package launch

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ParseCommand splits a stored application command into argv. Single and
// double quotes group words; a leading ~ in the program is expanded.
func ParseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	quoted := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
				quoted = true
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
				quoted = true
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 || quoted {
					args = append(args, current.String())
					current.Reset()
					quoted = false
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}
	return filepath.Join(home, path[2:])
}
