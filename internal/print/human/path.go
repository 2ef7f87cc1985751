package human

import (
	"encoding"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Path represents a path on the file system.
//
// The type interprets the special prefix "~/" as representing the home
// directory of the user that the program is running as. Setting such a path
// fails when the home directory is unknown.
type Path string

func (p Path) String() string {
	return string(p)
}

func (p *Path) Set(s string) error {
	if len(s) < 2 || s[0] != '~' || s[1] != os.PathSeparator {
		*p = Path(s)
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("expanding %s: %w", s, err)
	}
	*p = Path(filepath.Join(home, s[2:]))
	return nil
}

func (p *Path) UnmarshalText(b []byte) error {
	return p.Set(string(b))
}

var (
	_ encoding.TextUnmarshaler = (*Path)(nil)
	_ flag.Value               = (*Path)(nil)
)
