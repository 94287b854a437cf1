// Package completion generates shell completion scripts backed by the
// go-flags completion protocol.
package completion

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// GenerateBash writes the bash completion script for the running binary to
// stdout.
func GenerateBash() {
	WriteBash(os.Stdout, os.Args[0])
}

// WriteBash writes a bash completion script for the executable at
// executable. The script calls the executable with GO_FLAGS_COMPLETION=1,
// see https://pkg.go.dev/github.com/jessevdk/go-flags.
func WriteBash(w io.Writer, executable string) {
	name := path.Base(executable)
	// bash function names cannot contain '-'
	fn := "_completion_" + strings.NewReplacer("-", "_", ".", "_").Replace(name)
	fmt.Fprintf(w, `
%s() {
    # All arguments except the first one
    args=("${COMP_WORDS[@]:1:$COMP_CWORD}")

    # Only split on newlines
    local IFS=$'\n'

    # Call completion (note that the first element of COMP_WORDS is
    # the executable itself)
    COMPREPLY=($(GO_FLAGS_COMPLETION=1 ${COMP_WORDS[0]} "${args[@]}"))
    return 0
}

complete -F %s %s
`, fn, fn, name)
}
