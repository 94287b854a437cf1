// Package typed_flags holds option types that validate and complete their
// own values on the command line.
package typed_flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Transport is the value of `run --transport`. stdio serves MCP on the
// process's standard streams; http serves MCP at /mcp and converted
// documents at /doc.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// TransportValues lists the accepted values in completion order.
var TransportValues = []Transport{TransportStdio, TransportHTTP}

// transportDescriptions are shown next to each value by shell completion.
var transportDescriptions = map[Transport]string{
	TransportStdio: "MCP over standard input/output",
	TransportHTTP:  "MCP at /mcp and documents at /doc over HTTP",
}

var (
	_ flags.Completer   = (*Transport)(nil)
	_ flags.Unmarshaler = (*Transport)(nil)
)

// Complete offers the transports starting with match, ignoring case.
func (t *Transport) Complete(match string) []flags.Completion {
	prefix := strings.ToLower(match)
	var completions []flags.Completion
	for _, v := range TransportValues {
		if strings.HasPrefix(string(v), prefix) {
			completions = append(completions, flags.Completion{Item: string(v), Description: transportDescriptions[v]})
		}
	}
	return completions
}

func (t Transport) String() string {
	return string(t)
}

// UnmarshalFlag accepts the exact, lower case names in TransportValues.
func (t *Transport) UnmarshalFlag(value string) error {
	if !slices.Contains(TransportValues, Transport(value)) {
		return fmt.Errorf("invalid transport %q: must be one of %v", value, TransportValues)
	}
	*t = Transport(value)
	return nil
}
