package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Port is a 16-bit port number. It implements the flag.Value interface.
type Port uint16

// String returns the decimal port, or "" when unset.
func (p *Port) String() string {
	if p == nil || *p == 0 {
		return ""
	}
	return strconv.Itoa(int(*p))
}

// Set parses a port in the range 1..65535.
func (p *Port) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return fmt.Errorf("port must be a number in 1..65535: %w", err)
	}
	if n == 0 {
		return errors.New("port must be a number in 1..65535")
	}

	*p = Port(n)
	return nil
}

// parseFlags parses the command line.
//
// Flags:
//
//	-p/-port UDP port to open on the gateway (default 42069)
func parseFlags(args []string) (*StructuredConfig, error) {
	var port Port

	name := "rendezvous"
	if len(os.Args) > 0 {
		name = os.Args[0]
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&port, "p", "UDP port to open on the gateway")
	fs.Var(&port, "port", "UDP port to open on the gateway (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("error parsing flags: unexpected arguments %q", fs.Args())
	}

	return &StructuredConfig{
		Network: Network{
			Port: uint16(port),
		},
	}, nil
}

// Usage describes the command line.
const Usage = `Usage: rendezvous [-p port]

  -p, -port   UDP port to open on the gateway (default 42069)
`
