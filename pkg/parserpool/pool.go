// Package parserpool provides a pool of gnparser instances for concurrent name parsing.
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides botanical parsers for concurrent use.
type Pool interface {
	// Parse parses a scientific name string. It blocks while all parsers
	// are busy.
	Parse(nameString string) parsed.Parsed

	// Genus returns the genus of a parsed name, or an empty string if the
	// name cannot be parsed.
	Genus(nameString string) string

	// Close shuts down the pool. After calling Close, the pool should not
	// be used.
	Close()
}

type pool struct {
	ch chan gnparser.GNparser
}

// NewPool creates a pool of botanical parsers. If jobsNum is 0, it
// defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	size := jobsNum
	if size <= 0 {
		size = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	return &pool{ch: gnparser.NewPool(cfg, size)}
}

func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *pool) Genus(nameString string) string {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	genus, _, _ := strings.Cut(res.Canonical.Simple, " ")
	return genus
}

func (p *pool) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
	p.ch = nil
}
