// Copyright (C) 2026 Paolo Caressa. All Rights Reserved.

// Program jsondump parses each of its inputs as a JSON value into a
// word buffer and dumps it back to stdout as compact JSON, one value
// per line. A failing input is reported and processing continues with
// the next one. With no arguments it reads stdin; the name "-" also
// denotes stdin; files ending in ".gz" are decompressed transparently.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"

	"github.com/pcaressa/jstream"
)

var (
	doEcho   = flag.Bool("echo", false, "Echo every consumed character to stderr")
	doHuJSON = flag.Bool("hujson", false, "Standardize human JSON (comments, trailing commas) before parsing")
	maxWords = flag.Int("max-words", 0, "Abort a parse needing more than this many words (0 = unbounded)")
)

func main() {
	flag.Parse()
	log := zap.Must(zap.NewDevelopment())
	defer log.Sync()

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	failed := 0
	for _, name := range files {
		if err := dumpFile(os.Stdout, name); err != nil {
			failed++
			var serr *jstream.SyntaxError
			if errors.As(err, &serr) {
				log.Error("parse failed",
					zap.String("file", name),
					zap.Stringer("kind", serr.Kind),
					zap.Int("offset", serr.Offset),
					zap.String("err", serr.Error()))
			} else {
				log.Error("read failed", zap.String("file", name), zap.Error(err))
			}
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// dumpFile parses one value from the named input and writes its
// rendering to w.
func dumpFile(w io.Writer, name string) error {
	var in io.Reader
	if name == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	if strings.HasSuffix(name, ".gz") {
		zr, err := gzip.NewReader(in)
		if err != nil {
			return err
		}
		defer zr.Close()
		in = zr
	}

	if *doHuJSON {
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return err
		}
		in = bytes.NewReader(std)
	}

	get := jstream.ReaderSource(in)
	if *doEcho {
		inner := get
		get = func() int {
			c := inner()
			if c >= 0 {
				fmt.Fprintf(os.Stderr, "%c", c)
			}
			return c
		}
	}

	p := jstream.NewParser(get)
	p.SetMaxWords(*maxWords)
	buf, err := p.Parse()
	if err != nil {
		return err
	}
	if _, err := buf.Root().Dump(w); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
