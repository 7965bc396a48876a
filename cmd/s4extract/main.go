// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command s4extract unpacks every chunk of a legacy asset container into
// separate files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/s4kit/compress/mapfile"
)

type CLI struct {
	File string `kong:"arg,help='Container file to extract',type='existingfile'"`
	Out  string `kong:"help='Output directory for extracted chunks',type='path',default='.',short='o'"`

	KeepPartial bool `kong:"help='Write chunks that only decoded partially',short='k'"`
	Debug       bool `kong:"help='Enable debug output',short='d'"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("s4extract"),
		kong.Description("Extract compressed chunks from a legacy asset container"),
		kong.UsageOnError(),
	)

	if cli.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := run(cli); err != nil {
		logrus.Errorf("extraction failed: %s", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	data, err := os.ReadFile(cli.File)
	if err != nil {
		return errors.Wrap(err, "error reading container")
	}

	conf := mapfile.Config{Logger: logrus.StandardLogger()}
	f, err := conf.Parse(data)
	if err != nil {
		return errors.Wrap(err, "error parsing container")
	}
	logrus.Infof("%s: %d chunks", cli.File, len(f.Chunks()))

	if err := os.MkdirAll(cli.Out, 0755); err != nil {
		return errors.Wrap(err, "error creating output directory")
	}

	var extracted, partial int
	for i, ck := range f.Chunks() {
		logrus.Debugf("chunk %d: type %d, %d -> %d bytes at offset %d",
			i, ck.Type, ck.Length, ck.UnpackedLength, ck.Offset)

		output, err := f.Open(ck)
		if err != nil {
			logrus.Warnf("chunk %d: recovered %d of %d bytes: %s",
				i, len(output), ck.UnpackedLength, err)
			if !cli.KeepPartial {
				continue
			}
			partial++
		}

		name := filepath.Join(cli.Out, fmt.Sprintf("chunk_%03d_t%d.bin", i, ck.Type))
		if err := os.WriteFile(name, output, 0644); err != nil {
			return errors.Wrapf(err, "error writing chunk %d", i)
		}
		extracted++
	}

	logrus.Infof("extracted %d of %d chunks (%d partial)",
		extracted, len(f.Chunks()), partial)
	return nil
}
