// Package compress implements the compress subcommand.
package compress

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyenvq/bytepress"
	"github.com/nguyenvq/bytepress/internal/cli"
)

type Command struct {
	Algorithm string `short:"a" long:"algorithm" description:"compression algorithm to use" default:"lz77" choice:"rle" choice:"lz77" choice:"huffman"`
	Window    int    `long:"window" description:"LZ77 search window size in bytes" default:"4096"`
	Lookahead int    `long:"lookahead" description:"LZ77 maximum match length in bytes" default:"18"`
	Delete    bool   `short:"d" long:"delete" description:"if given, the original files will be deleted only upon successful compression"`
	Args      struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the files to be compressed" required:"yes"`
	} `positional-args:"yes"`

	codec  bytepress.Codec
	logger *log.Logger
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	if c.Algorithm == "lz77" {
		codec, err := bytepress.NewLZ77WithConfig(c.Window, c.Lookahead)
		if err != nil {
			return err
		}
		c.codec = codec
	} else {
		c.codec, _ = bytepress.NewCodecFromName(c.Algorithm)
	}

	ext := bytepress.ExtForAlgorithm(c.Algorithm)

	success := 0
	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		c.logger = cli.NewFileLogger(i, n, file)

		if err := c.compress(string(file), string(file)+ext); err != nil {
			c.logger.Printf("compress error: %v", err)
			continue
		}

		success++

		if c.Delete {
			if err := os.Remove(string(file)); err != nil {
				c.logger.Printf("delete original file error: %v", err)
			}
		}
	}

	if success != n {
		return fmt.Errorf("successfully compressed %d/%d files", success, n)
	}

	return nil
}

func (c *Command) compress(name, dst string) error {
	data, err := cli.ReadFile(name, "reading")
	if err != nil {
		return err
	}

	blob, err := c.codec.Compress(data)
	if err != nil {
		return fmt.Errorf("%s compress error: %w", c.codec.Name(), err)
	}

	if err = os.WriteFile(dst, blob, 0644); err != nil {
		return fmt.Errorf("write file error: %w", err)
	}

	ratio := 0.0
	if len(data) > 0 {
		ratio = float64(len(blob)) / float64(len(data)) * 100
	}
	c.logger.Printf(`wrote "%s": %s -> %s (%.1f%%)`, dst, humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(len(blob))), ratio)

	return nil
}
