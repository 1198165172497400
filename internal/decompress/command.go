// Package decompress implements the decompress subcommand.
package decompress

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyenvq/bytepress"
	"github.com/nguyenvq/bytepress/internal/cli"
)

type Command struct {
	Delete bool `short:"d" long:"delete" description:"if given, the compressed files will be deleted only upon successful decompression"`
	Args   struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the files to be decompressed; the algorithm is chosen from the file extension (.rle, .lz77, or .huff)" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	success := 0
	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		c.logger = cli.NewFileLogger(i, n, file)

		if err := c.decompress(string(file)); err != nil {
			c.logger.Printf("decompress error: %v", err)
			continue
		}

		success++

		if c.Delete {
			if err := os.Remove(string(file)); err != nil {
				c.logger.Printf("delete compressed file error: %v", err)
			}
		}
	}

	if success != n {
		return fmt.Errorf("successfully decompressed %d/%d files", success, n)
	}

	return nil
}

func (c *Command) decompress(name string) error {
	ext := filepath.Ext(name)

	codec := bytepress.NewCodecFromExt(ext)
	if codec == nil {
		return fmt.Errorf("unknown file extension %q", ext)
	}

	blob, err := cli.ReadFile(name, "reading")
	if err != nil {
		return err
	}

	data, err := codec.Decompress(blob)
	if err != nil {
		return fmt.Errorf("%s decompress error: %w", codec.Name(), err)
	}

	dst := strings.TrimSuffix(name, ext)
	if err = os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write file error: %w", err)
	}

	c.logger.Printf(`wrote "%s": %s -> %s`, dst, humanize.IBytes(uint64(len(blob))), humanize.IBytes(uint64(len(data))))

	return nil
}
