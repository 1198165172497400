package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/nguyenvq/bytepress/internal/compress"
	"github.com/nguyenvq/bytepress/internal/decompress"
)

var opts struct {
	Compress   compress.Command   `command:"compress" alias:"c" description:"compress files"`
	Decompress decompress.Command `command:"decompress" alias:"d" description:"decompress files previously compressed with this tool"`
}

func main() {
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil && !flags.WroteHelp(err) {
		os.Exit(1)
	}
}
