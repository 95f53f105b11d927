// rtcmshow reads framed RTCM3 message payloads in hex, one message per
// line, and prints the decoded content: broadcast ephemerides, classic SSR
// and Compact SSR messages.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mholt/archiver/v3"
	"github.com/urfave/cli/v2"

	"github.com/gnssnet/qzsl6tool/pkg/rtcm"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "rtcmshow",
		Usage:   "display RTCM3 ephemeris and SSR message content",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "trace",
				Aliases: []string{"t"},
				Usage:   "print the per-field detail lines, not only the summary",
			},
			&cli.BoolFlag{
				Name:    "stat",
				Aliases: []string{"s"},
				Usage:   "print the CSSR bit-usage statistics at the end",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "compress",
				Usage: "gzip the output file afterwards (needs --output)",
			},
		},
		ArgsUsage: "[FILE]",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("compress") && c.String("output") == "" {
		return cli.Exit("--compress needs --output", 1)
	}

	in := os.Stdin
	if c.NArg() > 1 {
		return cli.Exit("at most one input file", 1)
	}
	if c.NArg() == 1 {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := show(in, out, c.Bool("trace"), c.Bool("stat")); err != nil {
		return err
	}

	if c.Bool("compress") {
		path := c.String("output")
		return archiver.CompressFile(path, path+".gz")
	}
	return nil
}

// show decodes the hex payload lines of in and writes the readable form to
// out. Decode errors are reported per message and do not stop the stream.
func show(in io.Reader, out io.Writer, trace, stat bool) error {
	d := rtcm.NewDecoder()
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		payload, err := hex.DecodeString(line)
		if err != nil {
			log.Printf("line %d: %v", lineno, err)
			continue
		}
		res, err := d.Decode(payload)
		if err != nil {
			log.Printf("line %d: %v", lineno, err)
			continue
		}
		if res == nil { // padding
			continue
		}
		fmt.Fprintln(out, res.Summary)
		if trace && res.Trace != "" {
			fmt.Fprint(out, res.Trace)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if stat {
		fmt.Fprintln(out, d.Stats())
	}
	return nil
}
