// Command agent is a small worker harness around the quantile package:
// reading a stream of keyed values, routing them through shard to per-key
// summaries, and emitting each key's approximate quantiles once the stream
// ends. Flag-based CLI, signal-driven shutdown, and optional CPU/heap
// profiling round out the entrypoint.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"

	log "github.com/cihub/seelog"

	"github.com/segmentio/approxquantile/quantile"
	"github.com/segmentio/approxquantile/shard"

	_ "net/http/pprof"
)

// opts are the command-line options.
var opts struct {
	input        string
	numQuantiles uint
	version      bool
}

// version info sourced from build flags.
var (
	Version   string
	BuildDate string
	GitCommit string
)

// versionString returns the version information filled in at build time.
func versionString() string {
	var b strings.Builder
	if Version != "" {
		fmt.Fprintf(&b, "Version: %s\n", Version)
	}
	if GitCommit != "" {
		fmt.Fprintf(&b, "Git hash: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "Build date: %s\n", BuildDate)
	}
	return b.String()
}

// die logs an error message and makes the program exit immediately.
func die(format string, args ...interface{}) {
	log.Errorf(format, args...)
	log.Flush()
	os.Exit(1)
}

// handleSignal closes a channel to exit cleanly from routines.
func handleSignal(exit chan struct{}) {
	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	for signo := range sigChan {
		switch signo {
		case syscall.SIGINT, syscall.SIGTERM:
			log.Infof("received signal %d (%v)", signo, signo)
			close(exit)
			return
		default:
			log.Warnf("unhandled signal %d (%v)", signo, signo)
		}
	}
}

// main is the entrypoint of our code.
func main() {
	flag.StringVar(&opts.input, "input", "", "path to a CSV file of key,int64value lines ('-' for stdin)")
	flag.UintVar(&opts.numQuantiles, "num-quantiles", 5, "output list size, including endpoints")
	flag.BoolVar(&opts.version, "version", false, "show version information and exit")

	// profiling arguments
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	flag.Parse()

	if opts.version {
		fmt.Print(versionString())
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Critical(err)
		} else {
			pprof.StartCPUProfile(f)
			log.Info("CPU profiling started...")
			defer pprof.StopCPUProfile()
		}
	}

	if opts.input == "" {
		die("missing -input")
	}

	params, err := quantile.NewDefaultParameters(uint32(opts.numQuantiles))
	if err != nil {
		die("bad parameters: %v", err)
	}

	router := shard.NewRouter(params, quantile.Int64Order)

	exit := make(chan struct{})
	go handleSignal(exit)
	go func() {
		<-exit
		pprof.StopCPUProfile()
		log.Flush()
		os.Exit(0)
	}()

	if err := ingest(router, opts.input); err != nil {
		die("ingest: %v", err)
	}

	for key, qs := range router.Flush() {
		log.Infof("key=%s quantiles=%v", key, qs)
	}

	// collect memory profile
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Critical("could not create memory profile: ", err)
		} else {
			runtime.GC()
			if err := pprof.Lookup("heap").WriteTo(f, 1); err != nil {
				log.Critical("could not write memory profile: ", err)
			}
			f.Close()
		}
	}

	log.Flush()
}

// ingest reads "key,value" lines from path (or stdin for "-") and feeds
// each value into router under its key.
func ingest(router *shard.Router, path string) error {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			log.Warnf("skipping malformed line: %q", line)
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			log.Warnf("skipping non-integer value on line: %q", line)
			continue
		}
		router.AddInput(strings.TrimSpace(parts[0]), v)
	}
	return scanner.Err()
}
