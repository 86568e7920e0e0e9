// Command lmc compiles an ARPA-like count file into a DynamicModel and
// re-emits it, either as gob (for fast loading by an embedder) or as a
// pruned/re-sorted ARPA file, mirroring the teacher's cmd/compile.
package main

import (
	"encoding/gob"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/dr-ni/onboardosk/lm"
)

func main() {
	input := flag.String("input", "", "ARPA-like count file to read (\"-\" for stdin)")
	output := flag.String("output", "", "file to write (\"-\" for stdout)")
	format := flag.String("format", "gob", "output format: \"gob\" or \"arpa\"")
	unknown := flag.String("unk", "<unk>", "unknown-word token")
	bos := flag.String("bos", "<s>", "beginning-of-sentence token")
	eos := flag.String("eos", "</s>", "end-of-sentence token")
	number := flag.String("num", "<num>", "number token")
	prune := flag.String("prune", "", "comma-separated per-order prune thresholds, trailing -1 drops that order")
	flag.Parse()

	if *input == "" {
		glog.Fatal("lmc: -input is required")
	}

	var model *lm.DynamicModel
	var err error
	if *input == "-" {
		model, err = lm.LoadARPA(os.Stdin, "<stdin>", *unknown, *bos, *eos, *number)
	} else {
		model, err = lm.LoadARPAFile(*input, *unknown, *bos, *eos, *number)
	}
	if err != nil {
		glog.Fatalf("lmc: loading %s: %v", *input, err)
	}
	glog.Infof("lmc: loaded order-%d model, %d vocabulary entries", model.Order(), model.Dictionary.Len())

	if *prune != "" {
		counts, err := parsePruneCounts(*prune)
		if err != nil {
			glog.Fatalf("lmc: -prune: %v", err)
		}
		model = model.Prune(counts)
		glog.Infof("lmc: pruned to order %d", model.Order())
	}

	out := os.Stdout
	if *output != "" && *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			glog.Fatalf("lmc: creating %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "gob":
		if err := gob.NewEncoder(out).Encode(model); err != nil {
			glog.Fatalf("lmc: encoding gob: %v", err)
		}
	case "arpa":
		if err := lm.SaveARPA(out, model); err != nil {
			glog.Fatalf("lmc: writing arpa: %v", err)
		}
	default:
		glog.Fatalf("lmc: unknown -format %q", *format)
	}
}

func parsePruneCounts(s string) ([]int32, error) {
	fields := strings.Split(s, ",")
	counts := make([]int32, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		counts[i] = int32(n)
	}
	return counts, nil
}
