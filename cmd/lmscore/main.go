// Command lmscore reads a corpus on stdin, one sentence per line, and
// reports its perplexity under a compiled model, mirroring the
// teacher's cmd/score.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/dr-ni/onboardosk/lm"
)

func main() {
	modelPath := flag.String("model", "", "ARPA-like model file to score against")
	unknown := flag.String("unk", "<unk>", "unknown-word token")
	bos := flag.String("bos", "<s>", "beginning-of-sentence token")
	eos := flag.String("eos", "</s>", "end-of-sentence token")
	number := flag.String("num", "<num>", "number token")
	flag.Parse()

	if *modelPath == "" {
		glog.Fatal("lmscore: -model is required")
	}

	model, err := lm.LoadARPAFile(*modelPath, *unknown, *bos, *eos, *number)
	if err != nil {
		glog.Fatalf("lmscore: loading %s: %v", *modelPath, err)
	}
	glog.Infof("lmscore: loaded order-%d model, %d vocabulary entries", model.Order(), model.Dictionary.Len())

	var logProbSum float64
	var numWords, numSents, numOOVs int

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		numSents++
		sentence := append(append([]string{*bos}, tokens...), *eos)
		for i := 1; i < len(sentence); i++ {
			history := sentence[:i]
			word := sentence[i]
			id := model.Dictionary.WordToId(word)
			if id == lm.NONE {
				id = lm.WORD_UNKNOWN
				numOOVs++
			}
			historyIds := make([]lm.WordId, len(history))
			for j, w := range history {
				hid := model.Dictionary.WordToId(w)
				if hid == lm.NONE {
					hid = lm.WORD_UNKNOWN
				}
				historyIds[j] = hid
			}
			p := model.Probability(historyIds, id)
			if p <= 0 {
				p = 1e-10
			}
			logProbSum += math.Log10(p)
			numWords++
		}
	}
	if err := sc.Err(); err != nil {
		glog.Fatalf("lmscore: reading corpus: %v", err)
	}

	if numWords == 0 {
		fmt.Println("0 sents, 0 words, 0 OOVs")
		return
	}
	fmt.Printf("%d sents, %d words, %d OOVs\n", numSents, numWords, numOOVs)
	fmt.Printf("logprob=%g ppl=%g ppl1=%g\n",
		logProbSum,
		math.Pow(10, -logProbSum/float64(numSents+numWords)),
		math.Pow(10, -logProbSum/float64(numWords)))
}
