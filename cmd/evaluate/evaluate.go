// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"treval/common"
	"treval/conllu"
	"treval/eval"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func formatRow(metrics eval.Metrics, name string) string {
	score := metrics[name]
	alignedAcc := ""
	if acc, ok := score.AlignedAccuracy(); ok {
		alignedAcc = fmt.Sprintf("%10.2f", 100*acc)
	}
	return fmt.Sprintf(
		"%-11s|%10.2f |%10.2f |%10.2f |%s",
		name,
		100*score.Precision(),
		100*score.Recall(),
		100*score.F1(),
		alignedAcc,
	)
}

func printReport(metrics eval.Metrics, verbose bool) {
	if !verbose {
		las := metrics["LAS"]
		elas := metrics["ELAS"]
		fmt.Printf("LAS F1 Score: %.2f\n", 100*las.F1())
		fmt.Printf("ELAS F1 Score: %.2f\n", 100*elas.F1())
		return
	}
	fmt.Println("Metric     | Precision |    Recall |  F1 Score | AligndAcc")
	fmt.Println("-----------+-----------+-----------+-----------+-----------")
	rows := common.MapSlice(eval.MetricNames, func(name string, _ int) string {
		return formatRow(metrics, name)
	})
	fmt.Println(strings.Join(rows, "\n"))
}

func main() {
	treebankType := flag.String(
		"treebank-type", "",
		"treebank type spec - a string of digits 1-6 toggling the enhanced dependency canonicalization rules")
	noDeprels := flag.Bool(
		"no-deprels", false, "skip scoring of basic and enhanced dependency relations")
	verbose := flag.Bool("verbose", false, "print all the metrics incl. precision and recall")
	flag.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"evaluate - score a system CoNLL-U output against a gold standard\n\nUsage:\n\t%s [options] [gold file] [system file]\n\t%s version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.Arg(0) == "version" {
		fmt.Printf("evaluate %s\nbuild date: %s\nlast commit: %s\n", version, buildDate, gitCommit)
		return
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	if _, err := conllu.ValidateTreebankTypeString(*treebankType); err != nil {
		log.Fatal().Err(err).Msg("invalid treebank type")
	}
	metrics, err := eval.EvaluateFiles(flag.Arg(0), flag.Arg(1), *treebankType, !*noDeprels)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}
	printReport(metrics, *verbose)
}
