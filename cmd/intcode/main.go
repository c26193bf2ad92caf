// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/search"
	"github.com/ezrec/intcode/translate"
)

func main() {
	var config string
	var program string
	var target int64
	var noun int
	var verb int
	var answer string
	var workers int
	var dump bool
	var verbose bool
	var trace bool
	var list bool
	var lang string

	flag.StringVar(&config, "c", "", ".toml search configuration")
	flag.StringVar(&program, "p", "-", "Program file")
	flag.Int64Var(&target, "t", 0, "Search for the noun and verb producing this output")
	flag.IntVar(&noun, "noun", 0, "Noun for a single run")
	flag.IntVar(&verb, "verb", 0, "Verb for a single run")
	flag.StringVar(&answer, "e", search.DEFAULT_ANSWER, "Answer expression over noun, verb and target")
	flag.IntVar(&workers, "j", 1, "Concurrent search workers")
	flag.BoolVar(&dump, "dump", false, "Dump memory after a single run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "trace", false, "Trace every instruction")
	flag.BoolVar(&list, "list", false, "List the instruction table and exit")
	flag.StringVar(&lang, "lang", "", "Message locale, instead of the environment's")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	if list {
		fmt.Printf("%d instructions\n", intcode.DefaultTable.Len())
		for code, ins := range intcode.DefaultTable.All() {
			fmt.Printf("%4d %-4v %v operands\n", code, ins.Name, ins.Operands)
		}
		return
	}

	cfg := search.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = search.LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	// Flags given on the command line override the configuration.
	patch := false
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "p":
			cfg.Program = program
		case "t":
			cfg.Target = &target
		case "e":
			cfg.Answer = answer
		case "j":
			cfg.Workers = workers
		case "v":
			cfg.Verbose = verbose
		case "trace":
			cfg.Trace = trace
		case "noun", "verb":
			patch = true
		}
	})

	err := cfg.Validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	source, err := intcode.LoadFile(cfg.Program)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Program, err)
	}

	h := cfg.Harness(source)

	if cfg.Target != nil && !patch {
		result := h.Find(*cfg.Target)
		err = result.Err()
		if err != nil {
			log.Fatalf("%v: target %v: %v", cfg.Program, *cfg.Target, err)
		}
		value, err := search.Answer(cfg.Answer, result, *cfg.Target)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Answer, err)
		}
		fmt.Println(value)
		return
	}

	var m *intcode.Machine
	if patch {
		m, err = h.Run(noun, verb)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Program, err)
		}
	} else {
		m = intcode.NewMachine(nil)
		m.Verbose = cfg.Trace
		m.Load(source.Clone())
		m.Run()
	}

	if m.Status() == intcode.STATUS_FAULTED {
		log.Fatalf("%v: %v", cfg.Program, m.Fault())
	}

	if dump {
		fmt.Println(m.Memory())
		return
	}

	value, _ := m.Peek(search.ADDRESS_OUTPUT)
	fmt.Println(value)
}
