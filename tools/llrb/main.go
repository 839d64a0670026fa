package main

import "os"
import "fmt"
import "time"
import "flag"
import "math/rand"

import "github.com/bnclabs/ordmap/api"
import "github.com/bnclabs/ordmap/lib"
import "github.com/bnclabs/ordmap/llrb"
import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

var options struct {
	n        int
	deletes  int
	keyrange int64
	seed     int64
	keys     string
	order    string
	dotfile  string
	loglevel string
	validate bool
	stats    bool
}

func argParse() {
	flag.IntVar(&options.n, "n", 1000,
		"number of random keys to generate and insert")
	flag.IntVar(&options.deletes, "deletes", 0,
		"number of random keys to delete after loading")
	flag.Int64Var(&options.keyrange, "keyrange", 0,
		"generate keys between [0,keyrange), default is 4*n")
	flag.Int64Var(&options.seed, "seed", 0,
		"seed for random generator, default is current time")
	flag.StringVar(&options.keys, "keys", "",
		"comma separated keys to insert instead of random keys")
	flag.StringVar(&options.order, "order", "",
		"print traversal, one of in, pre, post, level")
	flag.StringVar(&options.dotfile, "dotfile", "",
		"dump dot file output of the LLRB tree")
	flag.StringVar(&options.loglevel, "log", "info",
		"log level, one of ignore, fatal, error, warn, info, debug, trace")
	flag.BoolVar(&options.validate, "validate", false,
		"validate the tree after every mutation")
	flag.BoolVar(&options.stats, "stats", true,
		"log llrb statistics after the run")
	flag.Parse()

	if err := checkoptions(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		flag.Usage()
		os.Exit(2)
	}
	if options.seed == 0 {
		options.seed = time.Now().UnixNano()
	}
	if options.keyrange == 0 {
		options.keyrange = int64(options.n) * 4
	}
	if options.keyrange <= 0 {
		options.keyrange = 1
	}
}

func checkoptions() error {
	if options.n < 0 {
		return fmt.Errorf("invalid -n %v, shall be >= 0", options.n)
	} else if options.deletes < 0 {
		return fmt.Errorf("invalid -deletes %v, shall be >= 0", options.deletes)
	} else if options.keyrange < 0 {
		return fmt.Errorf("invalid -keyrange %v, shall be >= 0", options.keyrange)
	}
	return nil
}

func main() {
	argParse()

	log.SetLogger(nil, map[string]interface{}{
		"log.level": options.loglevel,
		"log.file":  "",
	})
	llrb.LogComponents("self")

	setts := s.Settings{"validate": options.validate}
	tree := llrb.NewLLRB("cmdline", setts)
	rnd := rand.New(rand.NewSource(options.seed))
	log.Infof("seed %v\n", options.seed)

	keys, err := loadkeys(tree, rnd)
	if err != nil {
		log.Errorf("%v\n", err)
		os.Exit(1)
	}
	deletekeys(tree, rnd, keys)

	tree.Validate()
	if options.stats {
		tree.Log(true)
	}
	if options.order != "" {
		if err := printtraversal(tree, options.order); err != nil {
			log.Errorf("%v\n", err)
			os.Exit(1)
		}
	}
	if options.dotfile != "" {
		if err := dumpdot(tree, options.dotfile); err != nil {
			log.Errorf("%v\n", err)
			os.Exit(1)
		}
	}
	printutilization(tree)
}

func loadkeys(tree *llrb.LLRB, rnd *rand.Rand) ([]int64, error) {
	var keys []int64
	var err error

	if options.keys != "" {
		if keys, err = lib.Parseints(options.keys); err != nil {
			return nil, fmt.Errorf("invalid -keys %q: %v", options.keys, err)
		}
	} else {
		keys = make([]int64, 0, options.n)
		for i := 0; i < options.n; i++ {
			keys = append(keys, rnd.Int63n(options.keyrange))
		}
	}

	now := time.Now()
	for i, key := range keys {
		tree.Upsert(key, int64(i))
	}
	took := time.Since(now)
	fmsg := "Took %v to upsert %v keys, %v entries\n"
	log.Infof(fmsg, took, humanize.Comma(int64(len(keys))), tree.Count())
	return keys, nil
}

func deletekeys(tree *llrb.LLRB, rnd *rand.Rand, keys []int64) {
	if options.deletes <= 0 || len(keys) == 0 {
		return
	}
	now, deleted := time.Now(), 0
	for i := 0; i < options.deletes; i++ {
		key := keys[rnd.Intn(len(keys))]
		if _, ok := tree.Delete(key); ok {
			deleted++
		}
	}
	fmsg := "Took %v to delete %v keys, %v entries left\n"
	log.Infof(fmsg, time.Since(now), deleted, tree.Count())
}

func printtraversal(tree *llrb.LLRB, orderstr string) error {
	order, err := api.ParseOrder(orderstr)
	if err != nil {
		return err
	}
	for key, value := range tree.Traverse(order) {
		fmt.Printf("%v:%v ", key, value)
	}
	fmt.Println()
	return nil
}

func dumpdot(tree *llrb.LLRB, dotfile string) error {
	fd, err := os.Create(dotfile)
	if err != nil {
		return err
	}
	defer fd.Close()
	tree.Dotdump(fd)
	log.Infof("dot script written to %q\n", dotfile)
	return nil
}
