package main

import "os"

import humanize "github.com/dustin/go-humanize"
import "github.com/bnclabs/ordmap/llrb"
import "github.com/bnclabs/golog"
import "github.com/cloudfoundry/gosigar"

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		log.Warnf("unable to read system memory: %v\n", err)
		return 0, 0, 0
	}
	return mem.Total, mem.Used, mem.Free
}

func getprocmem() (size, resident uint64) {
	procmem := sigar.ProcMem{}
	if err := procmem.Get(os.Getpid()); err != nil {
		log.Warnf("unable to read process memory: %v\n", err)
		return 0, 0
	}
	return procmem.Size, procmem.Resident
}

func printutilization(tree *llrb.LLRB) {
	total, used, free := getsysmem()
	size, resident := getprocmem()
	fmsg := "System{total:%v used:%v free:%v} Process{size:%v resident:%v}\n"
	log.Infof(
		fmsg, humanize.Bytes(total), humanize.Bytes(used),
		humanize.Bytes(free), humanize.Bytes(size), humanize.Bytes(resident))

	if n := tree.Count(); n > 0 {
		avg := resident / uint64(n)
		fmsg = "%v entries, height %v, ~%v resident per entry\n"
		log.Infof(fmsg, humanize.Comma(n), tree.Height(), humanize.Bytes(avg))
	}
}
