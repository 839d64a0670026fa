package llrb

import s "github.com/bnclabs/gosettings"

// Defaultsettings for llrb instance.
//
// "validate" (bool, default: false)
//		Walk the full tree after every Upsert, Delete, DeleteMin and
//		DeleteMax, confirming sort order, color rules and black balance.
//		Meant for debugging, a violation will panic.
//
// "histogram.depth" (int64, default: 64)
//		Depth histogram tracks the level at which each upsert landed,
//		depths beyond this value are accumulated in the last bucket.
//
func Defaultsettings() s.Settings {
	return s.Settings{
		"validate":        false,
		"histogram.depth": int64(64),
	}
}

func (llrb *LLRB) readsettings(setts s.Settings) {
	llrb.dovalidate = setts.Bool("validate")
	llrb.maxdepth = setts.Int64("histogram.depth")
	if llrb.maxdepth <= 0 {
		panicerr("histogram.depth %v should be > 0", llrb.maxdepth)
	}
}
